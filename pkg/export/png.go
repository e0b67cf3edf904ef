package export

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	pkgerrors "github.com/pkg/errors"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/churrasco-tools/churrasco/pkg/plan"
)

const (
	pngScale    = 2
	pngPadding  = 16
	pngFontSize = 13
)

var (
	pngBackground = color.RGBA{R: 0xf7, G: 0xf9, B: 0xfc, A: 0xff}
	pngForeground = color.RGBA{R: 0x1e, G: 0x29, B: 0x3b, A: 0xff}
	pngTitle      = color.RGBA{R: 0x1e, G: 0x3a, B: 0x8a, A: 0xff}
)

var (
	pngFaceOnce sync.Once
	pngFace     font.Face
	pngFaceErr  error
)

// reportFace returns the Go Regular face used for the image report. It
// covers Latin-1, so names like "Linguiça" keep their accents.
func reportFace() (font.Face, error) {
	pngFaceOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			pngFaceErr = pkgerrors.Wrap(err, "failed to parse report font")
			return
		}
		pngFace, pngFaceErr = opentype.NewFace(f, &opentype.FaceOptions{
			Size:    pngFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if pngFaceErr != nil {
			pngFaceErr = pkgerrors.Wrap(pngFaceErr, "failed to create report font face")
		}
	})
	return pngFace, pngFaceErr
}

// RenderPNG draws the text report onto an image and scales it up by two.
func RenderPNG(s plan.Summary) ([]byte, error) {
	face, err := reportFace()
	if err != nil {
		return nil, err
	}
	lines := TextLines(s)

	width := 0
	for _, l := range lines {
		if w := font.MeasureString(face, l).Ceil(); w > width {
			width = w
		}
	}
	lineHeight := face.Metrics().Height.Ceil()
	bounds := image.Rect(0, 0, width+2*pngPadding, len(lines)*lineHeight+2*pngPadding)

	src := image.NewRGBA(bounds)
	xdraw.Draw(src, bounds, image.NewUniform(pngBackground), image.Point{}, xdraw.Src)

	d := &font.Drawer{Dst: src, Face: face}
	ascent := face.Metrics().Ascent.Ceil()
	for i, l := range lines {
		d.Src = image.NewUniform(pngForeground)
		if i == 0 {
			d.Src = image.NewUniform(pngTitle)
		}
		d.Dot = fixed.P(pngPadding, pngPadding+i*lineHeight+ascent)
		d.DrawString(l)
	}

	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*pngScale, bounds.Dy()*pngScale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, bounds, xdraw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, pkgerrors.Wrap(err, "failed to encode png")
	}
	return buf.Bytes(), nil
}
