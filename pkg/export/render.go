package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/churrasco-tools/churrasco/pkg/plan"
)

// Currency prefixes every amount.
const Currency = "R$"

// Report is the machine readable export of a summary. Amounts are rounded
// to two decimals.
type Report struct {
	PlanID       string    `json:"planId" yaml:"planId"`
	GeneratedAt  time.Time `json:"generatedAt" yaml:"generatedAt"`
	plan.Summary `yaml:",inline"`
}

// NewReport wraps s with a fresh plan ID and rounds its amounts.
func NewReport(s plan.Summary) Report {
	return Report{
		PlanID:      uuid.New().String(),
		GeneratedAt: time.Now().UTC().Truncate(time.Second),
		Summary:     Rounded(s),
	}
}

// Rounded returns a copy of s with every amount rounded to two decimals.
func Rounded(s plan.Summary) plan.Summary {
	out := s
	out.TotalKg = plan.Round2(s.TotalKg)
	out.TotalShare = plan.Round2(s.TotalShare)
	out.TotalCost = plan.Round2(s.TotalCost)
	out.CostPerPerson = plan.Round2(s.CostPerPerson)
	out.Lines = make([]plan.Line, len(s.Lines))
	for i, l := range s.Lines {
		l.Share = plan.Round2(l.Share)
		l.Kg = plan.Round2(l.Kg)
		l.Price = plan.Round2(l.Price)
		l.Cost = plan.Round2(l.Cost)
		out.Lines[i] = l
	}
	return out
}

// Render encodes s in the given format.
func Render(s plan.Summary, f Format) ([]byte, error) {
	switch f {
	case FormatText:
		var buf bytes.Buffer
		WriteText(&buf, s, false)
		return buf.Bytes(), nil
	case FormatJSON:
		b, err := json.MarshalIndent(NewReport(s), "", "  ")
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to encode report as json")
		}
		return append(b, '\n'), nil
	case FormatYAML:
		b, err := yaml.Marshal(NewReport(s))
		if err != nil {
			return nil, pkgerrors.Wrap(err, "failed to encode report as yaml")
		}
		return b, nil
	case FormatPNG:
		return RenderPNG(s)
	}
	return nil, pkgerrors.Wrapf(ErrUnknownFormat, "format %q", f)
}

// TextLines returns the plain text report, one line per entry.
func TextLines(s plan.Summary) []string {
	lines := []string{
		"Resultado do Churrasco",
		"",
		fmt.Sprintf("Guests: %d", s.Guests),
		fmt.Sprintf("Appetite: %s (%.0f g/person)", s.Appetite.Title(), s.GramsPerPerson),
		fmt.Sprintf("Total: %.2f kg", s.TotalKg),
		"",
	}
	for _, l := range s.Lines {
		lines = append(lines,
			l.Name,
			fmt.Sprintf("  %.1f%% - %.2f kg - %s %.2f", l.Share, l.Kg, Currency, l.Cost),
		)
	}
	lines = append(lines,
		"",
		fmt.Sprintf("Total cost: %s %.2f", Currency, s.TotalCost),
		fmt.Sprintf("Per person: %s %.2f", Currency, s.CostPerPerson),
	)
	return lines
}

// WriteText writes the human readable report. With colored set, headings
// and totals are bold regardless of whether w is a terminal.
func WriteText(w io.Writer, s plan.Summary, colored bool) {
	bold := color.New(color.Bold)
	if colored {
		bold.EnableColor()
	} else {
		bold.DisableColor()
	}

	fmt.Fprintln(w, bold.Sprint("Resultado do Churrasco"))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Guests: %s\n", bold.Sprintf("%d", s.Guests))
	fmt.Fprintf(w, "Appetite: %s (%.0f g/person)\n", bold.Sprint(s.Appetite.Title()), s.GramsPerPerson)
	fmt.Fprintf(w, "Total: %s\n", bold.Sprintf("%.2f kg", s.TotalKg))
	fmt.Fprintln(w)
	for _, l := range s.Lines {
		fmt.Fprintln(w, bold.Sprint(l.Name))
		fmt.Fprintf(w, "  %.1f%% - %.2f kg - %s %.2f\n", l.Share, l.Kg, Currency, l.Cost)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Total cost: %s\n", bold.Sprintf("%s %.2f", Currency, s.TotalCost))
	fmt.Fprintf(w, "Per person: %s\n", bold.Sprintf("%s %.2f", Currency, s.CostPerPerson))
}
