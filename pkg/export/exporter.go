package export

import (
	"bytes"
	"context"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/url"

	"github.com/churrasco-tools/churrasco/pkg/plan"
)

// Exporter stores rendered summaries on any afs backed location (local
// files, mem://, cloud buckets).
type Exporter struct {
	fs afs.Service
}

func NewExporter(fs afs.Service) *Exporter {
	if fs == nil {
		fs = afs.New()
	}
	return &Exporter{fs: fs}
}

// Target resolves where an export of format f to URL ends up. A URL ending
// in "/" is treated as a directory and gets the default file name. Paths
// without a scheme are local files relative to the working directory.
func Target(URL string, f Format) string {
	if URL == "" {
		URL = f.FileName()
	} else if strings.HasSuffix(URL, "/") {
		URL += f.FileName()
	}
	return url.Normalize(URL, file.Scheme)
}

// Export renders s and uploads it. It returns the final URL. Export is best
// effort: a failure is reported to the caller and nothing else changes.
func (e *Exporter) Export(ctx context.Context, s plan.Summary, f Format, URL string) (string, error) {
	data, err := Render(s, f)
	if err != nil {
		return "", err
	}

	target := Target(URL, f)
	if err := e.fs.Upload(ctx, target, file.DefaultFileOsMode, bytes.NewReader(data)); err != nil {
		return "", pkgerrors.Wrapf(err, "failed to upload export to %s", target)
	}

	logrus.WithFields(logrus.Fields{
		"url":    target,
		"format": f,
		"bytes":  len(data),
	}).Debug("exported plan")

	return target, nil
}
