package export

import (
	"errors"
	"strings"
)

// Format is an output encoding of a plan summary.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatPNG  Format = "png"
)

// BaseName is the file name used when an export target is a directory.
const BaseName = "resultado-churrasco"

// ErrUnknownFormat is returned for unsupported output formats.
var ErrUnknownFormat = errors.New("unknown export format")

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatText, FormatJSON, FormatYAML, FormatPNG}
}

// ParseFormat resolves a format by name. "txt" and "yml" are accepted as
// aliases.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "png":
		return FormatPNG, nil
	}
	return "", ErrUnknownFormat
}

// FormatFromPath guesses the format from a file extension.
func FormatFromPath(p string) (Format, bool) {
	i := strings.LastIndex(p, ".")
	if i < 0 || strings.Contains(p[i:], "/") {
		return "", false
	}
	f, err := ParseFormat(p[i+1:])
	return f, err == nil
}

// Ext returns the file extension of f, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatText:
		return ".txt"
	case FormatYAML:
		return ".yaml"
	}
	return "." + string(f)
}

// FileName returns the default export file name for f.
func (f Format) FileName() string {
	return BaseName + f.Ext()
}
