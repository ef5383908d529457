package render

import (
	"path/filepath"
	"strings"

	bxerrors "github.com/vpoulailleau/boxaro/pkg/errors"
)

// Format is an output format.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
	FormatJPG Format = "jpg"
	FormatPDF Format = "pdf"
)

// Formats lists every supported format.
var Formats = []Format{FormatDOT, FormatSVG, FormatPNG, FormatJPG, FormatPDF}

var formatAliases = map[string]Format{
	"dot":  FormatDOT,
	"gv":   FormatDOT,
	"svg":  FormatSVG,
	"png":  FormatPNG,
	"jpg":  FormatJPG,
	"jpeg": FormatJPG,
	"pdf":  FormatPDF,
}

// ParseFormat parses a format name. It accepts "gv" for dot and "jpeg" for jpg.
func ParseFormat(s string) (Format, error) {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f, nil
	}
	return "", bxerrors.New(bxerrors.ErrCodeInvalidFormat,
		"unknown format %q (want one of %s)", s, strings.Join(FormatNames(), ", "))
}

// FormatFromPath infers the format from the extension of path.
func FormatFromPath(path string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", false
	}
	f, ok := formatAliases[strings.ToLower(ext)]
	return f, ok
}

// Ext returns the canonical file extension, without the dot. DOT output uses "gv".
func (f Format) Ext() string {
	if f == FormatDOT {
		return "gv"
	}
	return string(f)
}

// Binary reports whether the format is not text.
func (f Format) Binary() bool { return f == FormatPNG || f == FormatJPG || f == FormatPDF }

// FormatNames returns the names of [Formats].
func FormatNames() []string {
	names := make([]string, len(Formats))
	for i, f := range Formats {
		names[i] = string(f)
	}
	return names
}
