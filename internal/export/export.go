// Package export renders a board's elements into downloadable documents:
// SVG markup, PNG and JPEG rasters of that markup, and PDF.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
)

const (
	// BaseName is the file name every export is offered under.
	BaseName = "omni-sketch"

	DefaultBackground = "#fafafa"
	Padding           = 40.0
	RasterScale       = 2.0
	JPEGQuality       = 95

	fallbackWidth  = 800.0
	fallbackHeight = 600.0
)

var (
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrDecode            = errors.New("decode exported image")
)

type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts a format name or file extension, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(s, ".")) {
	case "svg":
		return FormatSVG, nil
	case "png":
		return FormatPNG, nil
	case "jpg", "jpeg":
		return FormatJPEG, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

func (f Format) ContentType() string {
	switch f {
	case FormatSVG:
		return "image/svg+xml"
	case FormatPNG:
		return "image/png"
	case FormatJPEG:
		return "image/jpeg"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

func (f Format) Extension() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// FileName is BaseName with the format's extension.
func (f Format) FileName() string {
	return BaseName + "." + f.Extension()
}

// Options controls document-wide rendering.
type Options struct {
	// Background fills the whole document when set. JPEG output always
	// gets an opaque background, falling back to DefaultBackground.
	Background string
}

// Write renders elements in the given format.
func Write(w io.Writer, f Format, elements []*document.Element, opts Options) error {
	switch f {
	case FormatSVG:
		return SVG(w, elements, opts)
	case FormatPNG:
		return PNG(w, elements, opts)
	case FormatJPEG:
		return JPEG(w, elements, opts)
	case FormatPDF:
		return PDF(w, elements, opts)
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
}

// DocumentBounds is the tight box over every element's raw extent padded by
// Padding on each side. An empty board yields 800x600 at the origin.
func DocumentBounds(elements []*document.Element) geom.Rect {
	var (
		bounds geom.Rect
		found  bool
	)
	for _, el := range elements {
		r, ok := geom.RawBounds(el)
		if !ok || !r.IsFinite() {
			continue
		}
		if !found {
			bounds, found = r, true
			continue
		}
		bounds = bounds.Union(r)
	}
	if !found {
		return geom.Rect{Width: fallbackWidth, Height: fallbackHeight}
	}
	return bounds.Expand(Padding)
}

// paint maps a stored color to a renderable one; transparent becomes none.
func paint(c string) string {
	if c == "" || strings.EqualFold(c, document.Transparent) {
		return "none"
	}
	return c
}
