package export

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

// MaxRasterSide caps either side of a rendered bitmap, in pixels.
const MaxRasterSide = 16384

// Rasterize decodes an SVG document and renders it at scale times its
// declared size. Pixels outside any shape stay transparent.
func Rasterize(doc io.Reader, scale float64) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(doc, oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	vb := icon.ViewBox
	w := int(math.Ceil(vb.W * scale))
	h := int(math.Ceil(vb.H * scale))
	if w <= 0 || h <= 0 || w > MaxRasterSide || h > MaxRasterSide {
		return nil, fmt.Errorf("%w: raster size %dx%d out of range", ErrDecode, w, h)
	}

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1)
	return img, nil
}

func render(elements []*document.Element, opts Options) (*image.RGBA, error) {
	var buf bytes.Buffer
	if err := SVG(&buf, elements, opts); err != nil {
		return nil, err
	}
	return Rasterize(&buf, RasterScale)
}

// PNG writes a 2x raster with alpha.
func PNG(w io.Writer, elements []*document.Element, opts Options) error {
	img, err := render(elements, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// JPEG writes a 2x raster composited over an opaque background.
func JPEG(w io.Writer, elements []*document.Element, opts Options) error {
	img, err := render(elements, opts)
	if err != nil {
		return err
	}

	bg := opts.Background
	if bg == "" {
		bg = DefaultBackground
	}
	if err := jpeg.Encode(w, flatten(img, parseColor(bg, color.White)), &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return fmt.Errorf("encode jpeg: %w", err)
	}
	return nil
}

func flatten(img image.Image, bg color.Color) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	draw.Draw(out, out.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

// parseColor resolves an SVG color string, returning def for anything that
// does not name an opaque paint.
func parseColor(s string, def color.Color) color.Color {
	if paint(s) == "none" {
		return def
	}
	c, err := oksvg.ParseSVGColor(s)
	if err != nil || c == nil {
		return def
	}
	return c
}
