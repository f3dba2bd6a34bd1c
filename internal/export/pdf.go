package export

import (
	"fmt"
	"image/color"
	"io"

	"github.com/jung-kurt/gofpdf"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
)

const cornerRadius = 4.0

// PDF writes a single-page vector PDF sized to DocumentBounds, one point per
// canvas unit.
func PDF(w io.Writer, elements []*document.Element, opts Options) error {
	b := DocumentBounds(elements)

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: b.Width, Ht: b.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.SetLineCapStyle("round")
	pdf.SetLineJoinStyle("round")

	if opts.Background != "" {
		if c, ok := opaque(opts.Background); ok {
			setFill(pdf, c)
			pdf.Rect(0, 0, b.Width, b.Height, "F")
		}
	}

	p := pdfPage{pdf: pdf, ox: b.X, oy: b.Y}
	for _, el := range elements {
		p.element(el)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// pdfPage draws canvas coordinates shifted so the bounds origin lands on
// the page origin.
type pdfPage struct {
	pdf    *gofpdf.Fpdf
	ox, oy float64
}

func (p pdfPage) element(el *document.Element) {
	st := el.Style
	stroke, hasStroke := opaque(st.StrokeColor)
	if st.StrokeWidth <= 0 {
		hasStroke = false
	}
	fill, hasFill := opaque(st.FillColor)

	if hasStroke {
		setDraw(p.pdf, stroke)
		p.pdf.SetLineWidth(st.StrokeWidth)
	}
	if hasFill {
		setFill(p.pdf, fill)
	}
	style := paintStyle(hasStroke, hasFill)

	switch s := el.Shape.(type) {
	case document.Pen:
		if len(s.Points) < 2 || !hasStroke {
			return
		}
		setFill(p.pdf, stroke)
		p.outline(geom.Stroke(s.Points, geom.DefaultStrokeOptions(st.StrokeWidth)))
	case document.Rectangle:
		if style == "" {
			return
		}
		x, y, w, h := s.Normalized()
		p.roundRect(x-p.ox, y-p.oy, w, h, min(cornerRadius, w/2, h/2), style)
	case document.Ellipse:
		if style == "" {
			return
		}
		x, y, w, h := s.Normalized()
		p.pdf.Ellipse(x+w/2-p.ox, y+h/2-p.oy, w/2, h/2, 0, style)
	case document.Line:
		if !hasStroke {
			return
		}
		x2, y2 := s.End()
		p.line(s.X, s.Y, x2, y2)
	case document.Arrow:
		if !hasStroke {
			return
		}
		x2, y2 := s.End()
		ax, ay, bx, by := geom.ArrowHead(s.X, s.Y, x2, y2)
		p.line(s.X, s.Y, x2, y2)
		p.line(ax, ay, x2, y2)
		p.line(x2, y2, bx, by)
	}
}

func (p pdfPage) line(x1, y1, x2, y2 float64) {
	p.pdf.Line(x1-p.ox, y1-p.oy, x2-p.ox, y2-p.oy)
}

// outline fills a stroke polygon with quadratic segments through the
// midpoints of consecutive vertices, matching the SVG path.
func (p pdfPage) outline(pts []geom.Vec) {
	if len(pts) == 0 {
		return
	}
	p.pdf.MoveTo(pts[0].X-p.ox, pts[0].Y-p.oy)
	for i, pt := range pts {
		next := pts[(i+1)%len(pts)]
		mid := pt.Lerp(next, 0.5)
		p.pdf.CurveTo(pt.X-p.ox, pt.Y-p.oy, mid.X-p.ox, mid.Y-p.oy)
	}
	p.pdf.ClosePath()
	p.pdf.DrawPath("F")
}

func (p pdfPage) roundRect(x, y, w, h, r float64, style string) {
	pdf := p.pdf
	pdf.MoveTo(x+r, y)
	pdf.LineTo(x+w-r, y)
	pdf.CurveTo(x+w, y, x+w, y+r)
	pdf.LineTo(x+w, y+h-r)
	pdf.CurveTo(x+w, y+h, x+w-r, y+h)
	pdf.LineTo(x+r, y+h)
	pdf.CurveTo(x, y+h, x, y+h-r)
	pdf.LineTo(x, y+r)
	pdf.CurveTo(x, y, x+r, y)
	pdf.ClosePath()
	pdf.DrawPath(style)
}

func paintStyle(stroke, fill bool) string {
	switch {
	case stroke && fill:
		return "FD"
	case stroke:
		return "D"
	case fill:
		return "F"
	}
	return ""
}

func opaque(s string) (color.Color, bool) {
	c := parseColor(s, nil)
	return c, c != nil
}

func rgb(c color.Color) (int, int, int) {
	r, g, b, _ := c.RGBA()
	return int(r >> 8), int(g >> 8), int(b >> 8)
}

func setDraw(pdf *gofpdf.Fpdf, c color.Color) { pdf.SetDrawColor(rgb(c)) }
func setFill(pdf *gofpdf.Fpdf, c color.Color) { pdf.SetFillColor(rgb(c)) }
