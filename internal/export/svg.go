package export

import (
	"fmt"
	"html"
	"io"
	"strconv"

	svg "github.com/ajstarks/svgo/float"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
)

// SVG writes a standalone SVG document whose viewBox, width and height match
// DocumentBounds. Elements are emitted back to front.
func SVG(w io.Writer, elements []*document.Element, opts Options) error {
	ew := &errWriter{w: w}
	b := DocumentBounds(elements)

	canvas := svg.New(ew)
	canvas.Startview(b.Width, b.Height, b.X, b.Y, b.Width, b.Height)
	if opts.Background != "" {
		canvas.Rect(b.X, b.Y, b.Width, b.Height, attr("fill", opts.Background))
	}
	for _, el := range elements {
		writeElement(canvas, el)
	}
	canvas.End()

	if ew.err != nil {
		return fmt.Errorf("write svg: %w", ew.err)
	}
	return nil
}

func writeElement(canvas *svg.SVG, el *document.Element) {
	st := el.Style
	stroke := []string{attr("stroke", paint(st.StrokeColor)), attr("stroke-width", num(st.StrokeWidth))}

	switch s := el.Shape.(type) {
	case document.Pen:
		d := geom.StrokePath(s.Points, st.StrokeWidth)
		if d == "" {
			return
		}
		canvas.Path(d, attr("fill", paint(st.StrokeColor)))
	case document.Rectangle:
		x, y, w, h := s.Normalized()
		canvas.Roundrect(x, y, w, h, 4, 4, append(stroke, attr("fill", paint(st.FillColor)))...)
	case document.Ellipse:
		x, y, w, h := s.Normalized()
		canvas.Ellipse(x+w/2, y+h/2, w/2, h/2, append(stroke, attr("fill", paint(st.FillColor)))...)
	case document.Line:
		x2, y2 := s.End()
		canvas.Line(s.X, s.Y, x2, y2, append(stroke, `stroke-linecap="round"`)...)
	case document.Arrow:
		x2, y2 := s.End()
		ax, ay, bx, by := geom.ArrowHead(s.X, s.Y, x2, y2)
		canvas.Group()
		canvas.Line(s.X, s.Y, x2, y2, append(stroke, `stroke-linecap="round"`)...)
		canvas.Polyline([]float64{ax, x2, bx}, []float64{ay, y2, by},
			append(stroke, `fill="none"`, `stroke-linecap="round"`, `stroke-linejoin="round"`)...)
		canvas.Gend()
	}
}

func attr(name, value string) string {
	return name + `="` + html.EscapeString(value) + `"`
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	if err != nil {
		e.err = err
	}
	return n, err
}
