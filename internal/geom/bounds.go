package geom

import (
	"math"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

// BoundsPadding is the margin added around every element box.
const BoundsPadding = 8.0

// ElementBounds returns the padded box of an element. It reports false for
// geometry that has no box, such as a pen with no samples.
func ElementBounds(el *document.Element) (Rect, bool) {
	var r Rect
	switch s := el.Shape.(type) {
	case document.Pen:
		b, ok := pointsBounds(s.Points)
		if !ok {
			return Rect{}, false
		}
		r = b
	case document.Ellipse:
		cx, cy := s.X+s.Width/2, s.Y+s.Height/2
		rx, ry := math.Abs(s.Width/2), math.Abs(s.Height/2)
		r = Rect{X: cx - rx, Y: cy - ry, Width: rx * 2, Height: ry * 2}
	default:
		ext, ok := document.ExtentOf(s)
		if !ok {
			return Rect{}, false
		}
		r = extentRect(ext)
	}
	if !r.IsFinite() {
		return Rect{}, false
	}
	return r.Expand(BoundsPadding), true
}

// RawBounds returns the unpadded extent of an element: the sample hull for
// pens and the (x, x+width) by (y, y+height) span for everything else.
func RawBounds(el *document.Element) (Rect, bool) {
	if p, ok := el.Shape.(document.Pen); ok {
		return pointsBounds(p.Points)
	}
	ext, ok := document.ExtentOf(el.Shape)
	if !ok {
		return Rect{}, false
	}
	return extentRect(ext), true
}

func extentRect(e document.Extent) Rect {
	x2, y2 := e.End()
	return RectFromCorners(e.X, e.Y, x2, y2)
}

func pointsBounds(pts []document.Point) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}
