package geom

import (
	"math"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

// DefaultHitThreshold is the pick distance in canvas units.
const DefaultHitThreshold = 10.0

// DistanceToSegment returns the distance from (px, py) to the segment
// (x1, y1)-(x2, y2). Zero-length segments measure to the endpoint.
func DistanceToSegment(px, py, x1, y1, x2, y2 float64) float64 {
	dx, dy := x2-x1, y2-y1
	lenSq := dx*dx + dy*dy
	t := -1.0
	if lenSq != 0 {
		t = ((px-x1)*dx + (py-y1)*dy) / lenSq
	}

	var cx, cy float64
	switch {
	case t < 0:
		cx, cy = x1, y1
	case t > 1:
		cx, cy = x2, y2
	default:
		cx, cy = x1+t*dx, y1+t*dy
	}
	return math.Hypot(px-cx, py-cy)
}

// HitTest reports whether (x, y) picks the element.
func HitTest(el *document.Element, x, y, threshold float64) bool {
	switch s := el.Shape.(type) {
	case document.Pen:
		for _, p := range s.Points {
			if math.Hypot(p.X-x, p.Y-y) < threshold {
				return true
			}
		}
		return false

	case document.Rectangle:
		return extentRect(s.Extent).Expand(threshold).Contains(x, y)

	case document.Ellipse:
		cx, cy := s.X+s.Width/2, s.Y+s.Height/2
		rx := math.Abs(s.Width/2) + threshold
		ry := math.Abs(s.Height/2) + threshold
		nx, ny := (x-cx)/rx, (y-cy)/ry
		return nx*nx+ny*ny <= 1

	case document.Line:
		x2, y2 := s.End()
		return DistanceToSegment(x, y, s.X, s.Y, x2, y2) < threshold

	case document.Arrow:
		x2, y2 := s.End()
		return DistanceToSegment(x, y, s.X, s.Y, x2, y2) < threshold
	}
	return false
}

// ElementAt returns the topmost element under (x, y). Later elements are on top.
func ElementAt(elements []*document.Element, x, y, threshold float64) (*document.Element, bool) {
	for i := len(elements) - 1; i >= 0; i-- {
		if HitTest(elements[i], x, y, threshold) {
			return elements[i], true
		}
	}
	return nil, false
}
