package selection

import (
	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
)

// InBox reports whether el counts as inside a marquee box. A pen is inside
// when any sample is; other shapes need only overlap the box.
func InBox(el *document.Element, box geom.Rect) bool {
	if pen, ok := el.Shape.(document.Pen); ok {
		for _, p := range pen.Points {
			if box.Contains(p.X, p.Y) {
				return true
			}
		}
		return false
	}
	b, ok := geom.RawBounds(el)
	return ok && b.Overlaps(box)
}

// InMarquee returns the ids of every element inside the box spanned by two
// corners, in z-order.
func InMarquee(elements []*document.Element, x1, y1, x2, y2 float64) []string {
	box := geom.RectFromCorners(x1, y1, x2, y2)
	ids := make([]string, 0)
	for _, el := range elements {
		if InBox(el, box) {
			ids = append(ids, el.ID)
		}
	}
	return ids
}
