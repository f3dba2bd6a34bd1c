package selection

import (
	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
)

// Bounds returns the union of the padded boxes of the elements named by
// ids. Unknown ids and elements without a box are skipped.
func Bounds(elements []*document.Element, ids []string) (geom.Rect, bool) {
	return unionOver(elements, ids, geom.ElementBounds)
}

// RawBounds is Bounds without the per-element padding.
func RawBounds(elements []*document.Element, ids []string) (geom.Rect, bool) {
	return unionOver(elements, ids, geom.RawBounds)
}

func unionOver(elements []*document.Element, ids []string, box func(*document.Element) (geom.Rect, bool)) (geom.Rect, bool) {
	if len(ids) == 0 {
		return geom.Rect{}, false
	}
	want := idSet(ids)

	var (
		result geom.Rect
		found  bool
	)
	for _, el := range elements {
		if !want[el.ID] {
			continue
		}
		b, ok := box(el)
		if !ok {
			continue
		}
		if !found {
			result, found = b, true
			continue
		}
		result = result.Union(b)
	}
	return result, found
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
