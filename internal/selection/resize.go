package selection

import (
	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
)

// MinScale is the smallest factor a resize may apply on either axis.
const MinScale = 0.1

// Resize scales the selected elements of a fixed snapshot about the corner
// or edge opposite the dragged handle. Every Apply recomputes from the
// snapshot, so repeating a cursor position repeats the result exactly.
type Resize struct {
	handle   Handle
	startX   float64
	startY   float64
	snapshot []*document.Element
	selected map[string]bool
	bounds   geom.Rect
}

// NewResize captures the pre-resize state. It reports false when none of
// ids names an element with geometry, in which case there is nothing to scale.
func NewResize(handle Handle, startX, startY float64, snapshot []*document.Element, ids []string) (*Resize, bool) {
	b, ok := RawBounds(snapshot, ids)
	if !ok {
		return nil, false
	}
	return &Resize{
		handle:   handle,
		startX:   startX,
		startY:   startY,
		snapshot: snapshot,
		selected: idSet(ids),
		bounds:   b,
	}, true
}

func (r *Resize) Handle() Handle { return r.handle }

// Transform returns the scale factors and anchor for the cursor at (x, y).
func (r *Resize) Transform(x, y float64) (scaleX, scaleY, anchorX, anchorY float64) {
	dx, dy := x-r.startX, y-r.startY

	w, h := r.bounds.Width, r.bounds.Height
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}

	scaleX, scaleY = 1, 1
	anchorX, anchorY = r.bounds.X, r.bounds.Y
	maxX, maxY := r.bounds.MaxX(), r.bounds.MaxY()

	switch r.handle {
	case HandleSE:
		scaleX, scaleY = (w+dx)/w, (h+dy)/h
	case HandleSW:
		scaleX, scaleY = (w-dx)/w, (h+dy)/h
		anchorX = maxX
	case HandleNE:
		scaleX, scaleY = (w+dx)/w, (h-dy)/h
		anchorY = maxY
	case HandleNW:
		scaleX, scaleY = (w-dx)/w, (h-dy)/h
		anchorX, anchorY = maxX, maxY
	case HandleE:
		scaleX = (w + dx) / w
	case HandleW:
		scaleX = (w - dx) / w
		anchorX = maxX
	case HandleS:
		scaleY = (h + dy) / h
	case HandleN:
		scaleY = (h - dy) / h
		anchorY = maxY
	}

	if scaleX <= MinScale {
		scaleX = MinScale
	}
	if scaleY <= MinScale {
		scaleY = MinScale
	}
	return scaleX, scaleY, anchorX, anchorY
}

// Apply returns the element collection for the cursor at (x, y). Selected
// elements are rebuilt from the snapshot; the rest are taken from live.
func (r *Resize) Apply(live []*document.Element, x, y float64) []*document.Element {
	sx, sy, ax, ay := r.Transform(x, y)

	current := make(map[string]*document.Element, len(live))
	for _, el := range live {
		current[el.ID] = el
	}

	out := make([]*document.Element, len(r.snapshot))
	for i, el := range r.snapshot {
		if !r.selected[el.ID] {
			if cur, ok := current[el.ID]; ok {
				out[i] = cur
			} else {
				out[i] = el
			}
			continue
		}
		out[i] = ScaleElement(el, ax, ay, sx, sy)
	}
	return out
}

// ScaleElement maps every coordinate c of el to anchor + (c - anchor) * scale.
func ScaleElement(el *document.Element, anchorX, anchorY, scaleX, scaleY float64) *document.Element {
	if pen, ok := el.Shape.(document.Pen); ok {
		pts := make([]document.Point, len(pen.Points))
		for i, p := range pen.Points {
			pts[i] = document.Point{
				X:        anchorX + (p.X-anchorX)*scaleX,
				Y:        anchorY + (p.Y-anchorY)*scaleY,
				Pressure: p.Pressure,
			}
		}
		return el.WithShape(document.Pen{Points: pts})
	}

	ext, ok := document.ExtentOf(el.Shape)
	if !ok {
		return el
	}
	return el.WithShape(document.WithExtent(el.Kind(), document.Extent{
		X:      anchorX + (ext.X-anchorX)*scaleX,
		Y:      anchorY + (ext.Y-anchorY)*scaleY,
		Width:  ext.Width * scaleX,
		Height: ext.Height * scaleY,
	}))
}
