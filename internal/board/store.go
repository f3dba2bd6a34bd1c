package board

import (
	"log/slog"
	"slices"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
	"github.com/omnisketch/omnisketch/backend-go/internal/selection"
	"github.com/omnisketch/omnisketch/backend-go/internal/typeid"
)

// Store owns one board: its elements, selection, tool and style, viewport,
// undo history and the live interaction. It is not safe for concurrent use.
//
// Element slices are never written after they are published. Every edit
// builds a new slice, so history entries share unchanged elements.
type Store struct {
	elements []*document.Element
	selected []string

	tool     document.Tool
	style    document.Style
	viewport geom.Viewport

	history      [][]*document.Element
	historyIndex int

	state State

	// Drawing scratch.
	current   *document.Element
	penPoints []document.Point

	// Last pointer position while dragging.
	dragX, dragY float64

	resize *selection.Resize

	// Set once a drag or resize has moved an element.
	edited bool

	marquee geom.Rect
	mx, my  float64

	pending    []*document.Element
	hasPending bool

	onChange func([]*document.Element)
	newID    func() string
	logger   *slog.Logger
}

// New returns an empty board with the pen tool selected.
func New() *Store {
	return &Store{
		elements: []*document.Element{},
		selected: []string{},
		tool:     document.ToolPen,
		style:    document.DefaultStyle(),
		viewport: geom.DefaultViewport(),
		history:  [][]*document.Element{{}},
		newID:    typeid.NewElementID,
		logger:   slog.Default(),
	}
}

// OnChange registers fn to receive the element collection after every
// local change that moves history. Externally replaced collections are not
// reported back.
func (s *Store) OnChange(fn func([]*document.Element)) {
	s.onChange = fn
}

// SetIDGenerator overrides how new element ids are made.
func (s *Store) SetIDGenerator(fn func() string) {
	s.newID = fn
}

// --- Queries ---

// Elements returns the live collection in z-order. Callers must not modify it.
func (s *Store) Elements() []*document.Element { return s.elements }

func (s *Store) Selected() []string                { return slices.Clone(s.selected) }
func (s *Store) Tool() document.Tool               { return s.tool }
func (s *Store) Style() document.Style             { return s.style }
func (s *Store) Viewport() geom.Viewport           { return s.viewport }
func (s *Store) State() State                      { return s.state }
func (s *Store) CurrentElement() *document.Element { return s.current }

// Element looks up an element by id.
func (s *Store) Element(id string) (*document.Element, bool) {
	i := s.indexOf(id)
	if i < 0 {
		return nil, false
	}
	return s.elements[i], true
}

func (s *Store) IsSelected(id string) bool {
	return slices.Contains(s.selected, id)
}

// MarqueeBox returns the live marquee rectangle.
func (s *Store) MarqueeBox() (geom.Rect, bool) {
	return s.marquee, s.state == StateMarquee
}

// SelectionBounds is the padded union of the selected elements.
func (s *Store) SelectionBounds() (geom.Rect, bool) {
	return selection.Bounds(s.elements, s.selected)
}

// ResizeHandle returns the handle of the live resize.
func (s *Store) ResizeHandle() (selection.Handle, bool) {
	if s.resize == nil {
		return "", false
	}
	return s.resize.Handle(), true
}

// --- Tool, style and viewport ---

// SetTool switches tools and clears the selection.
func (s *Store) SetTool(t document.Tool) {
	s.tool = t
	s.selected = []string{}
}

func (s *Store) SetStrokeColor(c string)  { s.style.StrokeColor = c }
func (s *Store) SetStrokeWidth(w float64) { s.style.StrokeWidth = w }
func (s *Store) SetFillColor(c string)    { s.style.FillColor = c }

// SetZoom sets the zoom clamped to [0.1, 5].
func (s *Store) SetZoom(z float64) {
	s.viewport.Zoom = geom.ClampZoom(z)
}

func (s *Store) SetPan(x, y float64) {
	s.viewport.PanX, s.viewport.PanY = x, y
}

// SetViewport installs v with its zoom clamped.
func (s *Store) SetViewport(v geom.Viewport) {
	v.Zoom = geom.ClampZoom(v.Zoom)
	s.viewport = v
}

// --- Element CRUD ---

// AddElement appends el on top and commits.
func (s *Store) AddElement(el *document.Element) {
	s.elements = append(slices.Clip(s.elements), el)
	s.commit()
}

// UpdateElement replaces the element with the given id by update(old) and
// commits. The id and kind of the element are kept.
func (s *Store) UpdateElement(id string, update func(*document.Element) *document.Element) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	old := s.elements[i]
	next := update(old)
	if next == nil || next.Shape == nil || next.Kind() != old.Kind() {
		return false
	}
	if next.ID != id {
		c := *next
		c.ID = id
		next = &c
	}
	s.elements = slices.Clone(s.elements)
	s.elements[i] = next
	s.commit()
	return true
}

// DeleteElement removes one element, drops it from the selection and commits.
func (s *Store) DeleteElement(id string) bool {
	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.elements = slices.Delete(slices.Clone(s.elements), i, i+1)
	s.selected = slices.DeleteFunc(slices.Clone(s.selected), func(sid string) bool { return sid == id })
	s.commit()
	return true
}

// DeleteSelected removes every selected element and commits.
func (s *Store) DeleteSelected() {
	if len(s.selected) == 0 {
		return
	}
	want := make(map[string]bool, len(s.selected))
	for _, id := range s.selected {
		want[id] = true
	}
	s.elements = slices.DeleteFunc(slices.Clone(s.elements), func(el *document.Element) bool { return want[el.ID] })
	s.selected = []string{}
	s.commit()
}

// UpdateSelectedColors sets the stroke and/or fill of every selected
// element in one commit. A nil argument leaves that color alone.
func (s *Store) UpdateSelectedColors(stroke, fill *string) {
	if len(s.selected) == 0 {
		return
	}
	next := make([]*document.Element, len(s.elements))
	for i, el := range s.elements {
		if !s.IsSelected(el.ID) {
			next[i] = el
			continue
		}
		style := el.Style
		if stroke != nil {
			style.StrokeColor = *stroke
		}
		if fill != nil {
			style.FillColor = *fill
		}
		next[i] = el.WithStyle(style)
	}
	s.elements = next
	s.commit()
}

// RemoveFill makes the selection's fill transparent.
func (s *Store) RemoveFill() {
	fill := document.Transparent
	s.UpdateSelectedColors(nil, &fill)
}

// Clear removes every element and commits.
func (s *Store) Clear() {
	s.elements = []*document.Element{}
	s.selected = []string{}
	s.commit()
}

// --- Selection ---

// Select makes id the only selected element. With additive set, id is
// toggled in the existing selection instead.
func (s *Store) Select(id string, additive bool) {
	if !additive {
		s.selected = []string{id}
		return
	}
	if s.IsSelected(id) {
		s.selected = slices.DeleteFunc(slices.Clone(s.selected), func(sid string) bool { return sid == id })
		return
	}
	s.selected = append(slices.Clone(s.selected), id)
}

func (s *Store) ClearSelection() {
	s.selected = []string{}
}

// SelectInBox replaces the selection with every element inside the box
// spanned by the two corners.
func (s *Store) SelectInBox(x1, y1, x2, y2 float64) {
	s.selected = selection.InMarquee(s.elements, x1, y1, x2, y2)
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.elements, func(el *document.Element) bool { return el.ID == id })
}

// pruneSelection drops selected ids that no longer name an element.
func (s *Store) pruneSelection() {
	s.selected = slices.DeleteFunc(slices.Clone(s.selected), func(id string) bool { return s.indexOf(id) < 0 })
}
