package board

import (
	"fmt"
	"slices"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
	"github.com/omnisketch/omnisketch/backend-go/internal/selection"
)

func (s *Store) enter(to State) error {
	if !canTransition(s.state, to) {
		s.logger.Debug("interaction rejected", "state", s.state, "requested", to)
		return fmt.Errorf("start %s while %s: %w", to, s.state, ErrBusy)
	}
	s.state = to
	s.edited = false
	return nil
}

// leave returns to idle. When the interaction did not commit, a collection
// received meanwhile is installed now; a local commit supersedes it.
func (s *Store) leave(committed bool) {
	s.state = StateIdle
	if !s.hasPending {
		return
	}
	pending := s.pending
	s.pending, s.hasPending = nil, false
	if !committed {
		s.installExternal(pending)
	}
}

// finishEdit ends a drag or resize. A gesture that changed nothing lets a
// collection received meanwhile take over instead of committing over it.
func (s *Store) finishEdit() {
	if !s.edited && s.hasPending {
		s.leave(false)
		return
	}
	s.commit()
	s.leave(true)
}

// --- Drawing ---

// StartDrawing seeds a new element of the current tool's kind at p. Tools
// that draw nothing (select, text, eraser) leave the store untouched.
func (s *Store) StartDrawing(p document.Point) error {
	kind, ok := s.tool.ElementKind()
	if !ok {
		return nil
	}
	if err := s.enter(StateDrawing); err != nil {
		return err
	}

	var shape document.Shape
	if kind == document.KindPen {
		s.penPoints = []document.Point{p}
		shape = document.Pen{Points: slices.Clip(s.penPoints)}
	} else {
		shape = document.WithExtent(kind, document.Extent{X: p.X, Y: p.Y})
	}
	s.current = document.New(s.newID(), s.style, shape)
	return nil
}

// ContinueDrawing extends a pen stroke by p or stretches a shape to p.
func (s *Store) ContinueDrawing(p document.Point) {
	if s.state != StateDrawing || s.current == nil {
		return
	}
	if s.current.Kind() == document.KindPen {
		s.penPoints = append(s.penPoints, p)
		s.current = s.current.WithShape(document.Pen{Points: slices.Clip(s.penPoints)})
		return
	}
	ext, _ := document.ExtentOf(s.current.Shape)
	ext.Width, ext.Height = p.X-ext.X, p.Y-ext.Y
	s.current = s.current.WithShape(document.WithExtent(s.current.Kind(), ext))
}

// FinishDrawing appends the in-progress element and commits. A draw that
// never moved still produces its zero-size element.
func (s *Store) FinishDrawing() {
	if s.state != StateDrawing {
		return
	}
	el := s.current
	s.current, s.penPoints = nil, nil
	if el == nil {
		s.leave(false)
		return
	}
	s.elements = append(slices.Clip(s.elements), el)
	s.commit()
	s.leave(true)
}

// --- Dragging ---

func (s *Store) StartDragging(p document.Point) error {
	if err := s.enter(StateDragging); err != nil {
		return err
	}
	s.dragX, s.dragY = p.X, p.Y
	return nil
}

// ContinueDragging moves the selection by the distance since the previous
// pointer position.
func (s *Store) ContinueDragging(p document.Point) {
	if s.state != StateDragging {
		return
	}
	dx, dy := p.X-s.dragX, p.Y-s.dragY
	s.dragX, s.dragY = p.X, p.Y
	if len(s.selected) == 0 {
		return
	}

	next := make([]*document.Element, len(s.elements))
	for i, el := range s.elements {
		if s.IsSelected(el.ID) {
			next[i] = el.Translate(dx, dy)
		} else {
			next[i] = el
		}
	}
	s.elements = next
	s.edited = true
}

func (s *Store) FinishDragging() {
	if s.state != StateDragging {
		return
	}
	s.finishEdit()
}

// --- Resizing ---

// StartResizing captures the current collection as the resize snapshot.
// With nothing selected the resize is live but moves nothing.
func (s *Store) StartResizing(p document.Point, h selection.Handle) error {
	if err := s.enter(StateResizing); err != nil {
		return err
	}
	s.resize, _ = selection.NewResize(h, p.X, p.Y, s.elements, s.selected)
	return nil
}

func (s *Store) ContinueResizing(p document.Point) {
	if s.state != StateResizing || s.resize == nil || len(s.selected) == 0 {
		return
	}
	s.elements = s.resize.Apply(s.elements, p.X, p.Y)
	s.edited = true
}

func (s *Store) FinishResizing() {
	if s.state != StateResizing {
		return
	}
	s.resize = nil
	s.finishEdit()
}

// --- Marquee ---

// StartMarquee clears the selection and seeds an empty box at p.
func (s *Store) StartMarquee(p document.Point) error {
	if err := s.enter(StateMarquee); err != nil {
		return err
	}
	s.mx, s.my = p.X, p.Y
	s.marquee = geom.Rect{X: p.X, Y: p.Y}
	s.selected = []string{}
	return nil
}

// ContinueMarquee grows the box to p and reselects what it covers.
func (s *Store) ContinueMarquee(p document.Point) {
	if s.state != StateMarquee {
		return
	}
	s.marquee = geom.RectFromCorners(s.mx, s.my, p.X, p.Y)
	s.SelectInBox(s.mx, s.my, p.X, p.Y)
}

func (s *Store) FinishMarquee() {
	if s.state != StateMarquee {
		return
	}
	s.marquee = geom.Rect{}
	s.leave(false)
}

// Finish ends whichever interaction is live.
func (s *Store) Finish() {
	switch s.state {
	case StateDrawing:
		s.FinishDrawing()
	case StateDragging:
		s.FinishDragging()
	case StateResizing:
		s.FinishResizing()
	case StateMarquee:
		s.FinishMarquee()
	}
}
