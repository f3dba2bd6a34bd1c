package controller

import (
	"errors"
	"log/slog"
	"strings"

	"github.com/omnisketch/omnisketch/backend-go/internal/board"
	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
	"github.com/omnisketch/omnisketch/backend-go/internal/selection"
)

const (
	ButtonPrimary = 0
	ButtonMiddle  = 1

	wheelZoomFactor = 0.001
	zoomStep        = 0.1
)

// PointerEvent is a pointer sample in screen coordinates relative to the canvas.
type PointerEvent struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Button   int     `json:"button"`
	Pressure float64 `json:"pressure"`
	Shift    bool    `json:"shiftKey"`
	Alt      bool    `json:"altKey"`
	Ctrl     bool    `json:"ctrlKey"`
	Meta     bool    `json:"metaKey"`
}

type WheelEvent struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	DeltaX float64 `json:"deltaX"`
	DeltaY float64 `json:"deltaY"`
	Ctrl   bool    `json:"ctrlKey"`
	Meta   bool    `json:"metaKey"`
}

type KeyEvent struct {
	Key   string `json:"key"`
	Ctrl  bool   `json:"ctrlKey"`
	Meta  bool   `json:"metaKey"`
	Shift bool   `json:"shiftKey"`
}

// Controller turns raw input into board operations. Panning is held here
// since it never touches the document.
type Controller struct {
	board *board.Store

	threshold float64

	panning     bool
	lastScreenX float64
	lastScreenY float64
}

func New(b *board.Store) *Controller {
	return &Controller{board: b, threshold: geom.DefaultHitThreshold}
}

func (c *Controller) Board() *board.Store { return c.board }

// Panning reports whether a pan gesture is live.
func (c *Controller) Panning() bool { return c.panning }

func (c *Controller) canvasPoint(e PointerEvent) document.Point {
	x, y := c.board.Viewport().ScreenToCanvas(e.X, e.Y)
	return document.Point{X: x, Y: y, Pressure: e.Pressure}
}

// PointerDown starts the gesture the current tool and pointer position call for.
func (c *Controller) PointerDown(e PointerEvent) {
	if e.Button == ButtonMiddle || (e.Button == ButtonPrimary && e.Alt) {
		c.panning = true
		c.lastScreenX, c.lastScreenY = e.X, e.Y
		return
	}

	p := c.canvasPoint(e)
	var err error
	switch c.board.Tool() {
	case document.ToolSelect:
		err = c.selectDown(p, e.Shift)
	case document.ToolEraser:
		if el, ok := geom.ElementAt(c.board.Elements(), p.X, p.Y, c.threshold); ok {
			c.board.DeleteElement(el.ID)
		}
	default:
		err = c.board.StartDrawing(p)
	}
	if errors.Is(err, board.ErrBusy) {
		slog.Debug("pointer down ignored", "error", err)
	}
}

func (c *Controller) selectDown(p document.Point, shift bool) error {
	if len(c.board.Selected()) > 0 {
		if b, ok := c.board.SelectionBounds(); ok {
			if h, ok := selection.HandleAt(b, p.X, p.Y, c.board.Viewport().Zoom); ok {
				return c.board.StartResizing(p, h)
			}
		}
	}

	el, ok := geom.ElementAt(c.board.Elements(), p.X, p.Y, c.threshold)
	if !ok {
		return c.board.StartMarquee(p)
	}
	if shift {
		c.board.Select(el.ID, true)
	} else if !c.board.IsSelected(el.ID) {
		c.board.Select(el.ID, false)
	}
	return c.board.StartDragging(p)
}

// PointerMove feeds the live gesture.
func (c *Controller) PointerMove(e PointerEvent) {
	if c.panning {
		v := c.board.Viewport()
		c.board.SetPan(v.PanX+e.X-c.lastScreenX, v.PanY+e.Y-c.lastScreenY)
		c.lastScreenX, c.lastScreenY = e.X, e.Y
		return
	}

	p := c.canvasPoint(e)
	selecting := c.board.Tool() == document.ToolSelect
	switch state := c.board.State(); {
	case state == board.StateMarquee && selecting:
		c.board.ContinueMarquee(p)
	case state == board.StateResizing && selecting:
		c.board.ContinueResizing(p)
	case state == board.StateDragging && selecting:
		c.board.ContinueDragging(p)
	case state == board.StateDrawing:
		c.board.ContinueDrawing(p)
	}
}

// PointerUp ends the live gesture, committing it.
func (c *Controller) PointerUp() {
	if c.panning {
		c.panning = false
		return
	}
	c.board.Finish()
}

// PointerLeave behaves like PointerUp: a gesture that leaves the canvas is kept.
func (c *Controller) PointerLeave() {
	c.PointerUp()
}

// Wheel zooms about the cursor with Ctrl or Meta held and pans otherwise.
func (c *Controller) Wheel(e WheelEvent) {
	v := c.board.Viewport()
	if e.Ctrl || e.Meta {
		c.board.SetViewport(v.ZoomAt(e.X, e.Y, v.Zoom-e.DeltaY*wheelZoomFactor))
		return
	}
	c.board.SetPan(v.PanX-e.DeltaX, v.PanY-e.DeltaY)
}

func (c *Controller) ZoomIn()    { c.board.SetZoom(c.board.Viewport().Zoom + zoomStep) }
func (c *Controller) ZoomOut()   { c.board.SetZoom(c.board.Viewport().Zoom - zoomStep) }
func (c *Controller) ResetZoom() { c.board.SetZoom(1) }

var toolKeys = map[string]document.Tool{
	"v": document.ToolSelect, "1": document.ToolSelect,
	"p": document.ToolPen, "2": document.ToolPen,
	"l": document.ToolLine, "3": document.ToolLine,
	"a": document.ToolArrow, "4": document.ToolArrow,
	"r": document.ToolRectangle, "5": document.ToolRectangle,
	"o": document.ToolEllipse, "6": document.ToolEllipse,
	"e": document.ToolEraser, "7": document.ToolEraser,
}

// HandleKey applies a keyboard shortcut. It reports whether the key was
// consumed so the host can suppress the browser default.
func (c *Controller) HandleKey(e KeyEvent) bool {
	key := strings.ToLower(e.Key)
	switch {
	case e.Ctrl && key == "z" && !e.Shift:
		c.board.Undo()
		return true
	case e.Ctrl && (key == "y" || (key == "z" && e.Shift)):
		c.board.Redo()
		return true
	case e.Key == "Delete" || e.Key == "Backspace":
		c.board.DeleteSelected()
		return true
	case !e.Ctrl && !e.Meta:
		if t, ok := toolKeys[key]; ok {
			c.board.SetTool(t)
			return true
		}
	}
	return false
}
