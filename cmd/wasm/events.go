//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/omnisketch/omnisketch/backend-go/internal/board"
	"github.com/omnisketch/omnisketch/backend-go/internal/controller"
	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
	"github.com/omnisketch/omnisketch/backend-go/internal/selection"
	"github.com/omnisketch/omnisketch/backend-go/internal/session"
)

func pointerDown(this js.Value, args []js.Value) interface{} {
	var e controller.PointerEvent
	if msg := decodeArg(args, 0, &e); msg != "" {
		return fail(msg)
	}
	ctrl.PointerDown(e)
	return nil
}

func pointerMove(this js.Value, args []js.Value) interface{} {
	var e controller.PointerEvent
	if msg := decodeArg(args, 0, &e); msg != "" {
		return fail(msg)
	}
	ctrl.PointerMove(e)
	if sessions.Connected() {
		x, y := store.Viewport().ScreenToCanvas(e.X, e.Y)
		sessions.MoveCursor(session.Cursor{X: x, Y: y})
	}
	return nil
}

func pointerUp(this js.Value, args []js.Value) interface{} {
	ctrl.PointerUp()
	return nil
}

func pointerLeave(this js.Value, args []js.Value) interface{} {
	ctrl.PointerLeave()
	return nil
}

func wheel(this js.Value, args []js.Value) interface{} {
	var e controller.WheelEvent
	if msg := decodeArg(args, 0, &e); msg != "" {
		return fail(msg)
	}
	ctrl.Wheel(e)
	return nil
}

func keyDown(this js.Value, args []js.Value) interface{} {
	var e controller.KeyEvent
	if msg := decodeArg(args, 0, &e); msg != "" {
		return fail(msg)
	}
	return js.ValueOf(map[string]interface{}{"handled": ctrl.HandleKey(e)})
}

type boardState struct {
	Elements       []*document.Element  `json:"elements"`
	SelectedIDs    []string             `json:"selectedIds"`
	Tool           document.Tool        `json:"tool"`
	Style          document.Style       `json:"style"`
	Viewport       geom.Viewport        `json:"viewport"`
	State          board.State          `json:"state"`
	CurrentElement *document.Element    `json:"currentElement,omitempty"`
	CanUndo        bool                 `json:"canUndo"`
	CanRedo        bool                 `json:"canRedo"`
	SelectionBox   *geom.Rect           `json:"selectionBounds,omitempty"`
	Marquee        *geom.Rect           `json:"marquee,omitempty"`
	SelectionInfo  *board.SelectionInfo `json:"selectionInfo,omitempty"`
	Handles        []handlePayload      `json:"handles,omitempty"`
}

type handlePayload struct {
	Name string  `json:"name"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
}

func getState(this js.Value, args []js.Value) interface{} {
	st := boardState{
		Elements:       store.Elements(),
		SelectedIDs:    store.Selected(),
		Tool:           store.Tool(),
		Style:          store.Style(),
		Viewport:       store.Viewport(),
		State:          store.State(),
		CurrentElement: store.CurrentElement(),
		CanUndo:        store.CanUndo(),
		CanRedo:        store.CanRedo(),
	}
	if b, ok := store.SelectionBounds(); ok {
		st.SelectionBox = &b
		for _, h := range selection.Handles() {
			x, y := h.Position(b)
			st.Handles = append(st.Handles, handlePayload{Name: string(h), X: x, Y: y})
		}
	}
	if m, ok := store.MarqueeBox(); ok {
		st.Marquee = &m
	}
	if info, ok := store.SelectionInfo(); ok {
		st.SelectionInfo = &info
	}
	return toJSON(st)
}

func getElements(this js.Value, args []js.Value) interface{} {
	return toJSON(store.Elements())
}

// hitTest reports the topmost element under a screen point.
func hitTest(this js.Value, args []js.Value) interface{} {
	sx, okX := floatArg(args, 0)
	sy, okY := floatArg(args, 1)
	if !okX || !okY {
		return nil
	}
	x, y := store.Viewport().ScreenToCanvas(sx, sy)
	el, ok := geom.ElementAt(store.Elements(), x, y, geom.DefaultHitThreshold)
	if !ok {
		return nil
	}
	return js.ValueOf(el.ID)
}

func getStrokePath(this js.Value, args []js.Value) interface{} {
	var req struct {
		Points      []document.Point `json:"points"`
		StrokeWidth float64          `json:"strokeWidth"`
	}
	if msg := decodeArg(args, 0, &req); msg != "" {
		return fail(msg)
	}
	return js.ValueOf(geom.StrokePath(req.Points, req.StrokeWidth))
}
