//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

func setTool(this js.Value, args []js.Value) interface{} {
	t, err := document.ParseTool(stringArg(args, 0))
	if err != nil {
		return fail(err.Error())
	}
	store.SetTool(t)
	return ok()
}

func setStrokeColor(this js.Value, args []js.Value) interface{} {
	store.SetStrokeColor(stringArg(args, 0))
	return nil
}

func setStrokeWidth(this js.Value, args []js.Value) interface{} {
	if w, ok := floatArg(args, 0); ok {
		store.SetStrokeWidth(w)
	}
	return nil
}

func setFillColor(this js.Value, args []js.Value) interface{} {
	store.SetFillColor(stringArg(args, 0))
	return nil
}

func setZoom(this js.Value, args []js.Value) interface{} {
	if z, ok := floatArg(args, 0); ok {
		store.SetZoom(z)
	}
	return nil
}

func setPan(this js.Value, args []js.Value) interface{} {
	x, okX := floatArg(args, 0)
	y, okY := floatArg(args, 1)
	if okX && okY {
		store.SetPan(x, y)
	}
	return nil
}

func zoomIn(this js.Value, args []js.Value) interface{} {
	ctrl.ZoomIn()
	return nil
}

func zoomOut(this js.Value, args []js.Value) interface{} {
	ctrl.ZoomOut()
	return nil
}

func resetZoom(this js.Value, args []js.Value) interface{} {
	ctrl.ResetZoom()
	return nil
}

func addElement(this js.Value, args []js.Value) interface{} {
	var el document.Element
	if msg := decodeArg(args, 0, &el); msg != "" {
		return fail(msg)
	}
	store.AddElement(&el)
	return ok()
}

func updateElement(this js.Value, args []js.Value) interface{} {
	var el document.Element
	if msg := decodeArg(args, 0, &el); msg != "" {
		return fail(msg)
	}
	if !store.UpdateElement(el.ID, func(*document.Element) *document.Element { return &el }) {
		return fail("element not found or type changed: " + el.ID)
	}
	return ok()
}

func deleteElement(this js.Value, args []js.Value) interface{} {
	store.DeleteElement(stringArg(args, 0))
	return nil
}

func deleteSelected(this js.Value, args []js.Value) interface{} {
	store.DeleteSelected()
	return nil
}

func selectElement(this js.Value, args []js.Value) interface{} {
	store.Select(stringArg(args, 0), boolArg(args, 1))
	return nil
}

func clearSelection(this js.Value, args []js.Value) interface{} {
	store.ClearSelection()
	return nil
}

type colorUpdate struct {
	StrokeColor *string `json:"strokeColor"`
	FillColor   *string `json:"fillColor"`
}

func updateSelectedColors(this js.Value, args []js.Value) interface{} {
	var u colorUpdate
	if msg := decodeArg(args, 0, &u); msg != "" {
		return fail(msg)
	}
	store.UpdateSelectedColors(u.StrokeColor, u.FillColor)
	return ok()
}

func removeFill(this js.Value, args []js.Value) interface{} {
	store.RemoveFill()
	return nil
}

func undo(this js.Value, args []js.Value) interface{} {
	store.Undo()
	return nil
}

func redo(this js.Value, args []js.Value) interface{} {
	store.Redo()
	return nil
}

func clearBoard(this js.Value, args []js.Value) interface{} {
	store.Clear()
	return nil
}

func loadElements(this js.Value, args []js.Value) interface{} {
	elements, err := document.DecodeElements([]byte(stringArg(args, 0)))
	if err != nil {
		return fail(err.Error())
	}
	store.ReplaceElements(elements)
	return ok()
}

func loadSample(this js.Value, args []js.Value) interface{} {
	store.ReplaceElements(document.NewSampleBoard())
	return ok()
}
