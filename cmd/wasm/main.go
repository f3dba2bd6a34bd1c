//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/omnisketch/omnisketch/backend-go/internal/board"
	"github.com/omnisketch/omnisketch/backend-go/internal/controller"
	"github.com/omnisketch/omnisketch/backend-go/internal/session"
	"github.com/omnisketch/omnisketch/backend-go/internal/toast"
)

var (
	store    *board.Store
	ctrl     *controller.Controller
	sessions *session.Store
	toasts   *toast.Store

	elementsListener js.Value
	toastsListener   js.Value
)

func main() {
	store = board.New()
	ctrl = controller.New(store)
	sessions = session.NewStore()
	toasts = toast.NewWithScheduler(afterFunc)

	// Remote collections replace the board; local commits go back out.
	sessions.OnElementsChange(store.ReplaceElements)
	store.OnChange(publishElements)
	toasts.OnChange(publishToasts)

	omniSketch := js.Global().Get("Object").New()

	// --- Commands (frontend → core) ---
	omniSketch.Set("setTool", js.FuncOf(setTool))
	omniSketch.Set("setStrokeColor", js.FuncOf(setStrokeColor))
	omniSketch.Set("setStrokeWidth", js.FuncOf(setStrokeWidth))
	omniSketch.Set("setFillColor", js.FuncOf(setFillColor))
	omniSketch.Set("setZoom", js.FuncOf(setZoom))
	omniSketch.Set("setPan", js.FuncOf(setPan))
	omniSketch.Set("zoomIn", js.FuncOf(zoomIn))
	omniSketch.Set("zoomOut", js.FuncOf(zoomOut))
	omniSketch.Set("resetZoom", js.FuncOf(resetZoom))
	omniSketch.Set("addElement", js.FuncOf(addElement))
	omniSketch.Set("updateElement", js.FuncOf(updateElement))
	omniSketch.Set("deleteElement", js.FuncOf(deleteElement))
	omniSketch.Set("deleteSelected", js.FuncOf(deleteSelected))
	omniSketch.Set("selectElement", js.FuncOf(selectElement))
	omniSketch.Set("clearSelection", js.FuncOf(clearSelection))
	omniSketch.Set("updateSelectedColors", js.FuncOf(updateSelectedColors))
	omniSketch.Set("removeFill", js.FuncOf(removeFill))
	omniSketch.Set("undo", js.FuncOf(undo))
	omniSketch.Set("redo", js.FuncOf(redo))
	omniSketch.Set("clear", js.FuncOf(clearBoard))
	omniSketch.Set("loadElements", js.FuncOf(loadElements))
	omniSketch.Set("loadSample", js.FuncOf(loadSample))

	// --- Input events ---
	omniSketch.Set("pointerDown", js.FuncOf(pointerDown))
	omniSketch.Set("pointerMove", js.FuncOf(pointerMove))
	omniSketch.Set("pointerUp", js.FuncOf(pointerUp))
	omniSketch.Set("pointerLeave", js.FuncOf(pointerLeave))
	omniSketch.Set("wheel", js.FuncOf(wheel))
	omniSketch.Set("keyDown", js.FuncOf(keyDown))

	// --- Queries (frontend ← core) ---
	omniSketch.Set("getState", js.FuncOf(getState))
	omniSketch.Set("getElements", js.FuncOf(getElements))
	omniSketch.Set("hitTest", js.FuncOf(hitTest))
	omniSketch.Set("getStrokePath", js.FuncOf(getStrokePath))

	// --- Export ---
	omniSketch.Set("exportSVG", js.FuncOf(exportSVG))
	omniSketch.Set("exportFile", js.FuncOf(exportFile))

	// --- Session ---
	omniSketch.Set("createSession", js.FuncOf(createSession))
	omniSketch.Set("joinSession", js.FuncOf(joinSession))
	omniSketch.Set("connectSession", js.FuncOf(connectSession))
	omniSketch.Set("leaveSession", js.FuncOf(leaveSession))
	omniSketch.Set("getSession", js.FuncOf(getSession))
	omniSketch.Set("addUser", js.FuncOf(addUser))
	omniSketch.Set("removeUser", js.FuncOf(removeUser))
	omniSketch.Set("updateUserCursor", js.FuncOf(updateUserCursor))
	omniSketch.Set("syncElements", js.FuncOf(syncElements))
	omniSketch.Set("onElementsChange", js.FuncOf(onElementsChange))

	// --- Toasts ---
	omniSketch.Set("addToast", js.FuncOf(addToast))
	omniSketch.Set("removeToast", js.FuncOf(removeToast))
	omniSketch.Set("getToasts", js.FuncOf(getToasts))
	omniSketch.Set("onToastsChange", js.FuncOf(onToastsChange))

	// Register on global scope
	js.Global().Set("omniSketch", omniSketch)

	// Signal that WASM is ready
	js.Global().Set("omniSketchWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}
