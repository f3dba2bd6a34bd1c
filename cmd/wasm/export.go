//go:build js && wasm

package main

import (
	"bytes"
	"syscall/js"

	"github.com/omnisketch/omnisketch/backend-go/internal/export"
)

func exportOptions(args []js.Value, i int) export.Options {
	if len(args) > i && args[i].Type() == js.TypeBoolean && !args[i].Bool() {
		return export.Options{}
	}
	return export.Options{Background: export.DefaultBackground}
}

// exportSVG returns the board as an SVG string. The background is on
// unless false is passed.
func exportSVG(this js.Value, args []js.Value) interface{} {
	var buf bytes.Buffer
	if err := export.SVG(&buf, store.Elements(), exportOptions(args, 0)); err != nil {
		toasts.Error("Export failed")
		return fail(err.Error())
	}
	return js.ValueOf(buf.String())
}

// exportFile renders the board in the named format and returns
// {data: Uint8Array, fileName, contentType}.
func exportFile(this js.Value, args []js.Value) interface{} {
	if len(store.Elements()) == 0 {
		toasts.Warning("Canvas is empty! Draw something first.")
		return fail("nothing to export")
	}
	format, err := export.ParseFormat(stringArg(args, 0))
	if err != nil {
		return fail(err.Error())
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, store.Elements(), exportOptions(args, 1)); err != nil {
		toasts.Error("Export failed")
		return fail(err.Error())
	}

	data := js.Global().Get("Uint8Array").New(buf.Len())
	js.CopyBytesToJS(data, buf.Bytes())
	return js.ValueOf(map[string]interface{}{
		"data":        data,
		"fileName":    format.FileName(),
		"contentType": format.ContentType(),
	})
}
