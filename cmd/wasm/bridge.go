//go:build js && wasm

package main

import (
	"encoding/json"
	"syscall/js"
	"time"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/toast"
)

func ok() interface{} {
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func fail(msg string) interface{} {
	return js.ValueOf(map[string]interface{}{"error": msg})
}

// toJSON returns v as a JSON string for the frontend to parse.
func toJSON(v interface{}) interface{} {
	data, err := json.Marshal(v)
	if err != nil {
		return fail(err.Error())
	}
	return js.ValueOf(string(data))
}

// decodeArg unmarshals the JSON string in args[i] into v.
func decodeArg(args []js.Value, i int, v interface{}) string {
	if len(args) <= i || args[i].Type() != js.TypeString {
		return "missing JSON argument"
	}
	if err := json.Unmarshal([]byte(args[i].String()), v); err != nil {
		return err.Error()
	}
	return ""
}

func stringArg(args []js.Value, i int) string {
	if len(args) <= i || args[i].Type() != js.TypeString {
		return ""
	}
	return args[i].String()
}

func floatArg(args []js.Value, i int) (float64, bool) {
	if len(args) <= i || args[i].Type() != js.TypeNumber {
		return 0, false
	}
	return args[i].Float(), true
}

func boolArg(args []js.Value, i int) bool {
	return len(args) > i && args[i].Type() == js.TypeBoolean && args[i].Bool()
}

// afterFunc schedules f on the JS event loop so callbacks never race the
// handlers that JS invokes.
func afterFunc(d time.Duration, f func()) {
	var cb js.Func
	cb = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		cb.Release()
		f()
		return nil
	})
	js.Global().Call("setTimeout", cb, d.Milliseconds())
}

func publishElements(elements []*document.Element) {
	if elementsListener.Type() != js.TypeFunction || !sessions.Connected() {
		return
	}
	data, err := json.Marshal(elements)
	if err != nil {
		return
	}
	elementsListener.Invoke(string(data))
}

func publishToasts(list []toast.Toast) {
	if toastsListener.Type() != js.TypeFunction {
		return
	}
	data, err := json.Marshal(list)
	if err != nil {
		return
	}
	toastsListener.Invoke(string(data))
}

func durationMS(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}
