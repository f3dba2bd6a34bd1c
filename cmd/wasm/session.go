//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/session"
	"github.com/omnisketch/omnisketch/backend-go/internal/toast"
)

func createSession(this js.Value, args []js.Value) interface{} {
	code := sessions.CreateSession()
	toasts.Success("Session created: " + code)
	return js.ValueOf(code)
}

func joinSession(this js.Value, args []js.Value) interface{} {
	code := stringArg(args, 0)
	if code == "" {
		toasts.Error("Enter a session code")
		return fail("missing session code")
	}
	u := sessions.JoinSession(code, stringArg(args, 1))
	toasts.Success("Joined session " + code)
	return toJSON(u)
}

// connectSession adopts an identity issued by the relay server:
// connectSession(code, isHost, userJSON).
func connectSession(this js.Value, args []js.Value) interface{} {
	var u session.User
	if msg := decodeArg(args, 2, &u); msg != "" {
		return fail(msg)
	}
	sessions.Connect(stringArg(args, 0), boolArg(args, 1), u)
	return ok()
}

func leaveSession(this js.Value, args []js.Value) interface{} {
	sessions.LeaveSession()
	toasts.Info("Left the session")
	return nil
}

func getSession(this js.Value, args []js.Value) interface{} {
	return toJSON(sessions.State())
}

func addUser(this js.Value, args []js.Value) interface{} {
	var u session.User
	if msg := decodeArg(args, 0, &u); msg != "" {
		return fail(msg)
	}
	sessions.AddUser(u)
	return ok()
}

func removeUser(this js.Value, args []js.Value) interface{} {
	sessions.RemoveUser(stringArg(args, 0))
	return nil
}

func updateUserCursor(this js.Value, args []js.Value) interface{} {
	x, okX := floatArg(args, 1)
	y, okY := floatArg(args, 2)
	if !okX || !okY {
		return fail("missing cursor position")
	}
	sessions.UpdateUserCursor(stringArg(args, 0), session.Cursor{X: x, Y: y})
	return nil
}

// syncElements installs a collection received from a peer.
func syncElements(this js.Value, args []js.Value) interface{} {
	elements, err := document.DecodeElements([]byte(stringArg(args, 0)))
	if err != nil {
		return fail(err.Error())
	}
	sessions.SyncElements(elements)
	return ok()
}

// onElementsChange registers fn(elementsJSON), called after each local
// commit while connected.
func onElementsChange(this js.Value, args []js.Value) interface{} {
	if len(args) > 0 {
		elementsListener = args[0]
	}
	return nil
}

func addToast(this js.Value, args []js.Value) interface{} {
	ms, hasMS := floatArg(args, 2)
	d := toast.DefaultDuration
	if hasMS {
		d = durationMS(ms)
	}
	return js.ValueOf(toasts.Add(stringArg(args, 0), toast.Kind(stringArg(args, 1)), d))
}

func removeToast(this js.Value, args []js.Value) interface{} {
	toasts.Remove(stringArg(args, 0))
	return nil
}

func getToasts(this js.Value, args []js.Value) interface{} {
	return toJSON(toasts.List())
}

func onToastsChange(this js.Value, args []js.Value) interface{} {
	if len(args) > 0 {
		toastsListener = args[0]
	}
	return nil
}
