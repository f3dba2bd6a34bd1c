package session

import "math/rand/v2"

const (
	HostName  = "Host"
	GuestName = "Guest"
)

// Palette holds the colors participants are drawn in.
var Palette = []string{
	"#7c3aed", "#e03131", "#2f9e44", "#1971c2",
	"#f08c00", "#9c36b5", "#0c8599", "#d6336c",
}

type Cursor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type User struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Color  string  `json:"color"`
	Cursor *Cursor `json:"cursorPosition,omitempty"`
}

func randomColor() string {
	return Palette[rand.IntN(len(Palette))]
}
