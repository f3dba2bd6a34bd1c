package selection

import (
	"math"

	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
)

type Handle string

const (
	HandleNW Handle = "nw"
	HandleN  Handle = "n"
	HandleNE Handle = "ne"
	HandleE  Handle = "e"
	HandleSE Handle = "se"
	HandleS  Handle = "s"
	HandleSW Handle = "sw"
	HandleW  Handle = "w"
)

// handleOrder is the hit-test priority. Corners come before edges.
var handleOrder = [...]Handle{HandleNW, HandleNE, HandleSW, HandleSE, HandleN, HandleS, HandleW, HandleE}

// HandleScreenSize is the pick tolerance of a handle in screen pixels.
const HandleScreenSize = 12.0

// Handles lists every handle in hit-test order.
func Handles() []Handle {
	return handleOrder[:]
}

// Position returns the canvas position of h on b.
func (h Handle) Position(b geom.Rect) (float64, float64) {
	cx, cy := b.Center()
	switch h {
	case HandleNW:
		return b.X, b.Y
	case HandleNE:
		return b.MaxX(), b.Y
	case HandleSW:
		return b.X, b.MaxY()
	case HandleSE:
		return b.MaxX(), b.MaxY()
	case HandleN:
		return cx, b.Y
	case HandleS:
		return cx, b.MaxY()
	case HandleW:
		return b.X, cy
	case HandleE:
		return b.MaxX(), cy
	}
	return cx, cy
}

// HandleAt returns the first handle of b within 12/zoom canvas units of (x, y)
// on both axes.
func HandleAt(b geom.Rect, x, y, zoom float64) (Handle, bool) {
	tol := HandleScreenSize / zoom
	for _, h := range handleOrder {
		hx, hy := h.Position(b)
		if math.Abs(x-hx) < tol && math.Abs(y-hy) < tol {
			return h, true
		}
	}
	return "", false
}
