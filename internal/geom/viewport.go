package geom

const (
	MinZoom = 0.1
	MaxZoom = 5.0
)

// Viewport maps canvas space to screen space: screen = canvas*Zoom + Pan.
type Viewport struct {
	Zoom float64 `json:"zoom"`
	PanX float64 `json:"panX"`
	PanY float64 `json:"panY"`
}

func DefaultViewport() Viewport {
	return Viewport{Zoom: 1}
}

// ClampZoom limits z to [MinZoom, MaxZoom].
func ClampZoom(z float64) float64 {
	return min(max(z, MinZoom), MaxZoom)
}

// Matrix returns the canvas-to-screen transform.
func (v Viewport) Matrix() Matrix2D {
	return Translate(v.PanX, v.PanY).Multiply(Scale(v.Zoom, v.Zoom))
}

// ScreenToCanvas inverts Matrix. A zero zoom has no inverse and maps
// points unchanged.
func (v Viewport) ScreenToCanvas(sx, sy float64) (float64, float64) {
	return v.Matrix().Invert().TransformPoint(sx, sy)
}

func (v Viewport) CanvasToScreen(cx, cy float64) (float64, float64) {
	return v.Matrix().TransformPoint(cx, cy)
}

// ZoomAt changes the zoom while keeping the canvas point under the screen
// point (sx, sy) fixed.
func (v Viewport) ZoomAt(sx, sy, zoom float64) Viewport {
	cx, cy := v.ScreenToCanvas(sx, sy)
	z := ClampZoom(zoom)
	return Viewport{Zoom: z, PanX: sx - cx*z, PanY: sy - cy*z}
}
