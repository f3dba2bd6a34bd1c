package geom

import "math"

const (
	ArrowHeadLength = 15.0
	ArrowHeadAngle  = math.Pi / 6
)

// ArrowHead returns the two barb ends of an arrow pointing from (x1, y1)
// to (x2, y2). Each barb leaves the tip at ±30° to the shaft.
func ArrowHead(x1, y1, x2, y2 float64) (ax, ay, bx, by float64) {
	angle := math.Atan2(y2-y1, x2-x1)
	dx, dy := math.Cos(angle), math.Sin(angle)

	ux, uy := Rotate(-ArrowHeadAngle).TransformVector(dx, dy)
	vx, vy := Rotate(ArrowHeadAngle).TransformVector(dx, dy)
	return x2 - ArrowHeadLength*ux, y2 - ArrowHeadLength*uy,
		x2 - ArrowHeadLength*vx, y2 - ArrowHeadLength*vy
}
