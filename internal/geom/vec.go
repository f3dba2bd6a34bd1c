package geom

import "math"

// Vec is a 2D point or direction used by the stroke builder.
type Vec struct {
	X, Y float64
}

func (a Vec) Add(b Vec) Vec             { return Vec{a.X + b.X, a.Y + b.Y} }
func (a Vec) Sub(b Vec) Vec             { return Vec{a.X - b.X, a.Y - b.Y} }
func (a Vec) Mul(n float64) Vec         { return Vec{a.X * n, a.Y * n} }
func (a Vec) Neg() Vec                  { return Vec{-a.X, -a.Y} }
func (a Vec) Per() Vec                  { return Vec{a.Y, -a.X} }
func (a Vec) Dot(b Vec) float64         { return a.X*b.X + a.Y*b.Y }
func (a Vec) Len() float64              { return math.Hypot(a.X, a.Y) }
func (a Vec) Dist(b Vec) float64        { return a.Sub(b).Len() }
func (a Vec) Lerp(b Vec, t float64) Vec { return a.Add(b.Sub(a).Mul(t)) }

func (a Vec) Dist2(b Vec) float64 {
	d := a.Sub(b)
	return d.X*d.X + d.Y*d.Y
}

func (a Vec) Unit() Vec {
	return a.Mul(1 / a.Len())
}

// RotateAround rotates a about c by r radians.
func (a Vec) RotateAround(c Vec, r float64) Vec {
	x, y := Rotate(r).TransformVector(a.X-c.X, a.Y-c.Y)
	return Vec{x + c.X, y + c.Y}
}
