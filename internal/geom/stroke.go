package geom

import (
	"math"
	"strconv"
	"strings"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

const (
	rateOfPressureChange = 0.275
	fixedPi              = math.Pi + 0.0001
	minStrokeLength      = 3
)

// StrokeOptions shapes the variable-width outline. Tapering is not supported;
// both ends are either round-capped or flat.
type StrokeOptions struct {
	Size             float64
	Thinning         float64
	Smoothing        float64
	Streamline       float64
	Easing           func(float64) float64
	SimulatePressure bool
	CapStart         bool
	CapEnd           bool
	// Last marks the input as complete so the final sample is used as is.
	Last bool
}

// DefaultStrokeOptions returns the options used for every pen element.
func DefaultStrokeOptions(strokeWidth float64) StrokeOptions {
	return StrokeOptions{
		Size:             strokeWidth * 2,
		Thinning:         0.5,
		Smoothing:        0.5,
		Streamline:       0.5,
		Easing:           func(t float64) float64 { return t },
		SimulatePressure: true,
		CapStart:         true,
		CapEnd:           true,
	}
}

// StrokePoint is a smoothed sample with its direction and running length.
type StrokePoint struct {
	Point         Vec
	Pressure      float64
	Vector        Vec
	Distance      float64
	RunningLength float64
}

type rawSample struct {
	p        Vec
	pressure float64
	hasPress bool
}

// StrokePoints smooths raw samples into stroke points. Samples closer to
// the start than Size are dropped until the stroke has some length.
func StrokePoints(points []document.Point, opts StrokeOptions) []StrokePoint {
	if len(points) == 0 {
		return nil
	}
	t := 0.15 + (1-opts.Streamline)*0.85

	pts := make([]rawSample, len(points))
	for i, p := range points {
		pts[i] = rawSample{p: Vec{p.X, p.Y}, pressure: p.Pressure, hasPress: true}
	}
	if len(pts) == 2 {
		last := pts[1]
		pts = pts[:1]
		for i := 1; i < 5; i++ {
			pts = append(pts, rawSample{p: pts[0].p.Lerp(last.p, float64(i)/4)})
		}
	}
	if len(pts) == 1 {
		pts = append(pts, rawSample{p: pts[0].p.Add(Vec{1, 1}), pressure: pts[0].pressure, hasPress: pts[0].hasPress})
	}

	firstPressure := 0.25
	if pts[0].pressure >= 0 {
		firstPressure = pts[0].pressure
	}
	out := []StrokePoint{{Point: pts[0].p, Pressure: firstPressure, Vector: Vec{1, 1}}}

	reachedMinLength := false
	runningLength := 0.0
	prev := out[0]
	last := len(pts) - 1
	for i := 1; i < len(pts); i++ {
		var point Vec
		if opts.Last && i == last {
			point = pts[i].p
		} else {
			point = prev.Point.Lerp(pts[i].p, t)
		}
		if point == prev.Point {
			continue
		}

		distance := point.Dist(prev.Point)
		runningLength += distance
		if i < last && !reachedMinLength {
			if runningLength < opts.Size {
				continue
			}
			reachedMinLength = true
		}

		pressure := 0.5
		if pts[i].hasPress && pts[i].pressure >= 0 {
			pressure = pts[i].pressure
		}
		prev = StrokePoint{
			Point:         point,
			Pressure:      pressure,
			Vector:        prev.Point.Sub(point).Unit(),
			Distance:      distance,
			RunningLength: runningLength,
		}
		out = append(out, prev)
	}

	if len(out) > 1 {
		out[0].Vector = out[1].Vector
	} else {
		out[0].Vector = Vec{}
	}
	return out
}

func strokeRadius(size, thinning, pressure float64, easing func(float64) float64) float64 {
	return size * easing(0.5-thinning*(0.5-pressure))
}

func simulatedPressure(prev, distance, size float64) float64 {
	sp := min(1, distance/size)
	rp := min(1, 1-sp)
	return min(1, prev+(rp-prev)*(sp*rateOfPressureChange))
}

// StrokeOutline returns the closed polygon around a smoothed stroke:
// the left edge, the end cap, the right edge reversed, then the start cap.
func StrokeOutline(points []StrokePoint, opts StrokeOptions) []Vec {
	size := opts.Size
	if len(points) == 0 || size <= 0 {
		return nil
	}
	easing := opts.Easing
	if easing == nil {
		easing = func(t float64) float64 { return t }
	}

	totalLength := points[len(points)-1].RunningLength
	minDistance := math.Pow(size*opts.Smoothing, 2)

	var leftPts, rightPts []Vec

	prevPressure := points[0].Pressure
	for _, p := range points[:min(10, len(points))] {
		pressure := p.Pressure
		if opts.SimulatePressure {
			pressure = simulatedPressure(prevPressure, p.Distance, size)
		}
		prevPressure = (prevPressure + pressure) / 2
	}

	radius := strokeRadius(size, opts.Thinning, points[len(points)-1].Pressure, easing)
	firstRadius := math.NaN()
	prevVector := points[0].Vector

	pl := points[0].Point
	pr := pl
	tl, tr := pl, pr
	prevSharp := false

	for i, sp := range points {
		pressure := sp.Pressure
		if i < len(points)-1 && totalLength-sp.RunningLength < minStrokeLength {
			continue
		}

		if opts.Thinning != 0 {
			if opts.SimulatePressure {
				pressure = simulatedPressure(prevPressure, sp.Distance, size)
			}
			radius = strokeRadius(size, opts.Thinning, pressure, easing)
		} else {
			radius = size / 2
		}
		if math.IsNaN(firstRadius) {
			firstRadius = radius
		}
		radius = max(0.01, radius)

		nextVector := sp.Vector
		nextDpr := 1.0
		if i < len(points)-1 {
			nextVector = points[i+1].Vector
			nextDpr = sp.Vector.Dot(nextVector)
		}
		prevDpr := sp.Vector.Dot(prevVector)

		sharp := prevDpr < 0 && !prevSharp
		nextSharp := nextDpr < 0

		if sharp || nextSharp {
			offset := prevVector.Per().Mul(radius)
			for step, t := 1.0/13, 0.0; t <= 1; t += step {
				tl = sp.Point.Sub(offset).RotateAround(sp.Point, fixedPi*t)
				leftPts = append(leftPts, tl)
				tr = sp.Point.Add(offset).RotateAround(sp.Point, fixedPi*-t)
				rightPts = append(rightPts, tr)
			}
			pl, pr = tl, tr
			if nextSharp {
				prevSharp = true
			}
			continue
		}
		prevSharp = false

		if i == len(points)-1 {
			offset := sp.Vector.Per().Mul(radius)
			leftPts = append(leftPts, sp.Point.Sub(offset))
			rightPts = append(rightPts, sp.Point.Add(offset))
			continue
		}

		offset := nextVector.Lerp(sp.Vector, nextDpr).Per().Mul(radius)

		tl = sp.Point.Sub(offset)
		if i <= 1 || pl.Dist2(tl) > minDistance {
			leftPts = append(leftPts, tl)
			pl = tl
		}
		tr = sp.Point.Add(offset)
		if i <= 1 || pr.Dist2(tr) > minDistance {
			rightPts = append(rightPts, tr)
			pr = tr
		}

		prevPressure = pressure
		prevVector = sp.Vector
	}

	firstPoint := points[0].Point
	lastPoint := firstPoint.Add(Vec{1, 1})
	if len(points) > 1 {
		lastPoint = points[len(points)-1].Point
	}

	if len(points) == 1 {
		r := firstRadius
		if math.IsNaN(r) {
			r = radius
		}
		start := firstPoint.Add(firstPoint.Sub(lastPoint).Per().Unit().Mul(-r))
		var dot []Vec
		for step, t := 1.0/13, 1.0/13; t <= 1; t += step {
			dot = append(dot, start.RotateAround(firstPoint, fixedPi*2*t))
		}
		return dot
	}

	var startCap []Vec
	if opts.CapStart {
		for step, t := 1.0/13, 1.0/13; t <= 1; t += step {
			startCap = append(startCap, rightPts[0].RotateAround(firstPoint, fixedPi*t))
		}
	} else {
		corners := leftPts[0].Sub(rightPts[0])
		a, b := corners.Mul(0.5), corners.Mul(0.51)
		startCap = append(startCap, firstPoint.Sub(a), firstPoint.Sub(b), firstPoint.Add(b), firstPoint.Add(a))
	}

	direction := points[len(points)-1].Vector.Neg().Per()
	var endCap []Vec
	if opts.CapEnd {
		start := lastPoint.Add(direction.Mul(radius))
		for step, t := 1.0/29, 1.0/29; t < 1; t += step {
			endCap = append(endCap, start.RotateAround(lastPoint, fixedPi*3*t))
		}
	} else {
		endCap = append(endCap,
			lastPoint.Add(direction.Mul(radius)),
			lastPoint.Add(direction.Mul(radius*0.99)),
			lastPoint.Sub(direction.Mul(radius*0.99)),
			lastPoint.Sub(direction.Mul(radius)),
		)
	}

	outline := make([]Vec, 0, len(leftPts)+len(endCap)+len(rightPts)+len(startCap))
	outline = append(outline, leftPts...)
	outline = append(outline, endCap...)
	for i := len(rightPts) - 1; i >= 0; i-- {
		outline = append(outline, rightPts[i])
	}
	return append(outline, startCap...)
}

// Stroke returns the outline polygon for raw pen samples.
func Stroke(points []document.Point, opts StrokeOptions) []Vec {
	return StrokeOutline(StrokePoints(points, opts), opts)
}

// SVGPathFromStroke turns an outline polygon into path data made of
// quadratic segments through the midpoints of consecutive vertices.
func SVGPathFromStroke(outline []Vec) string {
	if len(outline) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M ")
	writeNum(&b, outline[0].X)
	b.WriteByte(' ')
	writeNum(&b, outline[0].Y)
	b.WriteString(" Q")
	for i, p := range outline {
		next := outline[(i+1)%len(outline)]
		for _, v := range [...]float64{p.X, p.Y, (p.X + next.X) / 2, (p.Y + next.Y) / 2} {
			b.WriteByte(' ')
			writeNum(&b, v)
		}
	}
	b.WriteString(" Z")
	return b.String()
}

// StrokePath returns the filled outline path for a pen element, or "" when
// the stroke has fewer than two samples.
func StrokePath(points []document.Point, strokeWidth float64) string {
	if len(points) < 2 {
		return ""
	}
	return SVGPathFromStroke(Stroke(points, DefaultStrokeOptions(strokeWidth)))
}

func writeNum(b *strings.Builder, v float64) {
	b.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
}
