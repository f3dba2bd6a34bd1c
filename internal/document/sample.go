package document

import (
	"github.com/omnisketch/omnisketch/backend-go/internal/typeid"
)

// NewSampleBoard returns one element of every kind laid out left to right.
func NewSampleBoard() []*Element {
	stroke := DefaultStyle()
	filled := Style{StrokeColor: "#1971c2", StrokeWidth: 2, FillColor: "#a5d8ff"}

	squiggle := make([]Point, 0, 24)
	for i := range 24 {
		y := 120.0
		if i%2 == 1 {
			y = 100
		}
		squiggle = append(squiggle, Point{X: 40 + float64(i)*6, Y: y, Pressure: 0.3 + float64(i%5)*0.1})
	}

	return []*Element{
		New(typeid.NewElementID(), stroke, Pen{Points: squiggle}),
		New(typeid.NewElementID(), filled, Rectangle{Extent{X: 220, Y: 60, Width: 140, Height: 90}}),
		New(typeid.NewElementID(), Style{StrokeColor: "#2f9e44", StrokeWidth: 3, FillColor: Transparent},
			Ellipse{Extent{X: 400, Y: 60, Width: 120, Height: 90}}),
		New(typeid.NewElementID(), stroke, Line{Extent{X: 560, Y: 150, Width: 120, Height: -80}}),
		New(typeid.NewElementID(), Style{StrokeColor: "#e03131", StrokeWidth: 2, FillColor: Transparent},
			Arrow{Extent{X: 720, Y: 110, Width: 130, Height: 0}}),
	}
}
