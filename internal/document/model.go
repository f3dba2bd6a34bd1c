package document

import (
	"encoding/json"
	"fmt"
	"slices"
)

const (
	DefaultStrokeColor = "#1e1e1e"
	DefaultStrokeWidth = 2.0
	Transparent        = "transparent"
	DefaultPressure    = 0.5
)

type Point struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"pressure"`
}

// Pt returns a sample point carrying the default pressure.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y, Pressure: DefaultPressure}
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var raw struct {
		X        float64  `json:"x"`
		Y        float64  `json:"y"`
		Pressure *float64 `json:"pressure"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	p.X, p.Y, p.Pressure = raw.X, raw.Y, DefaultPressure
	if raw.Pressure != nil {
		p.Pressure = *raw.Pressure
	}
	return nil
}

type Kind string

const (
	KindPen       Kind = "pen"
	KindRectangle Kind = "rectangle"
	KindEllipse   Kind = "ellipse"
	KindLine      Kind = "line"
	KindArrow     Kind = "arrow"
)

type Tool string

const (
	ToolSelect    Tool = "select"
	ToolPen       Tool = "pen"
	ToolRectangle Tool = "rectangle"
	ToolEllipse   Tool = "ellipse"
	ToolLine      Tool = "line"
	ToolArrow     Tool = "arrow"
	ToolText      Tool = "text"
	ToolEraser    Tool = "eraser"
)

// ElementKind reports the element kind a tool draws. Select, text and
// eraser draw nothing.
func (t Tool) ElementKind() (Kind, bool) {
	switch t {
	case ToolPen:
		return KindPen, true
	case ToolRectangle:
		return KindRectangle, true
	case ToolEllipse:
		return KindEllipse, true
	case ToolLine:
		return KindLine, true
	case ToolArrow:
		return KindArrow, true
	default:
		return "", false
	}
}

func ParseTool(s string) (Tool, error) {
	switch t := Tool(s); t {
	case ToolSelect, ToolPen, ToolRectangle, ToolEllipse, ToolLine, ToolArrow, ToolText, ToolEraser:
		return t, nil
	}
	return "", fmt.Errorf("unknown tool %q", s)
}

type Style struct {
	StrokeColor string  `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   string  `json:"fillColor"`
}

func DefaultStyle() Style {
	return Style{StrokeColor: DefaultStrokeColor, StrokeWidth: DefaultStrokeWidth, FillColor: Transparent}
}

// Shape is the per-kind geometry of an element. The concrete types are
// Pen, Rectangle, Ellipse, Line and Arrow; values are never mutated in place.
type Shape interface {
	Kind() Kind
	Translate(dx, dy float64) Shape
}

// Pen is a freehand stroke.
type Pen struct {
	Points []Point
}

// Extent is a signed box anchored at the drag-start corner. Width and
// Height keep the drag direction and may be negative.
type Extent struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// End is the corner opposite the anchor (the far endpoint for lines).
func (e Extent) End() (float64, float64) {
	return e.X + e.Width, e.Y + e.Height
}

// Normalized returns the top-left corner and absolute size.
func (e Extent) Normalized() (x, y, w, h float64) {
	return min(e.X, e.X+e.Width), min(e.Y, e.Y+e.Height), abs(e.Width), abs(e.Height)
}

func (e Extent) translate(dx, dy float64) Extent {
	e.X += dx
	e.Y += dy
	return e
}

type Rectangle struct{ Extent }
type Ellipse struct{ Extent }
type Line struct{ Extent }
type Arrow struct{ Extent }

func (Pen) Kind() Kind       { return KindPen }
func (Rectangle) Kind() Kind { return KindRectangle }
func (Ellipse) Kind() Kind   { return KindEllipse }
func (Line) Kind() Kind      { return KindLine }
func (Arrow) Kind() Kind     { return KindArrow }

func (p Pen) Translate(dx, dy float64) Shape {
	pts := make([]Point, len(p.Points))
	for i, pt := range p.Points {
		pts[i] = Point{X: pt.X + dx, Y: pt.Y + dy, Pressure: pt.Pressure}
	}
	return Pen{Points: pts}
}

func (r Rectangle) Translate(dx, dy float64) Shape { return Rectangle{r.translate(dx, dy)} }
func (e Ellipse) Translate(dx, dy float64) Shape   { return Ellipse{e.translate(dx, dy)} }
func (l Line) Translate(dx, dy float64) Shape      { return Line{l.translate(dx, dy)} }
func (a Arrow) Translate(dx, dy float64) Shape     { return Arrow{a.translate(dx, dy)} }

// ExtentOf returns the box of a non-pen shape.
func ExtentOf(s Shape) (Extent, bool) {
	switch v := s.(type) {
	case Rectangle:
		return v.Extent, true
	case Ellipse:
		return v.Extent, true
	case Line:
		return v.Extent, true
	case Arrow:
		return v.Extent, true
	}
	return Extent{}, false
}

// WithExtent builds a box shape of the given kind. Pen yields an empty stroke.
func WithExtent(kind Kind, ext Extent) Shape {
	switch kind {
	case KindRectangle:
		return Rectangle{ext}
	case KindEllipse:
		return Ellipse{ext}
	case KindLine:
		return Line{ext}
	case KindArrow:
		return Arrow{ext}
	}
	return Pen{}
}

// Element is one drawable object. Elements held by a board are shared
// between history snapshots and must be replaced, not modified.
type Element struct {
	ID    string
	Style Style
	Shape Shape
}

func New(id string, style Style, shape Shape) *Element {
	return &Element{ID: id, Style: style, Shape: shape}
}

func (e *Element) Kind() Kind { return e.Shape.Kind() }

func (e *Element) WithShape(s Shape) *Element {
	c := *e
	c.Shape = s
	return &c
}

func (e *Element) WithStyle(s Style) *Element {
	c := *e
	c.Style = s
	return &c
}

// Translate returns a copy moved by (dx, dy).
func (e *Element) Translate(dx, dy float64) *Element {
	return e.WithShape(e.Shape.Translate(dx, dy))
}

// Points returns the samples of a pen element, nil otherwise.
func (e *Element) Points() []Point {
	if p, ok := e.Shape.(Pen); ok {
		return p.Points
	}
	return nil
}

// AppendPoint extends a pen stroke. The receiver's points are not touched.
func (p Pen) AppendPoint(pt Point) Pen {
	return Pen{Points: append(slices.Clip(p.Points), pt)}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
