package document

import (
	"encoding/json"
	"errors"
	"fmt"
)

var ErrUnknownKind = errors.New("unknown element type")

// wireElement is the flat JSON shape exchanged with the browser and peers.
type wireElement struct {
	ID          string  `json:"id"`
	Type        Kind    `json:"type"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Width       float64 `json:"width,omitempty"`
	Height      float64 `json:"height,omitempty"`
	Points      []Point `json:"points,omitempty"`
	StrokeColor string  `json:"strokeColor"`
	StrokeWidth float64 `json:"strokeWidth"`
	FillColor   string  `json:"fillColor,omitempty"`
}

func (e Element) MarshalJSON() ([]byte, error) {
	w := wireElement{
		ID:          e.ID,
		StrokeColor: e.Style.StrokeColor,
		StrokeWidth: e.Style.StrokeWidth,
		FillColor:   e.Style.FillColor,
	}
	switch s := e.Shape.(type) {
	case Pen:
		w.Type = KindPen
		w.Points = s.Points
		if len(s.Points) > 0 {
			w.X, w.Y = s.Points[0].X, s.Points[0].Y
		}
	case nil:
		return nil, fmt.Errorf("element %s: missing shape", e.ID)
	default:
		ext, _ := ExtentOf(s)
		w.Type = s.Kind()
		w.X, w.Y, w.Width, w.Height = ext.X, ext.Y, ext.Width, ext.Height
	}
	return json.Marshal(w)
}

func (e *Element) UnmarshalJSON(data []byte) error {
	var w wireElement
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	var shape Shape
	switch w.Type {
	case KindPen:
		shape = Pen{Points: w.Points}
	case KindRectangle, KindEllipse, KindLine, KindArrow:
		shape = WithExtent(w.Type, Extent{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height})
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, w.Type)
	}

	fill := w.FillColor
	if fill == "" {
		fill = Transparent
	}
	*e = Element{
		ID:    w.ID,
		Style: Style{StrokeColor: w.StrokeColor, StrokeWidth: w.StrokeWidth, FillColor: fill},
		Shape: shape,
	}
	return nil
}

// DecodeElements parses a JSON array of elements. A null entry is rejected
// since nothing downstream accepts a nil element.
func DecodeElements(data []byte) ([]*Element, error) {
	var out []*Element
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode elements: %w", err)
	}
	for i, el := range out {
		if el == nil {
			return nil, fmt.Errorf("decode elements: %w: null at index %d", ErrUnknownKind, i)
		}
	}
	return out, nil
}
