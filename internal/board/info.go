package board

import (
	"math"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

// SelectionInfo summarizes the selection for panels.
type SelectionInfo struct {
	Count       int           `json:"count"`
	Width       float64       `json:"width"`
	Height      float64       `json:"height"`
	Kind        document.Kind `json:"kind,omitempty"`
	StrokeColor string        `json:"strokeColor"`
	FillColor   string        `json:"fillColor"`
}

// SelectionInfo reports the selected elements. Colors fall back to the
// defaults when the selected elements disagree.
func (s *Store) SelectionInfo() (SelectionInfo, bool) {
	var picked []*document.Element
	for _, el := range s.elements {
		if s.IsSelected(el.ID) {
			picked = append(picked, el)
		}
	}
	if len(picked) == 0 {
		return SelectionInfo{}, false
	}

	info := SelectionInfo{
		Count:       len(picked),
		StrokeColor: picked[0].Style.StrokeColor,
		FillColor:   picked[0].Style.FillColor,
	}
	if b, ok := s.SelectionBounds(); ok {
		info.Width, info.Height = math.Round(b.Width), math.Round(b.Height)
	}
	if len(picked) == 1 {
		info.Kind = picked[0].Kind()
	}
	for _, el := range picked[1:] {
		if el.Style.StrokeColor != picked[0].Style.StrokeColor {
			info.StrokeColor = document.DefaultStrokeColor
		}
		if el.Style.FillColor != picked[0].Style.FillColor {
			info.FillColor = document.Transparent
		}
	}
	return info, true
}
