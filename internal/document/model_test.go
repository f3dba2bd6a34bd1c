package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPointPressureDefaults(t *testing.T) {
	var p Point
	require.NoError(t, json.Unmarshal([]byte(`{"x":1,"y":2}`), &p))
	assert.Equal(t, Point{X: 1, Y: 2, Pressure: 0.5}, p)

	require.NoError(t, json.Unmarshal([]byte(`{"x":1,"y":2,"pressure":0}`), &p))
	assert.Equal(t, 0.0, p.Pressure)
}

func TestToolElementKind(t *testing.T) {
	tests := []struct {
		tool Tool
		kind Kind
		ok   bool
	}{
		{ToolPen, KindPen, true},
		{ToolRectangle, KindRectangle, true},
		{ToolEllipse, KindEllipse, true},
		{ToolLine, KindLine, true},
		{ToolArrow, KindArrow, true},
		{ToolSelect, "", false},
		{ToolText, "", false},
		{ToolEraser, "", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.tool), func(t *testing.T) {
			kind, ok := tt.tool.ElementKind()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.kind, kind)
		})
	}
}

func TestParseTool(t *testing.T) {
	tool, err := ParseTool("eraser")
	require.NoError(t, err)
	assert.Equal(t, ToolEraser, tool)

	_, err = ParseTool("lasso")
	assert.Error(t, err)
}

func TestElementJSONWireFormat(t *testing.T) {
	el := New("el_1", Style{StrokeColor: "#000", StrokeWidth: 2, FillColor: Transparent},
		Rectangle{Extent{X: 10, Y: 20, Width: -30, Height: 40}})

	data, err := json.Marshal(el)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"el_1","type":"rectangle","x":10,"y":20,"width":-30,"height":40,
		"strokeColor":"#000","strokeWidth":2,"fillColor":"transparent"}`, string(data))

	var back Element
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, *el, back)
}

func TestPenJSONCarriesOrigin(t *testing.T) {
	el := New("el_2", DefaultStyle(), Pen{Points: []Point{Pt(3, 4), Pt(5, 6)}})
	data, err := json.Marshal(el)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "pen", raw["type"])
	assert.Equal(t, 3.0, raw["x"])
	assert.Equal(t, 4.0, raw["y"])
	assert.NotContains(t, raw, "width")
}

func TestUnmarshalUnknownKind(t *testing.T) {
	var el Element
	err := json.Unmarshal([]byte(`{"id":"x","type":"text"}`), &el)
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestUnmarshalDefaultsFill(t *testing.T) {
	els, err := DecodeElements([]byte(`[{"id":"a","type":"line","x":0,"y":0,"width":5,"height":5,"strokeColor":"#111","strokeWidth":1}]`))
	require.NoError(t, err)
	require.Len(t, els, 1)
	assert.Equal(t, Transparent, els[0].Style.FillColor)
	assert.Equal(t, KindLine, els[0].Kind())
}

func TestDecodeElementsRejectsNull(t *testing.T) {
	for _, in := range []string{`[null]`, `[{"id":"a","type":"line","x":0,"y":0,"strokeColor":"#111","strokeWidth":1},null]`} {
		els, err := DecodeElements([]byte(in))
		assert.ErrorIs(t, err, ErrUnknownKind, in)
		assert.Nil(t, els, in)
	}
}

func TestDecodeElementsNullArray(t *testing.T) {
	els, err := DecodeElements([]byte(`null`))
	require.NoError(t, err)
	assert.Empty(t, els)
}

func TestTranslateLeavesOriginalUntouched(t *testing.T) {
	pen := New("p", DefaultStyle(), Pen{Points: []Point{Pt(0, 0), Pt(1, 1)}})
	moved := pen.Translate(10, 5)

	assert.Equal(t, []Point{Pt(0, 0), Pt(1, 1)}, pen.Points())
	assert.Equal(t, []Point{Pt(10, 5), Pt(11, 6)}, moved.Points())

	rect := New("r", DefaultStyle(), Rectangle{Extent{X: 1, Y: 2, Width: 3, Height: 4}})
	ext, ok := ExtentOf(rect.Translate(-1, -2).Shape)
	require.True(t, ok)
	assert.Equal(t, Extent{X: 0, Y: 0, Width: 3, Height: 4}, ext)
}

func TestAppendPointDoesNotAlias(t *testing.T) {
	base := Pen{Points: make([]Point, 1, 8)}
	a := base.AppendPoint(Pt(1, 1))
	b := base.AppendPoint(Pt(2, 2))
	assert.Equal(t, Pt(1, 1), a.Points[1])
	assert.Equal(t, Pt(2, 2), b.Points[1])
	assert.Len(t, base.Points, 1)
}

func TestExtentNormalized(t *testing.T) {
	x, y, w, h := Extent{X: 10, Y: 10, Width: -4, Height: -6}.Normalized()
	assert.Equal(t, []float64{6, 4, 4, 6}, []float64{x, y, w, h})
}

func TestSampleBoardHasEveryKind(t *testing.T) {
	kinds := map[Kind]bool{}
	for _, el := range NewSampleBoard() {
		kinds[el.Kind()] = true
	}
	assert.Len(t, kinds, 5)
}
