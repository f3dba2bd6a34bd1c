package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
	"github.com/omnisketch/omnisketch/backend-go/internal/geom"
)

func box(id string, x, y, w, h float64) *document.Element {
	return document.New(id, document.DefaultStyle(), document.Rectangle{Extent: document.Extent{X: x, Y: y, Width: w, Height: h}})
}

func pen(id string, pts ...document.Point) *document.Element {
	return document.New(id, document.DefaultStyle(), document.Pen{Points: pts})
}

func TestBoundsUnion(t *testing.T) {
	els := []*document.Element{
		box("a", 0, 0, 10, 10),
		box("b", 100, 50, -20, 30),
		box("c", 500, 500, 1, 1),
	}
	got, ok := Bounds(els, []string{"a", "b"})
	require.True(t, ok)
	assert.Equal(t, geom.Rect{X: -8, Y: -8, Width: 116, Height: 96}, got)
}

func TestBoundsIgnoresOrder(t *testing.T) {
	els := []*document.Element{
		box("a", 0, 0, 10, 10),
		pen("p", document.Pt(-40, 3), document.Pt(7, 90)),
		document.New("e", document.DefaultStyle(), document.Ellipse{Extent: document.Extent{X: 30, Y: -20, Width: 60, Height: 40}}),
	}
	orders := [][]string{{"a", "p", "e"}, {"e", "a", "p"}, {"p", "e", "a"}}
	first, ok := Bounds(els, orders[0])
	require.True(t, ok)
	for _, ids := range orders[1:] {
		got, ok := Bounds(els, ids)
		require.True(t, ok)
		assert.Equal(t, first, got)
	}
}

func TestBoundsEmpty(t *testing.T) {
	els := []*document.Element{box("a", 0, 0, 10, 10), pen("p")}
	_, ok := Bounds(els, nil)
	assert.False(t, ok)
	_, ok = Bounds(els, []string{"missing", "p"})
	assert.False(t, ok)
}

func TestHandleAt(t *testing.T) {
	b := geom.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	tests := []struct {
		x, y float64
		want Handle
	}{
		{1, 1, HandleNW},
		{99, -5, HandleNE},
		{0, 50, HandleSW},
		{100, 50, HandleSE},
		{50, 0, HandleN},
		{50, 50, HandleS},
		{0, 25, HandleW},
		{100, 25, HandleE},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			got, ok := HandleAt(b, tt.x, tt.y, 1)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := HandleAt(b, 50, 25, 1)
	assert.False(t, ok)
}

func TestHandleToleranceScalesWithZoom(t *testing.T) {
	b := geom.Rect{X: 0, Y: 0, Width: 100, Height: 100}
	_, ok := HandleAt(b, 10, 10, 1)
	assert.True(t, ok)
	_, ok = HandleAt(b, 10, 10, 2)
	assert.False(t, ok)
}

func TestHandleCornerPriorityOnDegenerateBox(t *testing.T) {
	b := geom.Rect{X: 10, Y: 10}
	got, ok := HandleAt(b, 10, 10, 1)
	require.True(t, ok)
	assert.Equal(t, HandleNW, got)
}

func TestResizeSE(t *testing.T) {
	snap := []*document.Element{box("a", 0, 0, 100, 50), box("b", 200, 200, 10, 10)}
	r, ok := NewResize(HandleSE, 100, 50, snap, []string{"a"})
	require.True(t, ok)

	out := r.Apply(snap, 200, 100)
	ext, _ := document.ExtentOf(out[0].Shape)
	assert.Equal(t, document.Extent{X: 0, Y: 0, Width: 200, Height: 100}, ext)
	assert.Same(t, snap[1], out[1])
}

func TestResizeNWAnchorsBottomRight(t *testing.T) {
	snap := []*document.Element{box("a", 0, 0, 100, 100)}
	r, ok := NewResize(HandleNW, 0, 0, snap, []string{"a"})
	require.True(t, ok)

	sx, sy, ax, ay := r.Transform(50, 50)
	assert.Equal(t, []float64{0.5, 0.5, 100, 100}, []float64{sx, sy, ax, ay})

	ext, _ := document.ExtentOf(r.Apply(snap, 50, 50)[0].Shape)
	assert.Equal(t, document.Extent{X: 50, Y: 50, Width: 50, Height: 50}, ext)
}

func TestResizeEdgesScaleOneAxis(t *testing.T) {
	snap := []*document.Element{box("a", 0, 0, 100, 100)}
	tests := []struct {
		handle         Handle
		x, y           float64
		sx, sy, ax, ay float64
	}{
		{HandleE, 150, 80, 1.5, 1, 0, 0},
		{HandleW, 50, 80, 1.5, 1, 100, 0},
		{HandleS, 80, 150, 1, 1.5, 0, 0},
		{HandleN, 80, 50, 1, 1.5, 0, 100},
		{HandleSW, 50, 150, 1.5, 1.5, 100, 0},
		{HandleNE, 150, 50, 1.5, 1.5, 0, 100},
	}
	for _, tt := range tests {
		t.Run(string(tt.handle), func(t *testing.T) {
			r, ok := NewResize(tt.handle, 100, 100, snap, []string{"a"})
			require.True(t, ok)
			sx, sy, ax, ay := r.Transform(tt.x, tt.y)
			assert.Equal(t, []float64{tt.sx, tt.sy, tt.ax, tt.ay}, []float64{sx, sy, ax, ay})
		})
	}
}

func TestResizeClampsScale(t *testing.T) {
	snap := []*document.Element{box("a", 0, 0, 100, 100)}
	r, _ := NewResize(HandleSE, 100, 100, snap, []string{"a"})
	sx, sy, _, _ := r.Transform(-500, 5)
	assert.Equal(t, MinScale, sx)
	assert.Equal(t, MinScale, sy)
}

func TestResizeIdempotent(t *testing.T) {
	snap := []*document.Element{
		box("a", 10, 10, 40, 20),
		pen("p", document.Pt(60, 60), document.Pt(90, 75), document.Pt(70, 100)),
	}
	ids := []string{"a", "p"}
	r, ok := NewResize(HandleSE, 90, 100, snap, ids)
	require.True(t, ok)

	once := r.Apply(snap, 130, 140)

	live := r.Apply(snap, 300, 10)
	live = r.Apply(live, 110, 115)
	twice := r.Apply(live, 130, 140)
	twice = r.Apply(twice, 130, 140)

	require.Len(t, twice, len(once))
	for i := range once {
		assert.Equal(t, *once[i], *twice[i])
	}
}

func TestResizeDegenerateSelectionFloorsSize(t *testing.T) {
	snap := []*document.Element{box("a", 5, 5, 0, 0)}
	r, ok := NewResize(HandleSE, 5, 5, snap, []string{"a"})
	require.True(t, ok)
	sx, sy, _, _ := r.Transform(7, 8)
	assert.Equal(t, 3.0, sx)
	assert.Equal(t, 4.0, sy)
}

func TestNewResizeWithoutGeometry(t *testing.T) {
	_, ok := NewResize(HandleSE, 0, 0, []*document.Element{pen("p")}, []string{"p"})
	assert.False(t, ok)
}

func TestResizePenKeepsPressure(t *testing.T) {
	snap := []*document.Element{pen("p", document.Point{X: 0, Y: 0, Pressure: 0.9}, document.Point{X: 10, Y: 10, Pressure: 0.1})}
	r, _ := NewResize(HandleSE, 10, 10, snap, []string{"p"})
	out := r.Apply(snap, 20, 20)
	assert.Equal(t, []document.Point{{X: 0, Y: 0, Pressure: 0.9}, {X: 20, Y: 20, Pressure: 0.1}}, out[0].Points())
	assert.Equal(t, []document.Point{{X: 0, Y: 0, Pressure: 0.9}, {X: 10, Y: 10, Pressure: 0.1}}, snap[0].Points())
}

func TestMarqueePenAnySample(t *testing.T) {
	els := []*document.Element{pen("p", document.Pt(0, 0), document.Pt(100, 100))}
	assert.Equal(t, []string{"p"}, InMarquee(els, 0, 0, 50, 50))
	assert.Empty(t, InMarquee(els, 10, 10, 50, 50))
}

func TestMarqueeOverlapAndNormalization(t *testing.T) {
	els := []*document.Element{
		box("a", 40, 40, 100, 100),
		box("b", 300, 300, -50, -50),
		box("c", 1000, 1000, 5, 5),
	}
	assert.Equal(t, []string{"a", "b"}, InMarquee(els, 260, 260, 0, 0))
	assert.Empty(t, InMarquee(els, -10, -10, -5, -5))
}
