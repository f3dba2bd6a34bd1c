package geom

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omnisketch/omnisketch/backend-go/internal/document"
)

func rect(x, y, w, h float64) *document.Element {
	return document.New("r", document.DefaultStyle(), document.Rectangle{Extent: document.Extent{X: x, Y: y, Width: w, Height: h}})
}

func TestViewportRoundTrip(t *testing.T) {
	zooms := []float64{0.1, 0.37, 1, 2.5, 5}
	pans := [][2]float64{{0, 0}, {-120.5, 33}, {1e4, -7.25}}
	pts := [][2]float64{{0, 0}, {13.3, -8}, {-500, 999.99}}

	for _, z := range zooms {
		for _, p := range pans {
			v := Viewport{Zoom: z, PanX: p[0], PanY: p[1]}
			for _, pt := range pts {
				sx, sy := v.CanvasToScreen(pt[0], pt[1])
				cx, cy := v.ScreenToCanvas(sx, sy)
				assert.InDelta(t, pt[0], cx, 1e-9)
				assert.InDelta(t, pt[1], cy, 1e-9)
			}
		}
	}
}

func TestScreenToCanvasFormula(t *testing.T) {
	v := Viewport{Zoom: 2, PanX: 10, PanY: 20}
	x, y := v.ScreenToCanvas(30, 60)
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 20.0, y)

	v = Viewport{Zoom: 0.37, PanX: -12.5, PanY: 4}
	x, y = v.ScreenToCanvas(100, -50)
	assert.InDelta(t, (100+12.5)/0.37, x, 1e-9)
	assert.InDelta(t, (-50-4)/0.37, y, 1e-9)
}

func TestClampZoom(t *testing.T) {
	assert.Equal(t, 0.1, ClampZoom(0.01))
	assert.Equal(t, 5.0, ClampZoom(12))
	assert.Equal(t, 1.5, ClampZoom(1.5))
}

func TestZoomAtKeepsCursorFixed(t *testing.T) {
	v := Viewport{Zoom: 1, PanX: 40, PanY: -10}
	cx, cy := v.ScreenToCanvas(200, 150)

	z := v.ZoomAt(200, 150, 2.5)
	assert.Equal(t, 2.5, z.Zoom)
	nx, ny := z.ScreenToCanvas(200, 150)
	assert.InDelta(t, cx, nx, 1e-9)
	assert.InDelta(t, cy, ny, 1e-9)
}

func TestMatrixInvert(t *testing.T) {
	m := Translate(5, -3).Multiply(Scale(2, 4))
	x, y := m.Invert().TransformPoint(m.TransformPoint(7, 11))
	assert.InDelta(t, 7, x, 1e-12)
	assert.InDelta(t, 11, y, 1e-12)
	assert.Equal(t, Identity(), Scale(0, 1).Invert())
}

func TestElementBounds(t *testing.T) {
	style := document.DefaultStyle()
	tests := []struct {
		name string
		el   *document.Element
		want Rect
	}{
		{"rectangle negative extent", rect(50, 40, -30, -20), Rect{X: 12, Y: 12, Width: 46, Height: 36}},
		{"ellipse", document.New("e", style, document.Ellipse{Extent: document.Extent{X: 0, Y: 0, Width: 100, Height: -50}}),
			Rect{X: -8, Y: -58, Width: 116, Height: 66}},
		{"line", document.New("l", style, document.Line{Extent: document.Extent{X: 10, Y: 10, Width: 20, Height: 0}}),
			Rect{X: 2, Y: 2, Width: 36, Height: 16}},
		{"pen", document.New("p", style, document.Pen{Points: []document.Point{document.Pt(0, 0), document.Pt(4, -6)}}),
			Rect{X: -8, Y: -14, Width: 20, Height: 22}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ElementBounds(tt.el)
			require.True(t, ok)
			assert.InDelta(t, tt.want.X, got.X, 1e-9)
			assert.InDelta(t, tt.want.Y, got.Y, 1e-9)
			assert.InDelta(t, tt.want.Width, got.Width, 1e-9)
			assert.InDelta(t, tt.want.Height, got.Height, 1e-9)
		})
	}
}

func TestElementBoundsEmptyPen(t *testing.T) {
	_, ok := ElementBounds(document.New("p", document.DefaultStyle(), document.Pen{}))
	assert.False(t, ok)
}

func TestRawBoundsUnpadded(t *testing.T) {
	got, ok := RawBounds(rect(10, 10, 50, 30))
	require.True(t, ok)
	assert.Equal(t, Rect{X: 10, Y: 10, Width: 50, Height: 30}, got)
}

func TestRectangleHitScenario(t *testing.T) {
	el := rect(10, 10, 50, 30)
	assert.True(t, HitTest(el, 5, 5, DefaultHitThreshold))
	assert.False(t, HitTest(el, -1, -1, DefaultHitThreshold))
	assert.True(t, HitTest(el, 70, 50, DefaultHitThreshold))
}

func TestEllipseHit(t *testing.T) {
	el := document.New("e", document.DefaultStyle(), document.Ellipse{Extent: document.Extent{X: 0, Y: 0, Width: 100, Height: 60}})
	assert.True(t, HitTest(el, 50, 30, 10))
	assert.True(t, HitTest(el, -9, 30, 10))
	assert.False(t, HitTest(el, -11, 30, 10))
	assert.False(t, HitTest(el, 0, 0, 10))
}

func TestLineAndArrowHit(t *testing.T) {
	style := document.DefaultStyle()
	line := document.New("l", style, document.Line{Extent: document.Extent{X: 0, Y: 0, Width: 100, Height: 0}})
	arrow := document.New("a", style, document.Arrow{Extent: document.Extent{X: 0, Y: 0, Width: 100, Height: 0}})
	for _, el := range []*document.Element{line, arrow} {
		assert.True(t, HitTest(el, 50, 9.9, 10))
		assert.False(t, HitTest(el, 50, 10, 10))
		assert.False(t, HitTest(el, 115, 0, 10))
	}
}

func TestPenHitUsesSamples(t *testing.T) {
	el := document.New("p", document.DefaultStyle(), document.Pen{Points: []document.Point{document.Pt(0, 0), document.Pt(100, 0)}})
	assert.True(t, HitTest(el, 3, 3, 10))
	assert.False(t, HitTest(el, 50, 0, 10))
}

func TestDistanceToSegment(t *testing.T) {
	assert.Equal(t, 5.0, DistanceToSegment(3, 4, 0, 0, 0, 0))
	assert.Equal(t, 3.0, DistanceToSegment(5, 3, 0, 0, 10, 0))
	assert.Equal(t, 5.0, DistanceToSegment(-3, 4, 0, 0, 10, 0))
	assert.Equal(t, 5.0, DistanceToSegment(13, 4, 0, 0, 10, 0))
}

func TestElementAtTopmostWins(t *testing.T) {
	bottom := rect(0, 0, 100, 100)
	top := document.New("top", document.DefaultStyle(), document.Rectangle{Extent: document.Extent{X: 20, Y: 20, Width: 10, Height: 10}})
	els := []*document.Element{bottom, top}

	got, ok := ElementAt(els, 25, 25, 10)
	require.True(t, ok)
	assert.Equal(t, "top", got.ID)

	got, ok = ElementAt(els, 80, 80, 10)
	require.True(t, ok)
	assert.Equal(t, "r", got.ID)

	_, ok = ElementAt(els, 500, 500, 10)
	assert.False(t, ok)
}

func TestRectOverlapsAndUnion(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	b := Rect{X: 10, Y: 10, Width: 5, Height: 5}
	assert.True(t, a.Overlaps(b))
	assert.False(t, a.Overlaps(Rect{X: 11, Y: 0, Width: 1, Height: 1}))
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 15, Height: 15}, a.Union(b))
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 5, Height: 8}, RectFromCorners(5, 8, 0, 0))
}

func TestStrokePathDegenerate(t *testing.T) {
	assert.Empty(t, StrokePath(nil, 2))
	assert.Empty(t, StrokePath([]document.Point{document.Pt(1, 1)}, 2))
}

func TestStrokePathShape(t *testing.T) {
	pts := []document.Point{document.Pt(0, 0), document.Pt(20, 0), document.Pt(40, 5), document.Pt(60, 10)}
	d := StrokePath(pts, 2)
	require.NotEmpty(t, d)
	assert.True(t, strings.HasPrefix(d, "M "))
	assert.Contains(t, d, " Q ")
	assert.True(t, strings.HasSuffix(d, " Z"))
	assert.NotContains(t, d, "NaN")
}

func TestStrokeOutlineStaysNearSamples(t *testing.T) {
	pts := []document.Point{document.Pt(0, 0), document.Pt(30, 0), document.Pt(60, 0), document.Pt(90, 0)}
	outline := Stroke(pts, DefaultStrokeOptions(4))
	require.NotEmpty(t, outline)
	for _, v := range outline {
		assert.False(t, math.IsNaN(v.X) || math.IsNaN(v.Y))
		assert.LessOrEqual(t, math.Abs(v.Y), 8.0)
		assert.GreaterOrEqual(t, v.X, -8.0)
		assert.LessOrEqual(t, v.X, 98.0)
	}
}

func TestStrokePointsTwoSampleExpansion(t *testing.T) {
	pts := StrokePoints([]document.Point{document.Pt(0, 0), document.Pt(100, 0)}, DefaultStrokeOptions(2))
	require.Greater(t, len(pts), 1)
	assert.Equal(t, Vec{0, 0}, pts[0].Point)
	assert.Equal(t, pts[1].Vector, pts[0].Vector)
	for i := 1; i < len(pts); i++ {
		assert.Greater(t, pts[i].RunningLength, pts[i-1].RunningLength)
	}
}

func TestSVGPathFromStroke(t *testing.T) {
	d := SVGPathFromStroke([]Vec{{0, 0}, {2, 0}, {2, 2}})
	assert.Equal(t, "M 0 0 Q 0 0 1 0 2 0 2 1 2 2 1 1 Z", d)
	assert.Empty(t, SVGPathFromStroke(nil))
}

func TestArrowHeadHorizontal(t *testing.T) {
	ax, ay, bx, by := ArrowHead(0, 0, 100, 0)
	assert.InDelta(t, 100-15*math.Cos(math.Pi/6), ax, 1e-9)
	assert.InDelta(t, 7.5, ay, 1e-9)
	assert.InDelta(t, ax, bx, 1e-9)
	assert.InDelta(t, -7.5, by, 1e-9)

	for _, barb := range [][2]float64{{ax, ay}, {bx, by}} {
		assert.InDelta(t, 15, math.Hypot(100-barb[0], 0-barb[1]), 1e-9)
		angle := math.Abs(math.Atan2(barb[1]-0, 100-barb[0]))
		assert.InDelta(t, math.Pi/6, angle, 1e-9)
	}
}
