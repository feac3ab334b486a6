package svgpath

import (
	"math"
	"testing"

	"github.com/benoitkugler/okpaint/svgdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

func TestPrecision(t *testing.T) {
	for _, test := range []struct {
		p    Precision
		v    float64
		want string
	}{
		{Precision{}, 1.5, "1.5"},
		{Precision{}, 10, "10"},
		{Precision{}, -0.25, "-0.25"},
		{Precision{Round: true}, 1.5, "2"},
		{Precision{Round: true}, -0.4, "0"},
		{Precision{Digits: 2}, 1.23456, "1.23"},
		{Precision{Digits: 2}, 3, "3"},
	} {
		assert.Equal(t, test.want, test.p.Format(test.v), "%+v %v", test.p, test.v)
	}
}

func TestBuilderLineTo(t *testing.T) {
	var b Builder
	b.MoveTo(0, 0)
	b.LineTo(10, 0)
	b.LineTo(10, 10)
	b.LineTo(5, 5)
	b.LineTo(5, 5)
	b.Close(false)
	assert.Equal(t, "M0,0h10v10L5,5L5,5Z", b.String())

	x, y := b.Pos()
	assert.Equal(t, [2]float64{0, 0}, [2]float64{x, y})

	b.Reset()
	assert.Equal(t, 0, b.Len())
	b.LineTo(1, 2) // no current point
	assert.Equal(t, "M1,2", b.String())
}

func TestBuilderRelative(t *testing.T) {
	var b Builder
	b.MoveTo(1, 1)
	b.HLine(4)
	b.VLine(-2)
	b.HLine(-4)
	b.Close(true)
	b.RelMoveTo(3, 3)
	b.RelLineTo(1, 1)
	b.Arc(2, 3, 0, true, false, 7, 7)
	assert.Equal(t, "M1,1h4v-2h-4zm3,3l1,1A2,3,0,1,0,7,7", b.String())

	x, y := b.Pos()
	assert.Equal(t, 7., x)
	assert.Equal(t, 7., y)

	b.Raw("M0,0", 3, 4)
	x, y = b.Pos()
	assert.Equal(t, 3., x)
	assert.Equal(t, 4., y)
}

func TestAccumulatorRuns(t *testing.T) {
	var rec svgdraw.Recorder
	acc := Accumulator{Backend: &rec}
	styleCalls := 0
	style := func() svgdraw.Style {
		styleCalls++
		return svgdraw.Style{LineWidth: 1}
	}

	kinds := []svgdraw.Kind{
		svgdraw.KindLine, svgdraw.KindLine, svgdraw.KindFill,
		svgdraw.KindLine, svgdraw.KindMarker, svgdraw.KindMarker,
	}
	for i, k := range kinds {
		acc.Extend(k, style).MoveTo(float64(i), 0)
	}
	acc.Flush()
	acc.Flush() // no-op

	calls := rec.Calls()
	require.Len(t, calls, 4)
	assert.Equal(t, 4, acc.Draws())
	assert.Equal(t, 4, styleCalls)
	assert.Equal(t, "M0,0M1,0", calls[0].Path)
	assert.Equal(t, svgdraw.KindLine, calls[0].Style.Kind)
	assert.Equal(t, svgdraw.KindFill, calls[1].Style.Kind)
	assert.Equal(t, svgdraw.KindMarker, calls[3].Style.Kind)
	assert.Equal(t, svgdraw.KindNone, acc.Kind())
}

func TestAccumulatorEmpty(t *testing.T) {
	var rec svgdraw.Recorder
	acc := Accumulator{Backend: &rec}
	acc.Extend(svgdraw.KindMarker, func() svgdraw.Style { return svgdraw.Style{} })
	acc.Flush()
	assert.Empty(t, rec.Calls())
}

func TestParse(t *testing.T) {
	p, err := Parse("M0,0h10v10H0z m5 5 l1 1 2 0")
	require.NoError(t, err)
	assert.Equal(t, "M0,0 L10,0 L10,10 L0,10 Z M5,5 L6,6 L8,6", p.ToSVGPath())

	p, err = Parse("M0 0 Q5 5 10 0 T20 0")
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.Equal(t, QuadTo{toFixedP(15, -5), toFixedP(20, 0)}, p[2])

	p, err = Parse("M0,0C0,10,10,10,10,0S20,-10,20,0")
	require.NoError(t, err)
	require.Len(t, p, 3)
	assert.Equal(t, CubicTo{toFixedP(10, -10), toFixedP(20, -10), toFixedP(20, 0)}, p[2])

	_, err = Parse("M0,0L1")
	assert.Error(t, err)
	_, err = Parse("X1,2")
	assert.Error(t, err)
}

func TestParseArc(t *testing.T) {
	p, err := Parse("M-10,0A10,10,0,1,0,10,0")
	require.NoError(t, err)
	require.Greater(t, len(p), 2)
	for _, op := range p[1:] {
		_, ok := op.(CubicTo)
		assert.True(t, ok)
	}
	last := p[len(p)-1].(CubicTo)
	assert.Equal(t, toFixedP(10, 0), last[2])

	// half circle: the bounding box spans the radius on one side
	b := p.Bounds()
	assert.InDelta(t, -10, float64(b.Min.X)/64, 0.05)
	assert.InDelta(t, 10, float64(b.Max.X)/64, 0.05)
	height := math.Max(math.Abs(float64(b.Min.Y)/64), math.Abs(float64(b.Max.Y)/64))
	assert.InDelta(t, 10, height, 0.1)

	// zero radius degenerates to a line
	p, err = Parse("M0,0A0,5,0,0,0,4,4")
	require.NoError(t, err)
	assert.Equal(t, LineTo(toFixedP(4, 4)), p[1])
}

func TestArcCenter(t *testing.T) {
	for _, test := range []struct {
		arc        Arc
		cx, cy, rx float64
		span       float64
	}{
		{Arc{X0: -10, Rx: 10, Ry: 10, X: 10}, 0, 0, 10, -math.Pi},
		{Arc{X0: 10, Rx: 10, Ry: 10, Sweep: true, X: 0, Y: 10}, 0, 0, 10, math.Pi / 2},
		{Arc{X0: 10, Rx: 10, Ry: 10, Large: true, Sweep: true, X: 0, Y: 10}, 10, 10, 10, 3 * math.Pi / 2},
		// radii too small are scaled up
		{Arc{Rx: 1, Ry: 1, X: 10}, 5, 0, 5, -math.Pi},
	} {
		e := test.arc.center()
		assert.InDelta(t, test.cx, e.cx, 1e-9, "%+v", test.arc)
		assert.InDelta(t, test.cy, e.cy, 1e-9, "%+v", test.arc)
		assert.InDelta(t, test.rx, e.rx, 1e-9, "%+v", test.arc)
		assert.InDelta(t, test.span, e.span, 1e-9, "%+v", test.arc)
	}
}

func TestArcCubics(t *testing.T) {
	var ends [][2]float64
	Arc{X0: -10, Rx: 10, Ry: 10, X: 10}.Cubics(func(_, _, _, _, x, y float64) {
		ends = append(ends, [2]float64{x, y})
	})
	require.Len(t, ends, 8)
	assert.Equal(t, [2]float64{10, 0}, ends[7])
	// half way, the arc passes at the top of the circle
	assert.InDelta(t, 0, ends[3][0], 1e-9)
	assert.InDelta(t, 10, ends[3][1], 1e-9)
	for _, p := range ends {
		assert.InDelta(t, 10, math.Hypot(p[0], p[1]), 1e-9)
	}
}

func TestBounds(t *testing.T) {
	assert.Equal(t, fixed.Rectangle26_6{}, Path(nil).Bounds())

	p, err := Parse("M1,2L5,-3L-1,4Z")
	require.NoError(t, err)
	b := p.Bounds()
	assert.Equal(t, fToFixed(-1, -3), b.Min)
	assert.Equal(t, fToFixed(5, 4), b.Max)

	cu := cubicBezier{toFixedP(0, 0), toFixedP(0, 10), toFixedP(10, 10), toFixedP(10, 0)}
	r := computeBoundingBox(cu)
	assert.InDelta(t, 7.5, float64(r.Max.Y)/64, 0.05)
}

type countingAdder struct{ starts, lines, cubics, closes int }

func (c *countingAdder) Start(fixed.Point26_6)              { c.starts++ }
func (c *countingAdder) Line(fixed.Point26_6)               { c.lines++ }
func (c *countingAdder) QuadBezier(_, _ fixed.Point26_6)    {}
func (c *countingAdder) CubeBezier(_, _, _ fixed.Point26_6) { c.cubics++ }
func (c *countingAdder) Stop(closeLoop bool) {
	if closeLoop {
		c.closes++
	}
}

func TestAddTo(t *testing.T) {
	p, err := Parse("M0,0h1v1zM5,5C6,6,7,7,8,8")
	require.NoError(t, err)
	var ca countingAdder
	p.AddTo(&ca)
	assert.Equal(t, countingAdder{starts: 2, lines: 2, cubics: 1, closes: 1}, ca)
}
