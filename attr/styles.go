package attr

import (
	"image/color"

	"github.com/benoitkugler/okpaint/svgdraw"
)

// dash patterns of the ROOT line styles, indexed by style
var lineStyles = [...][]float64{
	nil,
	nil,
	{3, 3},
	{1, 2},
	{3, 4, 1, 4},
	{5, 3, 1, 3},
	{5, 3, 1, 3, 1, 3, 1, 3},
	{5, 5},
	{5, 3, 1, 3, 1, 3},
	{20, 5},
	{20, 10, 1, 10},
	{1, 3},
}

// LineDash returns the dash array of a line style,
// or nil for solid and unknown styles.
func LineDash(style int) []float64 {
	if style < 0 || style >= len(lineStyles) {
		return nil
	}
	return append([]float64(nil), lineStyles[style]...)
}

// FillColor resolves the color painted by a fill record, or nil
// for hollow and fully transparent styles.
// Styles 4000 to 4100 are translucent, with opacity (style - 4000)%.
// Hatch patterns (3xxx) are not supported and painted solid.
func FillColor(f Fill, colors ColorResolver) color.Color {
	if f.Style == 0 {
		return nil
	}
	c := colors.Resolve(f.Color)
	if c == nil {
		return nil
	}
	if f.Style >= 4000 && f.Style <= 4100 {
		if f.Style == 4000 {
			return nil
		}
		return WithOpacity(c, float64(f.Style-4000)/100)
	}
	return c
}

// LineStyle resolves a line record into a stroking style.
// A zero width disables the stroke.
func LineStyle(l Line, colors ColorResolver) svgdraw.Style {
	st := svgdraw.Style{Kind: svgdraw.KindLine}
	if l.Width <= 0 {
		return st
	}
	st.Stroke = colors.Resolve(l.Color)
	st.LineWidth = float64(l.Width)
	st.Dash = LineDash(l.Style)
	return st
}

// FillStyle resolves a fill record into a filling style.
func FillStyle(f Fill, colors ColorResolver) svgdraw.Style {
	return svgdraw.Style{Kind: svgdraw.KindFill, Fill: FillColor(f, colors)}
}

// ShapeStyle combines a line and a fill record, for shapes
// painted with both.
func ShapeStyle(l Line, f Fill, colors ColorResolver) svgdraw.Style {
	st := LineStyle(l, colors)
	st.Fill = FillColor(f, colors)
	if st.Fill != nil {
		st.Kind = svgdraw.KindFill
	}
	return st
}

// MarkerShape is the geometric figure of a marker.
type MarkerShape uint8

const (
	ShapeDot MarkerShape = iota
	ShapeCircle
	ShapeSquare
	ShapeDiamond
	ShapeTriangleUp
	ShapeTriangleDown
	ShapeCross
	ShapeStar
	ShapePlus
	ShapeMult
	ShapeAsterisk
)

// Closed returns true if the figure ends at its start point.
func (s MarkerShape) Closed() bool {
	switch s {
	case ShapePlus, ShapeMult, ShapeAsterisk:
		return false
	}
	return true
}

// MarkerKind describes how a marker style is drawn.
type MarkerKind struct {
	Shape  MarkerShape
	Filled bool
	// Pixels is the fixed size of dot markers, zero otherwise.
	Pixels float64
}

var markerKinds = map[int]MarkerKind{
	1:  {ShapeDot, true, 1},
	2:  {ShapePlus, false, 0},
	3:  {ShapeAsterisk, false, 0},
	4:  {ShapeCircle, false, 0},
	5:  {ShapeMult, false, 0},
	6:  {ShapeDot, true, 2},
	7:  {ShapeDot, true, 3},
	8:  {ShapeCircle, true, 0},
	20: {ShapeCircle, true, 0},
	21: {ShapeSquare, true, 0},
	22: {ShapeTriangleUp, true, 0},
	23: {ShapeTriangleDown, true, 0},
	24: {ShapeCircle, false, 0},
	25: {ShapeSquare, false, 0},
	26: {ShapeTriangleUp, false, 0},
	27: {ShapeDiamond, false, 0},
	28: {ShapeCross, false, 0},
	29: {ShapeStar, true, 0},
	30: {ShapeStar, false, 0},
	31: {ShapeAsterisk, false, 0},
	32: {ShapeTriangleDown, false, 0},
	33: {ShapeDiamond, true, 0},
	34: {ShapeCross, true, 0},
}

// MarkerKindOf returns the kind of a ROOT marker style.
// Styles 9 to 19 are single pixel dots, and unknown styles
// are drawn as filled circles.
func MarkerKindOf(style int) MarkerKind {
	if k, ok := markerKinds[style]; ok {
		return k
	}
	if style >= 9 && style <= 19 {
		return MarkerKind{ShapeDot, true, 1}
	}
	return MarkerKind{ShapeCircle, true, 0}
}

// PixelSize returns the size of the marker figure, in pixels.
func (m Marker) PixelSize() float64 {
	if k := MarkerKindOf(m.Style); k.Pixels > 0 {
		return k.Pixels
	}
	return 8 * m.Size
}

// MarkerStyle resolves a marker record: filled figures are
// filled and stroked with the marker color, open ones only stroked.
func MarkerStyle(m Marker, colors ColorResolver) svgdraw.Style {
	c := colors.Resolve(m.Color)
	st := svgdraw.Style{Kind: svgdraw.KindMarker}
	if MarkerKindOf(m.Style).Filled {
		st.Fill = c
		if MarkerKindOf(m.Style).Shape != ShapeDot {
			st.Stroke = c
			st.LineWidth = 1
		}
		return st
	}
	st.Stroke = c
	st.LineWidth = 1
	return st
}
