package svgpath

import (
	"math"
	"strconv"
	"strings"
)

// Precision controls how coordinates are printed in path data.
// The zero value keeps full precision.
type Precision struct {
	// Round rounds values to the nearest integer, before
	// Digits is applied.
	Round bool
	// Digits, when positive, is the number of decimal digits kept.
	Digits int
}

// Apply returns `v` adjusted to the precision.
func (p Precision) Apply(v float64) float64 {
	if p.Round {
		v = math.Round(v)
	}
	if p.Digits > 0 {
		f := math.Pow(10, float64(p.Digits))
		v = math.Round(v*f) / f
	}
	if v == 0 { // avoid -0
		v = 0
	}
	return v
}

// Format returns the shortest representation of `v`.
func (p Precision) Format(v float64) string {
	return strconv.FormatFloat(p.Apply(v), 'f', -1, 64)
}

// Builder writes SVG path data, tracking the current point
// so that it can emit the shortest segments.
type Builder struct {
	Precision Precision

	sb     strings.Builder
	x, y   float64 // current point
	sx, sy float64 // start of the current sub-path
	hasPos bool
}

func (b *Builder) num(v float64) {
	b.sb.WriteString(b.Precision.Format(v))
}

func (b *Builder) pair(x, y float64) {
	b.num(x)
	b.sb.WriteByte(',')
	b.num(y)
}

// String returns the path data written so far.
func (b *Builder) String() string { return b.sb.String() }

// Len returns the length of the path data.
func (b *Builder) Len() int { return b.sb.Len() }

// Reset discards the path data, keeping the precision.
func (b *Builder) Reset() {
	b.sb.Reset()
	b.x, b.y, b.sx, b.sy = 0, 0, 0, 0
	b.hasPos = false
}

// Pos returns the current point.
func (b *Builder) Pos() (x, y float64) { return b.x, b.y }

// MoveTo starts a new sub-path at (x, y).
func (b *Builder) MoveTo(x, y float64) {
	b.sb.WriteByte('M')
	b.pair(x, y)
	b.x, b.y, b.sx, b.sy = x, y, x, y
	b.hasPos = true
}

// RelMoveTo starts a new sub-path, relative to the current point.
func (b *Builder) RelMoveTo(dx, dy float64) {
	b.sb.WriteByte('m')
	b.pair(dx, dy)
	b.x += dx
	b.y += dy
	b.sx, b.sy = b.x, b.y
	b.hasPos = true
}

// LineTo draws a line to (x, y), using the relative `h` or `v`
// form when exactly one coordinate is unchanged.
// Without a current point, it starts a new sub-path.
func (b *Builder) LineTo(x, y float64) {
	switch {
	case !b.hasPos:
		b.MoveTo(x, y)
		return
	case x != b.x && y == b.y:
		b.sb.WriteByte('h')
		b.num(x - b.x)
	case x == b.x && y != b.y:
		b.sb.WriteByte('v')
		b.num(y - b.y)
	default:
		b.sb.WriteByte('L')
		b.pair(x, y)
	}
	b.x, b.y = x, y
}

// HLine draws an horizontal line of length `dx`.
func (b *Builder) HLine(dx float64) {
	b.sb.WriteByte('h')
	b.num(dx)
	b.x += dx
}

// VLine draws a vertical line of length `dy`.
func (b *Builder) VLine(dy float64) {
	b.sb.WriteByte('v')
	b.num(dy)
	b.y += dy
}

// RelLineTo draws a line to the current point translated by (dx, dy).
func (b *Builder) RelLineTo(dx, dy float64) {
	b.sb.WriteByte('l')
	b.pair(dx, dy)
	b.x += dx
	b.y += dy
}

// Arc draws an elliptical arc to (x, y), with the SVG `A` semantics.
func (b *Builder) Arc(rx, ry, rot float64, largeArc, sweep bool, x, y float64) {
	b.sb.WriteByte('A')
	b.pair(rx, ry)
	b.sb.WriteByte(',')
	b.num(rot)
	b.sb.WriteByte(',')
	b.sb.WriteString(flag(largeArc))
	b.sb.WriteByte(',')
	b.sb.WriteString(flag(sweep))
	b.sb.WriteByte(',')
	b.pair(x, y)
	b.x, b.y = x, y
}

func flag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Close closes the current sub-path, with the uppercase `Z`
// or the lowercase `z` when `lower` is true.
func (b *Builder) Close(lower bool) {
	if lower {
		b.sb.WriteByte('z')
	} else {
		b.sb.WriteByte('Z')
	}
	b.x, b.y = b.sx, b.sy
}

// Raw appends pre-formatted path data. The current point is
// updated to (x, y), which should be the end point of `d`.
func (b *Builder) Raw(d string, x, y float64) {
	if d == "" {
		return
	}
	b.sb.WriteString(d)
	b.x, b.y = x, y
	b.hasPos = true
}
