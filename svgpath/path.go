package svgpath

import (
	"strings"

	"golang.org/x/image/math/fixed"
)

type pathCommand uint8

// Human readable path constants
const (
	pathMoveTo pathCommand = iota
	pathLineTo
	pathQuadTo
	pathCubicTo
	pathClose
)

// Operation groups the different absolute path commands.
type Operation interface {
	command() pathCommand
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (MoveTo) command() pathCommand  { return pathMoveTo }
func (LineTo) command() pathCommand  { return pathLineTo }
func (QuadTo) command() pathCommand  { return pathQuadTo }
func (CubicTo) command() pathCommand { return pathCubicTo }
func (Close) command() pathCommand   { return pathClose }

// Path describes a sequence of basic operations, in absolute coordinates,
// as consumed by the raster and PDF backends.
type Path []Operation

var svgPrecision = Precision{Digits: 3}

func writeFixed(sb *strings.Builder, pts ...fixed.Point26_6) {
	for i, p := range pts {
		if i > 0 {
			sb.WriteByte(',')
		}
		x, y := fixedTof(p)
		sb.WriteString(svgPrecision.Format(x))
		sb.WriteByte(',')
		sb.WriteString(svgPrecision.Format(y))
	}
}

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	var sb strings.Builder
	for i, op := range p {
		if i > 0 {
			sb.WriteByte(' ')
		}
		switch op := op.(type) {
		case MoveTo:
			sb.WriteByte('M')
			writeFixed(&sb, fixed.Point26_6(op))
		case LineTo:
			sb.WriteByte('L')
			writeFixed(&sb, fixed.Point26_6(op))
		case QuadTo:
			sb.WriteByte('Q')
			writeFixed(&sb, op[:]...)
		case CubicTo:
			sb.WriteByte('C')
			writeFixed(&sb, op[:]...)
		case Close:
			sb.WriteByte('Z')
		}
	}
	return sb.String()
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Adder is implemented by types accumulating path commands,
// such as the rasterx scanners.
type Adder interface {
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
}

// AddTo adds the Path p to q.
func (p Path) AddTo(q Adder) {
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			q.Stop(false) // implicit close if currently in path
			q.Start(fixed.Point26_6(op))
		case LineTo:
			q.Line(fixed.Point26_6(op))
		case QuadTo:
			q.QuadBezier(op[0], op[1])
		case CubicTo:
			q.CubeBezier(op[0], op[1], op[2])
		case Close:
			q.Stop(true)
		}
	}
	q.Stop(false)
}
