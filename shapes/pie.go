package shapes

import (
	"context"
	"errors"
	"math"

	"github.com/benoitkugler/okpaint/attr"
	"github.com/benoitkugler/okpaint/svgdraw"
)

// PieSlice is one TPieSlice.
type PieSlice struct {
	Value   float64
	LineAtt attr.Line
	FillAtt attr.Fill
}

// Pie is a TPie: each slice is drawn as a separate path.
type Pie struct {
	X, Y, Radius  float64
	AngularOffset float64 // in degrees
	Slices        []PieSlice
}

var errEmptyPie = errors.New("shapes: pie has no positive total")

func (p Pie) Draw(ctx context.Context, t Target) *svgdraw.Pending {
	xc, yc, err := t.point(false, p.X, p.Y)
	if err != nil {
		return svgdraw.Resolved(err)
	}
	px, py, err := t.point(false, p.X+p.Radius, p.Y+p.Radius)
	if err != nil {
		return svgdraw.Resolved(err)
	}
	rx, ry := math.Abs(px-xc), math.Abs(yc-py)

	var total float64
	for _, s := range p.Slices {
		total += s.Value
	}
	if len(p.Slices) == 0 {
		return svgdraw.Resolved(nil)
	}
	if total <= 0 {
		return svgdraw.Resolved(errEmptyPie)
	}

	colors := t.Palette()
	prec := t.Precision
	af := p.AngularOffset
	x1, y1 := ellipsePoint(prec, rx, ry, af)
	for _, s := range p.Slices {
		span := s.Value / total * 360
		af += span
		x2, y2 := ellipsePoint(prec, rx, ry, af)

		path := t.NewBuilder()
		path.MoveTo(xc, yc)
		path.LineTo(xc+x1, yc+y1)
		path.Arc(rx, ry, 0, span > 180, false, xc+x2, yc+y2)
		path.Close(true)
		t.Backend.DrawPath(path.String(), attr.ShapeStyle(s.LineAtt, s.FillAtt, colors))

		x1, y1 = x2, y2
	}
	return svgdraw.Resolved(nil)
}
