package shapes

import (
	"context"
	"math"
	"strings"

	"github.com/benoitkugler/okpaint/attr"
	"github.com/benoitkugler/okpaint/svgdraw"
)

// Box is a TBox, or a TPave without text.
type Box struct {
	X1, Y1, X2, Y2 float64
	LineAtt        attr.Line
	FillAtt        attr.Fill
	// BorderMode is positive for a raised border, negative for a sunken one.
	BorderMode int
	BorderSize int // in pixels
	// Option is the draw option. With "L", the contour of a filled
	// box is drawn.
	Option string
}

func (b Box) Draw(ctx context.Context, t Target) *svgdraw.Pending {
	x1, y1, err := t.point(false, b.X1, b.Y1)
	if err != nil {
		return svgdraw.Resolved(err)
	}
	x2, y2, err := t.point(false, b.X2, b.Y2)
	if err != nil {
		return svgdraw.Resolved(err)
	}
	xx, yy := math.Min(x1, x2), math.Min(y1, y2)
	ww, hh := math.Abs(x2-x1), math.Abs(y1-y2)

	colors := t.Palette()
	style := attr.ShapeStyle(b.LineAtt, b.FillAtt, colors)
	// contour of filled boxes only with the L option
	if style.Fill != nil && !strings.Contains(strings.ToUpper(b.Option), "L") {
		style.Stroke = nil
	}

	path := t.NewBuilder()
	path.MoveTo(xx, yy)
	path.HLine(ww)
	path.VLine(hh)
	path.HLine(-ww)
	path.Close(true)
	t.Backend.DrawPath(path.String(), style)

	if b.BorderMode == 0 || b.BorderSize == 0 || style.Fill == nil {
		return svgdraw.Resolved(nil)
	}

	pww, phh := float64(b.BorderSize), float64(b.BorderSize)
	side1 := t.NewBuilder()
	side1.MoveTo(xx, yy)
	side1.HLine(ww)
	side1.RelLineTo(-pww, phh)
	side1.HLine(2*pww - ww)
	side1.VLine(hh - 2*phh)
	side1.RelLineTo(-pww, phh)
	side1.Close(true)

	side2 := t.NewBuilder()
	side2.MoveTo(xx+ww, yy+hh)
	side2.VLine(-hh)
	side2.RelLineTo(-pww, phh)
	side2.VLine(hh - 2*phh)
	side2.HLine(2*pww - ww)
	side2.RelLineTo(-pww, phh)
	side2.Close(true)

	if b.BorderMode < 0 {
		side1, side2 = side2, side1
	}

	t.Backend.DrawPath(side1.String(), svgdraw.Style{Kind: svgdraw.KindFill, Fill: attr.Brighter(style.Fill, 0.5)})
	t.Backend.DrawPath(side2.String(), svgdraw.Style{Kind: svgdraw.KindFill, Fill: attr.Darker(style.Fill, 0.5)})
	return svgdraw.Resolved(nil)
}
