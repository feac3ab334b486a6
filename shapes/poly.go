package shapes

import (
	"context"
	"fmt"

	"github.com/benoitkugler/okpaint"
	"github.com/benoitkugler/okpaint/attr"
	"github.com/benoitkugler/okpaint/svgdraw"
)

// PolyLine is a TPolyLine. When Graph is true, the points come from
// a TGraph like object, which is never filled.
type PolyLine struct {
	X, Y    []float64
	LineAtt attr.Line
	FillAtt attr.Fill
	NDC     bool
	Graph   bool
}

func (p PolyLine) Draw(ctx context.Context, t Target) *svgdraw.Pending {
	if len(p.X) != len(p.Y) {
		return svgdraw.Resolved(fmt.Errorf("shapes: polyline with %d x and %d y", len(p.X), len(p.Y)))
	}
	path := t.NewBuilder()
	for i := range p.X {
		x, y, err := t.point(p.NDC, p.X[i], p.Y[i])
		if err != nil {
			okpaint.Logger().Debug("shapes: polyline point skipped", "index", i, "error", err)
			continue
		}
		path.LineTo(x, y) // the first point starts the path
	}
	if path.Len() == 0 {
		return svgdraw.Resolved(nil)
	}

	style := attr.ShapeStyle(p.LineAtt, p.FillAtt, t.Palette())
	if p.Graph {
		style.Fill = nil
		style.Kind = svgdraw.KindLine
	}
	if style.Fill != nil {
		path.Close(false)
	}
	t.Backend.DrawPath(path.String(), style)
	return svgdraw.Resolved(nil)
}

// Line is a TLine.
type Line struct {
	X1, Y1, X2, Y2 float64
	LineAtt        attr.Line
	NDC            bool
}

func (l Line) Draw(ctx context.Context, t Target) *svgdraw.Pending {
	x1, y1, err := t.point(l.NDC, l.X1, l.Y1)
	if err != nil {
		return svgdraw.Resolved(err)
	}
	x2, y2, err := t.point(l.NDC, l.X2, l.Y2)
	if err != nil {
		return svgdraw.Resolved(err)
	}
	path := t.NewBuilder()
	path.MoveTo(x1, y1)
	path.LineTo(x2, y2)
	t.Backend.DrawPath(path.String(), attr.LineStyle(l.LineAtt, t.Palette()))
	return svgdraw.Resolved(nil)
}
