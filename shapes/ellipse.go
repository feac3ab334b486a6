package shapes

import (
	"context"
	"math"

	"github.com/benoitkugler/okpaint"
	"github.com/benoitkugler/okpaint/attr"
	"github.com/benoitkugler/okpaint/svgdraw"
	"github.com/benoitkugler/okpaint/svgpath"
)

// samples used for rotated ellipses
const ellipseSamples = 200

// Ellipse is a TEllipse, or a TCrown when Crown is true.
// Angles are in degrees, counter clockwise.
type Ellipse struct {
	X1, Y1         float64 // center
	R1, R2         float64 // radii; for a crown, inner and outer radius
	PhiMin, PhiMax float64
	Theta          float64 // rotation

	Crown bool

	LineAtt attr.Line
	FillAtt attr.Fill
}

func (e Ellipse) closed() bool { return e.PhiMin == 0 && e.PhiMax == 360 }

func (e Ellipse) Draw(ctx context.Context, t Target) *svgdraw.Pending {
	x, y, err := t.point(false, e.X1, e.Y1)
	if err != nil {
		return svgdraw.Resolved(err)
	}
	px, py, err := t.point(false, e.X1+e.R1, e.Y1+e.R2)
	if err != nil {
		return svgdraw.Resolved(err)
	}
	rx, ry := math.Abs(px-x), math.Abs(y-py)

	path := t.NewBuilder()
	switch {
	case e.Crown && e.R1 > 0:
		err = e.crownPath(t, path, x, y)
	case e.Theta == 0:
		if e.Crown { // same as an ellipse with equal radius
			px, _, err = t.point(false, e.X1+e.R2, e.Y1)
			rx = math.Abs(px - x)
		}
		if err == nil {
			e.axisAlignedPath(path, x, y, rx, ry)
		}
	default:
		e.rotatedPath(t, path, x, y)
	}
	if err != nil {
		return svgdraw.Resolved(err)
	}

	t.Backend.DrawPath(path.String(), attr.ShapeStyle(e.LineAtt, e.FillAtt, t.Palette()))
	return svgdraw.Resolved(nil)
}

// fullEllipse adds two half arcs, with the given sweep direction.
func fullEllipse(path *svgpath.Builder, x, y, rx, ry float64, sweep bool) {
	path.MoveTo(x-rx, y)
	path.Arc(rx, ry, 0, true, sweep, x+rx, y)
	path.Arc(rx, ry, 0, true, sweep, x-rx, y)
	path.Close(false)
}

// ellipsePoint returns the device position at angle `phi` (in degrees),
// rounded with `prec`; device y grows downward.
func ellipsePoint(prec svgpath.Precision, rx, ry, phi float64) (dx, dy float64) {
	a := phi * math.Pi / 180
	return prec.Apply(rx * math.Cos(a)), prec.Apply(-ry * math.Sin(a))
}

func (e Ellipse) axisAlignedPath(path *svgpath.Builder, x, y, rx, ry float64) {
	if e.closed() {
		fullEllipse(path, x, y, rx, ry, false)
		return
	}
	x1, y1 := ellipsePoint(path.Precision, rx, ry, e.PhiMin)
	x2, y2 := ellipsePoint(path.Precision, rx, ry, e.PhiMax)
	path.MoveTo(x, y)
	path.LineTo(x+x1, y+y1)
	path.Arc(rx, ry, 0, e.PhiMax-e.PhiMin >= 180, false, x+x2, y+y2)
	path.Close(false)
}

func (e Ellipse) crownPath(t Target, path *svgpath.Builder, x, y float64) error {
	px1, py1, err := t.point(false, e.X1+e.R1, e.Y1+e.R1)
	if err != nil {
		return err
	}
	px2, py2, err := t.point(false, e.X1+e.R2, e.Y1+e.R2)
	if err != nil {
		return err
	}
	rx1, ry1 := math.Abs(px1-x), math.Abs(y-py1)
	rx2, ry2 := math.Abs(px2-x), math.Abs(y-py2)

	if e.closed() {
		// the inner ring runs backward, leaving a hole with the non zero rule
		fullEllipse(path, x, y, rx2, ry2, false)
		fullEllipse(path, x, y, rx1, ry1, true)
		return nil
	}

	large := e.PhiMax-e.PhiMin >= 180
	prec := path.Precision
	dx1, dy1 := ellipsePoint(prec, rx2, ry2, e.PhiMin)
	dx2, dy2 := ellipsePoint(prec, rx2, ry2, e.PhiMax)
	dx3, dy3 := ellipsePoint(prec, rx1, ry1, e.PhiMin)
	dx4, dy4 := ellipsePoint(prec, rx1, ry1, e.PhiMax)

	path.MoveTo(x+dx2, y+dy2)
	path.Arc(rx2, ry2, 0, large, true, x+dx1, y+dy1)
	path.LineTo(x+dx3, y+dy3)
	path.Arc(rx1, ry1, 0, large, false, x+dx4, y+dy4)
	path.Close(false)
	return nil
}

// rotatedPath samples the ellipse in data space, so that non linear
// axes are honored. Points outside of the axes domains are skipped.
func (e Ellipse) rotatedPath(t Target, path *svgpath.Builder, x, y float64) {
	ct, st := math.Cos(e.Theta*math.Pi/180), math.Sin(e.Theta*math.Pi/180)
	phi1, phi2 := e.PhiMin*math.Pi/180, e.PhiMax*math.Pi/180
	closed := e.closed()
	n := ellipseSamples
	if !closed {
		n--
	}
	dphi := (phi2 - phi1) / float64(n)

	started := false
	var lastx, lasty float64
	if !closed {
		path.MoveTo(x, y)
		started, lastx, lasty = true, x, y
	}
	for i := 0; i < ellipseSamples; i++ {
		angle := phi1 + float64(i)*dphi
		dx, dy := e.R1*math.Cos(angle), e.R2*math.Sin(angle)
		px, py, err := t.point(false, e.X1+dx*ct-dy*st, e.Y1+dx*st+dy*ct)
		if err != nil {
			okpaint.Logger().Debug("shapes: ellipse point skipped", "error", err)
			continue
		}
		px, py = path.Precision.Apply(px), path.Precision.Apply(py)
		switch {
		case !started:
			path.MoveTo(px, py)
			started = true
		case px == lastx:
			path.VLine(py - lasty)
		case py == lasty:
			path.HLine(px - lastx)
		default:
			path.RelLineTo(px-lastx, py-lasty)
		}
		lastx, lasty = px, py
	}
	if started {
		path.Close(false)
	}
}
