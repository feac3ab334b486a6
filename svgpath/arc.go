package svgpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// maxArcSpan is the widest parametric angle approximated by a
// single cubic segment.
const maxArcSpan = math.Pi / 8

func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// Arc is an elliptical arc in the endpoint form of the `A`
// command, going from (X0, Y0) to (X, Y).
type Arc struct {
	X0, Y0   float64
	Rx, Ry   float64
	Rotation float64 // in degrees
	Large    bool
	Sweep    bool
	X, Y     float64
}

// ellipse is the center form of an arc: start and span
// are parametric angles, in radians.
type ellipse struct {
	cx, cy   float64
	rx, ry   float64
	sin, cos float64
	start    float64
	span     float64
}

func (e ellipse) at(eta float64) (x, y float64) {
	a, b := e.rx*math.Cos(eta), e.ry*math.Sin(eta)
	return e.cx + a*e.cos - b*e.sin, e.cy + a*e.sin + b*e.cos
}

func (e ellipse) tangent(eta float64) (dx, dy float64) {
	a, b := -e.rx*math.Sin(eta), e.ry*math.Cos(eta)
	return a*e.cos - b*e.sin, a*e.sin + b*e.cos
}

// center resolves the center and angles of the arc. Radii too small
// to join both end points are scaled up, keeping their ratio.
// The radii must be non zero.
func (a Arc) center() ellipse {
	e := ellipse{rx: math.Abs(a.Rx), ry: math.Abs(a.Ry)}
	e.sin, e.cos = math.Sincos(a.Rotation * math.Pi / 180)

	// end points, relative to their middle, in the ellipse axes
	hx, hy := (a.X0-a.X)/2, (a.Y0-a.Y)/2
	x1 := e.cos*hx + e.sin*hy
	y1 := -e.sin*hx + e.cos*hy

	if l := x1*x1/(e.rx*e.rx) + y1*y1/(e.ry*e.ry); l > 1 {
		l = math.Sqrt(l)
		e.rx *= l
		e.ry *= l
	}

	rx2, ry2 := e.rx*e.rx, e.ry*e.ry
	var k float64
	if den := rx2*y1*y1 + ry2*x1*x1; den > 0 {
		k = math.Sqrt(math.Max(0, (rx2*ry2-den)/den))
	}
	if a.Large == a.Sweep {
		k = -k
	}
	cx1, cy1 := k*e.rx*y1/e.ry, -k*e.ry*x1/e.rx

	e.cx = e.cos*cx1 - e.sin*cy1 + (a.X0+a.X)/2
	e.cy = e.sin*cx1 + e.cos*cy1 + (a.Y0+a.Y)/2

	e.start = math.Atan2((y1-cy1)/e.ry, (x1-cx1)/e.rx)
	end := math.Atan2((-y1-cy1)/e.ry, (-x1-cx1)/e.rx)
	e.span = end - e.start
	if a.Sweep && e.span < 0 {
		e.span += 2 * math.Pi
	} else if !a.Sweep && e.span > 0 {
		e.span -= 2 * math.Pi
	}
	return e
}

// Cubics approximates the arc by cubic bezier segments, following
// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
// or cubic Bezier curves", 2003. `emit` receives the two control
// points and the end point of each segment; the last end point
// is exactly (X, Y).
func (a Arc) Cubics(emit func(c1x, c1y, c2x, c2y, x, y float64)) {
	e := a.center()
	segs := int(math.Ceil(math.Abs(e.span)/maxArcSpan - 1e-9))
	if segs == 0 {
		return
	}
	step := e.span / float64(segs)
	t := math.Tan(step / 2)
	alpha := math.Sin(step) * (math.Sqrt(4+3*t*t) - 1) / 3

	x0, y0 := a.X0, a.Y0
	dx0, dy0 := e.tangent(e.start)
	for i := 1; i <= segs; i++ {
		eta := e.start + step*float64(i)
		x, y := a.X, a.Y
		if i < segs {
			x, y = e.at(eta)
		}
		dx, dy := e.tangent(eta)
		emit(x0+alpha*dx0, y0+alpha*dy0, x-alpha*dx, y-alpha*dy, x, y)
		x0, y0, dx0, dy0 = x, y, dx, dy
	}
}

// addArc appends the cubic approximation of `a` to the path.
func (p *Path) addArc(a Arc) {
	a.Cubics(func(c1x, c1y, c2x, c2y, x, y float64) {
		p.CubeBezier(toFixedP(c1x, c1y), toFixedP(c2x, c2y), toFixedP(x, y))
	})
}
