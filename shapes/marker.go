package shapes

import (
	"context"
	"math"
	"strings"

	"github.com/benoitkugler/okpaint"
	"github.com/benoitkugler/okpaint/attr"
	"github.com/benoitkugler/okpaint/svgdraw"
	"github.com/benoitkugler/okpaint/svgpath"
)

// MarkerShaper returns the path of markers of one style.
// Consecutive markers are positioned relatively to the previous one
// when it is shorter, so the shaper must be reset when starting a new path.
type MarkerShaper struct {
	precision svgpath.Precision
	kind      attr.MarkerKind
	size      float64

	lastX, lastY float64
	hasLast      bool
}

// NewMarkerShaper returns a shaper for the marker attributes `m`.
func NewMarkerShaper(m attr.Marker, prec svgpath.Precision) *MarkerShaper {
	return &MarkerShaper{precision: prec, kind: attr.MarkerKindOf(m.Style), size: m.PixelSize()}
}

// Reset forgets the previous marker position.
func (ms *MarkerShaper) Reset() { ms.hasLast = false }

// start returns the starting point of the figure, relative to the center.
func (ms *MarkerShaper) start() (dx, dy float64) {
	h := ms.size / 2
	switch ms.kind.Shape {
	case attr.ShapeDot, attr.ShapeSquare, attr.ShapeMult, attr.ShapeAsterisk:
		return -h, -h
	case attr.ShapeCircle, attr.ShapeDiamond:
		return -h, 0
	case attr.ShapeTriangleUp, attr.ShapePlus, attr.ShapeStar:
		return 0, -h
	case attr.ShapeTriangleDown:
		return 0, h
	case attr.ShapeCross:
		return ms.size / 6, ms.size / 6
	}
	return 0, 0
}

// body writes the figure, with relative commands only.
func (ms *MarkerShaper) body(sb *strings.Builder) {
	f := ms.precision.Format
	full := ms.size
	h := full / 2
	write := func(parts ...string) {
		for _, p := range parts {
			sb.WriteString(p)
		}
	}
	switch ms.kind.Shape {
	case attr.ShapeDot, attr.ShapeSquare:
		write("v", f(full), "h", f(full), "v", f(-full), "z")
	case attr.ShapeCircle:
		write("a", f(h), ",", f(h), ",0,1,0,", f(full), ",0",
			"a", f(h), ",", f(h), ",0,1,0,", f(-full), ",0z")
	case attr.ShapeDiamond:
		write("l", f(h), ",", f(-h), "l", f(h), ",", f(h), "l", f(-h), ",", f(h), "z")
	case attr.ShapeTriangleUp:
		write("l", f(-h), ",", f(full), "h", f(full), "z")
	case attr.ShapeTriangleDown:
		write("l", f(-h), ",", f(-full), "h", f(full), "z")
	case attr.ShapeCross:
		d, md := f(full/3), f(-full/3)
		write("h", d, "v", md, "h", md, "v", md, "h", md, "v", d,
			"h", md, "v", d, "h", d, "v", d, "h", d, "z")
	case attr.ShapeStar:
		// 5 branches, inner radius 0.382 of the outer
		var px, py float64 = 0, -h
		for i := 1; i < 10; i++ {
			r := h
			if i%2 == 1 {
				r = 0.382 * h
			}
			a := -math.Pi/2 + float64(i)*math.Pi/5
			x, y := r*math.Cos(a), r*math.Sin(a)
			write("l", f(x-px), ",", f(y-py))
			px, py = x, y
		}
		write("z")
	case attr.ShapePlus:
		write("v", f(full), "m", f(-h), ",", f(-h), "h", f(full))
	case attr.ShapeMult:
		write("l", f(full), ",", f(full), "m0,", f(-full), "l", f(-full), ",", f(full))
	case attr.ShapeAsterisk:
		write("l", f(full), ",", f(full), "m0,", f(-full), "l", f(-full), ",", f(full),
			"m0,", f(-h), "h", f(full), "m", f(-h), ",", f(-h), "v", f(full))
	}
}

// Create returns the path of a marker centered at (x, y), in device space.
// The move to the figure start is absolute, or relative to the end of the
// previous closed figure when that is shorter.
func (ms *MarkerShaper) Create(x, y float64) string {
	if ms.size <= 0 {
		return ""
	}
	p := ms.precision
	dx, dy := ms.start()
	sx, sy := p.Apply(x+dx), p.Apply(y+dy)

	move := "M" + p.Format(sx) + "," + p.Format(sy)
	if ms.hasLast {
		rel := "m" + p.Format(sx-ms.lastX) + "," + p.Format(sy-ms.lastY)
		if len(rel) < len(move) {
			move = rel
		}
	}

	var sb strings.Builder
	sb.WriteString(move)
	ms.body(&sb)

	// open figures do not end at a known position
	ms.lastX, ms.lastY, ms.hasLast = sx, sy, ms.kind.Shape.Closed()
	return sb.String()
}

// Marker is a TMarker.
type Marker struct {
	X, Y      float64
	MarkerAtt attr.Marker
	NDC       bool
}

func (m Marker) Draw(ctx context.Context, t Target) *svgdraw.Pending {
	x, y, err := t.point(m.NDC, m.X, m.Y)
	if err != nil {
		return svgdraw.Resolved(err)
	}
	if d := NewMarkerShaper(m.MarkerAtt, t.Precision).Create(x, y); d != "" {
		t.Backend.DrawPath(d, attr.MarkerStyle(m.MarkerAtt, t.Palette()))
	}
	return svgdraw.Resolved(nil)
}

// PolyMarker is a TPolyMarker: all markers are drawn in one path.
type PolyMarker struct {
	X, Y      []float64
	MarkerAtt attr.Marker
}

func (pm PolyMarker) Draw(ctx context.Context, t Target) *svgdraw.Pending {
	shaper := NewMarkerShaper(pm.MarkerAtt, t.Precision)
	var sb strings.Builder
	n := min(len(pm.X), len(pm.Y))
	for i := 0; i < n; i++ {
		x, y, err := t.point(false, pm.X[i], pm.Y[i])
		if err != nil {
			okpaint.Logger().Debug("shapes: marker skipped", "index", i, "error", err)
			continue
		}
		sb.WriteString(shaper.Create(x, y))
	}
	if sb.Len() != 0 {
		t.Backend.DrawPath(sb.String(), attr.MarkerStyle(pm.MarkerAtt, t.Palette()))
	}
	return svgdraw.Resolved(nil)
}
