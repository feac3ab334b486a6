package svgpath

import (
	"github.com/benoitkugler/okpaint"
	"github.com/benoitkugler/okpaint/svgdraw"
)

// Accumulator coalesces consecutive path fragments of the same kind
// into one draw call. At most one path is open at a time.
type Accumulator struct {
	Backend   svgdraw.Backend
	Precision Precision

	kind  svgdraw.Kind
	style svgdraw.Style
	b     Builder
	draws int
}

// Kind returns the kind of the open path, or KindNone.
func (a *Accumulator) Kind() svgdraw.Kind { return a.kind }

// Draws returns the number of draw calls emitted so far.
func (a *Accumulator) Draws() int { return a.draws }

// Extend returns the builder of the open path of the given kind.
// When another kind is open, it is flushed first, and a new path is
// opened with the style returned by `style`, which is only called then.
func (a *Accumulator) Extend(kind svgdraw.Kind, style func() svgdraw.Style) *Builder {
	if kind == a.kind {
		return &a.b
	}
	a.Flush()
	a.kind = kind
	a.style = style()
	a.style.Kind = kind
	a.b.Reset()
	a.b.Precision = a.Precision
	return &a.b
}

// Flush emits the open path, if any, with the style captured when
// it was opened, and closes it. An empty path emits nothing.
func (a *Accumulator) Flush() {
	if a.kind == svgdraw.KindNone {
		return
	}
	if d := a.b.String(); d != "" {
		a.Backend.DrawPath(d, a.style)
		a.draws++
		okpaint.Logger().Debug("svgpath: flushed path", "kind", a.kind, "length", len(d))
	}
	a.kind = svgdraw.KindNone
	a.style = svgdraw.Style{}
	a.b.Reset()
}
