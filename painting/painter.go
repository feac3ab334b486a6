package painting

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"

	"github.com/benoitkugler/okpaint"
	"github.com/benoitkugler/okpaint/attr"
	"github.com/benoitkugler/okpaint/coords"
	"github.com/benoitkugler/okpaint/shapes"
	"github.com/benoitkugler/okpaint/svgdraw"
	"github.com/benoitkugler/okpaint/svgpath"
)

// ErrorMode defines how unknown or malformed operations are reported.
// In every mode, the interpretation stops at such an operation.
type ErrorMode uint8

const (
	// IgnoreErrorMode stops silently.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning and stops.
	WarnErrorMode
	// StrictErrorMode stops and returns an error wrapping ErrUnknownOp.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return fmt.Sprintf("<unknown ErrorMode %d>", uint8(m))
	}
}

// ParseErrorMode is the inverse of ErrorMode.String.
func ParseErrorMode(s string) (ErrorMode, error) {
	for _, m := range [...]ErrorMode{IgnoreErrorMode, WarnErrorMode, StrictErrorMode} {
		if m.String() == s {
			return m, nil
		}
	}
	return 0, fmt.Errorf("painting: invalid error mode %q", s)
}

// Painting is a serialized TWebPainting. It is only read by the interpreter.
type Painting struct {
	Oper string
	Buf  []float64
}

var _ shapes.Drawable = (*Painting)(nil)

// Draw runs the painting with the default options.
func (p *Painting) Draw(ctx context.Context, t shapes.Target) *svgdraw.Pending {
	return Painter{Target: t, Options: DefaultOptions()}.Paint(ctx, p)
}

// WithOptions returns a Drawable running `p` with the given options.
func (p *Painting) WithOptions(opts Options) shapes.Drawable {
	return configured{painting: p, opts: opts}
}

type configured struct {
	painting *Painting
	opts     Options
}

func (c configured) Draw(ctx context.Context, t shapes.Target) *svgdraw.Pending {
	return Painter{Target: t, Options: c.opts}.Paint(ctx, c.painting)
}

// Options tune the interpretation.
type Options struct {
	// Defaults are the attributes in effect before the first
	// attribute operation.
	Defaults attr.Defaults
	// SplitOnStyleChange closes the open path when the attributes
	// styling it change. Otherwise, the style captured when
	// the path was opened is kept for the whole run.
	SplitOnStyleChange bool
	// ErrorMode selects how unknown operations are reported.
	ErrorMode ErrorMode
	// NDC interprets the buffer as pad fractions instead of
	// axis coordinates.
	NDC bool
}

// DefaultOptions returns the ROOT attribute defaults,
// without style splitting, warning on unknown operations.
func DefaultOptions() Options {
	return Options{Defaults: attr.RootDefaults(), ErrorMode: WarnErrorMode}
}

// Painter interprets paintings on a target.
type Painter struct {
	Target  shapes.Target
	Options Options
}

// Paint starts the interpretation on a new goroutine. The returned
// Pending resolves once every operation has been processed, texts
// included, and the last path flushed.
func (pt Painter) Paint(ctx context.Context, p *Painting) *svgdraw.Pending {
	return svgdraw.Go(func() error { return pt.Run(ctx, p) })
}

// Run interprets `p` synchronously.
//
// Context cancellation is checked between operations.
func (pt Painter) Run(ctx context.Context, p *Painting) error {
	if p == nil || p.Oper == "" {
		return nil
	}
	ps := &pass{
		Painter: pt,
		prog:    Decode(p.Oper),
		buf:     buffer{vals: p.Buf},
		state:   attr.NewState(pt.Options.Defaults),
		funcs:   pt.Target.Mapper.Funcs(pt.Options.NDC),
		colors:  pt.Target.Palette(),
		log:     okpaint.Logger(),
	}
	ps.acc = svgpath.Accumulator{Backend: pt.Target.Backend, Precision: pt.Target.Precision}
	return ps.run(ctx)
}

// pass holds the transient state of one interpretation.
type pass struct {
	Painter

	prog   Program
	buf    buffer
	cursor Cursor

	state    *attr.State
	acc      svgpath.Accumulator
	openedAt uint64 // generation of the attributes styling the open path

	funcs  coords.Funcs
	colors attr.ColorResolver
	log    *slog.Logger
}

func (ps *pass) run(ctx context.Context) error {
	defer ps.acc.Flush()

	if need := ps.prog.BufferLen(); need != len(ps.buf.vals) {
		ps.log.Debug("painting: buffer size mismatch", "required", need, "provided", len(ps.buf.vals))
	}

	for i, op := range ps.prog {
		if err := ctx.Err(); err != nil {
			return err
		}
		ps.cursor = Cursor{Op: i, Buf: ps.buf.pos}

		stop, err := ps.apply(ctx, op)
		if err != nil {
			return err
		}
		if stop {
			return nil
		}
	}
	if r := ps.buf.remaining(); r > 0 {
		ps.log.Debug("painting: unused buffer values", "count", r)
	}
	return nil
}

// apply processes one operation. It returns stop = true to
// end the interpretation without error.
func (ps *pass) apply(ctx context.Context, op Op) (stop bool, err error) {
	switch op := op.(type) {
	case LineAttr:
		ps.state.SetLine(op.Line)
	case FillAttr:
		ps.state.SetFill(op.Fill)
	case MarkerAttr:
		ps.state.SetMarker(op.Marker)
	case TextAttr:
		ps.state.StageText(op.Text)
	case Rect:
		err = ps.rect(op)
	case Poly:
		err = ps.poly(op)
	case MarkerRun:
		err = ps.markers(op)
	case TextOp:
		err = ps.text(ctx, op)
	case Unknown:
		return ps.unsupported(op, nil)
	case Malformed:
		return ps.unsupported(op, op.Err)
	}
	if err != nil {
		ps.acc.Flush()
		ps.log.Error("painting: interpretation failed", "cursor", ps.cursor.String(), "code", string(op.Code()), "error", err)
		return true, fmt.Errorf("%s (%c): %w", ps.cursor, op.Code(), err)
	}
	return false, nil
}

func (ps *pass) unsupported(op Op, cause error) (bool, error) {
	switch ps.Options.ErrorMode {
	case WarnErrorMode:
		ps.log.Warn("painting: unsupported operation", "cursor", ps.cursor.String(), "code", string(op.Code()), "error", cause)
	case StrictErrorMode:
		if cause != nil {
			return true, fmt.Errorf("%s (%c): %w: %w", ps.cursor, op.Code(), ErrUnknownOp, cause)
		}
		return true, fmt.Errorf("%s (%c): %w", ps.cursor, op.Code(), ErrUnknownOp)
	}
	return true, nil
}

// extend returns the open path of the given kind, opening
// a new one if needed.
func (ps *pass) extend(kind svgdraw.Kind) *svgpath.Builder {
	if ps.state.NeedsNewStyle(ps.acc.Kind(), ps.openedAt, kind, ps.Options.SplitOnStyleChange) {
		ps.acc.Flush()
	}
	if ps.acc.Kind() != kind {
		ps.openedAt = ps.state.Generation(kind)
	}
	return ps.acc.Extend(kind, func() svgdraw.Style { return ps.state.Style(kind, ps.colors) })
}

// point maps the i-th pair of `vals`, logging undrawable points.
func (ps *pass) point(vals []float64, i int) (x, y float64, ok bool) {
	x, y, err := ps.funcs.Point(vals[2*i], vals[2*i+1])
	if err != nil {
		ps.log.Debug("painting: point skipped", "cursor", ps.cursor.String(), "index", i, "error", err)
		return 0, 0, false
	}
	return x, y, true
}

func (ps *pass) rect(op Rect) error {
	kind := svgdraw.KindLine
	if op.Filled {
		kind = svgdraw.KindFill
	}
	path := ps.extend(kind)

	vals, err := ps.buf.take(4)
	if err != nil {
		return err
	}
	x1, y1, ok1 := ps.point(vals, 0)
	x2, y2, ok2 := ps.point(vals, 1)
	if !ok1 || !ok2 {
		return nil
	}
	path.MoveTo(x1, y1)
	path.HLine(x2 - x1)
	path.VLine(y2 - y1)
	path.HLine(x1 - x2)
	path.Close(true)
	return nil
}

func (ps *pass) poly(op Poly) error {
	kind := svgdraw.KindLine
	if op.Closed {
		kind = svgdraw.KindFill
	}
	path := ps.extend(kind)

	vals, err := ps.buf.take(2 * op.N)
	if err != nil {
		return err
	}
	started := false
	for i := 0; i < op.N; i++ {
		x, y, ok := ps.point(vals, i)
		if !ok {
			continue
		}
		if started {
			path.LineTo(x, y)
		} else {
			path.MoveTo(x, y)
			started = true
		}
	}
	if op.Closed && started {
		path.Close(false)
	}
	return nil
}

func (ps *pass) markers(op MarkerRun) error {
	path := ps.extend(svgdraw.KindMarker)

	vals, err := ps.buf.take(2 * op.N)
	if err != nil {
		return err
	}
	shaper := shapes.NewMarkerShaper(ps.state.Marker(), ps.Target.Precision)
	for i := 0; i < op.N; i++ {
		x, y, ok := ps.point(vals, i)
		if !ok {
			continue
		}
		path.Raw(shaper.Create(x, y), x, y)
	}
	return nil
}

// text flushes the open path and waits for the backend to
// complete the text before returning. Without a text size,
// the position is consumed and the open path is kept.
func (ps *pass) text(ctx context.Context, op TextOp) error {
	vals, err := ps.buf.take(2)
	if err != nil {
		return err
	}
	att := ps.state.Text()
	if att.Size == 0 {
		return nil
	}
	ps.acc.Flush()
	x, y, ok := ps.point(vals, 0)
	if !ok {
		return nil
	}

	var col color.Color = color.Black
	if c := ps.colors.Resolve(att.Color); c != nil {
		col = c
	}
	req := svgdraw.Text{
		X: x, Y: y,
		Text:      op.Text,
		Color:     col,
		Font:      att.Font,
		Size:      att.Height(ps.Target.Mapper.PadHeight()),
		Align:     att.Align,
		Angle:     att.NormalizedAngle(),
		Container: fmt.Sprintf("text%d", ps.cursor.Op),
	}
	return ps.Target.Backend.DrawText(ctx, req).Wait(ctx)
}
