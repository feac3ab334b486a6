// Package svgpdf implements a backend writing a one page PDF document,
// using github.com/benoitkugler/pdf.
//
// Texts are not supported: they are logged and skipped.
// The backend is registered under the name "pdf".
package svgpdf

import (
	"context"
	"fmt"
	"image/color"

	"github.com/benoitkugler/okpaint"
	"github.com/benoitkugler/okpaint/svgdraw"
	"github.com/benoitkugler/okpaint/svgpath"
	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"golang.org/x/image/math/fixed"
)

func init() {
	svgdraw.Register("pdf", func(width, height float64) svgdraw.FileBackend { return NewRenderer(width, height) })
}

// assert interface conformance
var (
	_ svgdraw.FileBackend = (*Renderer)(nil)
	_ svgpath.Adder       = pather{}
)

// Renderer records the paths and writes them on a page
// of the pad size, one pixel being one PDF point.
// It is safe for concurrent use.
type Renderer struct {
	Width, Height float64

	calls svgdraw.Recorder
}

// NewRenderer returns an empty page of the given size.
func NewRenderer(width, height float64) *Renderer {
	return &Renderer{Width: width, Height: height}
}

func (r *Renderer) DrawPath(d string, style svgdraw.Style) {
	r.calls.DrawPath(d, style)
}

// DrawText is not supported: the text is skipped.
func (r *Renderer) DrawText(ctx context.Context, t svgdraw.Text) *svgdraw.Pending {
	okpaint.Logger().Warn("svgpdf: texts are not supported", "text", t.Text, "container", t.Container)
	return svgdraw.Resolved(nil)
}

// pather writes the path commands in the content stream.
type pather struct {
	pdf *contentstream.Appearance
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p pather) Start(a fixed.Point26_6) {
	x, y := fixedTof(a)
	p.pdf.Ops(contentstream.OpMoveTo{X: x, Y: y})
}

func (p pather) Line(b fixed.Point26_6) {
	x, y := fixedTof(b)
	p.pdf.Ops(contentstream.OpLineTo{X: x, Y: y})
}

func (p pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.Ops(contentstream.OpCurveTo1{X2: cx, Y2: cy, X3: x, Y3: y})
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.Ops(contentstream.OpCubicTo{X1: cx0, Y1: cy0, X2: cx1, Y2: cy1, X3: x, Y3: y})
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.Ops(contentstream.OpClosePath{})
	}
}

// page writes the content of one page.
type page struct {
	pdf                 *contentstream.Appearance
	fillOpacityStates   map[float64]*model.GraphicState
	strokeOpacityStates map[float64]*model.GraphicState
}

// opacity returns the color without alpha, and its opacity
func opacity(c color.Color) (color.Color, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	op := float64(n.A) / 255
	n.A = 0xff
	return n, op
}

func (pg *page) fill(path svgpath.Path, c color.Color) {
	col, op := opacity(c)
	pg.pdf.SetColorFill(col)
	// cache the opacity states
	gs, ok := pg.fillOpacityStates[op]
	if !ok {
		gs = &model.GraphicState{Ca: model.ObjFloat(op), BM: []model.Name{"Normal"}}
		pg.fillOpacityStates[op] = gs
	}
	name := pg.pdf.AddExtGState(gs)
	pg.pdf.Ops(contentstream.OpSetExtGState{Dict: name})

	path.AddTo(pather{pdf: pg.pdf})
	pg.pdf.Ops(contentstream.OpFill{}) // non-zero winding
}

func (pg *page) stroke(path svgpath.Path, st svgdraw.Style) {
	col, op := opacity(st.Stroke)
	pg.pdf.SetColorStroke(col)
	gs, ok := pg.strokeOpacityStates[op]
	if !ok {
		gs = &model.GraphicState{CA: model.ObjFloat(op), BM: []model.Name{"Normal"}}
		pg.strokeOpacityStates[op] = gs
	}
	name := pg.pdf.AddExtGState(gs)
	pg.pdf.Ops(
		contentstream.OpSetExtGState{Dict: name},
		contentstream.OpSetDash{Dash: model.DashPattern{Array: st.Dash}},
		contentstream.OpSetLineWidth{W: st.LineWidth},
		contentstream.OpSetLineCap{Style: 0},  // butt
		contentstream.OpSetLineJoin{Style: 0}, // miter
	)

	path.AddTo(pather{pdf: pg.pdf})
	pg.pdf.Ops(contentstream.OpStroke{})
}

func (pg *page) drawPath(d string, st svgdraw.Style) error {
	path, err := svgpath.Parse(d)
	if err != nil {
		return err
	}
	if st.Fill != nil {
		pg.fill(path, st.Fill)
	}
	if st.Stroke != nil && st.LineWidth > 0 {
		pg.stroke(path, st)
	}
	return nil
}

// Page returns the page content, with the device y axis
// flipped to the PDF one. Invalid paths are logged and skipped.
func (r *Renderer) Page() contentstream.Appearance {
	app := contentstream.NewAppearance(r.Width, r.Height)
	pg := page{
		pdf:                 &app,
		fillOpacityStates:   make(map[float64]*model.GraphicState),
		strokeOpacityStates: make(map[float64]*model.GraphicState),
	}
	app.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, r.Height}},
	)
	for _, c := range r.calls.Calls() {
		if err := pg.drawPath(c.Path, c.Style); err != nil {
			okpaint.Logger().Warn("svgpdf: invalid path data", "error", err)
		}
	}
	app.Ops(contentstream.OpRestore{})
	return app
}

// SaveToFile writes a PDF document with one page.
func (r *Renderer) SaveToFile(filename string) error {
	app := r.Page()
	var doc model.Document
	doc.Catalog.Pages.Kids = append(doc.Catalog.Pages.Kids, app.ToPageObject(true))
	if err := doc.WriteFile(filename, nil); err != nil {
		return fmt.Errorf("svgpdf: writing %s: %w", filename, err)
	}
	return nil
}
