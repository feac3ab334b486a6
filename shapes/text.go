package shapes

import (
	"context"
	"image/color"
	"math"

	"github.com/benoitkugler/okpaint/attr"
	"github.com/benoitkugler/okpaint/svgdraw"
)

// TextKind distinguishes the ROOT text classes, which
// scale relative sizes differently.
type TextKind uint8

const (
	PlainText TextKind = iota // TText
	LatexText                 // TLatex
	MathText                  // TMathText
)

func (k TextKind) sizeFactor() float64 {
	switch k {
	case LatexText:
		return 0.9
	case MathText:
		return 0.8
	}
	return 1
}

// Text is a TText, TLatex or TMathText. The content is drawn
// as is: no LaTeX layout is performed.
type Text struct {
	X, Y    float64
	Title   string
	TextAtt attr.Text
	Kind    TextKind
	NDC     bool
}

// defaultTextSize is used when the text size is zero.
const defaultTextSize = 0.05

// request computes the device space text request.
func (tx Text) request(t Target) (svgdraw.Text, error) {
	x, y, err := t.point(tx.NDC, tx.X, tx.Y)
	if err != nil {
		return svgdraw.Text{}, err
	}

	// relative sizes use the frame when positioned in data coordinates
	w, h := t.Mapper.PadWidth(), t.Mapper.PadHeight()
	if !tx.NDC {
		frame := t.Mapper.FrameRect()
		w, h = frame.Width, frame.Height
	}
	size := tx.TextAtt.Size
	if size == 0 {
		size = defaultTextSize
	}
	if size <= 1 {
		size = size * math.Min(w, h) * tx.Kind.sizeFactor()
	}

	var col color.Color = color.Black
	if c := t.Palette().Resolve(tx.TextAtt.Color); c != nil {
		col = c
	}
	return svgdraw.Text{
		X: x, Y: y,
		Text:  tx.Title,
		Color: col,
		Font:  tx.TextAtt.Font,
		Size:  math.Round(size),
		Align: tx.TextAtt.Align,
		Angle: tx.TextAtt.NormalizedAngle(),
	}, nil
}

func (tx Text) Draw(ctx context.Context, t Target) *svgdraw.Pending {
	req, err := tx.request(t)
	if err != nil {
		return svgdraw.Resolved(err)
	}
	return t.Backend.DrawText(ctx, req)
}
