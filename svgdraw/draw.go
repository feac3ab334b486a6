// Package svgdraw defines the contract between the painters, which
// know about plot objects and coordinates, and the drawing backends,
// which only receive SVG path data and text requests in device space.
package svgdraw

import (
	"context"
	"image/color"
)

// Kind is the visual category of an accumulated path.
type Kind uint8

const (
	KindNone Kind = iota
	KindFill
	KindLine
	KindMarker
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFill:
		return "fill"
	case KindLine:
		return "line"
	case KindMarker:
		return "marker"
	default:
		return "<unknown Kind>"
	}
}

// Style is a resolved painting style, with colors already
// looked up in the palette.
type Style struct {
	Kind Kind

	Fill   color.Color // nil disables filling
	Stroke color.Color // nil disables stroking

	LineWidth float64
	Dash      []float64 // nil or empty for plain lines
}

// Text is a text drawing request, positioned in device space.
type Text struct {
	X, Y  float64
	Text  string
	Color color.Color
	Font  int     // ROOT font code, such as 42
	Size  float64 // height in pixels
	Align int     // ROOT alignment, such as 22 for centered
	Angle float64 // counter clockwise, in degrees, in [0,360)

	// Container identifies the group the text is drawn into,
	// separated from the accumulated paths.
	Container string
}

// HorizontalAlign returns 1 (left), 2 (center) or 3 (right).
func (t Text) HorizontalAlign() int {
	h := t.Align / 10
	if h < 1 || h > 3 {
		return 1
	}
	return h
}

// VerticalAlign returns 1 (bottom), 2 (middle) or 3 (top).
func (t Text) VerticalAlign() int {
	v := t.Align % 10
	if v < 1 || v > 3 {
		return 1
	}
	return v
}

// Backend knows how to do the actual draw operations
// but doesn't need any plot knowledge.
// In particular, coordinates are already mapped to device space.
type Backend interface {
	// DrawPath paints the SVG path data `d` with the given style.
	DrawPath(d string, style Style)

	// DrawText paints a text. Backends usually need glyph metrics to
	// finalize the text position, so the operation is asynchronous:
	// the returned Pending resolves when the text is fully drawn.
	DrawText(ctx context.Context, t Text) *Pending
}

// FileBackend is a backend whose output may be saved.
type FileBackend interface {
	Backend
	SaveToFile(filename string) error
}
