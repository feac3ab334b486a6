package attr

import "github.com/benoitkugler/okpaint/svgdraw"

// Defaults are the records a State starts with.
type Defaults struct {
	Line   Line
	Fill   Fill
	Marker Marker
	Text   Text
}

// RootDefaults returns the ROOT attribute defaults: black solid lines
// of width 1, hollow fill and black dot markers.
// The text size is zero, so that no text is drawn until
// text attributes are provided.
func RootDefaults() Defaults {
	return Defaults{
		Line:   Line{Color: 1, Style: 1, Width: 1},
		Fill:   Fill{Color: 1, Style: 0},
		Marker: Marker{Color: 1, Style: 1, Size: 1},
		Text:   Text{Color: 1, Font: 42, Align: 11},
	}
}

// State holds the current attribute records of one painting pass.
// Each category has a generation counter, incremented at each update,
// which is used to detect style changes while a path is open.
type State struct {
	line   Line
	fill   Fill
	marker Marker
	text   Text

	lineGen, fillGen, markerGen uint64
}

// NewState returns a state initialized with `d`.
func NewState(d Defaults) *State {
	return &State{line: d.Line, fill: d.Fill, marker: d.Marker, text: d.Text}
}

// SetLine replaces the line record. It does not flush any open path.
func (s *State) SetLine(l Line) {
	s.line = l
	s.lineGen++
}

// SetFill replaces the fill record.
func (s *State) SetFill(f Fill) {
	s.fill = f
	s.fillGen++
}

// SetMarker replaces the marker record.
func (s *State) SetMarker(m Marker) {
	s.marker = m
	s.markerGen++
}

// StageText replaces the text record used by the following texts.
func (s *State) StageText(t Text) { s.text = t }

func (s *State) Line() Line     { return s.line }
func (s *State) Fill() Fill     { return s.fill }
func (s *State) Marker() Marker { return s.marker }
func (s *State) Text() Text     { return s.text }

// Generation returns the generation of the category
// styling paths of the given kind.
func (s *State) Generation(kind svgdraw.Kind) uint64 {
	switch kind {
	case svgdraw.KindLine:
		return s.lineGen
	case svgdraw.KindFill:
		return s.fillGen
	case svgdraw.KindMarker:
		return s.markerGen
	}
	return 0
}

// NeedsNewStyle reports whether a path of kind `next` may not extend
// the open path of kind `open`, opened at generation `openedAt`.
// This is the case on a kind change, and, when `split` is true,
// when the attributes styling the open path changed since.
func (s *State) NeedsNewStyle(open svgdraw.Kind, openedAt uint64, next svgdraw.Kind, split bool) bool {
	if open == svgdraw.KindNone {
		return false
	}
	if open != next {
		return true
	}
	return split && s.Generation(open) != openedAt
}

// Style resolves the style of a path of the given kind.
func (s *State) Style(kind svgdraw.Kind, colors ColorResolver) svgdraw.Style {
	switch kind {
	case svgdraw.KindLine:
		return LineStyle(s.line, colors)
	case svgdraw.KindFill:
		return FillStyle(s.fill, colors)
	case svgdraw.KindMarker:
		return MarkerStyle(s.marker, colors)
	}
	return svgdraw.Style{}
}
