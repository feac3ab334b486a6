// Package attr holds the line, fill, marker and text attributes used
// while painting, together with the ROOT palette and style tables.
package attr

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
)

// ErrArity is returned when an attribute record has
// missing or non numeric fields.
var ErrArity = errors.New("attr: bad attribute record")

// Line is the line attribute record.
type Line struct {
	Color, Style, Width int
}

// Fill is the fill attribute record.
type Fill struct {
	Color, Style int
}

// Marker is the marker attribute record.
type Marker struct {
	Color, Style int
	Size         float64
}

// Text is the text attribute record.
type Text struct {
	Color int
	Font  int // ROOT font code, 10*index + precision
	// Size is the height in pixels when greater than 1,
	// or a fraction of the pad height otherwise.
	Size  float64
	Align int
	Angle float64
}

// parseFields splits `tail` on ':' and reads the first len(names) fields
// as integers. Leading spaces are skipped, and only the integer prefix
// of each field is used: "12px" reads as 12.
func parseFields(tail string, names ...string) ([]int, error) {
	fields := strings.Split(tail, ":")
	if len(fields) < len(names) {
		return nil, fmt.Errorf("%w: %q: expected %d fields, got %d", ErrArity, tail, len(names), len(fields))
	}
	out := make([]int, len(names))
	for i, name := range names {
		b := bytes.TrimLeft([]byte(fields[i]), " \t\n\r")
		v, n := strconv.ParseInt(b)
		if n == 0 {
			return nil, fmt.Errorf("%w: %q: invalid %s %q", ErrArity, tail, name, fields[i])
		}
		out[i] = int(v)
	}
	return out, nil
}

// ParseLine reads a "color:style:width" record.
func ParseLine(tail string) (Line, error) {
	v, err := parseFields(tail, "color", "style", "width")
	if err != nil {
		return Line{}, err
	}
	return Line{Color: v[0], Style: v[1], Width: v[2]}, nil
}

// ParseFill reads a "color:style" record.
func ParseFill(tail string) (Fill, error) {
	v, err := parseFields(tail, "color", "style")
	if err != nil {
		return Fill{}, err
	}
	return Fill{Color: v[0], Style: v[1]}, nil
}

// ParseMarker reads a "color:style:size" record.
func ParseMarker(tail string) (Marker, error) {
	v, err := parseFields(tail, "color", "style", "size")
	if err != nil {
		return Marker{}, err
	}
	return Marker{Color: v[0], Style: v[1], Size: float64(v[2])}, nil
}

// ParseText reads a "color:font:size:align:angle" record.
// A negative size is expressed in thousandths of the pad height.
func ParseText(tail string) (Text, error) {
	v, err := parseFields(tail, "color", "font", "size", "align", "angle")
	if err != nil {
		return Text{}, err
	}
	t := Text{Color: v[0], Font: v[1], Size: float64(v[2]), Align: v[3], Angle: float64(v[4])}
	if t.Size < 0 {
		t.Size *= -0.001
	}
	return t, nil
}

// Height returns the text height in pixels, for a pad of height `padHeight`.
func (t Text) Height(padHeight float64) float64 {
	if t.Size > 1 {
		return t.Size
	}
	return padHeight * t.Size
}

// NormalizedAngle returns the angle reduced to [0, 360).
func (t Text) NormalizedAngle() float64 {
	return t.Angle - 360*math.Floor(t.Angle/360)
}
