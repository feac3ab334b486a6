// Package painting interprets TWebPainting programs: a compact stream of
// operations, separated by ';', and a flat buffer of coordinates
// consumed from left to right by the geometric operations.
//
// Consecutive operations producing the same kind of path are merged
// into a single draw call.
package painting

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"strings"

	"github.com/benoitkugler/okpaint/attr"
	"github.com/tdewolff/parse/v2/strconv"
	"golang.org/x/text/encoding/charmap"
)

// Op is one decoded operation. The concrete types are
// LineAttr, FillAttr, MarkerAttr, TextAttr, Rect, Poly,
// MarkerRun, TextOp, Unknown and Malformed.
type Op interface {
	// Code returns the operation letter.
	Code() byte
	// values returns the number of buffer values consumed.
	values() int
}

// LineAttr sets the line attributes ('z').
type LineAttr struct{ attr.Line }

// FillAttr sets the fill attributes ('y').
type FillAttr struct{ attr.Fill }

// MarkerAttr sets the marker attributes ('x').
type MarkerAttr struct{ attr.Marker }

// TextAttr stages the attributes of the following texts ('o').
type TextAttr struct{ attr.Text }

// Rect is a rectangle ('r'), or a filled one ('b').
type Rect struct{ Filled bool }

// Poly is a polyline of N points ('l'), or a polygon ('f').
type Poly struct {
	N      int
	Closed bool
}

// MarkerRun draws N markers ('m').
type MarkerRun struct{ N int }

// TextOp draws a text ('t'), transmitted hex encoded for 'h'.
// Text is always decoded.
type TextOp struct {
	Text string
	Hex  bool
}

// Unknown is an operation with an unsupported code.
type Unknown struct{ Letter byte }

// Malformed is a supported operation with invalid arguments.
type Malformed struct {
	Letter byte
	Err    error
}

func (LineAttr) Code() byte   { return 'z' }
func (FillAttr) Code() byte   { return 'y' }
func (MarkerAttr) Code() byte { return 'x' }
func (TextAttr) Code() byte   { return 'o' }
func (op Rect) Code() byte {
	if op.Filled {
		return 'b'
	}
	return 'r'
}
func (op Poly) Code() byte {
	if op.Closed {
		return 'f'
	}
	return 'l'
}
func (MarkerRun) Code() byte { return 'm' }
func (op TextOp) Code() byte {
	if op.Hex {
		return 'h'
	}
	return 't'
}
func (op Unknown) Code() byte   { return op.Letter }
func (op Malformed) Code() byte { return op.Letter }

func (LineAttr) values() int     { return 0 }
func (FillAttr) values() int     { return 0 }
func (MarkerAttr) values() int   { return 0 }
func (TextAttr) values() int     { return 0 }
func (Rect) values() int         { return 4 }
func (op Poly) values() int      { return 2 * op.N }
func (op MarkerRun) values() int { return 2 * op.N }
func (TextOp) values() int       { return 2 }
func (Unknown) values() int      { return 0 }
func (Malformed) values() int    { return 0 }

// Program is a decoded operation stream.
type Program []Op

// BufferLen returns the number of buffer values the program
// consumes, up to the first unknown or malformed operation.
func (p Program) BufferLen() int {
	total := 0
	for _, op := range p {
		switch op.(type) {
		case Unknown, Malformed:
			return total
		}
		total += op.values()
	}
	return total
}

// Decode parses every record of `oper`. Empty records are ignored.
// Decoding never fails: invalid records are kept as Unknown or
// Malformed operations, so that the preceding ones can still be run.
func Decode(oper string) Program {
	if oper == "" {
		return nil
	}
	records := strings.Split(oper, ";")
	prog := make(Program, 0, len(records))
	for _, rec := range records {
		if rec == "" {
			continue
		}
		prog = append(prog, decodeRecord(rec[0], rec[1:]))
	}
	return prog
}

func decodeRecord(code byte, tail string) Op {
	malformed := func(err error) Op { return Malformed{Letter: code, Err: err} }
	switch code {
	case 'z':
		l, err := attr.ParseLine(tail)
		if err != nil {
			return malformed(err)
		}
		return LineAttr{l}
	case 'y':
		f, err := attr.ParseFill(tail)
		if err != nil {
			return malformed(err)
		}
		return FillAttr{f}
	case 'x':
		m, err := attr.ParseMarker(tail)
		if err != nil {
			return malformed(err)
		}
		return MarkerAttr{m}
	case 'o':
		t, err := attr.ParseText(tail)
		if err != nil {
			return malformed(err)
		}
		return TextAttr{t}
	case 'r', 'b':
		return Rect{Filled: code == 'b'}
	case 'l', 'f', 'm':
		n, err := parseCount(tail)
		if err != nil {
			return malformed(err)
		}
		if code == 'm' {
			return MarkerRun{N: n}
		}
		return Poly{N: n, Closed: code == 'f'}
	case 't':
		return TextOp{Text: tail}
	case 'h':
		s, err := decodeHex(tail)
		if err != nil {
			return malformed(err)
		}
		return TextOp{Text: s, Hex: true}
	default:
		return Unknown{Letter: code}
	}
}

// parseCount reads the integer prefix of `tail`.
func parseCount(tail string) (int, error) {
	v, n := strconv.ParseInt(bytes.TrimLeft([]byte(tail), " \t"))
	if n == 0 {
		return 0, fmt.Errorf("painting: invalid point count %q", tail)
	}
	if v < 0 {
		return 0, fmt.Errorf("painting: negative point count %d", v)
	}
	if v > math.MaxInt/2 {
		return 0, fmt.Errorf("painting: point count %d out of range", v)
	}
	return int(v), nil
}

// decodeHex decodes pairs of hexadecimal digits as Latin-1 characters.
func decodeHex(s string) (string, error) {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("painting: invalid hex text %q: %w", s, err)
	}
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("painting: invalid hex text %q: %w", s, err)
	}
	return string(out), nil
}
