// Package textmetrics measures texts drawn with ROOT font codes,
// using the Go fonts as substitutes for the ROOT ones.
package textmetrics

import (
	"fmt"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Style is one of the Go font variants.
type Style uint8

const (
	Regular Style = iota
	Bold
	Italic
	BoldItalic
	Mono
	MonoBold
	MonoItalic
	MonoBoldItalic
)

var ttfs = [...][]byte{
	Regular:        goregular.TTF,
	Bold:           gobold.TTF,
	Italic:         goitalic.TTF,
	BoldItalic:     gobolditalic.TTF,
	Mono:           gomono.TTF,
	MonoBold:       gomonobold.TTF,
	MonoItalic:     gomonoitalic.TTF,
	MonoBoldItalic: gomonobolditalic.TTF,
}

func (s Style) String() string {
	switch s {
	case Regular:
		return "regular"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case BoldItalic:
		return "bold-italic"
	case Mono:
		return "mono"
	case MonoBold:
		return "mono-bold"
	case MonoItalic:
		return "mono-italic"
	case MonoBoldItalic:
		return "mono-bold-italic"
	default:
		return fmt.Sprintf("<unknown Style %d>", uint8(s))
	}
}

// IsBold and IsItalic report the weight and slant of the variant.
func (s Style) IsBold() bool   { return s == Bold || s == BoldItalic || s == MonoBold || s == MonoBoldItalic }
func (s Style) IsItalic() bool { return s == Italic || s == BoldItalic || s == MonoItalic || s == MonoBoldItalic }

// IsMono reports whether the variant is fixed pitch.
func (s Style) IsMono() bool { return s >= Mono }

// StyleOf maps a ROOT font code (font number * 10 + precision)
// to the closest Go font.
func StyleOf(rootFont int) Style {
	switch rootFont / 10 {
	case 1, 5:
		return Italic
	case 2, 6:
		return Bold
	case 3, 7:
		return BoldItalic
	case 8:
		return Mono
	case 9:
		return MonoItalic
	case 10:
		return MonoBold
	case 11:
		return MonoBoldItalic
	default: // Helvetica, Times, symbols
		return Regular
	}
}

// Family returns a CSS font family for the ROOT font code.
func Family(rootFont int) string {
	switch rootFont / 10 {
	case 1, 2, 3, 13:
		return "Times New Roman, serif"
	case 8, 9, 10, 11:
		return "Courier New, monospace"
	case 12, 15:
		return "Symbol, serif"
	default:
		return "Arial, Helvetica, sans-serif"
	}
}

// Extents are the dimensions of a text line, in pixels.
type Extents struct {
	Width   float64
	Ascent  float64 // above the baseline
	Descent float64 // below the baseline, positive
}

// Height returns Ascent + Descent.
func (e Extents) Height() float64 { return e.Ascent + e.Descent }

type faceKey struct {
	style Style
	size  fixed.Int26_6
}

// Cache stores the parsed fonts and the faces built for each size.
// It is safe for concurrent use; the zero value is ready to use.
type Cache struct {
	mu    sync.Mutex
	fonts [len(ttfs)]*opentype.Font
	faces map[faceKey]font.Face
}

var defaultCache Cache

// Default returns a process-wide cache.
func Default() *Cache { return &defaultCache }

func (c *Cache) font(s Style) (*opentype.Font, error) {
	if int(s) >= len(ttfs) {
		return nil, fmt.Errorf("textmetrics: invalid style %d", s)
	}
	if f := c.fonts[s]; f != nil {
		return f, nil
	}
	f, err := opentype.Parse(ttfs[s])
	if err != nil {
		return nil, fmt.Errorf("textmetrics: failed to parse %s font: %w", s, err)
	}
	c.fonts[s] = f
	return f, nil
}

// face returns the face of the given style and size, in pixels.
// c.mu must be held.
func (c *Cache) face(s Style, size float64) (font.Face, error) {
	if size <= 0 || math.IsNaN(size) || math.IsInf(size, 0) {
		return nil, fmt.Errorf("textmetrics: invalid font size %v", size)
	}
	key := faceKey{style: s, size: fixed.Int26_6(math.Round(size * 64))}
	if face, ok := c.faces[key]; ok {
		return face, nil
	}
	f, err := c.font(s)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(key.size) / 64,
		DPI:     72, // sizes are pixels
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("textmetrics: failed to create face: %w", err)
	}
	if c.faces == nil {
		c.faces = make(map[faceKey]font.Face)
	}
	c.faces[key] = face
	return face, nil
}

// WithFace calls `fn` with a face of the given style, `size` being
// the font size in pixels. Faces are shared and not safe for concurrent
// use, so `fn` must not retain it.
func (c *Cache) WithFace(s Style, size float64, fn func(font.Face) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	face, err := c.face(s, size)
	if err != nil {
		return err
	}
	return fn(face)
}

// Measure returns the extents of `text` drawn with the ROOT font code
// `rootFont`, at `size` pixels.
func (c *Cache) Measure(rootFont int, size float64, text string) (Extents, error) {
	var e Extents
	err := c.WithFace(StyleOf(rootFont), size, func(face font.Face) error {
		m := face.Metrics()
		e = Extents{
			Width:   fixedToFloat(font.MeasureString(face, text)),
			Ascent:  fixedToFloat(m.Ascent),
			Descent: fixedToFloat(m.Descent),
		}
		return nil
	})
	return e, err
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

// Offset returns the translation to apply to a text anchored with the
// ROOT alignment code `align` (10 * horizontal + vertical), so that
// its baseline origin is found by adding (dx, dy) to the anchor.
// Device y grows downward.
func Offset(e Extents, align int) (dx, dy float64) {
	h, v := align/10, align%10
	switch h {
	case 2:
		dx = -e.Width / 2
	case 3:
		dx = -e.Width
	}
	switch v {
	case 2:
		dy = (e.Ascent - e.Descent) / 2
	case 3:
		dy = e.Ascent
	default:
		dy = -e.Descent
	}
	return dx, dy
}
