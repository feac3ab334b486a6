package attr

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"golang.org/x/image/colornames"
)

// ColorResolver maps ROOT color indices to colors.
// A nil color means nothing should be painted.
type ColorResolver interface {
	Resolve(index int) color.Color
}

// Palette is a ColorResolver backed by a table of colors.
// The zero value is empty: use DefaultPalette to get the ROOT colors.
type Palette struct {
	colors map[int]color.RGBA
}

var _ ColorResolver = (*Palette)(nil)

// standard ROOT colors, from TColor::InitializeColors
var rootColors = map[int]color.RGBA{
	0:  {255, 255, 255, 0xff},
	1:  {0, 0, 0, 0xff},
	2:  {255, 0, 0, 0xff},
	3:  {0, 255, 0, 0xff},
	4:  {0, 0, 255, 0xff},
	5:  {255, 255, 0, 0xff},
	6:  {255, 0, 255, 0xff},
	7:  {0, 255, 255, 0xff},
	8:  {89, 212, 84, 0xff},
	9:  {89, 84, 217, 0xff},
	10: {254, 254, 254, 0xff},
	11: {193, 183, 173, 0xff},
	12: {77, 77, 77, 0xff},
	13: {108, 108, 108, 0xff},
	14: {0, 0, 0, 0xff},
	15: {87, 87, 87, 0xff},
	16: {136, 136, 136, 0xff},
	17: {161, 161, 161, 0xff},
	18: {184, 184, 184, 0xff},
	19: {196, 196, 196, 0xff},
	20: {204, 198, 170, 0xff},
	21: {204, 198, 170, 0xff},
	22: {193, 191, 168, 0xff},
	23: {186, 181, 163, 0xff},
	24: {178, 165, 150, 0xff},
	25: {183, 163, 155, 0xff},
	26: {173, 153, 140, 0xff},
	27: {155, 142, 130, 0xff},
	28: {135, 102, 86, 0xff},
	29: {175, 206, 198, 0xff},
	30: {132, 193, 163, 0xff},
	31: {137, 168, 160, 0xff},
	32: {130, 158, 140, 0xff},
	33: {173, 188, 198, 0xff},
	34: {122, 142, 153, 0xff},
	35: {117, 137, 145, 0xff},
	36: {104, 130, 150, 0xff},
	37: {109, 122, 132, 0xff},
	38: {124, 153, 209, 0xff},
	39: {127, 127, 155, 0xff},
	40: {170, 165, 191, 0xff},
	41: {211, 206, 135, 0xff},
	42: {221, 186, 135, 0xff},
	43: {188, 158, 130, 0xff},
	44: {198, 153, 124, 0xff},
	45: {191, 130, 119, 0xff},
	46: {206, 94, 96, 0xff},
	47: {170, 142, 147, 0xff},
	48: {165, 119, 122, 0xff},
	49: {147, 104, 112, 0xff},
	50: {211, 89, 84, 0xff},

	// kGray
	920: {205, 205, 205, 0xff},
	921: {154, 154, 154, 0xff},
	922: {102, 102, 102, 0xff},
	923: {51, 51, 51, 0xff},
}

// DefaultPalette returns a new palette with the standard ROOT colors.
func DefaultPalette() *Palette {
	p := &Palette{colors: make(map[int]color.RGBA, len(rootColors))}
	for i, c := range rootColors {
		p.colors[i] = c
	}
	return p
}

// Resolve returns the color at `index`, or nil if it is not defined.
func (p *Palette) Resolve(index int) color.Color {
	c, ok := p.colors[index]
	if !ok {
		return nil
	}
	return c
}

// Set defines or overrides the color at `index`.
func (p *Palette) Set(index int, c color.Color) {
	if p.colors == nil {
		p.colors = make(map[int]color.RGBA)
	}
	p.colors[index] = color.RGBAModel.Convert(c).(color.RGBA)
}

// SetNamed defines the color at `index` from a CSS color name
// (like "steelblue") or an hexadecimal "#rrggbb" or "#rgb" value.
func (p *Palette) SetNamed(index int, name string) error {
	c, err := ParseColor(name)
	if err != nil {
		return err
	}
	p.Set(index, c)
	return nil
}

// ParseColor parses a CSS color name or an hexadecimal color.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.RGBA{}, fmt.Errorf("attr: invalid color %q", s)
	}
	hex := s[1:]
	var r, g, b uint8
	switch len(hex) {
	case 6:
		if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("attr: invalid color %q: %w", s, err)
		}
	case 3:
		if _, err := fmt.Sscanf(hex, "%1x%1x%1x", &r, &g, &b); err != nil {
			return color.RGBA{}, fmt.Errorf("attr: invalid color %q: %w", s, err)
		}
		r, g, b = r*17, g*17, b*17
	default:
		return color.RGBA{}, fmt.Errorf("attr: invalid color %q", s)
	}
	return color.RGBA{r, g, b, 0xff}, nil
}

// brighter and darker follow the usual 0.7 factor, raised to `k`

func scaleColor(c color.Color, f float64) color.RGBA {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	ch := func(v uint8) uint8 {
		return uint8(math.Min(255, math.Round(float64(v)*f)))
	}
	return color.RGBA{ch(rgba.R), ch(rgba.G), ch(rgba.B), rgba.A}
}

// Brighter returns a brighter copy of `c`. Channels are clamped to 255.
func Brighter(c color.Color, k float64) color.RGBA {
	return scaleColor(c, math.Pow(1/0.7, k))
}

// Darker returns a darker copy of `c`.
func Darker(c color.Color, k float64) color.RGBA {
	return scaleColor(c, math.Pow(0.7, k))
}

// WithOpacity returns `c` with its alpha set to `alpha` in [0, 1].
// The result is not premultiplied.
func WithOpacity(c color.Color, alpha float64) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	alpha = math.Max(0, math.Min(1, alpha))
	n.A = uint8(math.Round(alpha * 255))
	return n
}
