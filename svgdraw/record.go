package svgdraw

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
)

func init() {
	Register("record", func(width, height float64) FileBackend { return &RecordFile{} })
}

// RecordFile is a Recorder saving the calls as text, one call per line:
//
//	path <kind> <fill> <stroke> <width> <dash> <d>
//	text <x> <y> <color> <font> <size> <align> <angle> <container> <quoted text>
//
// Colors are written as #rrggbbaa, or "none".
// It is meant for debugging and for regression tests.
type RecordFile struct {
	Recorder
}

var _ FileBackend = (*RecordFile)(nil)

func hexColor(c color.Color) string {
	if c == nil {
		return "none"
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'g', -1, 64) }

// String returns the text representation of the call.
func (c Call) String() string {
	if c.IsText {
		t := c.Text
		container := t.Container
		if container == "" {
			container = "-"
		}
		return fmt.Sprintf("text %s %s %s %d %s %d %s %s %q",
			formatFloat(t.X), formatFloat(t.Y), hexColor(t.Color), t.Font,
			formatFloat(t.Size), t.Align, formatFloat(t.Angle), container, t.Text)
	}
	dash := "-"
	if len(c.Style.Dash) != 0 {
		parts := make([]string, len(c.Style.Dash))
		for i, v := range c.Style.Dash {
			parts[i] = formatFloat(v)
		}
		dash = strings.Join(parts, ",")
	}
	return fmt.Sprintf("path %s %s %s %s %s %s", c.Style.Kind, hexColor(c.Style.Fill),
		hexColor(c.Style.Stroke), formatFloat(c.Style.LineWidth), dash, c.Path)
}

// WriteTo writes the recorded calls, one per line.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	var total int64
	for _, c := range r.Calls() {
		n, err := bw.WriteString(c.String() + "\n")
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, bw.Flush()
}

func (r *RecordFile) SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("svgdraw: %w", err)
	}
	if _, err := r.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("svgdraw: writing %s: %w", filename, err)
	}
	return f.Close()
}
