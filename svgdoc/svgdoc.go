// Package svgdoc implements a backend writing an SVG document,
// using github.com/ajstarks/svgo.
//
// It is registered under the name "svg".
package svgdoc

import (
	"bytes"
	"context"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	svg "github.com/ajstarks/svgo"
	"github.com/benoitkugler/okpaint/svgdraw"
	"github.com/benoitkugler/okpaint/textmetrics"
)

func init() {
	svgdraw.Register("svg", func(width, height float64) svgdraw.FileBackend { return New(width, height) })
}

// Document accumulates the drawing calls into an SVG document.
// It is safe for concurrent use.
type Document struct {
	Width, Height float64

	// Title, if not empty, is written as the document title.
	Title string

	// Metrics is used to position the texts. It defaults
	// to textmetrics.Default().
	Metrics *textmetrics.Cache

	mu     sync.Mutex
	body   bytes.Buffer
	canvas *svg.SVG
}

var _ svgdraw.FileBackend = (*Document)(nil)

// New returns an empty document of the given size, in pixels.
func New(width, height float64) *Document {
	d := &Document{Width: width, Height: height}
	d.canvas = svg.New(&d.body)
	return d
}

func (d *Document) metrics() *textmetrics.Cache {
	if d.Metrics == nil {
		return textmetrics.Default()
	}
	return d.Metrics
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// paint returns the CSS color and opacity of `c`.
func paint(c color.Color) (string, float64) {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), float64(n.A) / 255
}

// StyleCSS returns the inline CSS of a path style.
func StyleCSS(st svgdraw.Style) string {
	var sb strings.Builder
	if st.Fill == nil {
		sb.WriteString("fill:none")
	} else {
		c, op := paint(st.Fill)
		sb.WriteString("fill:" + c)
		if op < 1 {
			sb.WriteString(";fill-opacity:" + num(math.Round(op*1000)/1000))
		}
	}
	if st.Stroke == nil || st.LineWidth <= 0 {
		return sb.String()
	}
	c, op := paint(st.Stroke)
	sb.WriteString(";stroke:" + c)
	if op < 1 {
		sb.WriteString(";stroke-opacity:" + num(math.Round(op*1000)/1000))
	}
	if st.LineWidth != 1 {
		sb.WriteString(";stroke-width:" + num(st.LineWidth))
	}
	if len(st.Dash) != 0 {
		parts := make([]string, len(st.Dash))
		for i, v := range st.Dash {
			parts[i] = num(v)
		}
		sb.WriteString(";stroke-dasharray:" + strings.Join(parts, ","))
	}
	return sb.String()
}

func (d *Document) DrawPath(path string, style svgdraw.Style) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.canvas.Path(path, StyleCSS(style))
}

// DrawText measures the text on a separate goroutine, then
// writes it, anchored by its baseline origin.
func (d *Document) DrawText(ctx context.Context, t svgdraw.Text) *svgdraw.Pending {
	return svgdraw.Go(func() error {
		ext, err := d.metrics().Measure(t.Font, t.Size, t.Text)
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		d.writeText(t, ext)
		return nil
	})
}

func (d *Document) writeText(t svgdraw.Text, ext textmetrics.Extents) {
	dx, dy := textmetrics.Offset(ext, 10*t.HorizontalAlign()+t.VerticalAlign())

	transform := "translate(" + num(t.X) + "," + num(t.Y) + ")"
	if t.Angle != 0 {
		transform += " rotate(" + num(-t.Angle) + ")"
	}
	if dx != 0 || dy != 0 {
		transform += " translate(" + num(dx) + "," + num(dy) + ")"
	}
	col := "#000000"
	opacity := 1.
	if t.Color != nil {
		col, opacity = paint(t.Color)
	}
	css := fmt.Sprintf("font-family:%s;font-size:%spx;fill:%s", textmetrics.Family(t.Font), num(t.Size), col)
	if opacity < 1 {
		css += ";fill-opacity:" + num(math.Round(opacity*1000)/1000)
	}
	if st := textmetrics.StyleOf(t.Font); st.IsBold() {
		css += ";font-weight:bold"
	}
	if st := textmetrics.StyleOf(t.Font); st.IsItalic() {
		css += ";font-style:italic"
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	attrs := []string{`transform="` + transform + `"`}
	if t.Container != "" {
		attrs = append([]string{`id="` + t.Container + `"`}, attrs...)
	}
	d.canvas.Group(attrs...)
	d.canvas.Text(0, 0, t.Text, css)
	d.canvas.Gend()
}

// WriteTo writes the complete document to `w`.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out bytes.Buffer
	doc := svg.New(&out)
	doc.Start(int(math.Ceil(d.Width)), int(math.Ceil(d.Height)))
	if d.Title != "" {
		doc.Title(d.Title)
	}
	out.Write(d.body.Bytes())
	doc.End()
	return out.WriteTo(w)
}

// Bytes returns the complete document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	d.WriteTo(&buf)
	return buf.Bytes()
}

func (d *Document) SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("svgdoc: %w", err)
	}
	if _, err := d.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("svgdoc: writing %s: %w", filename, err)
	}
	return f.Close()
}
