// Package svgraster implements a raster backend,
// by wrapping rasterx. Texts are drawn with the Go fonts.
//
// It is registered under the name "png".
package svgraster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"sync"

	"github.com/benoitkugler/okpaint"
	"github.com/benoitkugler/okpaint/shapes"
	"github.com/benoitkugler/okpaint/svgdraw"
	"github.com/benoitkugler/okpaint/svgpath"
	"github.com/benoitkugler/okpaint/textmetrics"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"golang.org/x/image/math/fixed"
)

func init() {
	svgdraw.Register("png", func(width, height float64) svgdraw.FileBackend {
		return NewRenderer(int(math.Ceil(width)), int(math.Ceil(height)))
	})
}

var _ svgdraw.FileBackend = (*Renderer)(nil) // assert interface conformance

// Renderer paints into an RGBA image, initially white.
// It is safe for concurrent use.
type Renderer struct {
	// Metrics provides the font faces. It defaults
	// to textmetrics.Default().
	Metrics *textmetrics.Cache

	mu     sync.Mutex
	img    *image.RGBA
	dasher *rasterx.Dasher // to avoid shared state
	filler *rasterx.Filler // we use separated instance
}

// NewRenderer returns a renderer for an image of the given size.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
func NewRenderer(width, height int) *Renderer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	return &Renderer{
		img:    img,
		dasher: rasterx.NewDasher(width, height, rasterx.NewScannerGV(width, height, img, img.Bounds())),
		filler: rasterx.NewFiller(width, height, rasterx.NewScannerGV(width, height, img, img.Bounds())),
	}
}

// Render draws `items` on a new image sized after the target pad.
// The backend of `t` is ignored.
func Render(ctx context.Context, t shapes.Target, items ...shapes.Drawable) (*image.RGBA, error) {
	rd := NewRenderer(int(math.Ceil(t.Mapper.PadWidth())), int(math.Ceil(t.Mapper.PadHeight())))
	t.Backend = rd
	err := shapes.DrawAll(ctx, t, items...)
	return rd.Image(), err
}

// Image returns the image painted so far.
// It must not be modified while drawing.
func (rd *Renderer) Image() *image.RGBA { return rd.img }

func (rd *Renderer) metrics() *textmetrics.Cache {
	if rd.Metrics == nil {
		return textmetrics.Default()
	}
	return rd.Metrics
}

// DrawPath fills then strokes the path data `d`.
// Invalid path data is logged and ignored.
func (rd *Renderer) DrawPath(d string, style svgdraw.Style) {
	path, err := svgpath.Parse(d)
	if err != nil {
		okpaint.Logger().Warn("svgraster: invalid path data", "error", err)
		return
	}

	rd.mu.Lock()
	defer rd.mu.Unlock()

	if style.Fill != nil {
		rd.filler.Clear()
		rd.filler.SetWinding(true)
		rd.filler.SetColor(style.Fill)
		path.AddTo(rd.filler)
		rd.filler.Draw()
	}
	if style.Stroke != nil && style.LineWidth > 0 {
		rd.dasher.Clear()
		rd.dasher.SetWinding(true)
		rd.dasher.SetColor(style.Stroke)
		rd.dasher.SetStroke(
			fixed.Int26_6(style.LineWidth*64), 4*64, rasterx.ButtCap, rasterx.ButtCap,
			rasterx.FlatGap, rasterx.Miter, style.Dash, 0,
		)
		path.AddTo(rd.dasher)
		rd.dasher.Draw()
	}
}

// DrawText draws the text with the Go font closest to the ROOT one.
// The text is drawn synchronously: the returned Pending is already resolved.
func (rd *Renderer) DrawText(ctx context.Context, t svgdraw.Text) *svgdraw.Pending {
	if err := ctx.Err(); err != nil {
		return svgdraw.Resolved(err)
	}
	var col color.Color = color.Black
	if t.Color != nil {
		col = t.Color
	}
	err := rd.metrics().WithFace(textmetrics.StyleOf(t.Font), t.Size, func(face font.Face) error {
		m := face.Metrics()
		ext := textmetrics.Extents{
			Width:   float64(font.MeasureString(face, t.Text)) / 64,
			Ascent:  float64(m.Ascent) / 64,
			Descent: float64(m.Descent) / 64,
		}
		dx, dy := textmetrics.Offset(ext, 10*t.HorizontalAlign()+t.VerticalAlign())

		rd.mu.Lock()
		defer rd.mu.Unlock()
		if t.Angle == 0 {
			drawer := font.Drawer{
				Dst:  rd.img,
				Src:  image.NewUniform(col),
				Face: face,
				Dot:  fixed.Point26_6{X: toFixed(t.X + dx), Y: toFixed(t.Y + dy)},
			}
			drawer.DrawString(t.Text)
			return nil
		}
		rd.drawRotated(face, t, col, ext, dx, dy)
		return nil
	})
	return svgdraw.Resolved(err)
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }

// drawRotated draws the text on an intermediate image,
// then transforms it onto the target.
func (rd *Renderer) drawRotated(face font.Face, t svgdraw.Text, col color.Color, ext textmetrics.Extents, dx, dy float64) {
	const pad = 2
	w := int(math.Ceil(ext.Width)) + 2*pad
	h := int(math.Ceil(ext.Height())) + 2*pad
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	ox, oy := float64(pad), pad+ext.Ascent // baseline origin in tmp
	drawer := font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: toFixed(ox), Y: toFixed(oy)},
	}
	drawer.DrawString(t.Text)

	// counter clockwise on screen, with y downward
	s, c := math.Sincos(t.Angle * math.Pi / 180)
	u, v := dx-ox, dy-oy
	m := f64.Aff3{
		c, s, t.X + c*u + s*v,
		-s, c, t.Y - s*u + c*v,
	}
	xdraw.BiLinear.Transform(rd.img, m, tmp, tmp.Bounds(), xdraw.Over, nil)
}

// SaveToFile encodes the image as PNG.
func (rd *Renderer) SaveToFile(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("svgraster: %w", err)
	}
	rd.mu.Lock()
	err = png.Encode(f, rd.img)
	rd.mu.Unlock()
	if err != nil {
		f.Close()
		return fmt.Errorf("svgraster: encoding %s: %w", filename, err)
	}
	return f.Close()
}
