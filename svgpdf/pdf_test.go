package svgpdf

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/okpaint/svgdraw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpacity(t *testing.T) {
	c, op := opacity(color.NRGBA{R: 10, G: 20, B: 30, A: 51})
	assert.Equal(t, color.NRGBA{R: 10, G: 20, B: 30, A: 255}, c)
	assert.InDelta(t, 0.2, op, 1e-9)

	c, op = opacity(color.Black)
	assert.Equal(t, color.NRGBA{A: 255}, c)
	assert.Equal(t, 1., op)
}

func TestSaveToFile(t *testing.T) {
	b, err := svgdraw.NewBackend("pdf", 200, 100)
	require.NoError(t, err)

	b.DrawPath("M10,10h50v50h-50z", svgdraw.Style{Kind: svgdraw.KindFill, Fill: color.NRGBA{R: 255, A: 128}})
	b.DrawPath("M0,0C10,10,20,10,30,0Q40,-10,50,0", svgdraw.Style{
		Kind: svgdraw.KindLine, Stroke: color.Black, LineWidth: 2, Dash: []float64{3, 3},
	})
	b.DrawPath("M0,0X", svgdraw.Style{Kind: svgdraw.KindLine, Stroke: color.Black, LineWidth: 1})
	require.NoError(t, b.DrawText(context.Background(), svgdraw.Text{Text: "skipped"}).Wait(context.Background()))

	file := filepath.Join(t.TempDir(), "out.pdf")
	require.NoError(t, b.SaveToFile(file))

	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF-")))
}
