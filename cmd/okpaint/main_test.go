package main

import (
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/benoitkugler/okpaint/coords"
	"github.com/benoitkugler/okpaint/painting"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))
	return file
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, defaultConfig(), cfg)

	dir := t.TempDir()
	file := writeFile(t, dir, "okpaint.toml", `
format = "png"
width = 400
height = 300

[frame]
x = 40
y = 30
width = 320
height = 240

[x_axis]
min = 1
max = 1000
log = true

[precision]
digits = 2

[painting]
error_mode = "strict"
split_on_style_change = true

[palette]
100 = "steelblue"
2 = "#00ff00"
`)
	cfg, err = loadConfig(file)
	require.NoError(t, err)
	assert.Equal(t, "png", cfg.Format)
	assert.Equal(t, ".", cfg.OutputDir) // default kept

	m := cfg.mapper()
	assert.Equal(t, coords.Rect{X: 40, Y: 30, Width: 320, Height: 240}, m.Frame)
	assert.True(t, m.X.Log)
	assert.Equal(t, coords.Axis{Min: 0, Max: 1}, m.Y)
	assert.Equal(t, 2, cfg.precision().Digits)

	opts, err := cfg.paintingOptions()
	require.NoError(t, err)
	assert.Equal(t, painting.StrictErrorMode, opts.ErrorMode)
	assert.True(t, opts.SplitOnStyleChange)

	pal, err := cfg.palette()
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{G: 255, A: 255}, pal.Resolve(2))
	assert.Equal(t, color.RGBA{R: 70, G: 130, B: 180, A: 255}, pal.Resolve(100))
	assert.Equal(t, color.RGBA{A: 255}, pal.Resolve(1))

	for _, bad := range []string{
		`width = -1`,
		`concurrency = 0`,
		"[painting]\nerror_mode = \"loud\"",
		"[palette]\nx = \"red\"",
		"[palette]\n3 = \"reddish\"",
		`format = `,
	} {
		_, err := loadConfig(writeFile(t, dir, "bad.toml", bad))
		assert.Error(t, err, bad)
	}
	_, err = loadConfig(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}

const inputJSON = `[
	{"_typename": "TBox", "fX1": 0.1, "fY1": 0.1, "fX2": 0.5, "fY2": 0.5, "fLineColor": 1, "fLineWidth": 1, "fFillColor": 2, "fFillStyle": 1001},
	{"_typename": "TWebPainting", "fOper": "l2;q", "fBuf": [0, 0, 1, 1]}
]`

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	input := writeFile(t, dir, "objects.json", inputJSON)

	cfg := defaultConfig()
	cfg.Format = "record"
	cfg.OutputDir = dir
	cfg.Width, cfg.Height = 100, 100

	out, err := renderFile(context.Background(), cfg, input)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "objects.txt"), out)
	content, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "path fill #ff0000ff none 1 - M10,50h40v40h-40z", lines[0])
	assert.Equal(t, "path line none #000000ff 1 - M0,100L100,0", lines[1])

	// the painting options are applied
	cfg.Painting.ErrorMode = "strict"
	out, err = renderFile(context.Background(), cfg, input)
	assert.ErrorIs(t, err, painting.ErrUnknownOp)
	assert.FileExists(t, out)
}

func TestRenderAll(t *testing.T) {
	dir := t.TempDir()
	files := []string{
		writeFile(t, dir, "a.json", inputJSON),
		writeFile(t, dir, "b.xml", `<TWebPainting><fOper>f3</fOper><fBuf>0 0 1 0 1 1</fBuf></TWebPainting>`),
	}
	for _, format := range []string{"svg", "png", "pdf"} {
		cfg := defaultConfig()
		cfg.Format = format
		cfg.OutputDir = dir
		cfg.Concurrency = 2
		require.NoError(t, renderAll(context.Background(), cfg, files), format)
		assert.FileExists(t, filepath.Join(dir, "a."+format))
		assert.FileExists(t, filepath.Join(dir, "b."+format))
	}

	cfg := defaultConfig()
	cfg.OutputDir = dir
	err := renderAll(context.Background(), cfg, append(files, filepath.Join(dir, "missing.json")))
	assert.Error(t, err)

	cfg.Format = "unknown"
	assert.Error(t, renderAll(context.Background(), cfg, files))
}
