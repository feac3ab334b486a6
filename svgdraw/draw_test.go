package svgdraw

import (
	"context"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextAlign(t *testing.T) {
	for _, test := range []struct {
		align, h, v int
	}{
		{11, 1, 1},
		{22, 2, 2},
		{33, 3, 3},
		{12, 1, 2},
		{31, 3, 1},
		{0, 1, 1},
		{99, 1, 1},
	} {
		txt := Text{Align: test.align}
		assert.Equal(t, test.h, txt.HorizontalAlign(), "align %d", test.align)
		assert.Equal(t, test.v, txt.VerticalAlign(), "align %d", test.align)
	}
}

func TestPending(t *testing.T) {
	ctx := context.Background()
	assert.NoError(t, Resolved(nil).Wait(ctx))

	errBoom := errors.New("boom")
	assert.ErrorIs(t, Resolved(errBoom).Wait(ctx), errBoom)

	release := make(chan struct{})
	p := Go(func() error {
		<-release
		return errBoom
	})
	select {
	case <-p.Done():
		t.Fatal("pending resolved too early")
	default:
	}

	short, cancel := context.WithTimeout(ctx, 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, p.Wait(short), context.DeadlineExceeded)

	close(release)
	assert.ErrorIs(t, p.Wait(ctx), errBoom)
}

func TestRecorderPlayback(t *testing.T) {
	ctx := context.Background()
	var src Recorder
	src.DrawPath("M0,0h10", Style{Kind: KindLine, LineWidth: 1})
	require.NoError(t, src.DrawText(ctx, Text{Text: "abc", Size: 12}).Wait(ctx))
	src.DrawPath("M1,1", Style{Kind: KindMarker})

	assert.Equal(t, []string{"M0,0h10", "M1,1"}, src.Paths())

	var dst Recorder
	require.NoError(t, src.Playback(ctx, &dst))
	assert.Equal(t, src.Calls(), dst.Calls())

	src.Reset()
	assert.Empty(t, src.Calls())
}

func TestRecorderTextHook(t *testing.T) {
	errFont := errors.New("no font")
	rec := Recorder{TextHook: func(context.Context, Text) error { return errFont }}
	err := rec.DrawText(context.Background(), Text{Text: "x"}).Wait(context.Background())
	assert.ErrorIs(t, err, errFont)
	assert.Len(t, rec.Calls(), 1)
}

type nopBackend struct{ Recorder }

func (*nopBackend) SaveToFile(string) error { return nil }

func TestRegistry(t *testing.T) {
	Register("test-nop", func(w, h float64) FileBackend { return &nopBackend{} })
	defer Unregister("test-nop")

	assert.Contains(t, Backends(), "test-nop")
	b, err := NewBackend("test-nop", 100, 100)
	require.NoError(t, err)
	assert.NotNil(t, b)

	assert.Panics(t, func() {
		Register("test-nop", func(w, h float64) FileBackend { return &nopBackend{} })
	})
	assert.Panics(t, func() { Register("test-nil", nil) })

	_, err = NewBackend("missing", 1, 1)
	assert.Error(t, err)
}

func TestRecordFile(t *testing.T) {
	b, err := NewBackend("record", 10, 10)
	require.NoError(t, err)
	b.DrawPath("M0,0h1", Style{Kind: KindLine, Stroke: color.Black, LineWidth: 2, Dash: []float64{3, 1.5}})
	b.DrawPath("M0,0h1v1z", Style{Kind: KindFill, Fill: color.NRGBA{R: 255, A: 128}})
	require.NoError(t, b.DrawText(context.Background(), Text{
		X: 1, Y: 2.5, Text: `say "hi"`, Color: color.White, Font: 42, Size: 12, Align: 22, Angle: 90,
	}).Wait(context.Background()))

	file := filepath.Join(t.TempDir(), "calls.txt")
	require.NoError(t, b.SaveToFile(file))
	content, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, `path line none #000000ff 2 3,1.5 M0,0h1
path fill #ff000080 none 0 - M0,0h1v1z
text 1 2.5 #ffffffff 42 12 22 90 - "say \"hi\""
`, string(content))
}
