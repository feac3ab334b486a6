package svgdraw

import (
	"context"
	"sync"
)

// Call is one recorded backend operation: exactly one of
// Path or Text is meaningful, depending on IsText.
type Call struct {
	IsText bool

	Path  string
	Style Style

	Text Text
}

// Recorder is a Backend storing the calls it receives,
// in order. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	calls []Call

	// TextHook, if not nil, is run on a separate goroutine for
	// each text request, and its result resolves the returned Pending.
	TextHook func(ctx context.Context, t Text) error
}

var _ Backend = (*Recorder)(nil)

func (r *Recorder) DrawPath(d string, style Style) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Path: d, Style: style})
}

func (r *Recorder) DrawText(ctx context.Context, t Text) *Pending {
	r.mu.Lock()
	r.calls = append(r.calls, Call{IsText: true, Text: t})
	r.mu.Unlock()

	if r.TextHook == nil {
		return Resolved(nil)
	}
	hook := r.TextHook
	return Go(func() error { return hook(ctx, t) })
}

// Calls returns a copy of the recorded calls.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Call(nil), r.calls...)
}

// Paths returns the path data of the recorded path calls.
func (r *Recorder) Paths() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, c := range r.calls {
		if !c.IsText {
			out = append(out, c.Path)
		}
	}
	return out
}

// Reset discards the recorded calls.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = r.calls[:0]
}

// Playback replays the recorded calls on `dst`, waiting for each text.
func (r *Recorder) Playback(ctx context.Context, dst Backend) error {
	for _, c := range r.Calls() {
		if !c.IsText {
			dst.DrawPath(c.Path, c.Style)
			continue
		}
		if err := dst.DrawText(ctx, c.Text).Wait(ctx); err != nil {
			return err
		}
	}
	return nil
}
