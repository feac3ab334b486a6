package svgdraw

import "context"

// Pending is a deferred completion, resolved exactly once.
type Pending struct {
	done chan struct{}
	err  error
}

// Resolved returns an already completed Pending.
func Resolved(err error) *Pending {
	p := &Pending{done: make(chan struct{}), err: err}
	close(p.done)
	return p
}

// Go runs `fn` on a new goroutine and resolves with its result.
func Go(fn func() error) *Pending {
	p := &Pending{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.err = fn()
	}()
	return p
}

// Done is closed once the operation completes.
func (p *Pending) Done() <-chan struct{} { return p.done }

// Wait blocks until the operation completes or `ctx` is done.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
