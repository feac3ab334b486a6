package painting

import (
	"errors"
	"fmt"
)

var (
	// ErrBufferExhausted is returned when the operations require
	// more values than the buffer provides.
	ErrBufferExhausted = errors.New("painting: buffer exhausted")
	// ErrUnknownOp is returned, in strict mode, for unknown or
	// malformed operations.
	ErrUnknownOp = errors.New("painting: unsupported operation")
)

// Cursor is the position of the interpreter: the index of the
// current operation and of the next unread buffer value.
// The buffer index never decreases.
type Cursor struct {
	Op, Buf int
}

func (c Cursor) String() string { return fmt.Sprintf("op %d, buffer %d", c.Op, c.Buf) }

// buffer reads the flat coordinate buffer from left to right.
type buffer struct {
	vals []float64
	pos  int
}

// take returns the next `n` values.
func (b *buffer) take(n int) ([]float64, error) {
	if n < 0 || n > len(b.vals)-b.pos {
		return nil, fmt.Errorf("%w: %d values required at index %d, %d available",
			ErrBufferExhausted, n, b.pos, len(b.vals)-b.pos)
	}
	out := b.vals[b.pos : b.pos+n]
	b.pos += n
	return out, nil
}

func (b *buffer) remaining() int { return len(b.vals) - b.pos }
