package coords

import "fmt"

// FrameToDevice converts frame fractions to device pixels.
// Fractions are measured from the top-left corner of the frame.
func (m *Mapper) FrameToDevice(fx, fy float64) (x, y float64) {
	r := m.FrameRect()
	return r.X + fx*r.Width, r.Y + fy*r.Height
}

// DeviceToFrame is the inverse of FrameToDevice.
func (m *Mapper) DeviceToFrame(x, y float64) (fx, fy float64) {
	r := m.FrameRect()
	return (x - r.X) / r.Width, (y - r.Y) / r.Height
}

// Anchor selects the space a position is re-expressed in.
type Anchor uint8

const (
	AnchorNDC   Anchor = iota // fractions of the pad, y upward
	AnchorFrame               // fractions of the frame, y downward
)

// Reanchor converts the data-space point (x, y) into the given space,
// so that it stays fixed on screen when the axes are zoomed.
func (m *Mapper) Reanchor(anchor Anchor, x, y float64) (float64, float64, error) {
	px, err := m.ToDevice(X, x, false)
	if err != nil {
		return 0, 0, err
	}
	py, err := m.ToDevice(Y, y, false)
	if err != nil {
		return 0, 0, err
	}
	switch anchor {
	case AnchorNDC:
		return px / m.Width, (m.Height - py) / m.Height, nil
	case AnchorFrame:
		fx, fy := m.DeviceToFrame(px, py)
		return fx, fy, nil
	default:
		return 0, 0, fmt.Errorf("coords: invalid anchor %d", anchor)
	}
}
