// Package coords maps data-space coordinates to device pixels.
//
// A Mapper holds one transform per axis. Values are either expressed
// in the data domain of the axis (linear or logarithmic, possibly reversed)
// or in NDC, the [0,1] range relative to the whole pad.
package coords

import (
	"errors"
	"fmt"
	"math"
)

// ErrDomain is returned when a value can't be mapped, for instance
// a non-positive value on a logarithmic axis.
var ErrDomain = errors.New("coords: value outside of axis domain")

// Name selects an axis.
type Name uint8

const (
	X Name = iota
	Y
)

func (n Name) String() string {
	switch n {
	case X:
		return "x"
	case Y:
		return "y"
	default:
		return "<unknown axis>"
	}
}

// Rect is a device-space rectangle, with Y growing downward.
type Rect struct{ X, Y, Width, Height float64 }

// IsEmpty returns true for degenerated rectangles.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Geometry exposes the pad and frame dimensions.
type Geometry interface {
	PadWidth() float64
	PadHeight() float64
	FrameRect() Rect
}

// Axis is the data domain of one axis.
type Axis struct {
	Min, Max float64
	Log      bool
	Reverse  bool
}

// interpolate maps v from the axis domain to [d0, d1]
func (a Axis) interpolate(v, d0, d1 float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %v", ErrDomain, v)
	}
	if a.Reverse {
		d0, d1 = d1, d0
	}
	min, max := a.Min, a.Max
	if a.Log {
		if v <= 0 || min <= 0 || max <= 0 {
			return 0, fmt.Errorf("%w: log of %v", ErrDomain, v)
		}
		v, min, max = math.Log10(v), math.Log10(min), math.Log10(max)
	}
	if max == min {
		return 0, fmt.Errorf("%w: empty axis range", ErrDomain)
	}
	return d0 + (v-min)/(max-min)*(d1-d0), nil
}

// invert maps px from [d0, d1] back to the axis domain
func (a Axis) invert(px, d0, d1 float64) (float64, error) {
	if math.IsNaN(px) || math.IsInf(px, 0) {
		return 0, fmt.Errorf("%w: %v", ErrDomain, px)
	}
	if a.Reverse {
		d0, d1 = d1, d0
	}
	if d0 == d1 {
		return 0, fmt.Errorf("%w: empty device range", ErrDomain)
	}
	t := (px - d0) / (d1 - d0)
	if a.Log {
		if a.Min <= 0 || a.Max <= 0 {
			return 0, fmt.Errorf("%w: log axis with non-positive bounds", ErrDomain)
		}
		lmin, lmax := math.Log10(a.Min), math.Log10(a.Max)
		return math.Pow(10, lmin+t*(lmax-lmin)), nil
	}
	return a.Min + t*(a.Max-a.Min), nil
}

// Mapper converts between data space and device space.
// Its zero value is not usable: Width and Height must be set.
type Mapper struct {
	X, Y Axis

	Width, Height float64 // pad size, in pixels

	// Frame is the device rectangle the axes are drawn into.
	// An empty frame means the whole pad.
	Frame Rect
}

// NewMapper returns a mapper whose axes cover [0,1] on the whole pad.
func NewMapper(width, height float64) *Mapper {
	return &Mapper{
		X:      Axis{Min: 0, Max: 1},
		Y:      Axis{Min: 0, Max: 1},
		Width:  width,
		Height: height,
	}
}

var _ Geometry = (*Mapper)(nil)

func (m *Mapper) PadWidth() float64  { return m.Width }
func (m *Mapper) PadHeight() float64 { return m.Height }

// FrameRect returns the frame rectangle, defaulting to the whole pad.
func (m *Mapper) FrameRect() Rect {
	if m.Frame.IsEmpty() {
		return Rect{Width: m.Width, Height: m.Height}
	}
	return m.Frame
}

// deviceRange returns the device interval for the axis, ordered
// so that the axis minimum maps to the first value.
func (m *Mapper) deviceRange(axis Name) (float64, float64) {
	f := m.FrameRect()
	if axis == X {
		return f.X, f.X + f.Width
	}
	return f.Y + f.Height, f.Y // data y grows upward
}

func (m *Mapper) axis(name Name) Axis {
	if name == X {
		return m.X
	}
	return m.Y
}

// ToDevice maps `value` on the given axis to a device pixel.
// When `ndc` is true, `value` is a fraction of the pad.
func (m *Mapper) ToDevice(axis Name, value float64, ndc bool) (float64, error) {
	if ndc {
		if math.IsNaN(value) || math.IsInf(value, 0) {
			return 0, fmt.Errorf("%w: %v", ErrDomain, value)
		}
		if axis == X {
			return value * m.Width, nil
		}
		return (1 - value) * m.Height, nil
	}
	d0, d1 := m.deviceRange(axis)
	return m.axis(axis).interpolate(value, d0, d1)
}

// ToData is the inverse of ToDevice.
func (m *Mapper) ToData(axis Name, px float64, ndc bool) (float64, error) {
	if ndc {
		if axis == X {
			if m.Width == 0 {
				return 0, fmt.Errorf("%w: empty pad", ErrDomain)
			}
			return px / m.Width, nil
		}
		if m.Height == 0 {
			return 0, fmt.Errorf("%w: empty pad", ErrDomain)
		}
		return 1 - px/m.Height, nil
	}
	d0, d1 := m.deviceRange(axis)
	return m.axis(axis).invert(px, d0, d1)
}

// Funcs binds both axes for a fixed coordinate mode.
type Funcs struct {
	m   *Mapper
	ndc bool
}

// Funcs returns the mapping functions for the given mode.
func (m *Mapper) Funcs(ndc bool) Funcs { return Funcs{m: m, ndc: ndc} }

func (f Funcs) X(v float64) (float64, error) { return f.m.ToDevice(X, v, f.ndc) }
func (f Funcs) Y(v float64) (float64, error) { return f.m.ToDevice(Y, v, f.ndc) }

// Point maps a data point, failing if any of its coordinates is undrawable.
func (f Funcs) Point(x, y float64) (float64, float64, error) {
	px, err := f.X(x)
	if err != nil {
		return 0, 0, err
	}
	py, err := f.Y(y)
	if err != nil {
		return 0, 0, err
	}
	return px, py, nil
}
