package coords

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearMapping(t *testing.T) {
	m := &Mapper{X: Axis{Min: 0, Max: 10}, Y: Axis{Min: 0, Max: 100}, Width: 200, Height: 400}

	x, err := m.ToDevice(X, 5, false)
	require.NoError(t, err)
	assert.InDelta(t, 100, x, 1e-9)

	y, err := m.ToDevice(Y, 25, false)
	require.NoError(t, err)
	assert.InDelta(t, 300, y, 1e-9) // y grows upward
}

func TestReverseAxis(t *testing.T) {
	m := &Mapper{X: Axis{Min: 0, Max: 10, Reverse: true}, Y: Axis{Min: 0, Max: 1}, Width: 200, Height: 100}
	x, err := m.ToDevice(X, 0, false)
	require.NoError(t, err)
	assert.InDelta(t, 200, x, 1e-9)

	v, err := m.ToData(X, x, false)
	require.NoError(t, err)
	assert.InDelta(t, 0, v, 1e-9)
}

func TestLogAxis(t *testing.T) {
	m := &Mapper{X: Axis{Min: 1, Max: 1000, Log: true}, Y: Axis{Min: 0, Max: 1}, Width: 300, Height: 100}
	x, err := m.ToDevice(X, 10, false)
	require.NoError(t, err)
	assert.InDelta(t, 100, x, 1e-9)

	v, err := m.ToData(X, 200, false)
	require.NoError(t, err)
	assert.InDelta(t, 100, v, 1e-9)

	for _, bad := range []float64{0, -3, math.NaN()} {
		_, err = m.ToDevice(X, bad, false)
		assert.True(t, errors.Is(err, ErrDomain), "value %v", bad)
	}
}

func TestNDCIgnoresDomain(t *testing.T) {
	m := &Mapper{X: Axis{Min: 5, Max: 6, Log: true}, Y: Axis{Min: -1, Max: 1}, Width: 200, Height: 400}
	x, err := m.ToDevice(X, 0.25, true)
	require.NoError(t, err)
	assert.InDelta(t, 50, x, 1e-9)

	y, err := m.ToDevice(Y, 0.25, true)
	require.NoError(t, err)
	assert.InDelta(t, 300, y, 1e-9)

	back, err := m.ToData(Y, y, true)
	require.NoError(t, err)
	assert.InDelta(t, 0.25, back, 1e-9)
}

func TestFrameMapping(t *testing.T) {
	m := &Mapper{
		X: Axis{Min: 0, Max: 1}, Y: Axis{Min: 0, Max: 1},
		Width: 500, Height: 400,
		Frame: Rect{X: 50, Y: 40, Width: 400, Height: 320},
	}
	x, _ := m.ToDevice(X, 0, false)
	y, _ := m.ToDevice(Y, 0, false)
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 360.0, y)

	fx, fy := m.DeviceToFrame(m.FrameToDevice(0.3, 0.6))
	assert.InDelta(t, 0.3, fx, 1e-12)
	assert.InDelta(t, 0.6, fy, 1e-12)
}

func TestReanchor(t *testing.T) {
	m := &Mapper{
		X: Axis{Min: 0, Max: 10}, Y: Axis{Min: 0, Max: 10},
		Width: 200, Height: 200,
		Frame: Rect{X: 20, Y: 20, Width: 160, Height: 160},
	}
	nx, ny, err := m.Reanchor(AnchorNDC, 5, 5)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, nx, 1e-12)
	assert.InDelta(t, 0.5, ny, 1e-12)

	fx, fy, err := m.Reanchor(AnchorFrame, 0, 10)
	require.NoError(t, err)
	assert.InDelta(t, 0, fx, 1e-12)
	assert.InDelta(t, 0, fy, 1e-12)
}

func TestRoundTrip(t *testing.T) {
	m := &Mapper{X: Axis{Min: -3, Max: 7}, Y: Axis{Min: 0.1, Max: 1e4, Log: true, Reverse: true}, Width: 640, Height: 480}
	f := m.Funcs(false)
	for _, p := range [][2]float64{{-3, 0.1}, {0, 1}, {2.5, 37}, {7, 1e4}} {
		px, py, err := f.Point(p[0], p[1])
		require.NoError(t, err)
		x, err := m.ToData(X, px, false)
		require.NoError(t, err)
		y, err := m.ToData(Y, py, false)
		require.NoError(t, err)
		assert.InDelta(t, p[0], x, 1e-9)
		assert.InEpsilon(t, p[1], y, 1e-9)
	}
}
