package scale

import (
	"github.com/pkg/errors"
)

var (
	ErrLengthMismatch = errors.New("xs and ys must have equal length")
	ErrTooFewPoints   = errors.New("table needs at least two points")
	ErrUnsorted       = errors.New("xs must be strictly increasing")
)

// Linear remaps x from [inMin, inMax] to [outMin, outMax]. Integer
// arithmetic, truncating toward zero. Inputs outside the source range
// extrapolate; a degenerate source range yields outMin.
func Linear(x, inMin, inMax, outMin, outMax int32) int32 {
	if inMax == inMin {
		return outMin
	}
	return int32(int64(x-inMin)*int64(outMax-outMin)/int64(inMax-inMin)) + outMin
}

// Table maps through a breakpoint lookup table with linear
// interpolation between points and clamping outside them. Calibration
// curves for nonlinear sensors are the usual source of the points.
type Table struct {
	xs []int32
	ys []int32
}

// NewTable borrows the breakpoint slices; xs must be strictly
// increasing.
func NewTable(xs, ys []int32) (*Table, error) {
	if len(xs) != len(ys) {
		return nil, ErrLengthMismatch
	}
	if len(xs) < 2 {
		return nil, ErrTooFewPoints
	}
	for i := 1; i < len(xs); i++ {
		if xs[i] <= xs[i-1] {
			return nil, errors.Wrapf(ErrUnsorted, "at index %d", i)
		}
	}
	return &Table{xs: xs, ys: ys}, nil
}

// Lookup interpolates x through the table, clamping to the first and
// last points outside the covered range.
func (t *Table) Lookup(x int32) int32 {
	if x <= t.xs[0] {
		return t.ys[0]
	}
	last := len(t.xs) - 1
	if x >= t.xs[last] {
		return t.ys[last]
	}

	// find the segment holding x
	i := 1
	for x > t.xs[i] {
		i++
	}
	x0, x1 := t.xs[i-1], t.xs[i]
	y0, y1 := t.ys[i-1], t.ys[i]
	return y0 + int32(int64(x-x0)*int64(y1-y0)/int64(x1-x0))
}
