package filter

import (
	"github.com/pkg/errors"
)

var (
	ErrNoWindow = errors.New("window must hold at least one sample")
	ErrBadAlpha = errors.New("alpha must satisfy 0 < num <= den")
)

// Filter consumes one sample per call and returns the current
// filtered value. The firmware original dispatches these through a
// function-pointer table; here that is an interface.
type Filter interface {
	Update(sample int32) int32
}

var (
	_ Filter = (*MovingAverage)(nil)
	_ Filter = (*Exponential)(nil)
)

// MovingAverage is a boxcar filter over the last len(window) samples.
// The window slice is caller-owned, same borrow contract as a ring
// buffer's storage. Until the window fills, the average covers only
// the samples seen so far.
type MovingAverage struct {
	window []int32
	idx    int
	count  int
	sum    int64
}

func NewMovingAverage(window []int32) (*MovingAverage, error) {
	if len(window) == 0 {
		return nil, ErrNoWindow
	}
	return &MovingAverage{window: window}, nil
}

func (f *MovingAverage) Update(sample int32) int32 {
	if f.count == len(f.window) {
		f.sum -= int64(f.window[f.idx])
	} else {
		f.count++
	}
	f.window[f.idx] = sample
	f.sum += int64(sample)
	f.idx = (f.idx + 1) % len(f.window)
	return int32(f.sum / int64(f.count))
}

// Reset discards all accumulated samples.
func (f *MovingAverage) Reset() {
	f.idx = 0
	f.count = 0
	f.sum = 0
}

// Exponential is a first-order IIR low-pass in integer arithmetic:
// y += num*(x-y)/den. The first sample primes the state. Division
// truncates toward zero, so the output settles within den/num counts
// of a constant input rather than exactly on it.
type Exponential struct {
	num    uint16
	den    uint16
	y      int32
	primed bool
}

func NewExponential(num, den uint16) (*Exponential, error) {
	if num == 0 || den == 0 || num > den {
		return nil, ErrBadAlpha
	}
	return &Exponential{num: num, den: den}, nil
}

func (f *Exponential) Update(sample int32) int32 {
	if !f.primed {
		f.y = sample
		f.primed = true
		return f.y
	}
	f.y += int32(int64(f.num) * int64(sample-f.y) / int64(f.den))
	return f.y
}

// Reset unprimes the filter; the next sample becomes the new state.
func (f *Exponential) Reset() {
	f.primed = false
	f.y = 0
}
