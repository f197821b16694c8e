package swtimer

import (
	"github.com/pkg/errors"
)

var ErrZeroInterval = errors.New("interval must be at least one tick")

// Callback carries the context registered alongside it, so one handler
// can serve several timers.
type Callback func(ctx any)

// Timer is a tick-driven software timer. It has no notion of wall
// clock time: the owner calls Tick once per time base tick (commonly
// from a periodic interrupt) and the timer counts those. Not safe for
// concurrent use.
type Timer struct {
	interval uint32 // ticks per period
	counter  uint32
	started  bool
	expired  bool
	periodic bool
	fn       Callback
	ctx      any
}

// New returns a stopped timer. A periodic timer reloads itself on
// expiry; a one-shot timer stops.
func New(intervalTicks uint32, periodic bool) (*Timer, error) {
	if intervalTicks == 0 {
		return nil, ErrZeroInterval
	}
	return &Timer{interval: intervalTicks, periodic: periodic}, nil
}

// SetCallback registers fn with its context, replacing any previous
// registration. A nil fn disables notification. The callback runs
// synchronously inside Tick.
func (t *Timer) SetCallback(fn Callback, ctx any) {
	t.fn = fn
	t.ctx = ctx
}

// Start arms the timer from a fresh count. Restarting a running timer
// resets the current period.
func (t *Timer) Start() {
	t.counter = 0
	t.started = true
	t.expired = false
}

// Stop disarms the timer. A pending expired flag survives until read.
func (t *Timer) Stop() {
	t.started = false
}

// Tick advances the timer by one time base tick. On reaching the
// interval it marks the timer expired, fires the callback, and either
// reloads (periodic) or stops (one-shot).
func (t *Timer) Tick() {
	if !t.started {
		return
	}
	t.counter++
	if t.counter < t.interval {
		return
	}
	t.expired = true
	if t.periodic {
		t.counter = 0
	} else {
		t.started = false
	}
	if t.fn != nil {
		t.fn(t.ctx)
	}
}

// Active reports whether the timer is armed.
func (t *Timer) Active() bool {
	return t.started
}

// Expired reports whether the timer reached its interval since the
// last call, and clears the flag. Same acknowledgement idiom as
// polling a buffer overflow flag.
func (t *Timer) Expired() bool {
	v := t.expired
	t.expired = false
	return v
}

// Interval returns the configured period in ticks.
func (t *Timer) Interval() uint32 {
	return t.interval
}
