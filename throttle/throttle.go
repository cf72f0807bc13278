// Package throttle coalesces a high-frequency call stream into at most one
// trailing-edge invocation per interval.
//
// Calls that arrive while a fire is scheduled only replace the pending
// argument; nothing is queued beyond the latest value. The first call after
// an idle period schedules a fire interval later, so the handler never runs
// on the leading edge.
package throttle

import (
	"sync"
	"time"
)

// DefaultInterval is one animation frame at 60Hz.
const DefaultInterval = 16 * time.Millisecond

// Option configures a Throttle.
type Option func(*options)

type options struct {
	clock Clock
}

// WithClock replaces the wall clock, typically with a ManualClock in tests or
// with a clock that dispatches fires onto an event loop.
func WithClock(c Clock) Option {
	return func(o *options) {
		if c != nil {
			o.clock = c
		}
	}
}

// Throttle is a trailing-edge rate limiter around a handler taking a T.
// It is safe for concurrent use. The handler runs without any internal lock
// held.
type Throttle[T any] struct {
	mu        sync.Mutex
	interval  time.Duration
	clock     Clock
	fn        func(T)
	latest    T
	timer     Timer
	gen       uint64
	pending   bool
	cancelled bool
}

// New wraps fn. A non-positive interval falls back to DefaultInterval.
func New[T any](interval time.Duration, fn func(T), opts ...Option) *Throttle[T] {
	o := options{clock: RealClock}
	for _, opt := range opts {
		opt(&o)
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Throttle[T]{
		interval: interval,
		clock:    o.clock,
		fn:       fn,
	}
}

// Interval returns the minimum spacing between executions.
func (t *Throttle[T]) Interval() time.Duration { return t.interval }

// Call records v as the latest argument and schedules a trailing fire if
// none is pending. Calls after Cancel are ignored.
func (t *Throttle[T]) Call(v T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return
	}
	t.latest = v
	if t.pending {
		return
	}
	t.pending = true
	t.gen++
	gen := t.gen
	t.timer = t.clock.AfterFunc(t.interval, func() { t.fire(gen) })
}

// Pending reports whether a trailing fire is scheduled.
func (t *Throttle[T]) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

// Cancel drops any scheduled fire and disables the throttle. It is safe to
// call more than once.
func (t *Throttle[T]) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelled {
		return
	}
	t.cancelled = true
	t.pending = false
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	var zero T
	t.latest = zero
}

func (t *Throttle[T]) fire(gen uint64) {
	t.mu.Lock()
	// A timer that lost the race with Cancel still gets here; gen and the
	// cancelled flag keep it from running.
	if t.cancelled || !t.pending || gen != t.gen {
		t.mu.Unlock()
		return
	}
	v := t.latest
	var zero T
	t.latest = zero
	t.pending = false
	t.timer = nil
	t.mu.Unlock()

	t.fn(v)
}
