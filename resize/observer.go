// Package resize reports content-box size changes of observed targets,
// decoupled from the scroll path. The owner calls Refresh whenever layout may
// have changed (a terminal resize, a catalog reload); only targets whose size
// actually changed are reported.
package resize

import (
	"sort"
	"sync"
)

// Size is a content-box size in logical units.
type Size struct {
	Width  float64
	Height float64
}

// Placeholder is reported when a target cannot be measured yet.
var Placeholder = Size{Width: 1, Height: 1}

// Sizer is a target whose content box can be measured. ok is false while the
// target has not been laid out.
type Sizer interface {
	ContentSize() (size Size, ok bool)
}

// SizerFunc adapts a function to Sizer.
type SizerFunc func() (Size, bool)

// ContentSize implements Sizer.
func (f SizerFunc) ContentSize() (Size, bool) { return f() }

// Handle identifies one observation.
type Handle uint64

// Option configures an Observer.
type Option func(*Observer)

// WithDispatch routes every report through dispatch instead of calling the
// handler inline. A report whose observation was removed before dispatch
// runs it is dropped.
func WithDispatch(dispatch func(func())) Option {
	return func(o *Observer) {
		if dispatch != nil {
			o.dispatch = dispatch
		}
	}
}

type observation struct {
	target Sizer
	fn     func(Size)
	last   Size
}

// Observer tracks a set of observations. It is safe for concurrent use.
type Observer struct {
	mu       sync.Mutex
	next     Handle
	active   map[Handle]*observation
	dispatch func(func())
}

// NewObserver returns an Observer with inline delivery.
func NewObserver(opts ...Option) *Observer {
	o := &Observer{
		active:   make(map[Handle]*observation),
		dispatch: func(f func()) { f() },
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Observe starts watching target and reports its current size once.
func (o *Observer) Observe(target Sizer, fn func(Size)) Handle {
	size, ok := target.ContentSize()
	if !ok {
		size = Placeholder
	}

	o.mu.Lock()
	o.next++
	h := o.next
	o.active[h] = &observation{target: target, fn: fn, last: size}
	o.mu.Unlock()

	o.deliver(h, size)
	return h
}

// Unobserve stops an observation. Unknown or already removed handles are
// ignored.
func (o *Observer) Unobserve(h Handle) {
	o.mu.Lock()
	delete(o.active, h)
	o.mu.Unlock()
}

// Observing reports whether h is still active.
func (o *Observer) Observing(h Handle) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.active[h]
	return ok
}

// Refresh re-measures every target and reports those whose size changed.
// Targets that cannot be measured keep their last reported size. It returns
// the number of reports issued.
func (o *Observer) Refresh() int {
	type change struct {
		h    Handle
		size Size
	}
	var changes []change

	o.mu.Lock()
	for h, obs := range o.active {
		size, ok := obs.target.ContentSize()
		if !ok || size == obs.last {
			continue
		}
		obs.last = size
		changes = append(changes, change{h: h, size: size})
	}
	o.mu.Unlock()

	// Handles grow monotonically, so this keeps delivery in observation order.
	sort.Slice(changes, func(i, j int) bool { return changes[i].h < changes[j].h })
	for _, c := range changes {
		o.deliver(c.h, c.size)
	}
	return len(changes)
}

func (o *Observer) deliver(h Handle, size Size) {
	o.dispatch(func() {
		o.mu.Lock()
		obs, ok := o.active[h]
		o.mu.Unlock()
		if ok {
			obs.fn(size)
		}
	})
}
