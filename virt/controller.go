// Package virt decides which catalog categories, and which items inside
// them, need a live rendering.
//
// A Controller owns the visibility state of one category. It is created with
// NewController, brought to life with Mount, advanced with Tick and torn down
// with Dispose. Every tick rebuilds the whole State from the Frame it is given
// and from live Measurable handles, then publishes it in one step; readers
// never see a half-updated state.
//
// Item handles are only measured while the category container itself is
// visible. A hidden container costs one measurement per tick no matter how
// many items it holds.
package virt

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/miosa/storefront/event"
	"github.com/miosa/storefront/resize"
	"github.com/miosa/storefront/throttle"
)

// ErrStateShape is logged when the item handles no longer match the
// published visibility slice, e.g. after the category's items changed.
var ErrStateShape = errors.New("virt: item visibility length does not match item count")

// eagerCategories is how many leading categories start visible, so the first
// frame has content before anything can be measured.
const eagerCategories = 2

// Phase is the controller lifecycle stage.
type Phase int

const (
	PhaseInitializing Phase = iota // seeded, not subscribed
	PhaseActive                    // subscribed and ticking
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseActive:
		return "active"
	default:
		return "unknown"
	}
}

// Frame is the per-tick input shared by every controller.
type Frame struct {
	ScrollTop      float64
	ViewportHeight float64
}

// State is one published render decision. It is never modified after
// publication.
type State struct {
	ContainerVisible bool
	ItemVisible      []bool
	Metrics          Metrics
	// Seq increases by one with every publication.
	Seq uint64
}

// ItemIsVisible is a bounds-checked read of ItemVisible.
func (s State) ItemIsVisible(i int) bool {
	return i >= 0 && i < len(s.ItemVisible) && s.ItemVisible[i]
}

// VisibleCount returns how many items are marked visible.
func (s State) VisibleCount() int {
	n := 0
	for _, v := range s.ItemVisible {
		if v {
			n++
		}
	}
	return n
}

// Binding carries the collaborators a controller subscribes to on Mount.
// Any field may be nil.
type Binding struct {
	Scroll   event.Source[Frame]
	Resize   event.Source[Frame]
	Observer *resize.Observer
	// Container is observed for width changes.
	Container resize.Sizer
	// Frame, when set, supplies the current frame to throttled scroll ticks.
	// Without it they use the newest frame any event delivered.
	Frame func() Frame
}

// Option configures a Controller.
type Option func(*Controller)

// WithLookahead sets the visibility margin.
func WithLookahead(offset float64) Option {
	return func(c *Controller) {
		if offset >= 0 {
			c.lookahead = offset
		}
	}
}

// WithInterval sets the scroll throttle interval.
func WithInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithClock sets the clock used by the scroll throttle.
func WithClock(clock throttle.Clock) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithLayout shares a layout cache between controllers.
func WithLayout(lc *LayoutCache) Option {
	return func(c *Controller) {
		if lc != nil {
			c.layout = lc
		}
	}
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithListener registers fn to receive every published state. Listeners run
// inside the tick and must not call Tick themselves.
func WithListener(fn func(State)) Option {
	return func(c *Controller) {
		if fn != nil {
			c.listeners = append(c.listeners, fn)
		}
	}
}

// Controller is the per-category virtualization state machine.
type Controller struct {
	index     int
	lookahead float64
	interval  time.Duration
	clock     throttle.Clock
	layout    *LayoutCache
	logger    *zap.Logger
	listeners []func(State)

	state atomic.Pointer[State]

	// mu serializes ticks and guards everything below.
	mu        sync.Mutex
	container Measurable
	items     []Measurable
	width     float64
	phase     Phase
	seq       uint64
	frame     Frame
	frameFn   func() Frame
	scroll    *throttle.Throttle[struct{}]
	disposers []func()
	disposed  bool
}

// NewController seeds the controller for the category at index: the first
// two categories start with a visible container, every item starts hidden.
func NewController(index int, container Measurable, items []Measurable, opts ...Option) *Controller {
	c := &Controller{
		index:     index,
		lookahead: DefaultLookahead,
		interval:  throttle.DefaultInterval,
		clock:     throttle.RealClock,
		logger:    zap.NewNop(),
		container: container,
		items:     items,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.layout == nil {
		c.layout = NewLayoutCache(DefaultLayoutConfig())
	}
	c.logger = c.logger.With(zap.Int("category", index))

	seed := c.seedLocked()
	c.state.Store(&seed)
	return c
}

// Index returns the category position the controller was created for.
func (c *Controller) Index() int { return c.index }

// Phase returns the lifecycle stage.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Disposed reports whether Dispose has run.
func (c *Controller) Disposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Width returns the latest observed container width.
func (c *Controller) Width() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width
}

// State returns the latest published state.
func (c *Controller) State() State {
	return *c.state.Load()
}

// Mount subscribes to b and runs the first tick with f. Mounting a disposed
// or already active controller does nothing.
func (c *Controller) Mount(b Binding, f Frame) {
	c.mu.Lock()
	if c.disposed || c.phase == PhaseActive {
		c.mu.Unlock()
		return
	}
	c.phase = PhaseActive
	c.frameFn = b.Frame
	if b.Scroll != nil {
		c.scroll = throttle.New(c.interval, c.fire, throttle.WithClock(c.clock))
	}
	scroll := c.scroll
	c.mu.Unlock()

	if b.Observer != nil && b.Container != nil {
		obs := b.Observer
		h := obs.Observe(b.Container, c.observe)
		c.addDisposer(func() { obs.Unobserve(h) })
	}
	if scroll != nil {
		c.addDisposer(b.Scroll.Subscribe(func(f Frame) {
			c.note(f)
			scroll.Call(struct{}{})
		}))
	}
	if b.Resize != nil {
		c.addDisposer(b.Resize.Subscribe(c.Tick))
	}

	c.logger.Debug("controller mounted", zap.Int("items", c.itemCount()))
	c.Tick(f)
}

// Rebind swaps the item handles, e.g. after a catalog reload, and schedules
// a throttled recompute. When the item count changes the seed state for the
// new count is published at once.
func (c *Controller) Rebind(container Measurable, items []Measurable) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.container = container
	c.items = items
	if len(c.state.Load().ItemVisible) != len(items) {
		c.publishLocked(c.seedLocked())
	}
	scroll := c.scroll
	c.mu.Unlock()

	if scroll != nil {
		scroll.Call(struct{}{})
	}
}

// Tick recomputes and publishes the state for frame f. Ticks on a disposed
// controller are dropped.
func (c *Controller) Tick(f Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.frame = f

	prev := c.state.Load()
	if len(prev.ItemVisible) != len(c.items) {
		c.logger.Warn("resetting visibility state",
			zap.Error(ErrStateShape),
			zap.Int("visibility_len", len(prev.ItemVisible)),
			zap.Int("items", len(c.items)))
		c.publishLocked(c.seedLocked())
		if c.scroll != nil {
			c.scroll.Call(struct{}{})
		}
		return
	}

	next := State{
		Metrics:     c.layout.Get(len(c.items), c.width),
		ItemVisible: make([]bool, len(c.items)),
	}
	next.ContainerVisible = Measure(c.container, f.ViewportHeight, c.lookahead)
	if next.ContainerVisible {
		for i, item := range c.items {
			next.ItemVisible[i] = Measure(item, f.ViewportHeight, c.lookahead)
		}
	}
	c.publishLocked(next)
}

// Dispose cancels the pending scroll fire and removes every subscription.
// Calling it again is a no-op.
func (c *Controller) Dispose() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	scroll := c.scroll
	disposers := c.disposers
	c.disposers = nil
	c.mu.Unlock()

	if scroll != nil {
		scroll.Cancel()
	}
	for _, d := range disposers {
		d()
	}
	c.logger.Debug("controller disposed")
}

// fire is the trailing edge of the scroll throttle. It ticks with the frame
// current at fire time, not the one of the scroll that scheduled it.
func (c *Controller) fire(struct{}) {
	c.mu.Lock()
	frameFn, f := c.frameFn, c.frame
	c.mu.Unlock()
	if frameFn != nil {
		f = frameFn()
	}
	c.Tick(f)
}

func (c *Controller) note(f Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.disposed {
		c.frame = f
	}
}

func (c *Controller) observe(s resize.Size) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.disposed {
		c.width = s.Width
	}
}

func (c *Controller) addDisposer(d func()) {
	c.mu.Lock()
	if !c.disposed {
		c.disposers = append(c.disposers, d)
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	// Dispose ran while Mount was subscribing.
	d()
}

func (c *Controller) itemCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// seedLocked builds the fail-safe state for the current item count.
func (c *Controller) seedLocked() State {
	return State{
		ContainerVisible: c.index < eagerCategories,
		ItemVisible:      make([]bool, len(c.items)),
		Metrics:          c.layout.Get(len(c.items), c.width),
		Seq:              c.seq,
	}
}

func (c *Controller) publishLocked(s State) {
	c.seq++
	s.Seq = c.seq
	c.state.Store(&s)
	for _, fn := range c.listeners {
		fn(s)
	}
}
