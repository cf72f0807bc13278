package app

import (
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/miosa/storefront/msg"
	"github.com/miosa/storefront/throttle"
)

// Dispatcher is a throttle.Clock whose timers fire on the bubbletea update
// loop: each expired timer sends a msg.Dispatch that Update runs. Fires that
// happen before a program is attached are held and handed over on Attach,
// so callbacks never run on a timer goroutine.
type Dispatcher struct {
	mu     sync.Mutex
	send   func(tea.Msg)
	queued []func()
}

var _ throttle.Clock = (*Dispatcher)(nil)

// NewDispatcher returns a Dispatcher without a program.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Attach routes future timer fires through p. The returned command
// delivers the fires held so far.
func (d *Dispatcher) Attach(p *tea.Program) tea.Cmd {
	if p == nil {
		return nil
	}
	return d.SetSend(p.Send)
}

// SetSend routes future timer fires through send and returns the held
// fires as a command for the update loop.
func (d *Dispatcher) SetSend(send func(tea.Msg)) tea.Cmd {
	if send == nil {
		return nil
	}
	d.mu.Lock()
	d.send = send
	queued := d.queued
	d.queued = nil
	d.mu.Unlock()

	if len(queued) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, len(queued))
	for i, f := range queued {
		cmds[i] = func() tea.Msg { return msg.Dispatch{Fn: f} }
	}
	return tea.Batch(cmds...)
}

// Held returns how many fires are waiting for a program.
func (d *Dispatcher) Held() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queued)
}

// Run delivers f to the update loop, or holds it until one is attached.
func (d *Dispatcher) Run(f func()) {
	d.mu.Lock()
	send := d.send
	if send == nil {
		d.queued = append(d.queued, f)
	}
	d.mu.Unlock()
	if send != nil {
		send(msg.Dispatch{Fn: f})
	}
}

// AfterFunc implements throttle.Clock.
func (d *Dispatcher) AfterFunc(delay time.Duration, f func()) throttle.Timer {
	return time.AfterFunc(delay, func() { d.Run(f) })
}
