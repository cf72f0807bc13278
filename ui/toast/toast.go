// Package toast provides auto-dismissing notices for catalog loads, reloads
// and errors.
package toast

import (
	"fmt"
	"image/color"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/miosa/storefront/style"
)

// Level classifies toast severity.
type Level int

const (
	Info Level = iota
	Warning
	Error
)

const (
	maxToasts = 3
	// TTL is how long a toast stays on screen.
	TTL = 4 * time.Second
)

type toast struct {
	message string
	level   Level
	expiry  time.Time
}

// Model manages a queue of auto-dismissing toasts.
type Model struct {
	queue []toast
	now   func() time.Time
}

// New creates an empty Model. now defaults to time.Now.
func New(now func() time.Time) Model {
	if now == nil {
		now = time.Now
	}
	return Model{now: now}
}

// Add enqueues a toast. The oldest toasts are dropped beyond maxToasts.
func (m *Model) Add(message string, level Level) {
	if m.now == nil {
		m.now = time.Now
	}
	m.queue = append(m.queue, toast{
		message: message,
		level:   level,
		expiry:  m.now().Add(TTL),
	})
	if len(m.queue) > maxToasts {
		m.queue = m.queue[len(m.queue)-maxToasts:]
	}
}

// Tick prunes expired toasts and returns the time until the next one
// expires, or false when the queue is empty.
func (m *Model) Tick() (time.Duration, bool) {
	if len(m.queue) == 0 {
		return 0, false
	}
	now := m.now()
	alive := m.queue[:0]
	for _, t := range m.queue {
		if now.Before(t.expiry) {
			alive = append(alive, t)
		}
	}
	m.queue = alive
	if len(alive) == 0 {
		return 0, false
	}
	return alive[0].expiry.Sub(now), true
}

// Len returns the number of visible toasts.
func (m Model) Len() int { return len(m.queue) }

// View renders visible toasts as right-aligned colored lines.
func (m Model) View(width int) string {
	if len(m.queue) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.queue))
	for _, t := range m.queue {
		icon, col := iconColor(t.level)
		rendered := lipgloss.NewStyle().Foreground(col).Render(fmt.Sprintf(" %s %s ", icon, t.message))
		pad := width - lipgloss.Width(rendered)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+rendered)
	}
	return strings.Join(lines, "\n")
}

func iconColor(level Level) (string, color.Color) {
	switch level {
	case Warning:
		return "⚠", style.Warning
	case Error:
		return "✘", style.Error
	default:
		return "✓", style.Success
	}
}
