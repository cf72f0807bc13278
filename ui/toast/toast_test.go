package toast

import (
	"strings"
	"testing"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestToasts_ExpireAfterTTL(t *testing.T) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	m := New(clock.now)

	m.Add("catalog reloaded", Info)
	clock.t = clock.t.Add(time.Second)
	m.Add("bad item id", Warning)

	next, ok := m.Tick()
	require.True(t, ok)
	assert.Equal(t, TTL-time.Second, next)
	assert.Equal(t, 2, m.Len())

	clock.t = clock.t.Add(TTL - time.Second)
	next, ok = m.Tick()
	require.True(t, ok)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, time.Second, next)

	clock.t = clock.t.Add(time.Second)
	_, ok = m.Tick()
	assert.False(t, ok)
	assert.Zero(t, m.Len())
}

func TestToasts_QueueIsBounded(t *testing.T) {
	m := New(nil)
	for _, s := range []string{"a", "b", "c", "d", "e"} {
		m.Add(s, Error)
	}
	assert.Equal(t, maxToasts, m.Len())
	out := m.View(40)
	assert.NotContains(t, out, " a ")
	assert.Contains(t, out, " e ")
}

func TestView_RightAligned(t *testing.T) {
	m := New(nil)
	assert.Empty(t, m.View(40))
	m.Add("saved", Info)
	lines := strings.Split(m.View(40), "\n")
	require.Len(t, lines, 1)
	assert.Equal(t, 40, lipgloss.Width(lines[0]))
}
