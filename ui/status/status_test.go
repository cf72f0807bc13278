package status

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
)

func TestView_Counters(t *testing.T) {
	m := New()
	m.SetScroll(0.42, true)
	m.SetColumns(2)
	m.SetCategories(2, 9)
	m.SetMounted(6, 120)

	out := m.View()
	assert.Contains(t, out, "42%")
	assert.Contains(t, out, "cols")
	assert.Contains(t, out, "/9")
	assert.Contains(t, out, "/120")
}

func TestView_NotScrollable(t *testing.T) {
	m := New()
	m.SetScroll(0, false)
	assert.Contains(t, m.View(), "all")
}

func TestView_MessageReplacesCounters(t *testing.T) {
	m := New()
	m.SetMounted(6, 120)
	m.SetMessage("loading catalog…", false)
	out := m.View()
	assert.Contains(t, out, "loading catalog")
	assert.NotContains(t, out, "/120")

	m.SetMessage("", false)
	assert.Contains(t, m.View(), "/120")
}

func TestView_HintRightAligned(t *testing.T) {
	m := New()
	m.SetWidth(60)
	m.SetHint("? help")
	out := m.View()
	assert.Equal(t, 60, lipgloss.Width(out))
	assert.Contains(t, out, "? help")
}

func TestPills(t *testing.T) {
	assert.Empty(t, CountPill("cards", 1, 0))
	assert.Contains(t, CountPill("cards", 3, 5), "3")
	assert.Contains(t, ValuePill("cols", 2), "2")
}
