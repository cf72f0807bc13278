// Package status provides the bottom status bar: scroll position, grid
// columns and how much of the catalog is currently mounted.
package status

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/storefront/style"
)

// Model is the status bar state. Drive it via setter methods; it has no Update loop.
type Model struct {
	fraction   float64
	scrollable bool
	columns    int
	mounted    int
	items      int
	visible    int
	categories int
	message    string
	isError    bool
	hint       string
	width      int
}

// New returns a zero-value Model.
func New() Model {
	return Model{}
}

// SetScroll updates the scroll position, 0 at the top and 1 at the bottom.
func (m *Model) SetScroll(fraction float64, scrollable bool) {
	m.fraction = fraction
	m.scrollable = scrollable
}

// SetColumns updates the grid column count.
func (m *Model) SetColumns(n int) { m.columns = n }

// SetMounted updates how many item cards are drawn out of all items.
func (m *Model) SetMounted(mounted, items int) {
	m.mounted = mounted
	m.items = items
}

// SetCategories updates how many categories are mounted out of all.
func (m *Model) SetCategories(visible, total int) {
	m.visible = visible
	m.categories = total
}

// SetMessage replaces the counters with a message, e.g. while loading.
// An empty message restores the counters.
func (m *Model) SetMessage(s string, isError bool) {
	m.message = s
	m.isError = isError
}

// SetHint sets the right-aligned key hint.
func (m *Model) SetHint(s string) { m.hint = s }

// SetWidth updates the width used to right-align the hint.
func (m *Model) SetWidth(w int) { m.width = w }

// View renders the status line.
func (m Model) View() string {
	left := m.leftView()
	if m.hint == "" || m.width <= 0 {
		return left
	}
	hint := style.Hint.Render(m.hint)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(hint)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + hint
}

func (m Model) leftView() string {
	if m.message != "" {
		if m.isError {
			return style.StatusBar.Render(style.ErrorText.Render(m.message))
		}
		return style.StatusBar.Render(m.message)
	}

	var parts []string
	if m.scrollable {
		parts = append(parts, ValuePill("pos", fmt.Sprintf("%d%%", int(m.fraction*100+0.5))))
	} else {
		parts = append(parts, ValuePill("pos", "all"))
	}
	if m.columns > 0 {
		parts = append(parts, ValuePill("cols", m.columns))
	}
	if p := CountPill("categories", m.visible, m.categories); p != "" {
		parts = append(parts, p)
	}
	if p := CountPill("cards", m.mounted, m.items); p != "" {
		parts = append(parts, p)
	}
	return style.StatusBar.Render(strings.Join(parts, style.Faint.Render(" · ")))
}
