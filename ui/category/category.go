// Package category renders one catalog category: its title, its markdown
// description and the grid of item cards.
//
// The grid always occupies the rows reserved by the layout metrics. Cards
// are only drawn for items the virtualization state marks visible; the rest
// of the grid is placeholders, or blank rows while the whole category is
// off screen.
package category

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/storefront/catalog"
	"github.com/miosa/storefront/style"
	"github.com/miosa/storefront/ui/card"
	"github.com/miosa/storefront/ui/common"
	"github.com/miosa/storefront/virt"
)

// footerRows separates consecutive categories.
const footerRows = 1

// Model is a rendered category. It is not safe for concurrent use.
type Model struct {
	cat   catalog.Category
	scale common.Scale
	width int

	header []string
	stale  bool
}

// New returns a Model for cat.
func New(cat catalog.Category, scale common.Scale) *Model {
	return &Model{cat: cat, scale: scale, stale: true}
}

// Category returns the rendered category.
func (m *Model) Category() catalog.Category { return m.cat }

// Width returns the width in columns.
func (m *Model) Width() int { return m.width }

// SetWidth sets the width in columns.
func (m *Model) SetWidth(w int) {
	if w != m.width {
		m.width = w
		m.stale = true
	}
}

// Invalidate drops cached header lines, e.g. after a theme change.
func (m *Model) Invalidate() { m.stale = true }

// HeaderRows returns the rows above the grid: the title, the description
// and one blank row.
func (m *Model) HeaderRows() int {
	return len(m.headerLines())
}

// GridRows returns the rows reserved for the grid.
func (m *Model) GridRows(metrics virt.Metrics) int {
	return m.scale.Rows(metrics.TotalHeight)
}

// Rows returns the total rows of the category block.
func (m *Model) Rows(metrics virt.Metrics) int {
	return m.HeaderRows() + m.GridRows(metrics) + footerRows
}

// ItemRow returns the first grid row of item i.
func (m *Model) ItemRow(metrics virt.Metrics, i int) int {
	return m.scale.Rows(metrics.SlotTop(i))
}

// CardRows returns the height of one card in rows.
func (m *Model) CardRows(metrics virt.Metrics) int {
	return m.scale.Rows(metrics.ItemHeight)
}

// CardCols returns the width of one card in columns and the gap between
// cards.
func (m *Model) CardCols(metrics virt.Metrics) (width, gap int) {
	cols := metrics.Columns
	if cols < 1 {
		cols = 1
	}
	if cols > 1 {
		gap = m.scale.Cols(metrics.Gap)
		if gap < 1 {
			gap = 1
		}
	}
	width = (m.width - gap*(cols-1)) / cols
	if width < 0 {
		width = 0
	}
	return width, gap
}

// Lines renders rows [from, to) of the category block. metrics is the
// geometry the page laid the block out with; s decides what is drawn in the
// grid.
func (m *Model) Lines(metrics virt.Metrics, s virt.State, from, to int) []string {
	header := m.headerLines()
	grid := m.GridRows(metrics)
	total := len(header) + grid + footerRows
	if from < 0 {
		from = 0
	}
	if to > total {
		to = total
	}
	if from >= to {
		return nil
	}

	blank := strings.Repeat(" ", m.width)
	rows := map[int][]string{}
	out := make([]string, 0, to-from)
	for y := from; y < to; y++ {
		switch {
		case y < len(header):
			out = append(out, header[y])
		case y < len(header)+grid && s.ContainerVisible:
			out = append(out, m.gridLine(metrics, s, y-len(header), rows, blank))
		default:
			out = append(out, blank)
		}
	}
	return out
}

// gridLine returns grid row g, rendering the card row that covers it at
// most once per call.
func (m *Model) gridLine(metrics virt.Metrics, s virt.State, g int, rows map[int][]string, blank string) string {
	cols := metrics.Columns
	if cols < 1 || metrics.Rows == 0 {
		return blank
	}
	cardH := m.CardRows(metrics)
	pitch := metrics.ItemHeight + metrics.Gap
	guess := int(m.scale.Height(g) / pitch)
	for r := guess - 1; r <= guess+1; r++ {
		if r < 0 || r >= metrics.Rows {
			continue
		}
		top := m.ItemRow(metrics, r*cols)
		if g < top || g >= top+cardH {
			continue
		}
		lines, ok := rows[r]
		if !ok {
			lines = m.renderRow(metrics, s, r, cardH)
			rows[r] = lines
		}
		return lines[g-top]
	}
	return blank
}

func (m *Model) renderRow(metrics virt.Metrics, s virt.State, r, cardH int) []string {
	cardW, gap := m.CardCols(metrics)
	spacer := common.Block("", gap, cardH)

	var parts []string
	for c := 0; c < metrics.Columns; c++ {
		if c > 0 && gap > 0 {
			parts = append(parts, spacer)
		}
		i := r*metrics.Columns + c
		switch {
		case i >= len(m.cat.Items):
			parts = append(parts, common.Block("", cardW, cardH))
		case s.ItemIsVisible(i):
			parts = append(parts, card.Render(m.cat.Items[i], cardW, cardH))
		default:
			parts = append(parts, card.Placeholder(cardW, cardH))
		}
	}
	joined := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	return strings.Split(common.Block(joined, m.width, cardH), "\n")
}

func (m *Model) headerLines() []string {
	if !m.stale && m.header != nil {
		return m.header
	}
	m.stale = false

	count := fmt.Sprintf("  %d items", len(m.cat.Items))
	titleW := m.width - lipgloss.Width(count)
	var title string
	if titleW >= 8 {
		title = style.CategoryTitle.Render(common.Truncate(m.cat.Title, titleW)) +
			style.CategoryCount.Render(count)
	} else {
		title = style.CategoryTitle.Render(common.Truncate(m.cat.Title, m.width))
	}
	lines := []string{common.PadRight(title, m.width)}

	if m.width > 0 {
		if desc := common.RenderMarkdown(m.cat.Description, m.width); desc != "" {
			for _, l := range strings.Split(desc, "\n") {
				lines = append(lines, common.Fit(l, m.width))
			}
		}
	}
	lines = append(lines, strings.Repeat(" ", m.width))
	m.header = lines
	return lines
}
