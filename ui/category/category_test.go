package category

import (
	"fmt"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miosa/storefront/catalog"
	"github.com/miosa/storefront/ui/common"
	"github.com/miosa/storefront/virt"
)

func testCategory(n int) catalog.Category {
	cat := catalog.Category{ID: "coffee", Title: "Coffee"}
	for i := 0; i < n; i++ {
		cat.Items = append(cat.Items, catalog.Item{
			ID:    fmt.Sprintf("item-%d", i),
			Title: fmt.Sprintf("Blend %d", i),
			Price: "$4.00",
		})
	}
	return cat
}

func newModel(n, width int) (*Model, virt.Metrics) {
	m := New(testCategory(n), common.DefaultScale)
	m.SetWidth(width)
	return m, virt.ComputeLayout(n, common.DefaultScale.Width(width))
}

func TestModel_Geometry(t *testing.T) {
	m, metrics := newModel(5, 100)
	require.Equal(t, 2, metrics.Columns)

	assert.Equal(t, 2, m.HeaderRows(), "title and spacer")
	assert.Equal(t, 32, m.GridRows(metrics))
	assert.Equal(t, 35, m.Rows(metrics))
	assert.Equal(t, 10, m.CardRows(metrics))
	assert.Equal(t, 0, m.ItemRow(metrics, 1))
	assert.Equal(t, 11, m.ItemRow(metrics, 2))
	assert.Equal(t, 21, m.ItemRow(metrics, 4))

	w, gap := m.CardCols(metrics)
	assert.Equal(t, 1, gap)
	assert.Equal(t, 49, w)
}

func TestModel_NarrowIsOneColumn(t *testing.T) {
	m, metrics := newModel(3, 60)
	require.Equal(t, 1, metrics.Columns)
	w, gap := m.CardCols(metrics)
	assert.Zero(t, gap)
	assert.Equal(t, 60, w)
	assert.Equal(t, 30, m.GridRows(metrics))
}

func TestLines_HiddenContainerReservesBlankGrid(t *testing.T) {
	m, metrics := newModel(5, 100)
	lines := m.Lines(metrics, virt.State{ItemVisible: make([]bool, 5)}, 0, m.Rows(metrics))
	require.Len(t, lines, m.Rows(metrics))
	assert.Contains(t, lines[0], "Coffee")
	for _, l := range lines[m.HeaderRows():] {
		assert.Empty(t, strings.TrimSpace(l))
	}
}

func TestLines_VisibleItemsGetCards(t *testing.T) {
	m, metrics := newModel(5, 100)
	s := virt.State{ContainerVisible: true, ItemVisible: []bool{true, false, true, false, false}}
	lines := m.Lines(metrics, s, 0, m.Rows(metrics))
	require.Len(t, lines, m.Rows(metrics))

	body := strings.Join(lines, "\n")
	assert.Contains(t, body, "Blend 0")
	assert.Contains(t, body, "Blend 2")
	assert.NotContains(t, body, "Blend 1")
	assert.NotContains(t, body, "Blend 4")

	for i, l := range lines {
		assert.Equal(t, 100, lipgloss.Width(l), "line %d", i)
	}
}

func TestLines_Window(t *testing.T) {
	m, metrics := newModel(5, 100)
	s := virt.State{ContainerVisible: true, ItemVisible: []bool{true, true, true, true, true}}
	full := m.Lines(metrics, s, 0, m.Rows(metrics))

	part := m.Lines(metrics, s, 10, 20)
	assert.Equal(t, full[10:20], part)

	assert.Len(t, m.Lines(metrics, s, -5, 3), 3)
	assert.Len(t, m.Lines(metrics, s, 30, 1000), m.Rows(metrics)-30)
	assert.Nil(t, m.Lines(metrics, s, 50, 40))
}

func TestModel_DescriptionAddsRows(t *testing.T) {
	cat := testCategory(2)
	cat.Description = "Roasted **in house** every morning."
	m := New(cat, common.DefaultScale)
	m.SetWidth(80)
	assert.Greater(t, m.HeaderRows(), 2)

	m.SetWidth(0)
	assert.Equal(t, 2, m.HeaderRows())
}
