package card

import (
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/stretchr/testify/assert"

	"github.com/miosa/storefront/catalog"
)

var sample = catalog.Item{
	ID:          "espresso",
	Title:       "Double Espresso",
	Description: "Two shots of our house blend, pulled short and served in a warm cup.",
	ImageURL:    "https://cdn.example.com/img/espresso.png",
	Price:       "$3.20",
	IsSale:      true,
}

func TestRender_Size(t *testing.T) {
	for _, size := range [][2]int{{30, 10}, {60, 10}, {12, 6}, {40, 4}} {
		out := Render(sample, size[0], size[1])
		assert.Equal(t, size[0], lipgloss.Width(out), "width for %v", size)
		assert.Equal(t, size[1], lipgloss.Height(out), "height for %v", size)
	}
}

func TestRender_Content(t *testing.T) {
	out := Render(sample, 40, 10)
	assert.Contains(t, out, "Double Espresso")
	assert.Contains(t, out, "$3.20")
	assert.Contains(t, out, SaleLabel)
	assert.Contains(t, out, "espresso.png")

	regular := sample
	regular.IsSale = false
	assert.NotContains(t, Render(regular, 40, 10), SaleLabel)
}

func TestRender_TinySlot(t *testing.T) {
	out := Render(sample, 5, 2)
	assert.Equal(t, 5, lipgloss.Width(out))
	assert.Equal(t, 2, lipgloss.Height(out))
}

func TestPlaceholder_MatchesCardSize(t *testing.T) {
	for _, size := range [][2]int{{30, 10}, {60, 10}, {5, 2}} {
		card := Render(sample, size[0], size[1])
		ph := Placeholder(size[0], size[1])
		assert.Equal(t, lipgloss.Width(card), lipgloss.Width(ph))
		assert.Equal(t, lipgloss.Height(card), lipgloss.Height(ph))
		assert.NotContains(t, ph, "Double")
	}
}
