// Package card renders one catalog item as a bordered card, and the blank
// placeholder that holds its slot while the item is not mounted.
package card

import (
	"path"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/storefront/catalog"
	"github.com/miosa/storefront/style"
	"github.com/miosa/storefront/ui/common"
)

// SaleLabel is shown on items that are on sale.
const SaleLabel = "50% OFF!"

const (
	imageIcon = "▨"

	// frameWidth and frameHeight are the cells taken by the rounded border
	// and the horizontal padding.
	frameWidth  = 4
	frameHeight = 2

	minWidth  = frameWidth + 4
	minHeight = frameHeight + 2
)

// Render draws item into exactly width x height cells.
func Render(item catalog.Item, width, height int) string {
	if width < minWidth || height < minHeight {
		return common.Block(common.Truncate(item.Title, width), width, height)
	}
	inner := width - frameWidth
	rows := height - frameHeight

	// Layout, top to bottom: image, title, description, price line. The
	// description takes whatever rows are left.
	lines := make([]string, 0, rows)
	if item.ImageURL != "" && rows >= 4 {
		lines = append(lines, style.CardImage.Render(
			common.Truncate(imageIcon+" "+path.Base(item.ImageURL), inner)))
	}
	lines = append(lines, style.CardTitle.Render(common.Truncate(item.Title, inner)))

	descRows := rows - len(lines) - 1
	for _, l := range common.WrapLines(item.Description, inner, descRows) {
		lines = append(lines, style.CardDescription.Render(l))
	}
	for len(lines) < rows-1 {
		lines = append(lines, "")
	}
	lines = append(lines, priceLine(item, inner))

	for i, l := range lines {
		lines[i] = common.PadRight(l, inner)
	}
	return style.Card.Render(strings.Join(lines, "\n"))
}

// priceLine puts the price on the left and the sale badge on the right,
// dropping the badge when both do not fit.
func priceLine(item catalog.Item, width int) string {
	price := style.CardPrice.Render(common.Truncate(item.Price, width))
	if !item.IsSale {
		return price
	}
	badge := style.SaleBadge.Render(SaleLabel)
	gap := width - lipgloss.Width(price) - lipgloss.Width(badge)
	if gap < 1 {
		if item.Price == "" && lipgloss.Width(badge) <= width {
			return badge
		}
		return price
	}
	return price + strings.Repeat(" ", gap) + badge
}

// Placeholder draws an empty card outline of the same size as Render.
func Placeholder(width, height int) string {
	if width < minWidth || height < minHeight {
		return common.Block("", width, height)
	}
	blank := make([]string, height-frameHeight)
	for i := range blank {
		blank[i] = strings.Repeat(" ", width-frameWidth)
	}
	return style.Card.
		BorderForeground(style.PlaceholderColor).
		Render(strings.Join(blank, "\n"))
}
