// Package header renders the one-line store header and its separator.
package header

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/miosa/storefront/style"
	"github.com/miosa/storefront/ui/common"
)

// DefaultTitle is shown until a catalog with a title is loaded.
const DefaultTitle = "Storefront"

// Rows is the height of HeaderView.
const Rows = 2

// Model holds the state for the compact header.
type Model struct {
	title      string
	version    string
	source     string
	categories int
	items      int
	width      int
}

// NewHeader returns a Model with the default title.
func NewHeader() Model {
	return Model{title: DefaultTitle, version: "dev"}
}

// SetCatalog updates the store title and catalog counts.
func (m *Model) SetCatalog(title string, categories, items int) {
	if title == "" {
		title = DefaultTitle
	}
	m.title = title
	m.categories = categories
	m.items = items
}

// SetSource updates the displayed catalog location: a file path or URL.
func (m *Model) SetSource(src string) { m.source = src }

// SetVersion updates the displayed version string.
func (m *Model) SetVersion(v string) { m.version = v }

// SetWidth updates the terminal width used for separator and truncation.
func (m *Model) SetWidth(w int) { m.width = w }

// Title returns the store title.
func (m Model) Title() string { return m.title }

// Source returns the catalog location.
func (m Model) Source() string { return m.source }

// View returns the compact one-line header. Meta parts are dropped from the
// right until the line fits.
func (m Model) View() string {
	title := style.StoreTitle(common.Truncate(m.title, max(m.width-2, 1)))
	sep := style.HeaderMeta.Render(" · ")

	parts := []string{
		fmt.Sprintf("%d categories", m.categories),
		fmt.Sprintf("%d items", m.items),
	}
	if m.source != "" {
		parts = append(parts, truncatePath(m.source, 40))
	}
	if m.version != "" {
		parts = append(parts, m.version)
	}

	for len(parts) > 0 {
		line := title
		for _, p := range parts {
			line += sep + style.HeaderMeta.Render(p)
		}
		if m.width <= 0 || lipgloss.Width(line) <= m.width {
			return line
		}
		parts = parts[:len(parts)-1]
	}
	return title
}

// HeaderView returns the compact header plus a thin separator line.
func (m Model) HeaderView() string {
	return m.View() + "\n" + common.Divider(m.width)
}

// truncatePath shortens a catalog path to fit within maxWidth characters.
// URLs are cut at the end; paths try ~/relative, then …/last-two-segments,
// then …/basename.
func truncatePath(path string, maxWidth int) string {
	if lipgloss.Width(path) <= maxWidth {
		return path
	}
	if strings.Contains(path, "://") {
		return common.Truncate(path, maxWidth)
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" && strings.HasPrefix(path, home) {
		short := "~" + path[len(home):]
		if lipgloss.Width(short) <= maxWidth {
			return short
		}
	}
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	parent := filepath.Base(dir)
	short := "…/" + parent + "/" + base
	if lipgloss.Width(short) <= maxWidth {
		return short
	}
	short = "…/" + base
	if lipgloss.Width(short) <= maxWidth {
		return short
	}
	return common.Truncate(path, maxWidth)
}
