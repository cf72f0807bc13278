package common

import (
	"math"
	"strings"

	"github.com/miosa/storefront/style"
)

const (
	scrollTrackChar = "│"
	scrollThumbChar = "█"
)

// ScrollbarModel renders a vertical scrollbar for a page measured in logical
// units onto a track of terminal rows.
type ScrollbarModel struct {
	rows     int
	content  float64
	viewport float64
	offset   float64
}

// NewScrollbar creates a ScrollbarModel for a track of rows cells.
func NewScrollbar(rows int, content, viewport, offset float64) ScrollbarModel {
	return ScrollbarModel{rows: rows, content: content, viewport: viewport, offset: offset}
}

// SetDimensions updates the page geometry.
func (s *ScrollbarModel) SetDimensions(rows int, content, viewport, offset float64) {
	s.rows = rows
	s.content = content
	s.viewport = viewport
	s.offset = offset
}

// Scrollable reports whether the content is taller than the viewport.
func (s ScrollbarModel) Scrollable() bool {
	return s.viewport > 0 && s.content > s.viewport
}

// Fraction returns how far the page is scrolled, from 0 at the top to 1 at
// the bottom. Content that fits returns 0.
func (s ScrollbarModel) Fraction() float64 {
	if !s.Scrollable() {
		return 0
	}
	f := s.offset / (s.content - s.viewport)
	return math.Max(0, math.Min(1, f))
}

// thumb returns the thumb top row and height.
func (s ScrollbarModel) thumb() (top, height int) {
	height = int(math.Round(float64(s.rows) * s.viewport / s.content))
	if height < 1 {
		height = 1
	}
	if height > s.rows {
		height = s.rows
	}
	top = int(math.Round(s.Fraction() * float64(s.rows-height)))
	return top, height
}

// View renders the scrollbar as a single column of rows characters. When
// the content fits within the viewport the returned string is empty.
func (s ScrollbarModel) View() string {
	if s.rows <= 0 || !s.Scrollable() {
		return ""
	}
	top, height := s.thumb()
	rows := make([]string, s.rows)
	for i := range rows {
		if i >= top && i < top+height {
			rows[i] = style.ScrollbarThumb.Render(scrollThumbChar)
		} else {
			rows[i] = style.ScrollbarTrack.Render(scrollTrackChar)
		}
	}
	return strings.Join(rows, "\n")
}

// Scrollbar is a convenience function that builds a one-shot scrollbar string
// without creating a persistent model.
func Scrollbar(rows int, content, viewport, offset float64) string {
	return NewScrollbar(rows, content, viewport, offset).View()
}
