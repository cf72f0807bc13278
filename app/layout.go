package app

import "github.com/miosa/storefront/ui/header"

const (
	// scrollbarWidth is the column reserved on the right for the page
	// scrollbar.
	scrollbarWidth = 1

	// minPageHeight keeps the page usable on tiny terminals.
	minPageHeight = 1
)

// Layout holds computed dimensions for the current frame.
type Layout struct {
	TermWidth    int
	TermHeight   int
	HeaderHeight int // header line + separator
	StatusHeight int
	HelpHeight   int
	PageWidth    int // columns available to categories
	PageHeight   int // rows of the scrolling page
}

// ComputeLayout calculates the layout dimensions based on terminal size.
//
// Heights: header (2), help overlay when shown, status (1); the remainder
// goes to the page. The page loses one column to the scrollbar.
func ComputeLayout(termW, termH, helpLines int) Layout {
	l := Layout{
		TermWidth:    termW,
		TermHeight:   termH,
		HeaderHeight: header.Rows,
		StatusHeight: 1,
		HelpHeight:   helpLines,
	}

	l.PageWidth = termW - scrollbarWidth
	if l.PageWidth < 1 {
		l.PageWidth = 1
	}

	l.PageHeight = termH - l.HeaderHeight - l.StatusHeight - l.HelpHeight
	if l.PageHeight < minPageHeight {
		l.PageHeight = minPageHeight
	}
	return l
}
