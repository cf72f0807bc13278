package status

import (
	"fmt"

	"github.com/miosa/storefront/style"
)

// CountPill renders a ratio indicator, e.g. "cards 6/40".
// Returns an empty string when total is zero.
func CountPill(label string, n, total int) string {
	if total <= 0 {
		return ""
	}
	return style.StatusKey.Render(label+" ") +
		style.StatusValue.Render(fmt.Sprintf("%d", n)) +
		style.StatusKey.Render(fmt.Sprintf("/%d", total))
}

// ValuePill renders a labelled value, e.g. "cols 2".
func ValuePill(label string, v any) string {
	return style.StatusKey.Render(label+" ") + style.StatusValue.Render(fmt.Sprint(v))
}
