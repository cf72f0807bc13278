package style

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// StoreTitle renders the store name in bold with the theme gradient running
// left to right, one color per rune.
func StoreTitle(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}
	bold := lipgloss.NewStyle().Bold(true)
	colors := lipgloss.Blend1D(len(runes), GradColorA, GradColorB)
	if len(colors) == 0 {
		return bold.Foreground(GradColorA).Render(s)
	}

	var sb strings.Builder
	for i, r := range runes {
		c := colors[min(i, len(colors)-1)]
		sb.WriteString(bold.Foreground(c).Render(string(r)))
	}
	return sb.String()
}
