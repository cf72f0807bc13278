package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines a complete color palette for the storefront.
type Theme struct {
	Name                                        string
	Primary, Secondary, Success, Warning, Error color.Color
	Muted, Dim, Border                          color.Color

	// Cards
	CardBorder  color.Color
	Price       color.Color
	SaleBg      color.Color
	SaleText    color.Color
	Placeholder color.Color

	// Gradient endpoints (A=from, B=to)
	GradA color.Color
	GradB color.Color
}

// Built-in themes.
var (
	darkTheme = Theme{
		Name:        "dark",
		Primary:     lipgloss.Color("#7C3AED"),
		Secondary:   lipgloss.Color("#06B6D4"),
		Success:     lipgloss.Color("#22C55E"),
		Warning:     lipgloss.Color("#F59E0B"),
		Error:       lipgloss.Color("#EF4444"),
		Muted:       lipgloss.Color("#6B7280"),
		Dim:         lipgloss.Color("#374151"),
		Border:      lipgloss.Color("#4B5563"),
		CardBorder:  lipgloss.Color("#4B5563"),
		Price:       lipgloss.Color("#22C55E"),
		SaleBg:      lipgloss.Color("#EF4444"),
		SaleText:    lipgloss.Color("#FFFFFF"),
		Placeholder: lipgloss.Color("#1F2937"),
		GradA:       lipgloss.Color("#7C3AED"),
		GradB:       lipgloss.Color("#06B6D4"),
	}

	lightTheme = Theme{
		Name:        "light",
		Primary:     lipgloss.Color("#6D28D9"),
		Secondary:   lipgloss.Color("#0891B2"),
		Success:     lipgloss.Color("#16A34A"),
		Warning:     lipgloss.Color("#D97706"),
		Error:       lipgloss.Color("#DC2626"),
		Muted:       lipgloss.Color("#9CA3AF"),
		Dim:         lipgloss.Color("#D1D5DB"),
		Border:      lipgloss.Color("#9CA3AF"),
		CardBorder:  lipgloss.Color("#D1D5DB"),
		Price:       lipgloss.Color("#15803D"),
		SaleBg:      lipgloss.Color("#DC2626"),
		SaleText:    lipgloss.Color("#FFFFFF"),
		Placeholder: lipgloss.Color("#F3F4F6"),
		GradA:       lipgloss.Color("#6D28D9"),
		GradB:       lipgloss.Color("#0891B2"),
	}

	catppuccinTheme = Theme{
		Name:        "catppuccin",
		Primary:     lipgloss.Color("#CBA6F7"),
		Secondary:   lipgloss.Color("#89DCEB"),
		Success:     lipgloss.Color("#A6E3A1"),
		Warning:     lipgloss.Color("#F9E2AF"),
		Error:       lipgloss.Color("#F38BA8"),
		Muted:       lipgloss.Color("#6C7086"),
		Dim:         lipgloss.Color("#45475A"),
		Border:      lipgloss.Color("#585B70"),
		CardBorder:  lipgloss.Color("#585B70"),
		Price:       lipgloss.Color("#A6E3A1"),
		SaleBg:      lipgloss.Color("#F38BA8"),
		SaleText:    lipgloss.Color("#1E1E2E"),
		Placeholder: lipgloss.Color("#313244"),
		GradA:       lipgloss.Color("#CBA6F7"),
		GradB:       lipgloss.Color("#89DCEB"),
	}
)

// Themes maps theme names to their definitions.
var Themes = map[string]Theme{
	"dark":       darkTheme,
	"light":      lightTheme,
	"catppuccin": catppuccinTheme,
}

// ThemeNames lists available themes in display order.
var ThemeNames = []string{"dark", "light", "catppuccin"}

// CurrentThemeName tracks the active theme name.
var CurrentThemeName = "dark"
