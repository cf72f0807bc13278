package style

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Colors, initialized to dark theme defaults and updated via SetTheme().
var (
	Primary   color.Color = lipgloss.Color("#7C3AED")
	Secondary color.Color = lipgloss.Color("#06B6D4")
	Success   color.Color = lipgloss.Color("#22C55E")
	Warning   color.Color = lipgloss.Color("#F59E0B")
	Error     color.Color = lipgloss.Color("#EF4444")
	Muted     color.Color = lipgloss.Color("#6B7280")
	Dim       color.Color = lipgloss.Color("#374151")
	Border    color.Color = lipgloss.Color("#4B5563")

	CardBorderColor  color.Color = lipgloss.Color("#4B5563")
	PriceColor       color.Color = lipgloss.Color("#22C55E")
	SaleBgColor      color.Color = lipgloss.Color("#EF4444")
	SaleTextColor    color.Color = lipgloss.Color("#FFFFFF")
	PlaceholderColor color.Color = lipgloss.Color("#1F2937")

	GradColorA color.Color = lipgloss.Color("#7C3AED")
	GradColorB color.Color = lipgloss.Color("#06B6D4")
)

// Styles, rebuilt when the theme changes via rebuildStyles().
var (
	Faint     lipgloss.Style
	ErrorText lipgloss.Style

	// Header
	HeaderMeta lipgloss.Style
	Separator  lipgloss.Style

	// Category
	CategoryTitle lipgloss.Style
	CategoryCount lipgloss.Style

	// Card
	Card            lipgloss.Style
	CardTitle       lipgloss.Style
	CardDescription lipgloss.Style
	CardImage       lipgloss.Style
	CardPrice       lipgloss.Style
	SaleBadge       lipgloss.Style

	// Status bar
	StatusBar   lipgloss.Style
	StatusKey   lipgloss.Style
	StatusValue lipgloss.Style

	// Scrollbar
	ScrollbarThumb lipgloss.Style
	ScrollbarTrack lipgloss.Style

	// Help
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	Hint     lipgloss.Style
)

func init() {
	rebuildStyles()
}

// SetTheme applies a named theme, updating all color vars and rebuilding styles.
func SetTheme(name string) bool {
	t, ok := Themes[name]
	if !ok {
		return false
	}
	CurrentThemeName = name
	Primary = t.Primary
	Secondary = t.Secondary
	Success = t.Success
	Warning = t.Warning
	Error = t.Error
	Muted = t.Muted
	Dim = t.Dim
	Border = t.Border
	CardBorderColor = t.CardBorder
	PriceColor = t.Price
	SaleBgColor = t.SaleBg
	SaleTextColor = t.SaleText
	PlaceholderColor = t.Placeholder
	GradColorA = t.GradA
	GradColorB = t.GradB
	rebuildStyles()
	return true
}

// IsDark returns whether the current theme is dark.
func IsDark() bool {
	return CurrentThemeName != "light"
}

func rebuildStyles() {
	Faint = lipgloss.NewStyle().Foreground(Muted)
	ErrorText = lipgloss.NewStyle().Foreground(Error).Bold(true)

	HeaderMeta = lipgloss.NewStyle().Foreground(Muted)
	Separator = lipgloss.NewStyle().Foreground(Dim)

	CategoryTitle = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	CategoryCount = lipgloss.NewStyle().Foreground(Muted)

	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(CardBorderColor).
		Padding(0, 1)
	CardTitle = lipgloss.NewStyle().Bold(true)
	CardDescription = lipgloss.NewStyle().Foreground(Muted)
	CardImage = lipgloss.NewStyle().Foreground(Dim).Italic(true)
	CardPrice = lipgloss.NewStyle().Foreground(PriceColor).Bold(true)
	SaleBadge = lipgloss.NewStyle().
		Background(SaleBgColor).
		Foreground(SaleTextColor).
		Bold(true).
		Padding(0, 1)

	StatusBar = lipgloss.NewStyle().Foreground(Muted).PaddingLeft(1)
	StatusKey = lipgloss.NewStyle().Foreground(Muted)
	StatusValue = lipgloss.NewStyle().Foreground(Secondary)

	ScrollbarThumb = lipgloss.NewStyle().Foreground(Primary)
	ScrollbarTrack = lipgloss.NewStyle().Foreground(Dim)

	HelpKey = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	HelpDesc = lipgloss.NewStyle().Foreground(Muted)
	Hint = lipgloss.NewStyle().Foreground(Dim)
}
