// Package styles holds the lipgloss styles of the terminal UI. The active
// palette is switched with Apply, which is how a theme change reaches the screen.
package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/mmcdole/cinelist/internal/domain"
)

// Palette is one set of UI colors
type Palette struct {
	Accent     lipgloss.Color
	Surface    lipgloss.Color
	SurfaceAlt lipgloss.Color
	Dim        lipgloss.Color
	Muted      lipgloss.Color
	Text       lipgloss.Color
	Green      lipgloss.Color
	Red        lipgloss.Color
}

// Palettes
var (
	Dark = Palette{
		Accent:     lipgloss.Color("#EDB409"),
		Surface:    lipgloss.Color("#141414"),
		SurfaceAlt: lipgloss.Color("#2F2F2F"),
		Dim:        lipgloss.Color("#6B7280"),
		Muted:      lipgloss.Color("#9CA3AF"),
		Text:       lipgloss.Color("#F9FAFB"),
		Green:      lipgloss.Color("#10B981"),
		Red:        lipgloss.Color("#EF4444"),
	}

	Light = Palette{
		Accent:     lipgloss.Color("#B45309"),
		Surface:    lipgloss.Color("#F9FAFB"),
		SurfaceAlt: lipgloss.Color("#E5E7EB"),
		Dim:        lipgloss.Color("#9CA3AF"),
		Muted:      lipgloss.Color("#4B5563"),
		Text:       lipgloss.Color("#111827"),
		Green:      lipgloss.Color("#047857"),
		Red:        lipgloss.Color("#B91C1C"),
	}
)

// Active palette and derived styles. Rebuilt by Apply.
var (
	current domain.Theme
	Colors  Palette

	TitleStyle     lipgloss.Style
	SubtitleStyle  lipgloss.Style
	DimStyle       lipgloss.Style
	AccentStyle    lipgloss.Style
	ErrorStyle     lipgloss.Style
	SuccessStyle   lipgloss.Style
	HighlightStyle lipgloss.Style

	ActiveBorder   lipgloss.Style
	InactiveBorder lipgloss.Style

	SelectedItemStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style

	MatchHighlightStyle lipgloss.Style
	SpinnerStyle        lipgloss.Style
	HelpKeyStyle        lipgloss.Style
	HelpDescStyle       lipgloss.Style
	BadgeStyle          lipgloss.Style
	ModalStyle          lipgloss.Style
)

func init() {
	Apply(domain.DefaultTheme)
}

// Apply switches every style to the palette of theme
func Apply(theme domain.Theme) {
	p := Dark
	if theme == domain.ThemeLight {
		p = Light
	} else {
		theme = domain.ThemeDark
	}
	current = theme
	Colors = p

	TitleStyle = lipgloss.NewStyle().Foreground(p.Text).Bold(true)
	SubtitleStyle = lipgloss.NewStyle().Foreground(p.Muted)
	DimStyle = lipgloss.NewStyle().Foreground(p.Dim)
	AccentStyle = lipgloss.NewStyle().Foreground(p.Accent)
	ErrorStyle = lipgloss.NewStyle().Foreground(p.Red)
	SuccessStyle = lipgloss.NewStyle().Foreground(p.Green)
	HighlightStyle = lipgloss.NewStyle().
		Foreground(p.Surface).
		Background(p.Accent).
		Padding(0, 1)

	ActiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent)
	InactiveBorder = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Dim)

	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(p.Text).
		Background(p.SurfaceAlt).
		Padding(0, 1)
	NormalItemStyle = lipgloss.NewStyle().
		Foreground(p.Muted).
		Padding(0, 1)

	MatchHighlightStyle = lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	SpinnerStyle = lipgloss.NewStyle().Foreground(p.Accent)
	HelpKeyStyle = lipgloss.NewStyle().Foreground(p.Accent)
	HelpDescStyle = lipgloss.NewStyle().Foreground(p.Dim)
	BadgeStyle = lipgloss.NewStyle().
		Foreground(p.Surface).
		Background(p.Accent).
		Padding(0, 1)
	ModalStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.Accent).
		Padding(1, 2)
}

// Current returns the theme last passed to Apply
func Current() domain.Theme {
	return current
}

// Truncate truncates a string to the given display width with an ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// Stars renders a 1..5 rating as filled and empty stars
func Stars(rating int) string {
	rating = max(0, min(rating, 5))
	return AccentStyle.Render(strings.Repeat("★", rating)) +
		DimStyle.Render(strings.Repeat("☆", 5-rating))
}

// HighlightMatches renders s with the runes starting at the byte offsets in
// indexes emphasized
func HighlightMatches(s string, indexes []int, base lipgloss.Style) string {
	if len(indexes) == 0 {
		return base.Render(s)
	}
	matched := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		matched[i] = true
	}

	var b strings.Builder
	for i, r := range s {
		if matched[i] {
			b.WriteString(MatchHighlightStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}
