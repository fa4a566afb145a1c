// Package tui renders the coordinator profile, the perspective toggle and the
// mentor chat panel in a terminal.
package tui

import "github.com/charmbracelet/lipgloss"

// Theme holds one color scheme.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Accent     lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme is the default scheme.
func LightTheme() Theme {
	return Theme{
		Name:       "light",
		Background: lipgloss.Color("#f8fafc"),
		Foreground: lipgloss.Color("#0f172a"),
		Primary:    lipgloss.Color("#0f766e"),
		Accent:     lipgloss.Color("#14b8a6"),
		Muted:      lipgloss.Color("#64748b"),
		Border:     lipgloss.Color("#cbd5e1"),
	}
}

// DarkTheme is the scheme toggled by the shell.
func DarkTheme() Theme {
	return Theme{
		Name:       "dark",
		Background: lipgloss.Color("#0f172a"),
		Foreground: lipgloss.Color("#e2e8f0"),
		Primary:    lipgloss.Color("#2dd4bf"),
		Accent:     lipgloss.Color("#0d9488"),
		Muted:      lipgloss.Color("#94a3b8"),
		Border:     lipgloss.Color("#334155"),
		IsDark:     true,
	}
}

// Styles holds the styled components for one theme.
type Styles struct {
	Theme Theme

	Header    lipgloss.Style
	Footer    lipgloss.Style
	Title     lipgloss.Style
	Body      lipgloss.Style
	Muted     lipgloss.Style
	Tag       lipgloss.Style
	Card      lipgloss.Style
	Callout   lipgloss.Style
	Track     lipgloss.Style
	Thumb     lipgloss.Style
	Panel     lipgloss.Style
	UserLine  lipgloss.Style
	Mentor    lipgloss.Style
	Bar       lipgloss.Style
	BarEmpty  lipgloss.Style
	Spinner   lipgloss.Style
	ErrorNote lipgloss.Style
}

// NewStyles creates the styles for theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Theme: theme,

		Header: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(0, 2).
			Bold(true),
		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Padding(0, 2),
		Title: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Body: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Tag: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Italic(true),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),
		Callout: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(theme.Accent).
			Padding(0, 1),
		Track: lipgloss.NewStyle().
			Foreground(theme.Muted),
		Thumb: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),
		UserLine: lipgloss.NewStyle().
			Foreground(theme.Primary).
			Bold(true),
		Mentor: lipgloss.NewStyle().
			Foreground(theme.Foreground),
		Bar: lipgloss.NewStyle().
			Foreground(theme.Accent),
		BarEmpty: lipgloss.NewStyle().
			Foreground(theme.Border),
		Spinner: lipgloss.NewStyle().
			Foreground(theme.Accent),
		ErrorNote: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e11d48")),
	}
}
