// Package ui renders the minipm kanban board in the terminal.
// Light and dark palettes are picked from the terminal background.
package ui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	// Light mode
	LightForeground = lipgloss.Color("#1f2933")
	LightPrimary    = lipgloss.Color("#1d4ed8")
	LightMuted      = lipgloss.Color("#7b8794")
	LightBorder     = lipgloss.Color("#cbd2d9")

	// Dark mode
	DarkForeground = lipgloss.Color("#f2f2f2")
	DarkPrimary    = lipgloss.Color("#60a5fa")
	DarkMuted      = lipgloss.Color("#9aa5b1")
	DarkBorder     = lipgloss.Color("#3e4c59")

	// Semantic colors, same in both modes
	Destructive = lipgloss.Color("#e53935")
	Success     = lipgloss.Color("#8BC34A")
	Warning     = lipgloss.Color("#FFC107")
	Info        = lipgloss.Color("#2196F3")
)

// Theme holds the current color scheme
type Theme struct {
	Foreground lipgloss.Color
	Primary    lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	IsDark     bool
}

// LightTheme returns the light mode theme
func LightTheme() Theme {
	return Theme{
		Foreground: LightForeground,
		Primary:    LightPrimary,
		Muted:      LightMuted,
		Border:     LightBorder,
	}
}

// DarkTheme returns the dark mode theme
func DarkTheme() Theme {
	return Theme{
		Foreground: DarkForeground,
		Primary:    DarkPrimary,
		Muted:      DarkMuted,
		Border:     DarkBorder,
		IsDark:     true,
	}
}

// DetectTheme reads COLORFGBG ("fg;bg") and MINIPM_DARK_MODE=1.
// Light mode is the default.
func DetectTheme() Theme {
	if colorTerm := os.Getenv("COLORFGBG"); colorTerm != "" {
		parts := strings.Split(colorTerm, ";")
		if len(parts) == 2 {
			// ANSI 0-6 and 8 are dark backgrounds
			if bg, err := strconv.Atoi(parts[1]); err == nil && ((bg >= 0 && bg <= 6) || bg == 8) {
				return DarkTheme()
			}
		}
	}
	if os.Getenv("MINIPM_DARK_MODE") == "1" {
		return DarkTheme()
	}
	return LightTheme()
}

// Styles holds all the styled components
type Styles struct {
	Theme Theme

	Header       lipgloss.Style
	Footer       lipgloss.Style
	Column       lipgloss.Style
	ActiveColumn lipgloss.Style
	ColumnTitle  lipgloss.Style
	Card         lipgloss.Style
	SelectedCard lipgloss.Style
	Muted        lipgloss.Style
	Overdue      lipgloss.Style
	Error        lipgloss.Style
	Status       lipgloss.Style
	Pane         lipgloss.Style
	Priority     map[string]lipgloss.Style
}

// NewStyles builds the styles for a theme.
func NewStyles(theme Theme) Styles {
	column := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1)

	return Styles{
		Theme: theme,
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			MarginBottom(1),
		Footer: lipgloss.NewStyle().
			Foreground(theme.Muted).
			MarginTop(1),
		Column:       column,
		ActiveColumn: column.BorderForeground(theme.Primary),
		ColumnTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			MarginBottom(1),
		Card: lipgloss.NewStyle().
			Foreground(theme.Foreground).
			PaddingLeft(1),
		SelectedCard: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.Primary),
		Muted:   lipgloss.NewStyle().Foreground(theme.Muted),
		Overdue: lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(Destructive),
		Status:  lipgloss.NewStyle().Foreground(Success),
		Pane: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1),
		Priority: map[string]lipgloss.Style{
			"low":    lipgloss.NewStyle().Foreground(theme.Muted),
			"medium": lipgloss.NewStyle().Foreground(Info),
			"high":   lipgloss.NewStyle().Foreground(Warning),
			"urgent": lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		},
	}
}

// DefaultStyles returns styles for the detected theme.
func DefaultStyles() Styles {
	return NewStyles(DetectTheme())
}
