// Package theme defines the color palettes used by all TUI panels.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme is a color palette. Panels hold a *Theme pointer so an
// in-place swap (light to dark) is visible on the next View() call.
type Theme struct {
	Bg          lipgloss.Color
	Accent      lipgloss.Color
	Subtle      lipgloss.Color
	Text        lipgloss.Color
	Dim         lipgloss.Color
	Border      lipgloss.Color
	StatusBg    lipgloss.Color
	StatusFg    lipgloss.Color
	Error       lipgloss.Color
	MarkerGreen lipgloss.Color
	MarkerRed   lipgloss.Color
	Progress    lipgloss.Color
}

// Dark returns the dark palette (catppuccin-inspired).
func Dark() Theme {
	return Theme{
		Bg:          lipgloss.Color("#1e1e2e"),
		Accent:      lipgloss.Color("#cba6f7"),
		Subtle:      lipgloss.Color("#6c7086"),
		Text:        lipgloss.Color("#cdd6f4"),
		Dim:         lipgloss.Color("#585b70"),
		Border:      lipgloss.Color("#45475a"),
		StatusBg:    lipgloss.Color("#313244"),
		StatusFg:    lipgloss.Color("#cdd6f4"),
		Error:       lipgloss.Color("#f38ba8"),
		MarkerGreen: lipgloss.Color("#a6e3a1"),
		MarkerRed:   lipgloss.Color("#f38ba8"),
		Progress:    lipgloss.Color("#89b4fa"),
	}
}

// Light returns the light palette (catppuccin latte).
func Light() Theme {
	return Theme{
		Bg:          lipgloss.Color("#eff1f5"),
		Accent:      lipgloss.Color("#8839ef"),
		Subtle:      lipgloss.Color("#9ca0b0"),
		Text:        lipgloss.Color("#4c4f69"),
		Dim:         lipgloss.Color("#acb0be"),
		Border:      lipgloss.Color("#bcc0cc"),
		StatusBg:    lipgloss.Color("#ccd0da"),
		StatusFg:    lipgloss.Color("#4c4f69"),
		Error:       lipgloss.Color("#d20f39"),
		MarkerGreen: lipgloss.Color("#40a02b"),
		MarkerRed:   lipgloss.Color("#d20f39"),
		Progress:    lipgloss.Color("#1e66f5"),
	}
}

// ForName maps a resolved theme name to its palette. Unknown names
// fall back to dark.
func ForName(name string) Theme {
	if name == "light" {
		return Light()
	}
	return Dark()
}
