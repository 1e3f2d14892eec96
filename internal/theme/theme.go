// Package theme holds the color palette for CLI output.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme is a named set of lipgloss colors.
type Theme struct {
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
	Accent  lipgloss.Color
}

var dark = Theme{
	Text:    lipgloss.Color("#cdd6f4"),
	Muted:   lipgloss.Color("#6c7086"),
	Success: lipgloss.Color("#a6e3a1"),
	Warning: lipgloss.Color("#f9e2af"),
	Error:   lipgloss.Color("#f38ba8"),
	Accent:  lipgloss.Color("#89b4fa"),
}

var light = Theme{
	Text:    lipgloss.Color("#4c4f69"),
	Muted:   lipgloss.Color("#9ca0b0"),
	Success: lipgloss.Color("#40a02b"),
	Warning: lipgloss.Color("#df8e1d"),
	Error:   lipgloss.Color("#d20f39"),
	Accent:  lipgloss.Color("#1e66f5"),
}

// Current picks the palette matching the terminal background.
func Current() Theme {
	if termenv.HasDarkBackground() {
		return dark
	}
	return light
}
