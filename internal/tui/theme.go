package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds,
// so every color is a lipgloss.AdaptiveColor pair.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted   lipgloss.TerminalColor = ac("240", "243")
	colorAccent  lipgloss.TerminalColor = ac("27", "62") // blue
	colorDanger  lipgloss.TerminalColor = ac("124", "203")
	colorOK      lipgloss.TerminalColor = ac("28", "114")
	colorWarn    lipgloss.TerminalColor = ac("130", "214")
	colorTitleFg lipgloss.TerminalColor = ac("235", "252")

	colorSelectedBg lipgloss.TerminalColor = ac("#e9e9e9", "#262626")
	colorSelectedFg lipgloss.TerminalColor = ac("235", "255")
)

var (
	styleHeading  = lipgloss.NewStyle().Bold(true).Foreground(colorTitleFg)
	styleCrumb    = lipgloss.NewStyle().Foreground(colorMuted)
	styleHelp     = lipgloss.NewStyle().Foreground(colorMuted)
	styleError    = lipgloss.NewStyle().Foreground(colorDanger)
	styleFlash    = lipgloss.NewStyle().Foreground(colorOK)
	styleLabel    = lipgloss.NewStyle().Foreground(colorMuted)
	styleSelected = lipgloss.NewStyle().Background(colorSelectedBg).Foreground(colorSelectedFg)
	styleAccent   = lipgloss.NewStyle().Foreground(colorAccent)
	styleOverdue  = lipgloss.NewStyle().Foreground(colorWarn)
)

// statusStyle picks a color for a rendered status cell so the table scans
// quickly. Unknown statuses render unstyled.
func statusStyle(display string) lipgloss.Style {
	switch display {
	case "Completed":
		return lipgloss.NewStyle().Foreground(colorOK)
	case "Overdue":
		return styleOverdue
	case "In Progress":
		return styleAccent
	default:
		return lipgloss.NewStyle()
	}
}
