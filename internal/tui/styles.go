package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vvka-141/lawcat/pkg/lawcat"
)

// Palette: 256-colour codes readable on dark and light terminals.
var (
	colorAccent = lipgloss.Color("39")  // Blue
	colorLabel  = lipgloss.Color("245") // Gray
	colorOK     = lipgloss.Color("34")  // Green
	colorWarn   = lipgloss.Color("214") // Orange
	colorMuted  = lipgloss.Color("240") // Dark gray
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorLabel).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorLabel).
			Width(18)

	okStyle    = lipgloss.NewStyle().Foreground(colorOK)
	warnStyle  = lipgloss.NewStyle().Foreground(colorWarn)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
)

// flagStyle colours a reconciliation flag by how much attention it needs.
func flagStyle(flag lawcat.ReconciliationFlag) lipgloss.Style {
	switch flag {
	case lawcat.FlagMatched:
		return okStyle
	case lawcat.FlagFieldMismatch, lawcat.FlagIndexMissing:
		return warnStyle
	default:
		return mutedStyle
	}
}
