package ui

import "github.com/charmbracelet/lipgloss"

// Palette of the original dark theme: purple accents, teal highlights,
// muted grey for secondary text.
var (
	colorAccent = lipgloss.Color("#bb86fc")
	colorTeal   = lipgloss.Color("#03dac6")
	colorText   = lipgloss.Color("#e0e0e0")
	colorMuted  = lipgloss.Color("#a0a0a0")
	colorError  = lipgloss.Color("#cf6679")
	colorRule   = lipgloss.Color("#333333")
)

var (
	titleStyle      = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	subtitleStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	wordStyle       = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Align(lipgloss.Center)
	phoneticStyle   = lipgloss.NewStyle().Foreground(colorText).Align(lipgloss.Center)
	posStyle        = lipgloss.NewStyle().Foreground(colorTeal).Bold(true)
	definitionStyle = lipgloss.NewStyle().Foreground(colorText)
	exampleStyle    = lipgloss.NewStyle().Foreground(colorMuted).Italic(true).PaddingLeft(2)
	relatedStyle    = lipgloss.NewStyle().Foreground(colorMuted).PaddingLeft(1)
	errorStyle      = lipgloss.NewStyle().Foreground(colorError)
	statusStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	helpStyle       = lipgloss.NewStyle().Foreground(colorMuted)
	ruleStyle       = lipgloss.NewStyle().Foreground(colorRule)
	spinnerStyle    = lipgloss.NewStyle().Foreground(colorTeal)
)
