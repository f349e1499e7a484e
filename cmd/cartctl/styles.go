package main

import "github.com/charmbracelet/lipgloss"

// Storefront palette
var (
	colorPrimary   = lipgloss.Color("#3B82F6")
	colorSecondary = lipgloss.Color("#10B981")
	colorError     = lipgloss.Color("#EF4444")
	colorMuted     = lipgloss.Color("#64748B")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	labelStyle = lipgloss.NewStyle().Foreground(colorMuted)
	priceStyle = lipgloss.NewStyle().Foreground(colorSecondary)
	totalStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	freeStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorSecondary)
	warnStyle  = lipgloss.NewStyle().Foreground(colorError)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)
)
