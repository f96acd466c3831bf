package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	ColorRed    = lipgloss.Color("#E53935")
	ColorGold   = lipgloss.Color("#FFD700")
	ColorBlue   = lipgloss.Color("39")
	ColorGray   = lipgloss.Color("245")
	ColorWhite  = lipgloss.Color("255")
	ColorNavy   = lipgloss.Color("17")
	ColorGreen  = lipgloss.Color("42")
	ColorPurple = lipgloss.Color("#8E44AD")
)

var (
	tabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorGray)

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(ColorWhite).
			Background(ColorPurple)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPurple).
			Padding(0, 1)

	resultStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorGray).
			Padding(0, 1)

	revealStyle = resultStyle.
			BorderForeground(ColorGold).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorGold)

	labelStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	buttonStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(ColorWhite).
			Background(ColorPurple)

	disabledButtonStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(ColorGray).
				Background(lipgloss.Color("238"))

	errorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	helpStyle = lipgloss.NewStyle().
			Foreground(ColorGray).
			Italic(true)

	statusStyle = lipgloss.NewStyle().
			Background(ColorNavy).
			Foreground(ColorWhite)
)
