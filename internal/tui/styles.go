package tui

import "github.com/charmbracelet/lipgloss"

var (
	appStyle = lipgloss.NewStyle().Foreground(colorText)

	brandStyle     = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Padding(0, 1)
	headerBarStyle = lipgloss.NewStyle().
			Background(colorMantle).
			Foreground(colorText)
	titleStyle   = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).MarginTop(1)
	headingStyle = lipgloss.NewStyle().Foreground(colorText).Bold(true).MarginBottom(1)

	activeLinkStyle = lipgloss.NewStyle().
			Background(colorSurface0).
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 1)
	inactiveLinkStyle = lipgloss.NewStyle().
				Foreground(colorTabOff).
				Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1).
			MarginRight(1)
	cardTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	tableHeaderStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)

	barStyle      = lipgloss.NewStyle().Foreground(colorSuccess)
	barLabelStyle = lipgloss.NewStyle().Width(12)

	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorSuccess).
			Background(colorSurface0)
	footerStyle = lipgloss.NewStyle().
			Background(colorMantle)
)
