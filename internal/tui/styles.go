package tui

import "github.com/charmbracelet/lipgloss"

var (
	lcdStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5f87af")).
			Background(lipgloss.Color("#1c3a1c")).
			Foreground(lipgloss.Color("#b5e853")).
			Padding(0, 1)

	ringingStyle = lcdStyle.BorderForeground(lipgloss.Color("#ff5f5f"))

	titleStyle  = lipgloss.NewStyle().Bold(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8a8a8a"))
	noteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffaf00")).Bold(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5f5f")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)
