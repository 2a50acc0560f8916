package ui

import "github.com/charmbracelet/lipgloss"

var (
	// Series header
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")). // Brand Color
			Bold(true).
			Padding(0, 1)

	sampleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light Gray
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)
)
