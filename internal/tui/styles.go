package tui

import "github.com/charmbracelet/lipgloss"

var (
	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33"))
	labelStyle   = lipgloss.NewStyle().Bold(true)
	elapsedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)
