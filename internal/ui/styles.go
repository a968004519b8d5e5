package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	metaStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("246"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("222"))
	hintStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	inputStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("221"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("111"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
