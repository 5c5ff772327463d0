package cli

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	artistStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	timeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	indexStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("69")).Width(5).Align(lipgloss.Right)
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
)
