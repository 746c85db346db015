package cli

import "github.com/charmbracelet/lipgloss"

// Output styles for terminal rendering. Lipgloss degrades to plain
// text when the terminal has no colour support.
var (
	styleTitle   = lipgloss.NewStyle().Bold(true)
	styleMuted   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
)

// quotaStyle picks the style matching a quota level string.
func quotaStyle(level string) lipgloss.Style {
	switch level {
	case "HEALTHY":
		return styleSuccess
	case "WARNING":
		return styleWarning
	case "EXCEEDED", "ERROR":
		return styleError
	}
	return styleMuted
}
