package console

import "github.com/charmbracelet/lipgloss"

var (
	InfoStyle = lipgloss.NewStyle().
			Foreground(Mauve).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	PendingStyle = lipgloss.NewStyle().
			Foreground(Yellow).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red).
			Bold(true)

	PromptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Mauve)
)

// Info renders an informational line prefixed with mark
func Info(mark, text string) string {
	return InfoStyle.Render(mark) + " " + text
}

// Success renders a success line
func Success(text string) string {
	return SuccessStyle.Render("✓") + " " + text
}

// Pending renders a line for a step that is still in progress
func Pending(text string) string {
	return PendingStyle.Render("…") + " " + text
}

// Failure renders a failure line
func Failure(text string) string {
	return ErrorStyle.Render("✗") + " " + text
}
