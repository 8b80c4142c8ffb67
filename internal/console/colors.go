package console

import "github.com/charmbracelet/lipgloss"

// Catppuccin Mocha colors used by the CLI
var (
	Subtext0 = lipgloss.Color("#a6adc8") // Timestamps
	Text     = lipgloss.Color("#cdd6f4") // Message body

	Sky    = lipgloss.Color("#89dceb") // RX
	Peach  = lipgloss.Color("#fab387") // TX
	Green  = lipgloss.Color("#a6e3a1") // Success
	Yellow = lipgloss.Color("#f9e2af") // In progress
	Red    = lipgloss.Color("#f38ba8") // Failure
	Mauve  = lipgloss.Color("#cba6f7") // Info
)
