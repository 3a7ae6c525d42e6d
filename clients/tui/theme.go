// Package tui provides the terminal conversation widget.
package tui

import "github.com/charmbracelet/lipgloss"

// Adaptive colors (light/dark terminal detection).
var (
	ColorUser       = lipgloss.AdaptiveColor{Light: "#0F5132", Dark: "#A3CFBB"}
	ColorBot        = lipgloss.AdaptiveColor{Light: "#842029", Dark: "#F1AEB5"}
	ColorGreeting   = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"}
	ColorMuted      = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	ColorStatusBg   = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#1F2937"}
	ColorStatusFg   = lipgloss.AdaptiveColor{Light: "#374151", Dark: "#D1D5DB"}
	ColorChip       = lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#93C5FD"}
	ColorChipBorder = lipgloss.AdaptiveColor{Light: "#BFDBFE", Dark: "#1E3A8A"}
)

// Component styles.
var (
	UserStyle = lipgloss.NewStyle().
			Foreground(ColorUser).
			Bold(true)

	BotStyle = lipgloss.NewStyle().
			Foreground(ColorBot).
			Bold(true)

	GreetingStyle = lipgloss.NewStyle().
			Foreground(ColorGreeting).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorMuted)

	StatusBarStyle = lipgloss.NewStyle().
			Background(ColorStatusBg).
			Foreground(ColorStatusFg).
			Padding(0, 1)

	ChipStyle = lipgloss.NewStyle().
			Foreground(ColorChip).
			Padding(0, 1)

	ChipDisabledStyle = lipgloss.NewStyle().
				Foreground(ColorMuted).
				Faint(true).
				Padding(0, 1)
)
