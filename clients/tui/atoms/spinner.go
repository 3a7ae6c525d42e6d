// Package atoms provides low-level TUI building blocks.
package atoms

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Spinner wraps bubbles/spinner with a configurable style and caption.
type Spinner struct {
	Model   spinner.Model
	caption string
	style   lipgloss.Style
}

// NewSpinner creates a dots spinner followed by caption (e.g. "Bot is thinking").
func NewSpinner(color lipgloss.AdaptiveColor, caption string) Spinner {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(color)
	return Spinner{
		Model:   s,
		caption: caption,
		style:   lipgloss.NewStyle().Foreground(color),
	}
}

// Tick returns the spinner tick command.
func (s Spinner) Tick() tea.Msg {
	return s.Model.Tick()
}

// Update handles spinner messages.
func (s Spinner) Update(msg tea.Msg) (Spinner, tea.Cmd) {
	var cmd tea.Cmd
	s.Model, cmd = s.Model.Update(msg)
	return s, cmd
}

// View renders the spinner frame and caption.
func (s Spinner) View() string {
	if s.caption == "" {
		return s.Model.View()
	}
	return s.Model.View() + " " + s.style.Render(s.caption)
}
