package organisms

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/chatwidget/clients/tui/molecules"
)

const sendLabel = "send"

// InteractionPanel groups the suggestion chips, the message input and its send button.
type InteractionPanel struct {
	input       molecules.MessageInput
	suggestions molecules.SuggestionBar
	button      lipgloss.Style
	buttonOff   lipgloss.Style
	width       int
}

// NewInteractionPanel creates a new interaction panel. The chip styles are reused
// for the send button.
func NewInteractionPanel(placeholder string, suggestions []string, chip, chipDisabled lipgloss.Style) InteractionPanel {
	return InteractionPanel{
		input:       molecules.NewMessageInput(placeholder),
		suggestions: molecules.NewSuggestionBar(suggestions, chip, chipDisabled),
		button:      chip,
		buttonOff:   chipDisabled,
	}
}

// Height is the number of rows the panel occupies at its current width.
func (p *InteractionPanel) Height() int { return p.suggestions.Rows() + 1 }

// SetWidth sets the panel width.
func (p *InteractionPanel) SetWidth(w int) {
	p.width = w
	p.suggestions.SetWidth(w)
	p.input.SetWidth(max(w-p.buttonWidth()-1, 1))
}

// SetDisabled disables the input, the send button and the chips while a reply is
// outstanding.
func (p *InteractionPanel) SetDisabled(disabled bool) {
	p.input.SetEnabled(!disabled)
	p.suggestions.SetDisabled(disabled)
}

// Disabled reports whether the panel is disabled.
func (p *InteractionPanel) Disabled() bool { return !p.input.Enabled() }

// ResetInput clears the pending input after an accepted submit.
func (p *InteractionPanel) ResetInput(sent string) { p.input.Reset(sent) }

// InputValue returns the pending input text.
func (p *InteractionPanel) InputValue() string { return p.input.Value() }

// SetInputValue replaces the pending input text.
func (p *InteractionPanel) SetInputValue(s string) { p.input.SetValue(s) }

// SuggestionAt maps a click at (row, x), relative to the panel, to a suggestion index.
func (p *InteractionPanel) SuggestionAt(row, x int) (int, bool) {
	if row >= p.suggestions.Rows() {
		return 0, false
	}
	return p.suggestions.HitTest(row, x)
}

// SendAt reports whether (row, x), relative to the panel, is on the enabled send button.
func (p *InteractionPanel) SendAt(row, x int) bool {
	if p.Disabled() || row != p.suggestions.Rows() {
		return false
	}
	start := p.buttonStart()
	return x >= start && x < start+p.buttonWidth()
}

func (p *InteractionPanel) renderButton() string {
	if p.Disabled() {
		return p.buttonOff.Render(sendLabel)
	}
	return p.button.Render(sendLabel)
}

func (p *InteractionPanel) buttonWidth() int { return lipgloss.Width(p.button.Render(sendLabel)) }

func (p *InteractionPanel) buttonStart() int {
	if p.width > 0 {
		return p.width - p.buttonWidth()
	}
	return lipgloss.Width(p.input.View()) + 1
}

// Update routes a message to the input.
func (p InteractionPanel) Update(msg tea.Msg) (InteractionPanel, tea.Cmd) {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

// View renders the chips above the input line and its send button.
func (p InteractionPanel) View() string {
	input := p.input.View()
	gap := 1
	if p.width > 0 {
		gap = max(p.buttonStart()-lipgloss.Width(input), 1)
	}
	row := lipgloss.JoinHorizontal(lipgloss.Top, input, strings.Repeat(" ", gap), p.renderButton())

	chips := p.suggestions.View()
	if chips == "" {
		return row
	}
	return chips + "\n" + row
}
