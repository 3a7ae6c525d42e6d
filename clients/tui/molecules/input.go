// Package molecules provides mid-level TUI components.
package molecules

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SubmitMsg is sent when the user presses Enter on the input. Content is the raw
// field value; whether it is accepted is up to the conversation.
type SubmitMsg struct {
	Content string
}

// MessageInput wraps a one-line textarea with Enter-to-submit semantics.
type MessageInput struct {
	textarea    textarea.Model
	enabled     bool
	placeholder string
	history     []string
	histIdx     int
	draft       string
}

// NewMessageInput creates a new input line.
func NewMessageInput(placeholder string) MessageInput {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.Prompt = "> "
	ta.ShowLineNumbers = false
	ta.SetHeight(1)
	ta.CharLimit = 0
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.Focus()

	return MessageInput{
		textarea:    ta,
		enabled:     true,
		placeholder: placeholder,
		histIdx:     -1,
	}
}

// SetWidth sets the input width.
func (c *MessageInput) SetWidth(w int) {
	c.textarea.SetWidth(w)
}

// SetEnabled enables or disables the input. A disabled input ignores keys.
func (c *MessageInput) SetEnabled(enabled bool) {
	c.enabled = enabled
	if enabled {
		c.textarea.Placeholder = c.placeholder
		c.textarea.Focus()
	} else {
		c.textarea.Placeholder = "waiting for a reply..."
		c.textarea.Blur()
	}
}

// Enabled returns whether the input is active.
func (c *MessageInput) Enabled() bool {
	return c.enabled
}

// Reset clears the input and records content in the recall history.
func (c *MessageInput) Reset(content string) {
	if strings.TrimSpace(content) != "" {
		c.history = append(c.history, content)
	}
	c.textarea.Reset()
	c.histIdx = -1
	c.draft = ""
}

// Value returns the current input text.
func (c *MessageInput) Value() string {
	return c.textarea.Value()
}

// SetValue replaces the input text.
func (c *MessageInput) SetValue(s string) {
	c.textarea.SetValue(s)
}

// Update handles key events. Enter submits, Up/Down recall previous messages.
func (c MessageInput) Update(msg tea.Msg) (MessageInput, tea.Cmd) {
	if !c.enabled {
		return c, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEnter:
			content := c.textarea.Value()
			return c, func() tea.Msg { return SubmitMsg{Content: content} }

		case tea.KeyUp:
			if len(c.history) == 0 {
				break
			}
			if c.histIdx == -1 {
				c.draft = c.textarea.Value()
				c.histIdx = len(c.history) - 1
			} else if c.histIdx > 0 {
				c.histIdx--
			}
			c.textarea.SetValue(c.history[c.histIdx])
			return c, nil

		case tea.KeyDown:
			if c.histIdx == -1 {
				break
			}
			if c.histIdx < len(c.history)-1 {
				c.histIdx++
				c.textarea.SetValue(c.history[c.histIdx])
			} else {
				c.histIdx = -1
				c.textarea.SetValue(c.draft)
			}
			return c, nil
		}
	}

	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return c, cmd
}

// View renders the input line.
func (c MessageInput) View() string {
	return c.textarea.View()
}
