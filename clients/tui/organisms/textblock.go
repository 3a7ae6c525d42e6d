// Package organisms provides high-level TUI components.
package organisms

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/chatwidget/clients/tui/atoms"
)

// TextBlock renders one conversation bubble: a role label followed by the text.
type TextBlock struct {
	role      string
	style     lipgloss.Style
	content   string
	markdown  string // glamour style name; empty renders plain text
	alignEnd  bool
	width     int
	cached    string
	cachedFor int
}

// NewTextBlock creates a block. markdownStyle is a glamour style name ("auto",
// "dark", "light", "notty") or empty for plain text.
func NewTextBlock(role string, style lipgloss.Style, content, markdownStyle string, alignEnd bool) *TextBlock {
	return &TextBlock{
		role:     role,
		style:    style,
		content:  content,
		markdown: markdownStyle,
		alignEnd: alignEnd,
	}
}

// Content returns the block text.
func (tb *TextBlock) Content() string { return tb.content }

// Role returns the block's role label.
func (tb *TextBlock) Role() string { return tb.role }

// SetWidth updates the rendering width.
func (tb *TextBlock) SetWidth(w int) {
	tb.width = w
}

// View renders the block, caching the result per width.
func (tb *TextBlock) View() string {
	if tb.cached != "" && tb.cachedFor == tb.width {
		return tb.cached
	}

	label := atoms.StyledLabel(tb.role, tb.style)
	text := tb.render()

	out := label + "\n" + text
	if tb.alignEnd && tb.width > 0 {
		out = lipgloss.NewStyle().Width(tb.width).Align(lipgloss.Right).Render(out)
	}
	tb.cached = out
	tb.cachedFor = tb.width
	return out
}

func (tb *TextBlock) render() string {
	w := tb.width - 4
	if w < 20 {
		w = 20
	}
	if tb.markdown == "" {
		return lipgloss.NewStyle().Width(w).Render(tb.content)
	}
	return RenderMarkdown(tb.content, tb.markdown, w)
}

// RenderMarkdown renders text with glamour, falling back to the raw text.
func RenderMarkdown(text, style string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}

	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimSpace(out)
}
