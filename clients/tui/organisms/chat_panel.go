package organisms

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/chatwidget/clients/tui/atoms"
	"github.com/dohr-michael/chatwidget/internal/conversation"
)

// ChatPanelStyles contains the styles injected into the ChatPanel.
type ChatPanelStyles struct {
	User          lipgloss.Style
	Bot           lipgloss.Style
	Greeting      lipgloss.Style
	Muted         lipgloss.Style
	Thinking      lipgloss.AdaptiveColor
	MarkdownStyle string // glamour style for bot replies
}

// ChatPanel renders the greeting, the conversation turns, and the thinking row.
// It mirrors conversation.State: turns are only ever appended.
type ChatPanel struct {
	viewport OutputViewport
	spinner  atoms.Spinner
	thinking bool
	rendered int // number of turns turned into blocks
	botName  string
	greeting string
	width    int
	styles   ChatPanelStyles
}

// NewChatPanel creates a new chat panel.
func NewChatPanel(width, height int, botName, greeting string, styles ChatPanelStyles) ChatPanel {
	p := ChatPanel{
		viewport: NewOutputViewport(width, height),
		spinner:  atoms.NewSpinner(styles.Thinking, botName+" is thinking"),
		botName:  botName,
		greeting: greeting,
		width:    width,
		styles:   styles,
	}
	if greeting != "" {
		p.viewport.AppendBlock(newGreetingBlock(greeting, styles.Greeting))
	}
	return p
}

// SyncTurns appends blocks for turns not rendered yet.
func (p *ChatPanel) SyncTurns(turns []conversation.Turn) {
	for _, t := range turns[min(p.rendered, len(turns)):] {
		p.viewport.AppendBlock(p.blockFor(t))
		p.rendered++
	}
}

func (p *ChatPanel) blockFor(t conversation.Turn) *TextBlock {
	if t.Role == conversation.RoleUser {
		return NewTextBlock("You", p.styles.User, t.Content, "", true)
	}
	return NewTextBlock(p.botName, p.styles.Bot, t.Content, p.styles.MarkdownStyle, false)
}

// SetThinking shows or hides the "thinking" row. It returns the spinner tick
// command when the row appears.
func (p *ChatPanel) SetThinking(thinking bool) tea.Cmd {
	if thinking == p.thinking {
		return nil
	}
	p.thinking = thinking
	p.refreshFooter()
	if thinking {
		return p.spinner.Tick
	}
	return nil
}

// Thinking reports whether the thinking row is shown.
func (p *ChatPanel) Thinking() bool { return p.thinking }

func (p *ChatPanel) refreshFooter() {
	if p.thinking {
		p.viewport.SetFooter(p.spinner.View())
		return
	}
	p.viewport.SetFooter("")
}

// RenderedTurns returns the number of turns shown.
func (p *ChatPanel) RenderedTurns() int { return p.rendered }

// Block returns the i-th turn block.
func (p *ChatPanel) Block(i int) *TextBlock {
	offset := 0
	if p.greeting != "" {
		offset = 1
	}
	tb, _ := p.viewport.Block(i + offset).(*TextBlock)
	return tb
}

// PageUp scrolls up by one page.
func (p *ChatPanel) PageUp() { p.viewport.PageUp() }

// PageDown scrolls down by one page.
func (p *ChatPanel) PageDown() { p.viewport.PageDown() }

// GotoBottom scrolls to the newest turn.
func (p *ChatPanel) GotoBottom() { p.viewport.GotoBottom() }

// DistanceFromBottom returns the number of lines hidden below the window.
func (p *ChatPanel) DistanceFromBottom() int { return p.viewport.DistanceFromBottom() }

// SetSize updates the viewport dimensions.
func (p *ChatPanel) SetSize(w, h int) {
	p.width = w
	p.viewport.SetSize(w, h)
}

// Update handles spinner ticks and mouse wheel passthrough.
func (p ChatPanel) Update(msg tea.Msg) (ChatPanel, tea.Cmd) {
	var cmds []tea.Cmd

	if _, ok := msg.(spinner.TickMsg); ok {
		if !p.thinking {
			return p, nil
		}
		var cmd tea.Cmd
		p.spinner, cmd = p.spinner.Update(msg)
		cmds = append(cmds, cmd)
		p.refreshFooter()
		return p, tea.Batch(cmds...)
	}

	var vpCmd tea.Cmd
	p.viewport, vpCmd = p.viewport.Update(msg)
	cmds = append(cmds, vpCmd)

	return p, tea.Batch(cmds...)
}

// View renders the chat viewport.
func (p ChatPanel) View() string {
	return p.viewport.View()
}

type greetingBlock struct {
	text  string
	style lipgloss.Style
	width int
}

func newGreetingBlock(text string, style lipgloss.Style) *greetingBlock {
	return &greetingBlock{text: text, style: style}
}

func (g *greetingBlock) SetWidth(w int) { g.width = w }

func (g *greetingBlock) View() string {
	if g.width > 4 {
		return g.style.Width(g.width - 2).Render(g.text)
	}
	return g.style.Render(g.text)
}
