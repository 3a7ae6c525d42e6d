package organisms

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dohr-michael/chatwidget/internal/conversation"
)

func testStyles() ChatPanelStyles {
	return ChatPanelStyles{
		User:          lipgloss.NewStyle(),
		Bot:           lipgloss.NewStyle(),
		Greeting:      lipgloss.NewStyle(),
		Muted:         lipgloss.NewStyle(),
		MarkdownStyle: "notty",
	}
}

func turns(n int) []conversation.Turn {
	out := make([]conversation.Turn, 0, n)
	for i := range n {
		role := conversation.RoleUser
		if i%2 == 1 {
			role = conversation.RoleBot
		}
		out = append(out, conversation.Turn{Role: role, Content: strings.Repeat("line\n", 3) + "end"})
	}
	return out
}

func TestChatPanelSyncIsAppendOnly(t *testing.T) {
	p := NewChatPanel(60, 10, "Bot", "Hello there", testStyles())

	p.SyncTurns(turns(2))
	p.SyncTurns(turns(2))
	assert.Equal(t, 2, p.RenderedTurns())

	p.SyncTurns(turns(3))
	assert.Equal(t, 3, p.RenderedTurns())

	require.NotNil(t, p.Block(0))
	assert.Equal(t, "You", p.Block(0).Role())
	assert.Equal(t, "Bot", p.Block(1).Role())
	assert.Nil(t, p.Block(3))
}

func TestChatPanelThinkingRow(t *testing.T) {
	p := NewChatPanel(60, 10, "SavinaAtaiBot", "", testStyles())

	cmd := p.SetThinking(true)
	assert.NotNil(t, cmd)
	assert.True(t, p.Thinking())
	assert.Contains(t, p.View(), "SavinaAtaiBot is thinking")

	assert.Nil(t, p.SetThinking(true))
	assert.Nil(t, p.SetThinking(false))
	assert.NotContains(t, p.View(), "is thinking")
}

func TestViewportDistanceFromBottom(t *testing.T) {
	p := NewChatPanel(40, 5, "Bot", "", testStyles())
	p.SyncTurns(turns(6))

	assert.Positive(t, p.DistanceFromBottom())

	p.GotoBottom()
	assert.Zero(t, p.DistanceFromBottom())

	p.PageUp()
	assert.Equal(t, 5, p.DistanceFromBottom())

	p.PageDown()
	assert.Zero(t, p.DistanceFromBottom())
}

func TestViewportShortContentIsAtBottom(t *testing.T) {
	o := NewOutputViewport(40, 20)
	o.AppendBlock(NewTextBlock("You", lipgloss.NewStyle(), "hi", "", false))

	assert.Zero(t, o.DistanceFromBottom())
	assert.True(t, o.AtBottom())
	assert.Equal(t, 1, o.BlockCount())
}

func TestRenderMarkdownKeepsText(t *testing.T) {
	out := RenderMarkdown("Face yoga is **great**", "notty", 40)
	assert.Contains(t, out, "Face yoga is")
	assert.Contains(t, out, "great")
}
