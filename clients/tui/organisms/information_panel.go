package organisms

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/chatwidget/internal/conversation"
)

// InformationPanel displays the status bar: conversation, endpoint, turns, busy and scroll mode.
type InformationPanel struct {
	conversationID string
	endpoint       string
	turns          int
	busy           bool
	mode           conversation.ScrollMode
	lastErr        string
	width          int
	style          lipgloss.Style
}

// NewInformationPanel creates a new status bar panel.
func NewInformationPanel(style lipgloss.Style, conversationID, endpoint string) InformationPanel {
	return InformationPanel{
		style:          style,
		conversationID: conversationID,
		endpoint:       endpoint,
	}
}

// SetState copies the displayed fields from the conversation.
func (p *InformationPanel) SetState(s conversation.State) {
	p.turns = s.Len()
	p.busy = s.Busy()
	p.mode = s.ScrollMode()
}

// SetLastError records the kind of the last failed exchange ("" clears it).
func (p *InformationPanel) SetLastError(kind string) { p.lastErr = kind }

// LastError returns the last recorded failure kind.
func (p *InformationPanel) LastError() string { return p.lastErr }

// Endpoint returns the responder endpoint shown in the bar.
func (p *InformationPanel) Endpoint() string { return p.endpoint }

// SetWidth updates the rendering width.
func (p *InformationPanel) SetWidth(w int) { p.width = w }

// View renders the status bar.
func (p InformationPanel) View() string {
	cid := p.conversationID
	if len(cid) > 8 {
		cid = cid[:8]
	}

	state := "idle"
	if p.busy {
		state = "waiting"
	}

	parts := []string{state, p.mode.String(), fmt.Sprintf("turns: %d", p.turns)}
	if p.lastErr != "" {
		parts = append(parts, "last reply failed: "+p.lastErr)
	}
	parts = append(parts, "conv:"+cid, p.endpoint)

	return p.style.Width(p.width).MaxHeight(1).Render(strings.Join(parts, " | "))
}
