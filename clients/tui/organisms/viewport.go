package organisms

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// ContentBlock is the interface for renderable conversation blocks.
type ContentBlock interface {
	View() string
	SetWidth(w int)
}

// OutputViewport manages the scrollable conversation history. It never scrolls by
// itself: callers decide when to jump to the bottom.
type OutputViewport struct {
	viewport viewport.Model
	blocks   []ContentBlock
	footer   string
	width    int
	height   int
}

// NewOutputViewport creates a viewport for the conversation history.
func NewOutputViewport(width, height int) OutputViewport {
	vp := viewport.New(width, height)
	vp.SetContent("")
	// Keys belong to the input line; scrolling by key is wired explicitly.
	vp.KeyMap = viewport.KeyMap{}
	vp.MouseWheelEnabled = true
	return OutputViewport{
		viewport: vp,
		width:    width,
		height:   height,
	}
}

// SetSize updates the viewport dimensions.
func (o *OutputViewport) SetSize(width, height int) {
	o.width = width
	o.height = height
	o.viewport.Width = width
	o.viewport.Height = height
	for _, b := range o.blocks {
		b.SetWidth(width)
	}
	o.refresh()
}

// AppendBlock adds a new content block and re-renders.
func (o *OutputViewport) AppendBlock(block ContentBlock) {
	block.SetWidth(o.width)
	o.blocks = append(o.blocks, block)
	o.refresh()
}

// SetFooter sets transient content rendered after the last block.
func (o *OutputViewport) SetFooter(footer string) {
	if footer == o.footer {
		return
	}
	o.footer = footer
	o.refresh()
}

// BlockCount returns the number of blocks.
func (o *OutputViewport) BlockCount() int {
	return len(o.blocks)
}

// Block returns the block at position i, or nil if out of range.
func (o *OutputViewport) Block(i int) ContentBlock {
	if i < 0 || i >= len(o.blocks) {
		return nil
	}
	return o.blocks[i]
}

// PageUp scrolls up by one page.
func (o *OutputViewport) PageUp() {
	o.viewport.SetYOffset(o.viewport.YOffset - o.viewport.Height)
}

// PageDown scrolls down by one page.
func (o *OutputViewport) PageDown() {
	o.viewport.SetYOffset(o.viewport.YOffset + o.viewport.Height)
}

// GotoBottom shows the newest content.
func (o *OutputViewport) GotoBottom() {
	o.viewport.GotoBottom()
}

// AtBottom reports whether the last line is visible.
func (o *OutputViewport) AtBottom() bool {
	return o.viewport.AtBottom()
}

// DistanceFromBottom returns how many lines lie below the visible window.
func (o *OutputViewport) DistanceFromBottom() int {
	d := o.viewport.TotalLineCount() - o.viewport.YOffset - o.viewport.Height
	if d < 0 {
		return 0
	}
	return d
}

// Refresh re-renders all blocks, keeping the scroll position.
func (o *OutputViewport) Refresh() {
	o.refresh()
}

func (o *OutputViewport) refresh() {
	var sb strings.Builder
	for i, block := range o.blocks {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(block.View())
	}
	if o.footer != "" {
		if len(o.blocks) > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(o.footer)
	}
	o.viewport.SetContent(sb.String())
}

// Update handles viewport messages (mouse wheel).
func (o OutputViewport) Update(msg tea.Msg) (OutputViewport, tea.Cmd) {
	var cmd tea.Cmd
	o.viewport, cmd = o.viewport.Update(msg)
	return o, cmd
}

// View renders the viewport.
func (o OutputViewport) View() string {
	return o.viewport.View()
}
