package molecules

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// SuggestionBar renders the predefined questions as chips, wrapping onto as many
// rows as the width needs, and maps clicks back to a suggestion index.
type SuggestionBar struct {
	labels   []string
	disabled bool
	width    int
	style    lipgloss.Style
	offStyle lipgloss.Style
}

type chipSpan struct {
	row        int
	start, end int // [start, end) in cells
	text       string
}

const chipGap = 1

// NewSuggestionBar creates a bar for labels.
func NewSuggestionBar(labels []string, style, disabledStyle lipgloss.Style) SuggestionBar {
	return SuggestionBar{
		labels:   append([]string(nil), labels...),
		style:    style,
		offStyle: disabledStyle,
	}
}

// SetWidth sets the available row width (0 = unbounded).
func (b *SuggestionBar) SetWidth(w int) { b.width = w }

// SetDisabled greys the chips out; a disabled bar reports no hits.
func (b *SuggestionBar) SetDisabled(disabled bool) { b.disabled = disabled }

// Disabled reports whether the chips are disabled.
func (b *SuggestionBar) Disabled() bool { return b.disabled }

// Labels returns the suggestion labels.
func (b *SuggestionBar) Labels() []string { return b.labels }

func (b SuggestionBar) render(text string) string {
	if b.disabled {
		return b.offStyle.Render(text)
	}
	return b.style.Render(text)
}

// chipText returns the chip caption, shortened with an ellipsis when even a row
// of its own cannot hold it.
func (b SuggestionBar) chipText(i int) string {
	text := fmt.Sprintf("[%d] %s", i+1, b.labels[i])
	if b.width <= 0 {
		return text
	}
	frame := lipgloss.Width(b.render(""))
	room := b.width - frame
	if lipgloss.Width(text) <= room {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > room {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}

// spans lays the chips out left to right, starting a new row when one does not fit.
func (b SuggestionBar) spans() []chipSpan {
	spans := make([]chipSpan, 0, len(b.labels))
	row, x := 0, 0
	for i := range b.labels {
		text := b.chipText(i)
		w := lipgloss.Width(b.render(text))
		if b.width > 0 && x > 0 && x+w > b.width {
			row++
			x = 0
		}
		spans = append(spans, chipSpan{row: row, start: x, end: x + w, text: text})
		x += w + chipGap
	}
	return spans
}

// Rows returns the number of rows the bar occupies.
func (b SuggestionBar) Rows() int {
	spans := b.spans()
	if len(spans) == 0 {
		return 0
	}
	return spans[len(spans)-1].row + 1
}

// HitTest returns the suggestion under (row, x), both relative to the bar.
func (b SuggestionBar) HitTest(row, x int) (int, bool) {
	if b.disabled {
		return 0, false
	}
	for i, s := range b.spans() {
		if s.row == row && x >= s.start && x < s.end {
			return i, true
		}
	}
	return 0, false
}

// View renders the chip rows.
func (b SuggestionBar) View() string {
	spans := b.spans()
	if len(spans) == 0 {
		return ""
	}
	rows := make([][]string, spans[len(spans)-1].row+1)
	for _, s := range spans {
		rows[s.row] = append(rows[s.row], b.render(s.text))
	}
	lines := make([]string, len(rows))
	for i, chips := range rows {
		lines[i] = strings.Join(chips, strings.Repeat(" ", chipGap))
	}
	return strings.Join(lines, "\n")
}
