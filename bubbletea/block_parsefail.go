package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*ParseFailureBlock)(nil)

// ParseFailureBlock renders an unparseable model reply. Collapsed it
// shows a one-line note; expanded it shows the raw reply text.
type ParseFailureBlock struct {
	raw       string
	collapsed bool
	styles    Styles
}

// NewParseFailureBlock creates a ParseFailureBlock that starts collapsed.
func NewParseFailureBlock(raw string, styles Styles) *ParseFailureBlock {
	return &ParseFailureBlock{raw: raw, collapsed: true, styles: styles}
}

func (b *ParseFailureBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ParseFailureBlock) View(width int) string {
	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	content := b.styles.Muted.Render(indicator + " reply could not be parsed, retrying")
	if !b.collapsed && b.raw != "" {
		content += "\n" + b.styles.Muted.Render(b.raw)
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}
