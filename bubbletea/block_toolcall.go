package bubbletea

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sift"
)

var _ MessageBlock = (*ToolCallBlock)(nil)

// ToolCallBlock renders a tool call with a collapsible toggle. Collapsed
// it shows only the tool name; expanded it shows the arguments.
type ToolCallBlock struct {
	name      string
	args      string
	collapsed bool
	styles    Styles
}

// NewToolCallBlock creates a ToolCallBlock that starts collapsed.
func NewToolCallBlock(req sift.ToolRequest, styles Styles) *ToolCallBlock {
	args := ""
	if len(req.Arguments) > 0 {
		// json.Marshal sorts map keys, so the rendering is stable.
		if data, err := json.Marshal(req.Arguments); err == nil {
			args = string(data)
		}
	}
	return &ToolCallBlock{name: req.Tool, args: args, collapsed: true, styles: styles}
}

func (b *ToolCallBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		b.collapsed = !b.collapsed
	}
	return b, nil
}

func (b *ToolCallBlock) View(width int) string {
	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	content := b.styles.ToolCall.Render(indicator + " " + b.name)
	if !b.collapsed && b.args != "" {
		content += "\n" + b.styles.Muted.Render(b.args)
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}
