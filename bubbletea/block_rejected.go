package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*RejectedBlock)(nil)

// RejectedBlock renders a validator rejection. The reason is always
// visible since the model's next step depends on it.
type RejectedBlock struct {
	reason string
	styles Styles
}

// NewRejectedBlock creates a RejectedBlock.
func NewRejectedBlock(reason string, styles Styles) *RejectedBlock {
	return &RejectedBlock{reason: reason, styles: styles}
}

func (b *RejectedBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *RejectedBlock) View(width int) string {
	content := b.styles.Error.Render("✗ rejected: " + b.reason)
	return lipgloss.NewStyle().Width(width).Render(content)
}
