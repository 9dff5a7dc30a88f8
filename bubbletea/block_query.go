package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*QueryBlock)(nil)

// QueryBlock renders a user query with a "> " prefix.
type QueryBlock struct {
	text   string
	styles Styles
}

// NewQueryBlock creates a QueryBlock.
func NewQueryBlock(text string, styles Styles) *QueryBlock {
	return &QueryBlock{text: text, styles: styles}
}

func (b *QueryBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *QueryBlock) View(width int) string {
	content := b.styles.UserMsg.Render("> ") + b.text
	return lipgloss.NewStyle().Width(width).Render(content)
}
