package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var _ MessageBlock = (*NoticeBlock)(nil)

// NoticeBlock renders a one-line status notice, such as an iteration
// limit or a fatal parse failure at the end of an investigation.
type NoticeBlock struct {
	text    string
	isError bool
	styles  Styles
}

// NewNoticeBlock creates a NoticeBlock.
func NewNoticeBlock(text string, isError bool, styles Styles) *NoticeBlock {
	return &NoticeBlock{text: text, isError: isError, styles: styles}
}

func (b *NoticeBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *NoticeBlock) View(width int) string {
	style := b.styles.Muted
	if b.isError {
		style = b.styles.Error
	}
	return lipgloss.NewStyle().Width(width).Render(style.Render(b.text))
}
