package bubbletea

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/sift"
	"github.com/fwojciec/sift/markdown"
)

var _ MessageBlock = (*AnswerBlock)(nil)

// AnswerBlock renders a final answer with markdown formatting. Rendering
// is width-sensitive, so output is cached per width.
type AnswerBlock struct {
	text    string
	theme   sift.Theme
	byWidth map[int]string
}

// NewAnswerBlock creates an AnswerBlock.
func NewAnswerBlock(text string, theme sift.Theme) *AnswerBlock {
	return &AnswerBlock{text: text, theme: theme, byWidth: make(map[int]string)}
}

func (b *AnswerBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	return b, nil
}

func (b *AnswerBlock) View(width int) string {
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}
	rendered := markdown.Render(b.text, width, b.theme)
	b.byWidth[width] = rendered
	return rendered
}
