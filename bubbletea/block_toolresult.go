package bubbletea

import (
	"encoding/json"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sift"
)

var _ MessageBlock = (*ToolResultBlock)(nil)

const maxPreviewLen = 60

// ToolResultBlock renders a tool result with a collapsible toggle.
// Successful results start collapsed; execution failures start expanded.
type ToolResultBlock struct {
	toolName  string
	content   string
	isError   bool
	collapsed bool
	styles    Styles
}

// NewToolResultBlock creates a ToolResultBlock for a completed tool call.
func NewToolResultBlock(toolName string, result sift.ToolResult, styles Styles) *ToolResultBlock {
	content := result.Message
	if !result.IsError {
		if data, err := json.MarshalIndent(result.Data, "", "  "); err == nil {
			content = string(data)
		}
	}
	return &ToolResultBlock{
		toolName:  toolName,
		content:   content,
		isError:   result.IsError,
		collapsed: !result.IsError,
		styles:    styles,
	}
}

// IsError reports whether this result represents an execution failure.
func (b *ToolResultBlock) IsError() bool { return b.isError }

func (b *ToolResultBlock) Update(msg tea.Msg) (MessageBlock, tea.Cmd) {
	if _, ok := msg.(ToggleMsg); ok {
		if b.isError {
			// Failures stay expanded so the cause is always visible.
			b.collapsed = false
		} else {
			b.collapsed = !b.collapsed
		}
	}
	return b, nil
}

func (b *ToolResultBlock) View(width int) string {
	icon := b.styles.Success.Render("✓")
	if b.isError {
		icon = b.styles.Error.Render("✗")
	}
	indicator := "▶"
	if !b.collapsed {
		indicator = "▼"
	}
	header := b.styles.ToolCall.Render(indicator+" "+b.toolName) + " " + icon

	content := header
	switch {
	case b.collapsed && b.content != "":
		header += "  " + b.preview()
		content = header
	case !b.collapsed && b.content != "":
		body := b.content
		if b.isError {
			body = b.styles.Error.Render(body)
		}
		content = header + "\n" + body
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}

func (b *ToolResultBlock) preview() string {
	line := b.content
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if runes := []rune(line); len(runes) > maxPreviewLen {
		line = string(runes[:maxPreviewLen]) + "…"
	}
	if b.isError {
		return b.styles.Error.Render(line)
	}
	return b.styles.Muted.Render(line)
}
