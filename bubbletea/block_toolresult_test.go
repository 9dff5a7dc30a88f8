package bubbletea_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/sift"
	bt "github.com/fwojciec/sift/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestToolResultBlock(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(sift.DefaultTheme())

	t.Run("success starts collapsed with preview", func(t *testing.T) {
		t.Parallel()
		result := sift.Ok(map[string]any{"count": 3})
		b := bt.NewToolResultBlock("list_logs", result, styles)
		view := b.View(80)
		assert.Contains(t, view, "list_logs")
		assert.Contains(t, view, "✓")
		assert.False(t, b.IsError())
	})

	t.Run("toggle expands the full result", func(t *testing.T) {
		t.Parallel()
		result := sift.Ok(map[string]any{"count": 3})
		b := bt.NewToolResultBlock("list_logs", result, styles)
		block, _ := b.Update(bt.ToggleMsg{})
		assert.Contains(t, block.View(80), `"count": 3`)
	})

	t.Run("failure starts expanded and stays expanded", func(t *testing.T) {
		t.Parallel()
		result := sift.Errorf(sift.ErrorExecutionFailure, "file not allowed: /etc/passwd")
		b := bt.NewToolResultBlock("read_file", result, styles)
		assert.True(t, b.IsError())
		assert.Contains(t, b.View(80), "file not allowed: /etc/passwd")

		block, _ := b.Update(bt.ToggleMsg{})
		assert.Contains(t, block.View(80), "file not allowed: /etc/passwd")
	})

	t.Run("long preview is truncated", func(t *testing.T) {
		t.Parallel()
		result := sift.Ok(strings.Repeat("x", 200))
		b := bt.NewToolResultBlock("read_file", result, styles)
		assert.Contains(t, b.View(300), "…")
	})
}
