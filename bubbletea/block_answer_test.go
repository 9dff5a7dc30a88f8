package bubbletea_test

import (
	"testing"

	"github.com/fwojciec/sift"
	bt "github.com/fwojciec/sift/bubbletea"
	"github.com/stretchr/testify/assert"
)

func TestAnswerBlock(t *testing.T) {
	t.Parallel()

	theme := sift.DefaultTheme()

	t.Run("renders markdown content", func(t *testing.T) {
		t.Parallel()
		b := bt.NewAnswerBlock("The `db` service logged **12** errors.", theme)
		view := b.View(80)
		assert.Contains(t, view, "db")
		assert.Contains(t, view, "12")
	})

	t.Run("caches per width", func(t *testing.T) {
		t.Parallel()
		b := bt.NewAnswerBlock("short answer", theme)
		first := b.View(40)
		second := b.View(40)
		assert.Equal(t, first, second)
	})
}

func TestNoticeBlock(t *testing.T) {
	t.Parallel()

	styles := bt.NewStyles(sift.DefaultTheme())

	t.Run("renders the notice text", func(t *testing.T) {
		t.Parallel()
		b := bt.NewNoticeBlock("iteration limit reached", false, styles)
		assert.Contains(t, b.View(80), "iteration limit reached")
	})

	t.Run("error notices render too", func(t *testing.T) {
		t.Parallel()
		b := bt.NewNoticeBlock("fatal failure", true, styles)
		assert.Contains(t, b.View(80), "fatal failure")
	})
}
