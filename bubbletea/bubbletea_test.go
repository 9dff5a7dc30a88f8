package bubbletea_test

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/sift"
	bt "github.com/fwojciec/sift/bubbletea"
	"github.com/stretchr/testify/require"
)

// initModel creates a model and sends a WindowSizeMsg to initialize the
// viewport.
func initModel(t *testing.T, run bt.AgentFunc) bt.Model {
	t.Helper()
	m := bt.New(run, sift.DefaultTheme())
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	updated, _ := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model
}

// nopAgent is an agent double that returns immediately.
func nopAgent(_ context.Context, query string, _ func(sift.ConversationTurn)) (*sift.Transcript, sift.Outcome, error) {
	return sift.NewTranscript(query), sift.Outcome{Kind: sift.OutcomeSuccess}, nil
}
