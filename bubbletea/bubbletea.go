// Package bubbletea provides a Bubble Tea TUI for interactive log
// investigation sessions. Each conversation turn produced by the agent
// loop is rendered as a block in a scrollable viewport.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/sift"
)

// AgentFunc runs one investigation for a user query. The onTurn callback
// is called for each conversation turn as it is appended. The function
// blocks until the investigation completes or the context is cancelled.
type AgentFunc func(ctx context.Context, query string, onTurn func(sift.ConversationTurn)) (*sift.Transcript, sift.Outcome, error)

// Run creates and runs the Bubble Tea TUI program. It blocks until the
// program exits. When the context is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// TurnMsg wraps a conversation turn for delivery to the Bubble Tea model.
type TurnMsg struct {
	Turn sift.ConversationTurn
}

// AgentDoneMsg signals that the investigation has completed.
type AgentDoneMsg struct {
	Outcome sift.Outcome
	Err     error
}
