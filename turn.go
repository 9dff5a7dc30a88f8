// Package sift holds the shared data model for the log-analysis agent:
// the conversation transcript and its turn variants, tool requests and
// results, tool schemas, and the reasoning-component reply format.
package sift

import (
	"time"

	"github.com/google/uuid"
)

// ConversationTurn is a sealed interface representing one entry in a
// Transcript. The unexported marker method prevents external implementations.
type ConversationTurn interface {
	turn()
}

// UserQueryTurn records the user's question that started the run.
type UserQueryTurn struct {
	Text string
}

func (UserQueryTurn) turn() {}

// ToolCallRequestedTurn records a tool call requested by the model.
type ToolCallRequestedTurn struct {
	Request ToolRequest
}

func (ToolCallRequestedTurn) turn() {}

// ToolCallCompletedTurn records the result of a dispatched tool call,
// successful or not. The result is always produced by the validator;
// the orchestrator never fabricates one.
type ToolCallCompletedTurn struct {
	Result ToolResult
}

func (ToolCallCompletedTurn) turn() {}

// ValidationRejectedTurn records a tool call rejected at the validation
// boundary before any implementation ran.
type ValidationRejectedTurn struct {
	Reason string
}

func (ValidationRejectedTurn) turn() {}

// FinalAnswerTurn records the model's final natural-language answer.
type FinalAnswerTurn struct {
	Text string
}

func (FinalAnswerTurn) turn() {}

// ParseFailureTurn records a model reply that matched neither the
// tool-call nor the final-answer shape.
type ParseFailureTurn struct {
	Raw string
}

func (ParseFailureTurn) turn() {}

// Interface compliance checks.
var (
	_ ConversationTurn = UserQueryTurn{}
	_ ConversationTurn = ToolCallRequestedTurn{}
	_ ConversationTurn = ToolCallCompletedTurn{}
	_ ConversationTurn = ValidationRejectedTurn{}
	_ ConversationTurn = FinalAnswerTurn{}
	_ ConversationTurn = ParseFailureTurn{}
)

// Transcript is the append-only, strictly ordered record of one user
// query's conversation. It is owned by a single orchestrator run, never
// shared across queries, and discarded when the run completes.
type Transcript struct {
	ID        string
	Turns     []ConversationTurn
	CreatedAt time.Time
}

// NewTranscript creates a Transcript whose first turn is the user query.
func NewTranscript(query string) *Transcript {
	return &Transcript{
		ID:        uuid.NewString(),
		Turns:     []ConversationTurn{UserQueryTurn{Text: query}},
		CreatedAt: time.Now(),
	}
}

// Append adds a turn to the end of the transcript.
func (t *Transcript) Append(turn ConversationTurn) {
	t.Turns = append(t.Turns, turn)
}

// LastToolData returns the data of the most recent successful tool call,
// if any. Used to synthesize a best-effort answer when the iteration
// budget runs out.
func (t *Transcript) LastToolData() (any, bool) {
	for i := len(t.Turns) - 1; i >= 0; i-- {
		if tc, ok := t.Turns[i].(ToolCallCompletedTurn); ok && !tc.Result.IsError {
			return tc.Result.Data, true
		}
	}
	return nil, false
}
