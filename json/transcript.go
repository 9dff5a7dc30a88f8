// Package json serializes transcripts to a versioned JSON envelope for
// audit output. Transcripts are not durably stored by the core; this is
// an export format for callers that want to keep or inspect one.
package json

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/sift"
)

// envelope is the v1 wire format for an exported transcript.
type envelope struct {
	Version   int       `json:"version"`
	ID        string    `json:"id"`
	CreatedAt string    `json:"created_at"`
	Turns     []turnDTO `json:"turns"`
	Outcome   string    `json:"outcome"`
	Answer    string    `json:"answer,omitempty"`
	RawReply  string    `json:"raw_reply,omitempty"`
}

// turnDTO is the JSON representation of a ConversationTurn with a type
// discriminator.
type turnDTO struct {
	Type      string          `json:"type"`
	Text      *string         `json:"text,omitempty"`
	Tool      *string         `json:"tool,omitempty"`
	Arguments json.RawMessage `json:"arguments,omitempty"`
	Data      json.RawMessage `json:"data,omitempty"`
	ErrorKind *string         `json:"error_kind,omitempty"`
	Message   *string         `json:"message,omitempty"`
	Reason    *string         `json:"reason,omitempty"`
	Raw       *string         `json:"raw,omitempty"`
}

// MarshalTranscript serializes a transcript and its outcome to the v1
// envelope format.
func MarshalTranscript(t *sift.Transcript, outcome sift.Outcome) ([]byte, error) {
	env := envelope{
		Version:   1,
		ID:        t.ID,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
		Turns:     make([]turnDTO, len(t.Turns)),
		Outcome:   string(outcome.Kind),
		Answer:    outcome.Answer,
		RawReply:  outcome.RawReply,
	}
	for i, turn := range t.Turns {
		dto, err := marshalTurn(turn)
		if err != nil {
			return nil, fmt.Errorf("turn %d: %w", i, err)
		}
		env.Turns[i] = dto
	}
	return json.MarshalIndent(env, "", "  ")
}

func marshalTurn(turn sift.ConversationTurn) (turnDTO, error) {
	switch t := turn.(type) {
	case sift.UserQueryTurn:
		return turnDTO{Type: "user_query", Text: &t.Text}, nil

	case sift.ToolCallRequestedTurn:
		args, err := json.Marshal(t.Request.Arguments)
		if err != nil {
			return turnDTO{}, fmt.Errorf("marshal arguments: %w", err)
		}
		return turnDTO{Type: "tool_call_requested", Tool: &t.Request.Tool, Arguments: args}, nil

	case sift.ToolCallCompletedTurn:
		if t.Result.IsError {
			kind := string(t.Result.Kind)
			return turnDTO{Type: "tool_call_completed", ErrorKind: &kind, Message: &t.Result.Message}, nil
		}
		data, err := json.Marshal(t.Result.Data)
		if err != nil {
			return turnDTO{}, fmt.Errorf("marshal data: %w", err)
		}
		return turnDTO{Type: "tool_call_completed", Data: data}, nil

	case sift.ValidationRejectedTurn:
		return turnDTO{Type: "validation_rejected", Reason: &t.Reason}, nil

	case sift.FinalAnswerTurn:
		return turnDTO{Type: "final_answer", Text: &t.Text}, nil

	case sift.ParseFailureTurn:
		return turnDTO{Type: "parse_failure", Raw: &t.Raw}, nil

	default:
		return turnDTO{}, fmt.Errorf("unknown turn type %T", turn)
	}
}
