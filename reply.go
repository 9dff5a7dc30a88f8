package sift

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Reply is a sealed interface over the two shapes a reasoning-component
// reply may take. The unexported marker method prevents external
// implementations.
type Reply interface {
	reply()
}

// ToolCallReply is a request to dispatch one tool.
type ToolCallReply struct {
	Request ToolRequest
}

func (ToolCallReply) reply() {}

// FinalAnswerReply is the model's final answer, ending the run.
type FinalAnswerReply struct {
	Text string
}

func (FinalAnswerReply) reply() {}

// Interface compliance checks.
var (
	_ Reply = ToolCallReply{}
	_ Reply = FinalAnswerReply{}
)

// ParseReply parses raw reasoning-component output as exactly one of the
// two permitted JSON shapes: {"tool": ..., "arguments": {...}} or
// {"final_answer": ...}. Code-fence wrapping is stripped before parsing;
// the inner object itself is matched strictly, with no extraneous
// top-level keys. Any reply matching neither shape returns an error
// wrapping ErrMalformedReply.
func ParseReply(raw string) (Reply, error) {
	s := stripFences(strings.TrimSpace(raw))

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &top); err != nil {
		return nil, fmt.Errorf("not a JSON object: %w", ErrMalformedReply)
	}

	if answer, ok := top["final_answer"]; ok {
		if len(top) != 1 {
			return nil, fmt.Errorf("final_answer object has extraneous keys: %w", ErrMalformedReply)
		}
		var text string
		if err := json.Unmarshal(answer, &text); err != nil {
			return nil, fmt.Errorf("final_answer must be a string: %w", ErrMalformedReply)
		}
		return FinalAnswerReply{Text: text}, nil
	}

	toolRaw, hasTool := top["tool"]
	argsRaw, hasArgs := top["arguments"]
	if !hasTool || !hasArgs {
		return nil, fmt.Errorf("object is neither a tool call nor a final answer: %w", ErrMalformedReply)
	}
	if len(top) != 2 {
		return nil, fmt.Errorf("tool-call object has extraneous keys: %w", ErrMalformedReply)
	}

	var tool string
	if err := json.Unmarshal(toolRaw, &tool); err != nil {
		return nil, fmt.Errorf("tool must be a string: %w", ErrMalformedReply)
	}
	if tool == "" {
		return nil, fmt.Errorf("tool name is empty: %w", ErrMalformedReply)
	}

	var args map[string]any
	if err := json.Unmarshal(argsRaw, &args); err != nil {
		return nil, fmt.Errorf("arguments must be a mapping: %w", ErrMalformedReply)
	}
	// Unmarshaling JSON null into a map succeeds and leaves it nil, so a
	// nil check is needed to refuse null alongside other non-mappings.
	if args == nil {
		return nil, fmt.Errorf("arguments must be a mapping: %w", ErrMalformedReply)
	}

	return ToolCallReply{Request: ToolRequest{Tool: tool, Arguments: args}}, nil
}

// stripFences unwraps a markdown code fence if the reply is wrapped in
// one. Models prompted for bare JSON still emit ```json fences often
// enough that rejecting them outright wastes the retry budget.
func stripFences(s string) string {
	if inner, ok := fenced(s, "```json"); ok {
		return inner
	}
	if inner, ok := fenced(s, "```"); ok {
		return inner
	}
	return s
}

func fenced(s, open string) (string, bool) {
	if !strings.HasPrefix(s, open) {
		return "", false
	}
	rest := s[len(open):]
	end := strings.LastIndex(rest, "```")
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(rest[:end]), true
}
