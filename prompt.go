package sift

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const systemPreamble = `You are a log analysis assistant. Your role is to analyze ONLY the provided log files.

CRITICAL RULES:
1. You CANNOT read files or execute code directly.
2. You MUST use the tools listed below; they are the only operations available.
3. Respond with exactly one strict JSON object and nothing else. No text before or after it.
4. To call a tool, respond with: {"tool": "<tool_name>", "arguments": {"<param>": <value>}}
5. To answer the user, respond with: {"final_answer": "<your answer>"}
6. No other top-level keys are permitted in either shape.`

const correctiveInstruction = `Your previous reply was not a valid JSON object in a permitted shape. Respond ONLY with strict JSON in exactly one of these shapes:
{"tool": "<tool_name>", "arguments": {"<param>": <value>}}
{"final_answer": "<your answer>"}`

// SystemPrompt renders the fixed system instruction describing the
// allow-listed tools and the required strict-JSON response shapes.
func SystemPrompt(schemas []ToolSchema) string {
	var b strings.Builder
	b.WriteString(systemPreamble)
	b.WriteString("\n\nAvailable tools:\n")
	for _, s := range schemas {
		fmt.Fprintf(&b, "- %s: %s\n", s.Name, s.Description)
		for _, name := range sortedArgNames(s) {
			spec := s.Args[name]
			fmt.Fprintf(&b, "    %s (%s): %s\n", name, spec.Kind, spec.Description)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// BuildPrompt serializes the transcript into the prompt context for the
// next Generate call. When corrective is set, an explicit corrective
// instruction is appended after the transcript.
func BuildPrompt(t *Transcript, schemas []ToolSchema, corrective bool) string {
	var b strings.Builder
	b.WriteString(SystemPrompt(schemas))
	b.WriteString("\n\n")

	for _, turn := range t.Turns {
		switch tt := turn.(type) {
		case UserQueryTurn:
			fmt.Fprintf(&b, "User request:\n%s\n\n", tt.Text)
		case ToolCallRequestedTurn:
			fmt.Fprintf(&b, "Tool call: %s with args: %s\n", tt.Request.Tool, compactJSON(tt.Request.Arguments))
		case ToolCallCompletedTurn:
			if tt.Result.IsError {
				fmt.Fprintf(&b, "Tool execution failed: %s\n\n", tt.Result.Message)
			} else {
				fmt.Fprintf(&b, "Tool result: %s\n\n", compactJSON(tt.Result.Data))
			}
		case ValidationRejectedTurn:
			fmt.Fprintf(&b, "Tool call rejected: %s\n\n", tt.Reason)
		case ParseFailureTurn:
			b.WriteString("Your previous reply could not be parsed.\n\n")
		case FinalAnswerTurn:
			// Terminal; never serialized back into a prompt.
		}
	}

	if corrective {
		b.WriteString(correctiveInstruction)
	} else {
		b.WriteString("What is the next step? Respond with exactly one JSON object: a tool call, or a final answer.")
	}
	return b.String()
}

// compactJSON renders a tool data value deterministically. Map keys are
// sorted by encoding/json, so identical values always serialize
// identically across runs.
func compactJSON(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(data)
}

func sortedArgNames(s ToolSchema) []string {
	names := make([]string, 0, len(s.Args))
	for name := range s.Args {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
