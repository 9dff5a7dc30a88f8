package sift

import "fmt"

// ErrorKind classifies tool dispatch failures.
type ErrorKind string

const (
	ErrorUnknownTool      ErrorKind = "unknown_tool"
	ErrorInvalidArguments ErrorKind = "invalid_arguments"
	ErrorExecutionFailure ErrorKind = "execution_failure"
)

// ToolResult is the outcome of dispatching a ToolRequest. Either Data is
// set (success) or Kind and Message are set (failure); IsError
// distinguishes the two.
type ToolResult struct {
	Data    any
	Kind    ErrorKind
	Message string
	IsError bool
}

// Ok wraps a tool implementation's return value as a successful result.
func Ok(data any) ToolResult {
	return ToolResult{Data: data}
}

// Errorf constructs a failed result with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) ToolResult {
	return ToolResult{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		IsError: true,
	}
}
