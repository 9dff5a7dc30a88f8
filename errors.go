package sift

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrDuplicateTool indicates a tool name is already registered.
	ErrDuplicateTool = errors.New("tool already registered")

	// ErrEmptyToolName indicates a registration with an empty name.
	ErrEmptyToolName = errors.New("tool name is empty")

	// ErrNilTool indicates a registration with a nil implementation.
	ErrNilTool = errors.New("tool implementation is nil")

	// ErrMalformedReply indicates a reasoning-component reply that
	// matched neither the tool-call nor the final-answer shape.
	ErrMalformedReply = errors.New("malformed reply")
)
