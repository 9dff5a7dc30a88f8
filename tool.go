package sift

import "context"

// ArgKind is the expected primitive kind of a tool argument.
type ArgKind string

const (
	KindString  ArgKind = "string"
	KindList    ArgKind = "list"
	KindMapping ArgKind = "mapping"
)

// Matches reports whether a decoded JSON value has this kind.
func (k ArgKind) Matches(v any) bool {
	switch k {
	case KindString:
		_, ok := v.(string)
		return ok
	case KindList:
		_, ok := v.([]any)
		return ok
	case KindMapping:
		_, ok := v.(map[string]any)
		return ok
	default:
		return false
	}
}

// ArgSpec declares one tool argument. All declared arguments are
// required; arguments not declared are rejected (closed world).
type ArgSpec struct {
	Kind        ArgKind
	Description string
}

// ToolSchema is the declared contract a registered tool satisfies.
type ToolSchema struct {
	Name        string
	Description string
	Args        map[string]ArgSpec
}

// ToolFunc is a tool implementation. It receives arguments that already
// passed schema validation and returns a JSON-marshalable value.
type ToolFunc func(ctx context.Context, args map[string]any) (any, error)

// Registrar accepts tool registrations. Implemented by registry.Registry.
type Registrar interface {
	Register(schema ToolSchema, fn ToolFunc) error
}

// ToolBoundary is the sole gate through which the orchestrator may
// perform side-effecting or computational operations. It is total: every
// request yields a ToolResult, never a panic.
type ToolBoundary interface {
	ValidateAndExecute(ctx context.Context, req ToolRequest) ToolResult
	Schemas() []ToolSchema
}
