// Package registry implements the tool allow-list and the validation
// boundary every tool request must pass through before execution.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/fwojciec/sift"
)

// Compile-time interface checks.
var (
	_ sift.Registrar    = (*Registry)(nil)
	_ sift.ToolBoundary = (*Registry)(nil)
)

type entry struct {
	schema sift.ToolSchema
	fn     sift.ToolFunc
}

// Registry holds the allow-list of callable tools and their schemas. It
// has no awareness of conversation state: ValidateAndExecute is a pure
// request-to-result function. Registration happens at startup; after
// that the registry is effectively immutable and safe for concurrent
// lookup.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []string
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a tool to the allow-list. The name must be non-empty and
// not already registered.
func (r *Registry) Register(schema sift.ToolSchema, fn sift.ToolFunc) error {
	if schema.Name == "" {
		return sift.ErrEmptyToolName
	}
	if fn == nil {
		return fmt.Errorf("%w: %q", sift.ErrNilTool, schema.Name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[schema.Name]; ok {
		return fmt.Errorf("%w: %q", sift.ErrDuplicateTool, schema.Name)
	}
	r.entries[schema.Name] = entry{schema: schema, fn: fn}
	r.order = append(r.order, schema.Name)
	return nil
}

// Schemas returns the registered tool schemas in registration order, so
// the serialized prompt is stable across runs.
func (r *Registry) Schemas() []sift.ToolSchema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schemas := make([]sift.ToolSchema, 0, len(r.order))
	for _, name := range r.order {
		schemas = append(schemas, r.entries[name].schema)
	}
	return schemas
}

// ValidateAndExecute checks a request against the allow-list and schema,
// then dispatches it to the matching implementation inside a fault
// boundary. It is total: every request yields a ToolResult and nothing
// escapes as a panic. The request originates from a non-deterministic,
// potentially malformed source, so every path must degrade to a
// reportable result.
func (r *Registry) ValidateAndExecute(ctx context.Context, req sift.ToolRequest) sift.ToolResult {
	r.mu.RLock()
	e, ok := r.entries[req.Tool]
	r.mu.RUnlock()
	if !ok {
		return sift.Errorf(sift.ErrorUnknownTool, "tool '%s' is not registered", req.Tool)
	}

	if res, ok := validateArgs(e.schema, req.Arguments); !ok {
		return res
	}

	return run(ctx, e, req.Arguments)
}

// validateArgs checks the request arguments against the schema: every
// declared argument must be present with the declared kind, and no
// undeclared argument is accepted (closed world).
func validateArgs(schema sift.ToolSchema, args map[string]any) (sift.ToolResult, bool) {
	for name := range args {
		if _, declared := schema.Args[name]; !declared {
			return sift.Errorf(sift.ErrorInvalidArguments,
				"unexpected argument '%s' for tool '%s'", name, schema.Name), false
		}
	}

	missing := make([]string, 0)
	for name, spec := range schema.Args {
		v, present := args[name]
		if !present {
			missing = append(missing, name)
			continue
		}
		if !spec.Kind.Matches(v) {
			return sift.Errorf(sift.ErrorInvalidArguments,
				"argument '%s' of tool '%s' must be a %s", name, schema.Name, spec.Kind), false
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return sift.Errorf(sift.ErrorInvalidArguments,
			"tool '%s' is missing required arguments: %v", schema.Name, missing), false
	}

	return sift.ToolResult{}, true
}

// run invokes the tool implementation. A panicking implementation must
// never take down the loop, so it is converted to an ExecutionFailure
// result here.
func run(ctx context.Context, e entry, args map[string]any) (result sift.ToolResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = sift.Errorf(sift.ErrorExecutionFailure,
				"tool '%s' panicked: %v", e.schema.Name, rec)
		}
	}()

	data, err := e.fn(ctx, args)
	if err != nil {
		return sift.Errorf(sift.ErrorExecutionFailure, "%s", err)
	}
	return sift.Ok(data)
}
