package mock

import (
	"context"

	"github.com/fwojciec/sift"
)

// Interface compliance check.
var _ sift.ToolBoundary = (*ToolBoundary)(nil)

// ToolBoundary is a test double for sift.ToolBoundary.
// Set the function fields for the methods you need; SchemasFn may be
// left nil, in which case Schemas returns nil.
type ToolBoundary struct {
	ValidateAndExecuteFn func(ctx context.Context, req sift.ToolRequest) sift.ToolResult
	SchemasFn            func() []sift.ToolSchema
}

// ValidateAndExecute delegates to ValidateAndExecuteFn.
func (b *ToolBoundary) ValidateAndExecute(ctx context.Context, req sift.ToolRequest) sift.ToolResult {
	return b.ValidateAndExecuteFn(ctx, req)
}

// Schemas delegates to SchemasFn.
func (b *ToolBoundary) Schemas() []sift.ToolSchema {
	if b.SchemasFn == nil {
		return nil
	}
	return b.SchemasFn()
}
