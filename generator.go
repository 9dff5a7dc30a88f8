package sift

import "context"

// Generator is the narrow interface to the reasoning component. It takes
// a fully serialized prompt and returns raw text. Implementations are
// non-deterministic; the orchestration layer is tested against scripted
// implementations of this interface.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
