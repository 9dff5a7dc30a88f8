// Package mock provides test doubles for sift interfaces using function fields.
package mock

import (
	"context"
	"sync"

	"github.com/fwojciec/sift"
)

// Interface compliance checks.
var (
	_ sift.Generator = (*Generator)(nil)
	_ sift.Generator = (*ScriptedGenerator)(nil)
)

// Generator is a test double for sift.Generator.
// Set GenerateFn before calling Generate.
type Generator struct {
	GenerateFn func(ctx context.Context, prompt string) (string, error)
}

// Generate delegates to GenerateFn.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	return g.GenerateFn(ctx, prompt)
}

// ScriptedGenerator replays a fixed sequence of replies, one per
// Generate call. After the script is exhausted it keeps returning the
// last reply, which makes adversarial never-terminating stubs trivial
// to express.
type ScriptedGenerator struct {
	mu      sync.Mutex
	replies []string
	calls   int
}

// NewScripted creates a ScriptedGenerator from an ordered reply list.
// At least one reply is required; an empty script panics here rather
// than on the first Generate call.
func NewScripted(replies ...string) *ScriptedGenerator {
	if len(replies) == 0 {
		panic("mock: NewScripted requires at least one reply")
	}
	return &ScriptedGenerator{replies: replies}
}

// Generate returns the next scripted reply.
func (g *ScriptedGenerator) Generate(ctx context.Context, _ string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	i := g.calls
	if i >= len(g.replies) {
		i = len(g.replies) - 1
	}
	g.calls++
	return g.replies[i], nil
}

// Calls returns how many times Generate has been called.
func (g *ScriptedGenerator) Calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
