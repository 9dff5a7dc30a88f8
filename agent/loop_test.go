package agent_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sift"
	"github.com/fwojciec/sift/agent"
	"github.com/fwojciec/sift/mock"
	"github.com/fwojciec/sift/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// logRegistry builds a registry with a single read_file tool returning
// canned content.
func logRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	r := registry.New()
	schema := sift.ToolSchema{
		Name:        "read_file",
		Description: "Reads a log file from the filesystem.",
		Args: map[string]sift.ArgSpec{
			"file_path": {Kind: sift.KindString, Description: "Path to the log file"},
		},
	}
	err := r.Register(schema, func(_ context.Context, args map[string]any) (any, error) {
		return map[string]any{
			"file":    args["file_path"],
			"content": "2024-01-01 10:00:00 ERROR [api] connection refused",
		}, nil
	})
	require.NoError(t, err)
	return r
}

func TestLoop_Run(t *testing.T) {
	t.Parallel()

	t.Run("tool call then final answer", func(t *testing.T) {
		t.Parallel()
		gen := mock.NewScripted(
			`{"tool": "read_file", "arguments": {"file_path": "data/application.log"}}`,
			`{"final_answer": "There is 1 error in the log."}`,
		)
		loop := agent.New(gen, logRegistry(t))

		transcript, outcome, err := loop.Run(context.Background(), "analyze errors")
		require.NoError(t, err)

		assert.Equal(t, sift.OutcomeSuccess, outcome.Kind)
		assert.Equal(t, "There is 1 error in the log.", outcome.Answer)
		assert.Equal(t, 2, gen.Calls())

		require.Len(t, transcript.Turns, 4)
		assert.IsType(t, sift.UserQueryTurn{}, transcript.Turns[0])
		assert.IsType(t, sift.ToolCallRequestedTurn{}, transcript.Turns[1])
		assert.IsType(t, sift.ToolCallCompletedTurn{}, transcript.Turns[2])
		assert.IsType(t, sift.FinalAnswerTurn{}, transcript.Turns[3])

		completed := transcript.Turns[2].(sift.ToolCallCompletedTurn)
		assert.False(t, completed.Result.IsError)
	})

	t.Run("unregistered tool is rejected and the loop continues", func(t *testing.T) {
		t.Parallel()
		gen := mock.NewScripted(
			`{"tool": "delete_everything", "arguments": {}}`,
			`{"final_answer": "I cannot do that."}`,
		)
		loop := agent.New(gen, logRegistry(t))

		transcript, outcome, err := loop.Run(context.Background(), "wipe the disk")
		require.NoError(t, err)

		assert.Equal(t, sift.OutcomeSuccess, outcome.Kind)
		require.Len(t, transcript.Turns, 4)
		rejected, ok := transcript.Turns[2].(sift.ValidationRejectedTurn)
		require.True(t, ok)
		assert.Contains(t, rejected.Reason, "tool 'delete_everything' is not registered")
	})

	t.Run("invalid arguments are rejected and fed back", func(t *testing.T) {
		t.Parallel()
		gen := mock.NewScripted(
			`{"tool": "read_file", "arguments": {"path": "data/application.log"}}`,
			`{"final_answer": "done"}`,
		)
		loop := agent.New(gen, logRegistry(t))

		transcript, outcome, err := loop.Run(context.Background(), "q")
		require.NoError(t, err)

		assert.Equal(t, sift.OutcomeSuccess, outcome.Kind)
		rejected, ok := transcript.Turns[2].(sift.ValidationRejectedTurn)
		require.True(t, ok)
		assert.Contains(t, rejected.Reason, "unexpected argument 'path'")
	})

	t.Run("one malformed reply earns a corrective retry", func(t *testing.T) {
		t.Parallel()
		gen := mock.NewScripted(
			"I think I should read the file first.",
			`{"final_answer": "recovered"}`,
		)
		loop := agent.New(gen, logRegistry(t))

		transcript, outcome, err := loop.Run(context.Background(), "q")
		require.NoError(t, err)

		assert.Equal(t, sift.OutcomeSuccess, outcome.Kind)
		assert.Equal(t, "recovered", outcome.Answer)
		require.Len(t, transcript.Turns, 3)
		assert.IsType(t, sift.ParseFailureTurn{}, transcript.Turns[1])
		assert.IsType(t, sift.FinalAnswerTurn{}, transcript.Turns[2])
	})

	t.Run("two consecutive malformed replies are fatal after one retry", func(t *testing.T) {
		t.Parallel()
		gen := mock.NewScripted(
			"first garbage",
			"second garbage",
		)
		loop := agent.New(gen, logRegistry(t))

		transcript, outcome, err := loop.Run(context.Background(), "q")
		require.NoError(t, err)

		assert.Equal(t, sift.OutcomeFatalParseFailure, outcome.Kind)
		assert.Equal(t, "second garbage", outcome.RawReply)
		assert.Equal(t, 2, gen.Calls())

		require.Len(t, transcript.Turns, 3)
		assert.Equal(t, sift.ParseFailureTurn{Raw: "first garbage"}, transcript.Turns[1])
		assert.Equal(t, sift.ParseFailureTurn{Raw: "second garbage"}, transcript.Turns[2])
	})

	t.Run("non-consecutive parse failures are each retried", func(t *testing.T) {
		t.Parallel()
		gen := mock.NewScripted(
			"garbage",
			`{"tool": "read_file", "arguments": {"file_path": "a.log"}}`,
			"garbage again",
			`{"final_answer": "ok"}`,
		)
		loop := agent.New(gen, logRegistry(t))

		_, outcome, err := loop.Run(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, sift.OutcomeSuccess, outcome.Kind)
		assert.Equal(t, 4, gen.Calls())
	})

	t.Run("adversarial tool-only model hits the iteration limit", func(t *testing.T) {
		t.Parallel()
		const maxIter = 4
		gen := mock.NewScripted(
			`{"tool": "read_file", "arguments": {"file_path": "data/application.log"}}`,
		)
		loop := agent.New(gen, logRegistry(t), agent.WithMaxIterations(maxIter))

		transcript, outcome, err := loop.Run(context.Background(), "q")
		require.NoError(t, err)

		assert.Equal(t, sift.OutcomeIterationLimit, outcome.Kind)
		assert.Equal(t, maxIter, gen.Calls())
		assert.LessOrEqual(t, gen.Calls(), maxIter+1)

		// Exactly maxIter tool calls, each recorded as requested+completed.
		var requested, completed int
		for _, turn := range transcript.Turns {
			switch turn.(type) {
			case sift.ToolCallRequestedTurn:
				requested++
			case sift.ToolCallCompletedTurn:
				completed++
			}
		}
		assert.Equal(t, maxIter, requested)
		assert.Equal(t, maxIter, completed)

		// Best-effort answer synthesized from the last tool result.
		assert.Contains(t, outcome.Answer, "iteration limit")
		assert.Contains(t, outcome.Answer, "connection refused")
	})

	t.Run("iteration limit without any tool success reports failure", func(t *testing.T) {
		t.Parallel()
		gen := mock.NewScripted(
			`{"tool": "delete_everything", "arguments": {}}`,
		)
		loop := agent.New(gen, logRegistry(t), agent.WithMaxIterations(2))

		_, outcome, err := loop.Run(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, sift.OutcomeIterationLimit, outcome.Kind)
		assert.Empty(t, outcome.Answer)
	})

	t.Run("corrective retry may exceed the budget by one call", func(t *testing.T) {
		t.Parallel()
		gen := mock.NewScripted(
			"garbage",
			`{"final_answer": "saved by the retry"}`,
		)
		loop := agent.New(gen, logRegistry(t), agent.WithMaxIterations(1))

		_, outcome, err := loop.Run(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, sift.OutcomeSuccess, outcome.Kind)
		assert.Equal(t, 2, gen.Calls())
	})

	t.Run("execution failure is completed with an error result, not rejected", func(t *testing.T) {
		t.Parallel()
		r := registry.New()
		schema := sift.ToolSchema{
			Name: "read_file",
			Args: map[string]sift.ArgSpec{
				"file_path": {Kind: sift.KindString},
			},
		}
		require.NoError(t, r.Register(schema, func(_ context.Context, _ map[string]any) (any, error) {
			return nil, assert.AnError
		}))

		gen := mock.NewScripted(
			`{"tool": "read_file", "arguments": {"file_path": "missing.log"}}`,
			`{"final_answer": "the file is missing"}`,
		)
		loop := agent.New(gen, r)

		transcript, outcome, err := loop.Run(context.Background(), "q")
		require.NoError(t, err)

		assert.Equal(t, sift.OutcomeSuccess, outcome.Kind)
		completed, ok := transcript.Turns[2].(sift.ToolCallCompletedTurn)
		require.True(t, ok)
		assert.True(t, completed.Result.IsError)
		assert.Equal(t, sift.ErrorExecutionFailure, completed.Result.Kind)
	})

	t.Run("cancellation between iterations", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		gen := &mock.Generator{
			GenerateFn: func(_ context.Context, _ string) (string, error) {
				cancel() // observed at the top of the next iteration
				return `{"tool": "read_file", "arguments": {"file_path": "a.log"}}`, nil
			},
		}
		loop := agent.New(gen, logRegistry(t))

		transcript, outcome, err := loop.Run(ctx, "q")
		require.NoError(t, err)

		assert.Equal(t, sift.OutcomeCancelled, outcome.Kind)
		// The in-flight tool call completed before cancellation took effect.
		assert.IsType(t, sift.ToolCallCompletedTurn{}, transcript.Turns[len(transcript.Turns)-1])
	})

	t.Run("generator failure surfaces the partial transcript", func(t *testing.T) {
		t.Parallel()
		gen := &mock.Generator{
			GenerateFn: func(_ context.Context, _ string) (string, error) {
				return "", assert.AnError
			},
		}
		loop := agent.New(gen, logRegistry(t))

		transcript, _, err := loop.Run(context.Background(), "q")
		require.ErrorIs(t, err, assert.AnError)
		require.NotNil(t, transcript)
		require.Len(t, transcript.Turns, 1)
	})

	t.Run("replay with identical script yields an identical transcript", func(t *testing.T) {
		t.Parallel()
		script := []string{
			`{"tool": "read_file", "arguments": {"file_path": "data/application.log"}}`,
			"not json",
			`{"tool": "read_file", "arguments": {"file_path": "data/application.log"}}`,
			`{"final_answer": "done"}`,
		}
		run := func() ([]sift.ConversationTurn, sift.Outcome) {
			loop := agent.New(mock.NewScripted(script...), logRegistry(t))
			transcript, outcome, err := loop.Run(context.Background(), "analyze errors")
			require.NoError(t, err)
			return transcript.Turns, outcome
		}

		turns1, out1 := run()
		turns2, out2 := run()
		assert.Equal(t, turns1, turns2)
		assert.Equal(t, out1, out2)
	})

	t.Run("turn handler observes every turn in order", func(t *testing.T) {
		t.Parallel()
		gen := mock.NewScripted(
			`{"tool": "read_file", "arguments": {"file_path": "a.log"}}`,
			`{"final_answer": "ok"}`,
		)
		var seen []sift.ConversationTurn
		loop := agent.New(gen, logRegistry(t),
			agent.WithTurnHandler(func(turn sift.ConversationTurn) {
				seen = append(seen, turn)
			}))

		transcript, _, err := loop.Run(context.Background(), "q")
		require.NoError(t, err)
		assert.Equal(t, transcript.Turns, seen)
	})
}
