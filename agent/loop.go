// Package agent orchestrates the conversation loop between a Generator
// and a ToolBoundary.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fwojciec/sift"
)

// DefaultMaxIterations bounds the number of Generate calls per run when
// no explicit limit is configured.
const DefaultMaxIterations = 10

// Loop drives the request/result exchange between the reasoning
// component and the tool boundary for a single user query at a time.
// Each Run owns an independent Transcript; a Loop itself holds no
// per-query state and may be reused across queries.
type Loop struct {
	gen      sift.Generator
	boundary sift.ToolBoundary
	maxIter  int
	log      zerolog.Logger
	onTurn   func(sift.ConversationTurn)
}

// Option configures a Loop.
type Option func(*Loop)

// WithMaxIterations sets the iteration budget: the maximum number of
// Generate calls per run, not counting the single corrective retry.
// Values below 1 fall back to the default.
func WithMaxIterations(n int) Option {
	return func(l *Loop) {
		if n >= 1 {
			l.maxIter = n
		}
	}
}

// WithLogger sets the structured logger. The default discards all logs.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// WithTurnHandler sets a callback invoked for every turn as it is
// appended to the transcript. If nil or not set, turns are silently
// appended. The UI consumes turns through this to render progress.
func WithTurnHandler(h func(sift.ConversationTurn)) Option {
	return func(l *Loop) { l.onTurn = h }
}

// New creates a Loop with the given generator and tool boundary.
func New(gen sift.Generator, boundary sift.ToolBoundary, opts ...Option) *Loop {
	l := &Loop{
		gen:      gen,
		boundary: boundary,
		maxIter:  DefaultMaxIterations,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes the loop for one user query. It always returns the full
// transcript, whatever the outcome; the error is non-nil only when the
// generator itself fails, in which case the outcome kind is empty and
// the partial transcript is still returned.
//
// Every Generate call consumes one iteration of the budget. A parse
// failure earns a single corrective retry, which is the only call
// permitted to exceed the budget, so at most maxIterations+1 Generate
// calls and maxIterations tool executions happen per run.
func (l *Loop) Run(ctx context.Context, query string) (*sift.Transcript, sift.Outcome, error) {
	transcript := sift.NewTranscript(query)
	l.emit(transcript.Turns[0])
	schemas := l.boundary.Schemas()

	log := l.log.With().Str("transcript_id", transcript.ID).Logger()
	log.Debug().Int("max_iterations", l.maxIter).Msg("run started")

	calls := 0
	parseFailed := false // previous reply failed to parse; next call is the retry

	for {
		// Cooperative cancellation, checked between iterations only.
		if err := ctx.Err(); err != nil {
			log.Debug().Msg("run cancelled")
			return transcript, sift.Outcome{Kind: sift.OutcomeCancelled}, nil
		}

		if calls >= l.maxIter && !parseFailed {
			out := l.limitOutcome(transcript)
			log.Debug().Int("calls", calls).Msg("iteration limit exceeded")
			return transcript, out, nil
		}

		prompt := sift.BuildPrompt(transcript, schemas, parseFailed)
		raw, err := l.gen.Generate(ctx, prompt)
		calls++
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return transcript, sift.Outcome{Kind: sift.OutcomeCancelled}, nil
			}
			return transcript, sift.Outcome{}, fmt.Errorf("generate: %w", err)
		}

		reply, perr := sift.ParseReply(raw)
		if perr != nil {
			l.append(transcript, sift.ParseFailureTurn{Raw: raw})
			if parseFailed {
				// Second consecutive failure: the corrective retry was
				// already spent.
				log.Debug().Int("calls", calls).Msg("fatal parse failure")
				return transcript, sift.Outcome{
					Kind:     sift.OutcomeFatalParseFailure,
					RawReply: raw,
				}, nil
			}
			parseFailed = true
			continue
		}
		parseFailed = false

		switch r := reply.(type) {
		case sift.FinalAnswerReply:
			l.append(transcript, sift.FinalAnswerTurn{Text: r.Text})
			log.Debug().Int("calls", calls).Msg("final answer")
			return transcript, sift.Outcome{
				Kind:   sift.OutcomeSuccess,
				Answer: r.Text,
			}, nil

		case sift.ToolCallReply:
			l.append(transcript, sift.ToolCallRequestedTurn{Request: r.Request})
			res := l.boundary.ValidateAndExecute(ctx, r.Request)
			switch res.Kind {
			case sift.ErrorUnknownTool, sift.ErrorInvalidArguments:
				log.Debug().Str("tool", r.Request.Tool).Str("reason", res.Message).Msg("tool call rejected")
				l.append(transcript, sift.ValidationRejectedTurn{Reason: res.Message})
			default:
				log.Debug().Str("tool", r.Request.Tool).Bool("is_error", res.IsError).Msg("tool call completed")
				l.append(transcript, sift.ToolCallCompletedTurn{Result: res})
			}
		}
	}
}

// limitOutcome builds the IterationLimitExceeded outcome, synthesizing a
// best-effort answer from the last successful tool result if one exists.
func (l *Loop) limitOutcome(t *sift.Transcript) sift.Outcome {
	out := sift.Outcome{Kind: sift.OutcomeIterationLimit}
	if data, ok := t.LastToolData(); ok {
		out.Answer = fmt.Sprintf(
			"The iteration limit was reached before a final answer was produced. Last successful tool result:\n%s",
			indentJSON(data))
	}
	return out
}

func (l *Loop) append(t *sift.Transcript, turn sift.ConversationTurn) {
	t.Append(turn)
	l.emit(turn)
}

func (l *Loop) emit(turn sift.ConversationTurn) {
	if l.onTurn != nil {
		l.onTurn(turn)
	}
}
