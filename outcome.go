package sift

// OutcomeKind is the terminal state of an orchestrator run.
type OutcomeKind string

const (
	// OutcomeSuccess means the model produced a final answer.
	OutcomeSuccess OutcomeKind = "success"

	// OutcomeIterationLimit means the iteration budget ran out before a
	// final answer. Answer holds a best-effort synthesis when a
	// successful tool result exists.
	OutcomeIterationLimit OutcomeKind = "iteration_limit_exceeded"

	// OutcomeFatalParseFailure means two consecutive replies matched
	// neither permitted shape. RawReply holds the offending text.
	OutcomeFatalParseFailure OutcomeKind = "fatal_parse_failure"

	// OutcomeCancelled means the caller cancelled the run between
	// iterations.
	OutcomeCancelled OutcomeKind = "cancelled"
)

// Outcome reports how a run terminated. The full Transcript always
// accompanies it, whatever the kind.
type Outcome struct {
	Kind     OutcomeKind
	Answer   string // final or best-effort answer; may be empty
	RawReply string // offending raw reply on fatal parse failure
}
