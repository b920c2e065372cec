// Package interview hosts one candidate's application session: question
// generation, sequential answering and the final evaluation batch.
//
// Valid state graph:
//
//	LOADING ──► ANSWERING ──► EVALUATING ──► COMPLETED
//	    │                          │
//	    └──────────────────────────┴──► FAILED
//
// COMPLETED and FAILED are terminal states. ANSWERING self-loops while the
// candidate moves between questions.
package interview

import "fmt"

type State string

const (
	StateLoading    State = "LOADING"
	StateAnswering  State = "ANSWERING"
	StateEvaluating State = "EVALUATING"
	StateCompleted  State = "COMPLETED"
	StateFailed     State = "FAILED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[State][]State{
	StateLoading:    {StateAnswering, StateFailed},
	StateAnswering:  {StateAnswering, StateEvaluating},
	StateEvaluating: {StateCompleted, StateFailed},
	// COMPLETED and FAILED are terminal, no outgoing transitions.
}

// ParseState converts a raw string to a State, returning an error for
// unknown values.
func ParseState(s string) (State, error) {
	st := State(s)
	switch st {
	case StateLoading, StateAnswering, StateEvaluating, StateCompleted, StateFailed:
		return st, nil
	}
	return "", fmt.Errorf("unknown session state %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to State) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false // terminal state
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsTerminal returns true when no further transitions are possible.
func IsTerminal(s State) bool {
	return s == StateCompleted || s == StateFailed
}
