// Package phases runs state machines written as chains of phase functions.
package phases

import (
	"context"
)

// Phase advances state and returns the next phase. A nil next phase ends the run.
type Phase[S any] func(ctx context.Context, state S) (Phase[S], S, error)

// PhaseBuilder builds a phase that continues with cont.
type PhaseBuilder[S any] func(cont Phase[S]) Phase[S]

// Chain links builders in order, ending with a nil phase.
func Chain[S any](builders ...PhaseBuilder[S]) Phase[S] {
	var phase Phase[S]
	for i := len(builders) - 1; i >= 0; i-- {
		phase = builders[i](phase)
	}
	return phase
}

// Run drives phases until one returns a nil next phase or fails.
func Run[S any](ctx context.Context, phase Phase[S], state S) (S, error) {
	var err error
	for phase != nil {
		phase, state, err = phase(ctx, state)
		if err != nil {
			return state, err
		}
	}
	return state, nil
}
