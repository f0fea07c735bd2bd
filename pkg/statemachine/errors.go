package statemachine

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTransition = errors.New("invalid transition: from, to, or event cannot be nil")
	ErrInvalidEvent      = errors.New("invalid event: event cannot be nil")
	ErrNilInitialState   = errors.New("initial state cannot be nil")

	ErrNoTransition       = errors.New("no transition available")
	ErrTransitionRejected = errors.New("transition rejected by guards")
)

// TransitionError reports why Fire could not move the machine.
// It matches ErrNoTransition or ErrTransitionRejected with errors.Is.
type TransitionError struct {
	From     string
	Event    string
	Rejected bool
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: state %q, event %q", e.cause(), e.From, e.Event)
}

func (e *TransitionError) Is(target error) bool {
	return target == e.cause()
}

func (e *TransitionError) cause() error {
	if e.Rejected {
		return ErrTransitionRejected
	}
	return ErrNoTransition
}
