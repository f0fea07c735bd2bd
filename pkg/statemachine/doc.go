// Package statemachine implements a small finite-state machine with guarded
// transitions.
//
// States and events are anything with a Name; StringState and StringEvent
// cover the common case. Transitions are declared once through options:
//
//	const (
//		Idle    = statemachine.StringState("idle")
//		Running = statemachine.StringState("running")
//		Start   = statemachine.StringEvent("start")
//	)
//
//	m := statemachine.MustNew(Idle,
//		statemachine.WithTransition(Idle, Running, Start),
//	)
//	err := m.Fire(ctx, Start, nil)
//
// Guards veto a transition, actions run before the state changes and abort it
// on error, listeners observe the result. When Fire fails, errors.Is tells
// an undefined transition (ErrNoTransition) from a vetoed one
// (ErrTransitionRejected).
//
// A Machine is safe for concurrent use. Fire holds the write lock while
// guards and actions run, so they must not call back into the machine.
package statemachine
