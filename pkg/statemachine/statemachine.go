package statemachine

import (
	"context"
	"fmt"
	"sync"
)

// State is a named machine state.
type State interface {
	Name() string
}

// Event is a named trigger for a transition.
type Event interface {
	Name() string
}

// StringState is a State backed by a string.
type StringState string

func (s StringState) Name() string { return string(s) }

// StringEvent is an Event backed by a string.
type StringEvent string

func (e StringEvent) Name() string { return string(e) }

// Guard vetoes a transition when it returns false.
type Guard func(ctx context.Context, from State, event Event, data any) bool

// Action runs before the state changes. An error aborts the transition.
type Action func(ctx context.Context, from, to State, event Event, data any) error

// Listener observes completed transitions.
type Listener func(from, to State, event Event)

// StateMachine is the public surface of Machine.
type StateMachine interface {
	Current() State
	Is(state State) bool
	Fire(ctx context.Context, event Event, data any) error
	CanFire(ctx context.Context, event Event, data any) bool
	Reset()
}

type transition struct {
	to      State
	guards  []Guard
	actions []Action
}

// Machine is a concurrency-safe in-memory state machine. Transitions are
// indexed by source state and event name; for the same pair the first one
// whose guards pass is taken.
type Machine struct {
	mu          sync.RWMutex
	initial     State
	current     State
	transitions map[string]map[string][]transition
	listeners   []Listener
}

var _ StateMachine = (*Machine)(nil)

func (m *Machine) Current() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Is reports whether the machine is in state.
func (m *Machine) Is(state State) bool {
	if state == nil {
		return false
	}
	return m.Current().Name() == state.Name()
}

func (m *Machine) Fire(ctx context.Context, event Event, data any) error {
	if event == nil {
		return ErrInvalidEvent
	}

	m.mu.Lock()
	from := m.current
	t, err := m.pick(ctx, event, data)
	if err != nil {
		m.mu.Unlock()
		return err
	}

	for _, action := range t.actions {
		if err := action(ctx, from, t.to, event, data); err != nil {
			m.mu.Unlock()
			return fmt.Errorf("%s -> %s: %w", from.Name(), t.to.Name(), err)
		}
	}
	m.current = t.to
	listeners := m.listeners
	m.mu.Unlock()

	for _, l := range listeners {
		l(from, t.to, event)
	}
	return nil
}

func (m *Machine) CanFire(ctx context.Context, event Event, data any) bool {
	if event == nil {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	_, err := m.pick(ctx, event, data)
	return err == nil
}

// Reset returns the machine to its initial state without running actions.
func (m *Machine) Reset() {
	m.mu.Lock()
	m.current = m.initial
	m.mu.Unlock()
}

// pick must be called with the lock held.
func (m *Machine) pick(ctx context.Context, event Event, data any) (transition, error) {
	candidates := m.transitions[m.current.Name()][event.Name()]
	if len(candidates) == 0 {
		return transition{}, &TransitionError{From: m.current.Name(), Event: event.Name()}
	}

	for _, t := range candidates {
		if passes(ctx, t.guards, m.current, event, data) {
			return t, nil
		}
	}
	return transition{}, &TransitionError{From: m.current.Name(), Event: event.Name(), Rejected: true}
}

func passes(ctx context.Context, guards []Guard, from State, event Event, data any) bool {
	for _, g := range guards {
		if !g(ctx, from, event, data) {
			return false
		}
	}
	return true
}

func (m *Machine) add(from, to State, event Event, guards []Guard, actions []Action) error {
	if from == nil || to == nil || event == nil {
		return ErrInvalidTransition
	}

	byEvent, ok := m.transitions[from.Name()]
	if !ok {
		byEvent = make(map[string][]transition)
		m.transitions[from.Name()] = byEvent
	}
	byEvent[event.Name()] = append(byEvent[event.Name()], transition{to: to, guards: guards, actions: actions})
	return nil
}
