package statemachine

import "fmt"

// Option configures a Machine during New.
type Option func(*Machine) error

// TransitionOption attaches guards and actions to one transition.
type TransitionOption func(*transitionConfig)

type transitionConfig struct {
	guards  []Guard
	actions []Action
}

// New creates a machine starting in initial.
func New(initial State, opts ...Option) (*Machine, error) {
	if initial == nil {
		return nil, ErrNilInitialState
	}

	m := &Machine{
		initial:     initial,
		current:     initial,
		transitions: make(map[string]map[string][]transition),
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// MustNew is New that panics on error. Use it for machines declared at startup.
func MustNew(initial State, opts ...Option) *Machine {
	m, err := New(initial, opts...)
	if err != nil {
		panic(fmt.Sprintf("statemachine: %v", err))
	}
	return m
}

// WithTransition registers from --event--> to.
func WithTransition(from, to State, event Event, opts ...TransitionOption) Option {
	return func(m *Machine) error {
		cfg := &transitionConfig{}
		for _, opt := range opts {
			opt(cfg)
		}
		if err := m.add(from, to, event, cfg.guards, cfg.actions); err != nil {
			return fmt.Errorf("%s on %s: %w", nameOf(from), nameOf(event), err)
		}
		return nil
	}
}

// WithSelfLoop registers event as a no-op transition for each state.
func WithSelfLoop(event Event, states ...State) Option {
	return func(m *Machine) error {
		for _, s := range states {
			if err := m.add(s, s, event, nil, nil); err != nil {
				return err
			}
		}
		return nil
	}
}

// WithListener is called after every completed transition, outside the lock.
func WithListener(l Listener) Option {
	return func(m *Machine) error {
		if l != nil {
			m.listeners = append(m.listeners, l)
		}
		return nil
	}
}

func WithGuards(guards ...Guard) TransitionOption {
	return func(cfg *transitionConfig) {
		for _, g := range guards {
			if g != nil {
				cfg.guards = append(cfg.guards, g)
			}
		}
	}
}

func WithActions(actions ...Action) TransitionOption {
	return func(cfg *transitionConfig) {
		for _, a := range actions {
			if a != nil {
				cfg.actions = append(cfg.actions, a)
			}
		}
	}
}

func nameOf(v interface{ Name() string }) string {
	if v == nil {
		return "<nil>"
	}
	return v.Name()
}
