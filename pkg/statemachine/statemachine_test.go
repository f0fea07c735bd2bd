package statemachine_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/statemachine"
)

const (
	Closed = statemachine.StringState("closed")
	Open   = statemachine.StringState("open")
	Locked = statemachine.StringState("locked")

	Toggle = statemachine.StringEvent("toggle")
	Lock   = statemachine.StringEvent("lock")
	Poke   = statemachine.StringEvent("poke")
)

func TestMachine_Fire(t *testing.T) {
	t.Parallel()

	t.Run("basic transitions and reset", func(t *testing.T) {
		t.Parallel()

		m := statemachine.MustNew(Closed,
			statemachine.WithTransition(Closed, Open, Toggle),
			statemachine.WithTransition(Open, Closed, Toggle),
		)
		ctx := context.Background()

		assert.True(t, m.Is(Closed))
		require.NoError(t, m.Fire(ctx, Toggle, nil))
		assert.Equal(t, Open, m.Current())
		require.NoError(t, m.Fire(ctx, Toggle, nil))
		assert.True(t, m.Is(Closed))

		require.NoError(t, m.Fire(ctx, Toggle, nil))
		m.Reset()
		assert.True(t, m.Is(Closed))
	})

	t.Run("undefined transition", func(t *testing.T) {
		t.Parallel()

		m := statemachine.MustNew(Closed)
		err := m.Fire(context.Background(), Lock, nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, statemachine.ErrNoTransition)
		assert.NotErrorIs(t, err, statemachine.ErrTransitionRejected)
		assert.False(t, m.CanFire(context.Background(), Lock, nil))

		var te *statemachine.TransitionError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, "closed", te.From)
		assert.Equal(t, "lock", te.Event)
	})

	t.Run("guards pick the first passing branch", func(t *testing.T) {
		t.Parallel()

		isAdmin := func(_ context.Context, _ statemachine.State, _ statemachine.Event, data any) bool {
			return data == "admin"
		}
		m := statemachine.MustNew(Closed,
			statemachine.WithTransition(Closed, Locked, Toggle, statemachine.WithGuards(isAdmin)),
			statemachine.WithTransition(Closed, Open, Toggle),
		)

		assert.True(t, m.CanFire(context.Background(), Toggle, "guest"))
		require.NoError(t, m.Fire(context.Background(), Toggle, "guest"))
		assert.Equal(t, Open, m.Current())

		m.Reset()
		require.NoError(t, m.Fire(context.Background(), Toggle, "admin"))
		assert.Equal(t, Locked, m.Current())
	})

	t.Run("all guards rejecting", func(t *testing.T) {
		t.Parallel()

		never := func(context.Context, statemachine.State, statemachine.Event, any) bool { return false }
		m := statemachine.MustNew(Closed,
			statemachine.WithTransition(Closed, Open, Toggle, statemachine.WithGuards(never)),
		)

		err := m.Fire(context.Background(), Toggle, nil)
		assert.ErrorIs(t, err, statemachine.ErrTransitionRejected)
		assert.True(t, m.Is(Closed))
	})

	t.Run("failing action aborts", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("boom")
		var ran []string
		m := statemachine.MustNew(Closed,
			statemachine.WithTransition(Closed, Open, Toggle, statemachine.WithActions(
				func(_ context.Context, from, to statemachine.State, _ statemachine.Event, _ any) error {
					ran = append(ran, from.Name()+">"+to.Name())
					return nil
				},
				func(context.Context, statemachine.State, statemachine.State, statemachine.Event, any) error {
					return boom
				},
			)),
		)

		err := m.Fire(context.Background(), Toggle, nil)
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, []string{"closed>open"}, ran)
		assert.True(t, m.Is(Closed))
	})

	t.Run("self loop and listener", func(t *testing.T) {
		t.Parallel()

		var seen []string
		m := statemachine.MustNew(Closed,
			statemachine.WithTransition(Closed, Open, Toggle),
			statemachine.WithSelfLoop(Poke, Closed, Open),
			statemachine.WithListener(func(from, to statemachine.State, e statemachine.Event) {
				seen = append(seen, from.Name()+"-"+e.Name()+"->"+to.Name())
			}),
		)
		ctx := context.Background()

		require.NoError(t, m.Fire(ctx, Poke, nil))
		require.NoError(t, m.Fire(ctx, Toggle, nil))
		require.NoError(t, m.Fire(ctx, Poke, nil))
		assert.Equal(t, []string{"closed-poke->closed", "closed-toggle->open", "open-poke->open"}, seen)
	})

	t.Run("nil event", func(t *testing.T) {
		t.Parallel()

		m := statemachine.MustNew(Closed)
		assert.ErrorIs(t, m.Fire(context.Background(), nil, nil), statemachine.ErrInvalidEvent)
		assert.False(t, m.CanFire(context.Background(), nil, nil))
	})
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	_, err := statemachine.New(nil)
	assert.ErrorIs(t, err, statemachine.ErrNilInitialState)

	_, err = statemachine.New(Closed, statemachine.WithTransition(Closed, nil, Toggle))
	assert.ErrorIs(t, err, statemachine.ErrInvalidTransition)

	assert.Panics(t, func() { statemachine.MustNew(nil) })
}

func TestMachine_ConcurrentFire(t *testing.T) {
	t.Parallel()

	m := statemachine.MustNew(Closed,
		statemachine.WithTransition(Closed, Open, Toggle),
	)

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m.Fire(context.Background(), Toggle, nil) == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.True(t, m.Is(Open))
}
