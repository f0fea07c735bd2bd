package effects_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/modules/effects"
	"github.com/dmitrymomot/storefront/pkg/statemachine"
)

func TestHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		scrollTop float64
		last      float64
		want      effects.HeaderState
	}{
		{name: "top of page", scrollTop: 0, last: 0, want: effects.HeaderState{}},
		{name: "below threshold scrolling down", scrollTop: 80, last: 40, want: effects.HeaderState{LastScrollTop: 80}},
		{name: "past threshold scrolling down", scrollTop: 300, last: 200, want: effects.HeaderState{Scrolled: true, Hidden: true, LastScrollTop: 300}},
		{name: "past threshold scrolling up", scrollTop: 250, last: 300, want: effects.HeaderState{Scrolled: true, LastScrollTop: 250}},
		{name: "overscroll clamps", scrollTop: -20, last: 10, want: effects.HeaderState{LastScrollTop: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, effects.Header(tt.scrollTop, tt.last))
		})
	}
}

func TestHeaderStyles(t *testing.T) {
	t.Parallel()

	h := effects.Header(150, 100)
	assert.Equal(t, "rgba(255, 255, 255, 0.95)", h.Background())
	assert.Equal(t, "blur(10px)", h.BackdropFilter())
	assert.Equal(t, "translateY(-100%)", h.Transform())

	h = effects.Header(10, 100)
	assert.Equal(t, "#ffffff", h.Background())
	assert.Equal(t, "none", h.BackdropFilter())
	assert.Equal(t, "translateY(0)", h.Transform())
}

func TestScrollEffects(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1.0, effects.ScrollIndicatorOpacity(100))
	assert.Equal(t, 0.0, effects.ScrollIndicatorOpacity(101))

	px, ok := effects.ParallaxOffset(200, 800)
	assert.True(t, ok)
	assert.Equal(t, 100.0, px)
	_, ok = effects.ParallaxOffset(800, 800)
	assert.False(t, ok)

	assert.True(t, effects.Revealed(649, 800))
	assert.False(t, effects.Revealed(650, 800))

	assert.True(t, effects.SlideUp(0.1))
	assert.False(t, effects.SlideUp(0.05))
	assert.True(t, effects.CountersTriggered(0.5))
	assert.False(t, effects.CountersTriggered(0.49))

	assert.Equal(t, 420.0, effects.AnchorTarget(500))
	assert.Equal(t, 0.0, effects.AnchorTarget(30))

	assert.False(t, effects.ScrollToTopVisible(300))
	assert.True(t, effects.ScrollToTopVisible(301))
}

func TestMenu(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := effects.NewMenu()
	assert.False(t, m.View().Open)

	view, err := m.Handle(ctx, effects.MenuToggle)
	require.NoError(t, err)
	assert.True(t, view.Open)
	assert.Equal(t, "active", view.HamburgerClass())
	assert.Equal(t, "active", view.NavClass())
	assert.Equal(t, "menu-open", view.BodyClass())

	view, err = m.Handle(ctx, effects.MenuLinkClicked)
	require.NoError(t, err)
	assert.False(t, view.Open)
	assert.Empty(t, view.BodyClass())

	view, err = m.Handle(ctx, effects.MenuOutsideClick)
	require.NoError(t, err, "closing a closed menu is a no-op")
	assert.False(t, view.Open)

	_, _ = m.Handle(ctx, effects.MenuToggle)
	view, err = m.Handle(ctx, effects.MenuOutsideClick)
	require.NoError(t, err)
	assert.False(t, view.Open)

	view, err = m.Handle(ctx, statemachine.StringEvent("swipe"))
	require.ErrorIs(t, err, effects.ErrUnknownMenuEvent)
	assert.False(t, view.Open)
}

func TestRestoreMenu(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	tests := []struct {
		name  string
		from  effects.MenuView
		event statemachine.Event
		want  bool
	}{
		{name: "open then toggle", from: effects.MenuView{Open: true}, event: effects.MenuToggle, want: false},
		{name: "closed then toggle", from: effects.MenuView{}, event: effects.MenuToggle, want: true},
		{name: "open then link", from: effects.MenuView{Open: true}, event: effects.MenuLinkClicked, want: false},
		{name: "closed then outside click", from: effects.MenuView{}, event: effects.MenuOutsideClick, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := effects.RestoreMenu(tt.from)
			assert.Equal(t, tt.from, m.View())

			view, err := m.Handle(ctx, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.want, view.Open)
		})
	}
}

func TestPage(t *testing.T) {
	t.Parallel()

	t.Run("top of page", func(t *testing.T) {
		t.Parallel()

		st := effects.Page(effects.Viewport{Height: 800})
		assert.Equal(t, effects.HeaderState{}, st.Header)
		assert.InDelta(t, 1.0, st.IndicatorOpacity, 1e-9)
		assert.True(t, st.ParallaxOK)
		assert.Zero(t, st.Parallax)
		assert.False(t, st.ScrollToTop)
		assert.False(t, st.StartCounters)
		assert.Empty(t, st.Revealed)
		assert.Empty(t, st.SlidUp)
	})

	t.Run("scrolled down", func(t *testing.T) {
		t.Parallel()

		st := effects.Page(effects.Viewport{
			ScrollTop:     400,
			LastScrollTop: 300,
			Height:        800,
			Tops:          map[string]float64{"services": 200, "about": 700, "contact": 660},
			Ratios:        map[string]float64{"card-b": 0.1, "card-a": 0.4, "card-c": 0.05},
			StatsRatio:    0.5,
		})
		assert.Equal(t, effects.HeaderState{Scrolled: true, Hidden: true, LastScrollTop: 400}, st.Header)
		assert.Zero(t, st.IndicatorOpacity)
		assert.True(t, st.ParallaxOK)
		assert.InDelta(t, 200.0, st.Parallax, 1e-9)
		assert.True(t, st.ScrollToTop)
		assert.True(t, st.StartCounters)
		assert.Equal(t, []string{"services"}, st.Revealed, "660 is below 800-150")
		assert.Equal(t, []string{"card-a", "card-b"}, st.SlidUp)
	})

	t.Run("hero out of view keeps parallax", func(t *testing.T) {
		t.Parallel()

		st := effects.Page(effects.Viewport{ScrollTop: 900, LastScrollTop: 950, Height: 800})
		assert.False(t, st.ParallaxOK)
		assert.False(t, st.Header.Hidden, "scrolling up shows the header")
	})
}

func TestCounterFrames(t *testing.T) {
	t.Parallel()

	for _, target := range []int{1, 7, 100, 1500, 12} {
		frames := effects.CounterFrames(target)
		require.NotEmpty(t, frames)
		assert.Equal(t, target, frames[len(frames)-1], "target %d", target)
		assert.LessOrEqual(t, len(frames), effects.CounterSteps+2)
		for i := 1; i < len(frames); i++ {
			assert.GreaterOrEqual(t, frames[i], frames[i-1], "target %d frame %d", target, i)
			assert.LessOrEqual(t, frames[i], target)
		}
	}

	frames := effects.CounterFrames(1500)
	assert.Equal(t, 15, frames[0])
	assert.Equal(t, 30, frames[1])

	assert.Equal(t, []int{0}, effects.CounterFrames(0))
	assert.Equal(t, []int{-3}, effects.CounterFrames(-3))
}

func TestCounterGroup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	g := effects.NewCounterGroup(
		effects.Counter{Key: "clients", Target: 1500},
		effects.Counter{Key: "years", Target: 0},
	)
	assert.Equal(t, effects.CountersNotStarted, g.State())

	p, err := g.Start(ctx)
	require.NoError(t, err)
	assert.Equal(t, effects.CountersRunning, g.State())

	_, err = g.Start(ctx)
	require.ErrorIs(t, err, effects.ErrAlreadyAnimated)

	var last map[string]int
	n := 0
	for {
		values, ok := p.Next(ctx)
		if !ok {
			break
		}
		last = values
		n++
	}
	assert.Equal(t, p.Len(), n)
	assert.Equal(t, map[string]int{"clients": 1500, "years": 0}, last)
	assert.Equal(t, effects.CountersDone, g.State())

	_, err = g.Start(ctx)
	require.ErrorIs(t, err, effects.ErrAlreadyAnimated)
}

func TestLazyImage(t *testing.T) {
	t.Parallel()

	img := effects.LazyImage{Src: "placeholder.svg", DataSrc: "salon.jpg", Lazy: true}
	assert.False(t, img.Loaded())

	loaded := img.Load()
	assert.Equal(t, "salon.jpg", loaded.Src)
	assert.False(t, loaded.Lazy)
	assert.True(t, loaded.Loaded())

	plain := effects.LazyImage{Src: "logo.svg"}
	assert.Equal(t, plain, plain.Load())
}
