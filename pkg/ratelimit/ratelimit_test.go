package ratelimit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/storefront/pkg/ratelimit"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newLimiter(t *testing.T, rate int, interval time.Duration, opts ...ratelimit.Option) (*ratelimit.TokenBucket, *fakeClock) {
	t.Helper()

	clock := &fakeClock{now: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)}
	store := ratelimit.NewMemoryStore(time.Hour)
	t.Cleanup(func() { _ = store.Close() })

	tb, err := ratelimit.NewTokenBucket(store, rate, interval, append(opts, ratelimit.WithClock(clock.Now))...)
	require.NoError(t, err)
	return tb, clock
}

func TestNewTokenBucket_Validation(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore(time.Hour)
	defer store.Close()

	_, err := ratelimit.NewTokenBucket(nil, 1, time.Second)
	assert.ErrorIs(t, err, ratelimit.ErrStoreRequired)

	_, err = ratelimit.NewTokenBucket(store, 0, time.Second)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidLimit)

	_, err = ratelimit.NewTokenBucket(store, 1, 0)
	assert.ErrorIs(t, err, ratelimit.ErrInvalidInterval)
}

func TestTokenBucket_Allow(t *testing.T) {
	t.Parallel()

	t.Run("exhausts then refills", func(t *testing.T) {
		t.Parallel()

		tb, clock := newLimiter(t, 3, time.Minute)
		ctx := context.Background()

		for i := range 3 {
			res, err := tb.Allow(ctx, "k")
			require.NoError(t, err)
			assert.True(t, res.Allowed, "request %d", i)
			assert.Equal(t, 2-i, res.Remaining)
			assert.Equal(t, 3, res.Limit)
		}

		res, err := tb.Allow(ctx, "k")
		require.NoError(t, err)
		assert.False(t, res.Allowed)
		assert.Equal(t, 20*time.Second, res.RetryAfter)

		clock.Advance(20 * time.Second)
		res, err = tb.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, res.Allowed)
	})

	t.Run("keys are independent", func(t *testing.T) {
		t.Parallel()

		tb, _ := newLimiter(t, 1, time.Minute)
		ctx := context.Background()

		res, _ := tb.Allow(ctx, "a")
		assert.True(t, res.Allowed)
		res, _ = tb.Allow(ctx, "a")
		assert.False(t, res.Allowed)
		res, _ = tb.Allow(ctx, "b")
		assert.True(t, res.Allowed)
	})

	t.Run("burst above rate", func(t *testing.T) {
		t.Parallel()

		tb, _ := newLimiter(t, 1, time.Minute, ratelimit.WithBurst(2))
		ctx := context.Background()

		for range 2 {
			res, _ := tb.Allow(ctx, "k")
			assert.True(t, res.Allowed)
		}
		res, _ := tb.Allow(ctx, "k")
		assert.False(t, res.Allowed)
	})

	t.Run("refill is capped at burst", func(t *testing.T) {
		t.Parallel()

		tb, clock := newLimiter(t, 2, time.Minute)
		ctx := context.Background()

		_, _ = tb.Allow(ctx, "k")
		clock.Advance(time.Hour)
		res, _ := tb.Allow(ctx, "k")
		assert.Equal(t, 1, res.Remaining)
	})

	t.Run("empty key", func(t *testing.T) {
		t.Parallel()

		tb, _ := newLimiter(t, 1, time.Minute)
		_, err := tb.Allow(context.Background(), "")
		assert.ErrorIs(t, err, ratelimit.ErrKeyRequired)
	})

	t.Run("reset", func(t *testing.T) {
		t.Parallel()

		tb, _ := newLimiter(t, 1, time.Minute)
		ctx := context.Background()

		_, _ = tb.Allow(ctx, "k")
		require.NoError(t, tb.Reset(ctx, "k"))
		res, _ := tb.Allow(ctx, "k")
		assert.True(t, res.Allowed)
	})
}

func TestMemoryStore_Sweep(t *testing.T) {
	t.Parallel()

	store := ratelimit.NewMemoryStore(time.Hour, ratelimit.WithIdleTTL(time.Millisecond))
	defer store.Close()

	ctx := context.Background()
	require.NoError(t, store.Update(ctx, "old", func(ratelimit.Bucket, bool) ratelimit.Bucket {
		return ratelimit.Bucket{Tokens: 1, Last: time.Now().Add(-time.Minute)}
	}))
	require.NoError(t, store.Update(ctx, "fresh", func(ratelimit.Bucket, bool) ratelimit.Bucket {
		return ratelimit.Bucket{Tokens: 1, Last: time.Now().Add(time.Minute)}
	}))

	store.Sweep()
	assert.Equal(t, 1, store.Len())
	assert.NoError(t, store.Close())
}

type errLimiter struct{}

func (errLimiter) Allow(context.Context, string) (ratelimit.Result, error) {
	return ratelimit.Result{}, errors.New("store down")
}

func TestMiddleware(t *testing.T) {
	t.Parallel()

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	fixedKey := func(*http.Request) string { return "client" }

	t.Run("sets headers and rejects", func(t *testing.T) {
		t.Parallel()

		tb, _ := newLimiter(t, 1, time.Minute)
		h := ratelimit.Middleware(tb, fixedKey)(ok)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("X-RateLimit-Limit"))
		assert.Equal(t, "0", rec.Header().Get("X-RateLimit-Remaining"))

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get("Retry-After"))
	})

	t.Run("custom limited response", func(t *testing.T) {
		t.Parallel()

		tb, _ := newLimiter(t, 1, time.Minute)
		var called bool
		h := ratelimit.Middleware(tb, fixedKey, ratelimit.WithOnLimited(func(w http.ResponseWriter, r *http.Request, res ratelimit.Result) {
			called = true
			assert.False(t, res.Allowed)
			w.WriteHeader(http.StatusTeapot)
		}))(ok)

		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", nil))
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.True(t, called)
		assert.Equal(t, http.StatusTeapot, rec.Code)
	})

	t.Run("fails open", func(t *testing.T) {
		t.Parallel()

		var seen error
		h := ratelimit.Middleware(errLimiter{}, fixedKey, ratelimit.WithOnError(func(_ *http.Request, err error) {
			seen = err
		}))(ok)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Error(t, seen)
	})

	t.Run("empty key skips limiting", func(t *testing.T) {
		t.Parallel()

		h := ratelimit.Middleware(errLimiter{}, func(*http.Request) string { return "" })(ok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Empty(t, rec.Header().Get("X-RateLimit-Limit"))
	})
}

func TestComposite(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodPost, "/booking", nil)
	req.RemoteAddr = "203.0.113.9:1234"

	key := ratelimit.Composite(ratelimit.ByClientIP(), func(*http.Request) string { return "" }, ratelimit.ByRoute())(req)
	assert.Equal(t, "203.0.113.9:POST /booking", key)

	long := ratelimit.Composite(func(*http.Request) string { return strings.Repeat("x", 100) })(req)
	assert.Len(t, long, 32)
}
