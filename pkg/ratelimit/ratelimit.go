// Package ratelimit throttles requests per key with a token bucket.
//
// A bucket holds up to Burst tokens and regains Rate tokens every Interval.
// Each allowed request takes one token. Buckets live in a Store; the
// in-memory store suits a single instance.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

var (
	ErrInvalidLimit    = errors.New("invalid limit")
	ErrInvalidInterval = errors.New("invalid interval")
	ErrKeyRequired     = errors.New("key is required")
	ErrStoreRequired   = errors.New("store is required")
)

// Result describes one rate limit decision.
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
	// RetryAfter is the wait until the next token, 0 when allowed.
	RetryAfter time.Duration
}

// Limiter decides whether a request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Result, error)
}

// Bucket is the persisted state of one key.
type Bucket struct {
	Tokens float64
	Last   time.Time
}

// Store loads and saves buckets. Update must apply fn atomically per key;
// fn receives the current bucket (zero value when absent) and returns the
// new one.
type Store interface {
	Update(ctx context.Context, key string, fn func(Bucket, bool) Bucket) error
	Delete(ctx context.Context, key string) error
}

// TokenBucket implements Limiter.
type TokenBucket struct {
	store    Store
	rate     int
	interval time.Duration
	burst    int
	now      func() time.Time
}

// Option configures a TokenBucket.
type Option func(*TokenBucket)

// WithBurst sets the bucket capacity. Values below the rate are raised to it.
func WithBurst(burst int) Option {
	return func(tb *TokenBucket) { tb.burst = burst }
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(tb *TokenBucket) {
		if now != nil {
			tb.now = now
		}
	}
}

// NewTokenBucket creates a limiter refilling rate tokens per interval.
func NewTokenBucket(store Store, rate int, interval time.Duration, opts ...Option) (*TokenBucket, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if rate <= 0 {
		return nil, ErrInvalidLimit
	}
	if interval <= 0 {
		return nil, ErrInvalidInterval
	}

	tb := &TokenBucket{store: store, rate: rate, interval: interval, burst: rate, now: time.Now}
	for _, opt := range opts {
		opt(tb)
	}
	tb.burst = max(tb.burst, tb.rate)
	return tb, nil
}

// Allow takes one token for key if available.
func (tb *TokenBucket) Allow(ctx context.Context, key string) (Result, error) {
	if key == "" {
		return Result{}, ErrKeyRequired
	}

	now := tb.now()
	perToken := tb.interval / time.Duration(tb.rate)
	var res Result

	// fn may run more than once when a store retries a conflicting update.
	err := tb.store.Update(ctx, key, func(b Bucket, ok bool) Bucket {
		res = Result{Limit: tb.burst}
		if !ok {
			b = Bucket{Tokens: float64(tb.burst), Last: now}
		}

		if elapsed := now.Sub(b.Last); elapsed > 0 {
			b.Tokens = min(float64(tb.burst), b.Tokens+float64(tb.rate)*elapsed.Seconds()/tb.interval.Seconds())
			b.Last = now
		}

		if b.Tokens >= 1 {
			b.Tokens--
			res.Allowed = true
		}

		res.Remaining = int(b.Tokens)
		res.ResetAt = now
		if b.Tokens < 1 {
			wait := time.Duration((1 - b.Tokens) * float64(perToken))
			res.ResetAt = now.Add(wait)
			if !res.Allowed {
				res.RetryAfter = wait
			}
		}
		return b
	})
	if err != nil {
		return Result{}, err
	}
	return res, nil
}

// Reset forgets the bucket for key.
func (tb *TokenBucket) Reset(ctx context.Context, key string) error {
	if key == "" {
		return ErrKeyRequired
	}
	return tb.store.Delete(ctx, key)
}
