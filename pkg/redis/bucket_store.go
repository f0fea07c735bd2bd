package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/storefront/pkg/ratelimit"
)

const (
	fieldTokens = "tokens"
	fieldLast   = "last"
)

// BucketStore keeps rate limit buckets in Redis hashes. Updates use
// WATCH/MULTI so concurrent instances never lose a token.
type BucketStore struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	retries int
}

// BucketStoreOption configures a BucketStore.
type BucketStoreOption func(*BucketStore)

// WithKeyPrefix namespaces bucket keys (default "ratelimit:").
func WithKeyPrefix(prefix string) BucketStoreOption {
	return func(s *BucketStore) { s.prefix = prefix }
}

// WithBucketTTL sets how long an untouched bucket lives (default 10m).
func WithBucketTTL(ttl time.Duration) BucketStoreOption {
	return func(s *BucketStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithMaxRetries bounds optimistic transaction retries (default 5).
func WithMaxRetries(n int) BucketStoreOption {
	return func(s *BucketStore) {
		if n > 0 {
			s.retries = n
		}
	}
}

// NewBucketStore returns a ratelimit.Store backed by client.
func NewBucketStore(client redis.UniversalClient, opts ...BucketStoreOption) *BucketStore {
	s := &BucketStore{
		client:  client,
		prefix:  "ratelimit:",
		ttl:     10 * time.Minute,
		retries: 5,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ratelimit.Store = (*BucketStore)(nil)

func (s *BucketStore) Update(ctx context.Context, key string, fn func(ratelimit.Bucket, bool) ratelimit.Bucket) error {
	key = s.prefix + key

	txf := func(tx *redis.Tx) error {
		vals, err := tx.HMGet(ctx, key, fieldTokens, fieldLast).Result()
		if err != nil {
			return err
		}
		current, ok, err := decodeBucket(vals)
		if err != nil {
			return err
		}

		next := fn(current, ok)
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.HSet(ctx, key, encodeBucket(next)...)
			p.Expire(ctx, key, s.ttl)
			return nil
		})
		return err
	}

	for range s.retries {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrUpdateConflict
}

func (s *BucketStore) Delete(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.prefix+key).Err()
}

func encodeBucket(b ratelimit.Bucket) []any {
	return []any{
		fieldTokens, strconv.FormatFloat(b.Tokens, 'f', -1, 64),
		fieldLast, strconv.FormatInt(b.Last.UnixNano(), 10),
	}
}

// decodeBucket reads an HMGET reply. A missing hash reports ok=false.
func decodeBucket(vals []any) (ratelimit.Bucket, bool, error) {
	if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
		return ratelimit.Bucket{}, false, nil
	}

	tokensRaw, ok1 := vals[0].(string)
	lastRaw, ok2 := vals[1].(string)
	if !ok1 || !ok2 {
		return ratelimit.Bucket{}, false, ErrCorruptBucket
	}

	tokens, err := strconv.ParseFloat(tokensRaw, 64)
	if err != nil {
		return ratelimit.Bucket{}, false, fmt.Errorf("%w: tokens: %v", ErrCorruptBucket, err)
	}
	last, err := strconv.ParseInt(lastRaw, 10, 64)
	if err != nil {
		return ratelimit.Bucket{}, false, fmt.Errorf("%w: last: %v", ErrCorruptBucket, err)
	}
	return ratelimit.Bucket{Tokens: tokens, Last: time.Unix(0, last)}, true, nil
}
