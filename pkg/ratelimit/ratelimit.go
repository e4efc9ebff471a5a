package ratelimit

import (
	"context"
	"fmt"
	"time"

	"anoa.com/edapp/pkg/apperror"
	"github.com/redis/go-redis/v9"
)

// Limiter keeps per (action, subject) locks and attempt counters in Redis.
// A Limiter over a nil client allows everything.
type Limiter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

func key(action, subject string) string {
	return fmt.Sprintf("rate_limit:%s:%s", action, subject)
}

// CheckAndSet takes a lock for (action, subject) that lives for ttl. It
// reports false when the lock is already held.
func (l *Limiter) CheckAndSet(ctx context.Context, action, subject string, ttl time.Duration) (bool, error) {
	if l.rdb == nil || ttl <= 0 {
		return true, nil
	}

	wasSet, err := l.rdb.SetNX(ctx, key(action, subject), "locked", ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

// Hit counts one attempt in a window that starts at the first attempt and
// reports whether the count is still within limit.
func (l *Limiter) Hit(ctx context.Context, action, subject string, limit int64, window time.Duration) (bool, error) {
	if l.rdb == nil || limit <= 0 || window <= 0 {
		return true, nil
	}

	k := key(action, subject)
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("failed to count attempt in redis: %w", err)
	}

	return incr.Val() <= limit, nil
}

// TTL is the time left on the lock or counter. Zero when none is held.
func (l *Limiter) TTL(ctx context.Context, action, subject string) (time.Duration, error) {
	if l.rdb == nil {
		return 0, nil
	}
	d, err := l.rdb.TTL(ctx, key(action, subject)).Result()
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, nil
	}
	return d, nil
}

func (l *Limiter) Clear(ctx context.Context, action, subject string) error {
	if l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, key(action, subject)).Err()
}

// ExceededError is returned when a limit is hit. It matches
// apperror.ErrRateLimitExceeded.
type ExceededError struct {
	Reason string
	Wait   time.Duration
}

func Exceeded(reason string, wait time.Duration) error {
	return &ExceededError{Reason: reason, Wait: wait}
}

func (e *ExceededError) Error() string {
	return fmt.Sprintf("%s: %s", apperror.ErrRateLimitExceeded, e.Reason)
}

func (e *ExceededError) Unwrap() error {
	return apperror.ErrRateLimitExceeded
}

func (e *ExceededError) RetryAfter() time.Duration {
	return e.Wait
}
