package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts attempts per key in fixed windows stored in Redis. A nil
// client disables limiting.
type Limiter struct {
	rdb    *redis.Client
	max    int64
	window time.Duration
}

func NewLimiter(rdb *redis.Client, max int, window time.Duration) *Limiter {
	return &Limiter{rdb: rdb, max: int64(max), window: window}
}

func key(action, subject string) string {
	return fmt.Sprintf("rate_limit:%s:%s", action, subject)
}

// Allowed reports whether subject still has attempts left for action
// without consuming one.
func (l *Limiter) Allowed(ctx context.Context, action, subject string) (bool, error) {
	if l == nil || l.rdb == nil || l.max <= 0 {
		return true, nil
	}

	count, err := l.rdb.Get(ctx, key(action, subject)).Int64()
	if err == redis.Nil {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read rate limit in redis: %w", err)
	}

	return count < l.max, nil
}

// Hit records one attempt. The window starts with the first attempt.
func (l *Limiter) Hit(ctx context.Context, action, subject string) error {
	if l == nil || l.rdb == nil || l.max <= 0 {
		return nil
	}

	k := key(action, subject)
	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return fmt.Errorf("failed to increment rate limit in redis: %w", err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return fmt.Errorf("failed to set rate limit ttl in redis: %w", err)
		}
	}

	return nil
}

// Reset clears the counter, e.g. after a successful login.
func (l *Limiter) Reset(ctx context.Context, action, subject string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, key(action, subject)).Err()
}
