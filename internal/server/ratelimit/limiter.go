// Package ratelimit throttles failed logins per login id using fixed-window
// counters in Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrRateLimited      = errors.New("too many failed logins")
	ErrRedisUnavailable = errors.New("redis unavailable")
)

const keyPrefix = "authgate:failed-login:"

type Config struct {
	MaxFailedLogins int
	Window          time.Duration
}

// Limiter counts failed logins per login id. A login id is blocked once it
// has MaxFailedLogins or more failures inside the current window.
type Limiter struct {
	redis  redis.UniversalClient
	config Config
}

func New(redisClient redis.UniversalClient, cfg Config) *Limiter {
	return &Limiter{redis: redisClient, config: cfg}
}

// Check returns ErrRateLimited when loginID is over budget and
// ErrRedisUnavailable when the counter cannot be read.
func (l *Limiter) Check(ctx context.Context, loginID string) error {
	count, err := l.redis.Get(ctx, key(loginID)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	if count >= int64(l.config.MaxFailedLogins) {
		return ErrRateLimited
	}
	return nil
}

// RecordFailure increments the counter for loginID. The window starts with
// the first failure; the increment and the expiry go out in one MULTI so a
// counter never outlives its window.
func (l *Limiter) RecordFailure(ctx context.Context, loginID string) error {
	k := key(loginID)

	_, err := l.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, l.config.Window)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Reset clears the counter after a successful login.
func (l *Limiter) Reset(ctx context.Context, loginID string) error {
	if err := l.redis.Del(ctx, key(loginID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

func key(loginID string) string {
	return keyPrefix + loginID
}
