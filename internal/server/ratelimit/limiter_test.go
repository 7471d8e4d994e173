package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimiter(t *testing.T, max int, window time.Duration) (*Limiter, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, Config{MaxFailedLogins: max, Window: window}), mr
}

func TestLimiter_BlocksAfterMaxFailures(t *testing.T) {
	l, _ := newLimiter(t, 3, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, l.Check(ctx, "alice"))
		require.NoError(t, l.RecordFailure(ctx, "alice"))
	}

	assert.ErrorIs(t, l.Check(ctx, "alice"), ErrRateLimited)
	assert.NoError(t, l.Check(ctx, "bob"), "other login ids are unaffected")
}

func TestLimiter_WindowExpires(t *testing.T) {
	l, mr := newLimiter(t, 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.RecordFailure(ctx, "alice"))
	require.ErrorIs(t, l.Check(ctx, "alice"), ErrRateLimited)

	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"alice"))

	mr.FastForward(time.Minute + time.Second)
	assert.NoError(t, l.Check(ctx, "alice"))
}

func TestLimiter_TTLSetOnFirstHitOnly(t *testing.T) {
	l, mr := newLimiter(t, 10, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.RecordFailure(ctx, "alice"))
	mr.FastForward(30 * time.Second)
	require.NoError(t, l.RecordFailure(ctx, "alice"))

	assert.Equal(t, 30*time.Second, mr.TTL(keyPrefix+"alice"))
}

func TestLimiter_Reset(t *testing.T) {
	l, mr := newLimiter(t, 1, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.RecordFailure(ctx, "alice"))
	require.NoError(t, l.Reset(ctx, "alice"))

	assert.False(t, mr.Exists(keyPrefix+"alice"))
	assert.NoError(t, l.Check(ctx, "alice"))
}

func TestLimiter_RedisDown(t *testing.T) {
	l, mr := newLimiter(t, 1, time.Minute)
	ctx := context.Background()
	mr.Close()

	assert.ErrorIs(t, l.Check(ctx, "alice"), ErrRedisUnavailable)
	assert.ErrorIs(t, l.RecordFailure(ctx, "alice"), ErrRedisUnavailable)
	assert.ErrorIs(t, l.Reset(ctx, "alice"), ErrRedisUnavailable)
}

func TestLimiter_CounterWithoutTTLGetsWindow(t *testing.T) {
	l, mr := newLimiter(t, 3, time.Minute)
	ctx := context.Background()

	// a counter left behind without expiry must not lock the login id forever
	require.NoError(t, mr.Set(keyPrefix+"alice", "5"))
	require.Equal(t, time.Duration(0), mr.TTL(keyPrefix+"alice"))

	require.NoError(t, l.RecordFailure(ctx, "alice"))
	assert.Equal(t, time.Minute, mr.TTL(keyPrefix+"alice"))
	assert.ErrorIs(t, l.Check(ctx, "alice"), ErrRateLimited)

	mr.FastForward(time.Minute + time.Second)
	assert.NoError(t, l.Check(ctx, "alice"))
}

func TestLimiter_BlocksAtExactlyMax(t *testing.T) {
	l, _ := newLimiter(t, 2, time.Minute)
	ctx := context.Background()

	require.NoError(t, l.RecordFailure(ctx, "alice"))
	assert.NoError(t, l.Check(ctx, "alice"), "one failure is under the limit")

	require.NoError(t, l.RecordFailure(ctx, "alice"))
	assert.ErrorIs(t, l.Check(ctx, "alice"), ErrRateLimited, "MaxFailedLogins failures block")
}
