package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStatsStoreRecord(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStatsStore(client, WithStatsPrefix("rl:"), WithStatsTTL(time.Hour))
	ctx := context.Background()
	at := time.Date(2025, 11, 14, 21, 30, 0, 0, time.UTC)

	require.NoError(t, store.Record(ctx, StatsEvent{Key: "a", Allowed: true, Reason: ReasonAllowed, Method: "GET", Path: "/companies/joined/last-month", At: at}))
	require.NoError(t, store.Record(ctx, StatsEvent{Key: "a", Allowed: false, Reason: ReasonLimitExceeded, Method: "GET", Path: "/companies/joined/last-month", At: at}))
	require.NoError(t, store.Record(ctx, StatsEvent{Key: "a", Allowed: false, Reason: ReasonBlocked, Method: "GET", Path: "/companies/joined/last-month", At: at}))

	assert.Equal(t, "1", mr.HGet("rl:total", "allowed"))
	assert.Equal(t, "2", mr.HGet("rl:total", "denied"))
	assert.Equal(t, "2", mr.HGet("rl:minute:202511142130", "denied"))
	assert.Equal(t, "1", mr.HGet("rl:route", "GET /companies/joined/last-month:allowed"))
	assert.Equal(t, "1", mr.HGet("rl:reason", "blocked"))
	assert.Equal(t, time.Hour, mr.TTL("rl:minute:202511142130"))
}

func TestRedisStatsStoreNilIsNoop(t *testing.T) {
	var store *RedisStatsStore
	assert.NoError(t, store.Record(context.Background(), StatsEvent{}))
}

func TestRedisStatsStoreReportsConnectionErrors(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer client.Close()
	mr.Close()

	err = NewRedisStatsStore(client).Record(context.Background(), StatsEvent{Allowed: true})
	assert.Error(t, err)
}

func TestMultiStatsJoinsErrors(t *testing.T) {
	boom := errors.New("boom")
	seen := 0
	multi := MultiStats{
		StatsFunc(func(context.Context, StatsEvent) error { seen++; return nil }),
		nil,
		StatsFunc(func(context.Context, StatsEvent) error { seen++; return boom }),
	}
	err := multi.Record(context.Background(), StatsEvent{})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, seen)
}
