package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	s := NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestRedisStore_GetSet(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t)

	require.NoError(t, s.Ping(ctx))

	_, found, err := s.Get(ctx, "exchangeRateHistory")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, s.Set(ctx, "exchangeRateHistory", `{"USD":{}}`))

	value, found, err := s.Get(ctx, "exchangeRateHistory")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"USD":{}}`, value)

	// Keys never expire.
	assert.Equal(t, 0, int(mr.TTL("exchangeRateHistory")))
}

func TestRedisStore_ServerDown(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestRedisStore(t)
	mr.Close()

	_, _, err := s.Get(ctx, "currencies")
	assert.Error(t, err)
	assert.Error(t, s.Set(ctx, "currencies", "[]"))
}
