package store

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func TestMemoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	_, err := s.Get(ctx, KeyAccounts)
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, KeyAccounts, []byte(`[]`)))
	value, err := s.Get(ctx, KeyAccounts)
	require.NoError(t, err)
	require.Equal(t, []byte(`[]`), value)

	require.NoError(t, s.Delete(ctx, KeyAccounts))
	_, err = s.Get(ctx, KeyAccounts)
	require.ErrorIs(t, err, ErrKeyNotFound)

	// Deleting an absent key is fine.
	require.NoError(t, s.Delete(ctx, KeyProducts))
}

func TestMemoryCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	written := []byte(`{"a":1}`)
	require.NoError(t, s.Set(ctx, KeyLogs, written))
	written[0] = 'X'

	value, err := s.Get(ctx, KeyLogs)
	require.NoError(t, err)
	require.Equal(t, []byte(`{"a":1}`), value)

	value[0] = 'X'
	again, err := s.Get(ctx, KeyLogs)
	require.NoError(t, err)
	require.Equal(t, []byte(`{"a":1}`), again)
}

func TestRedisRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisWithClient(client, "standkas")

	_, err := s.Get(ctx, KeyProducts)
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, s.Set(ctx, KeyProducts, []byte(`[{"name":"Cola"}]`)))
	value, err := s.Get(ctx, KeyProducts)
	require.NoError(t, err)
	require.Equal(t, []byte(`[{"name":"Cola"}]`), value)

	// Keys carry the configured prefix.
	stored, err := mr.Get("standkas:" + KeyProducts)
	require.NoError(t, err)
	require.Equal(t, `[{"name":"Cola"}]`, stored)

	require.NoError(t, s.Delete(ctx, KeyProducts))
	_, err = s.Get(ctx, KeyProducts)
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.NoError(t, s.Delete(ctx, KeyProducts))

	require.NoError(t, s.Close())
}

func TestRedisNoPrefix(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	s := NewRedisWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "")

	require.NoError(t, s.Set(ctx, KeyAdminLock, []byte(`{}`)))
	stored, err := mr.Get(KeyAdminLock)
	require.NoError(t, err)
	require.Equal(t, `{}`, stored)
}
