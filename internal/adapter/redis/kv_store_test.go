package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*KVStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewKVStore(client, "creativesync:"), srv
}

func TestKVStoreRoundTrip(t *testing.T) {
	store, srv := newTestStore(t)
	ctx := context.Background()

	_, found, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Set(ctx, "theme", "dark"))
	value, found, err := store.Get(ctx, "theme")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "dark", value)

	raw, err := srv.Get("creativesync:theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", raw)
}

func TestKVStoreOverwrite(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "campaigns", `[{"id":1}]`))
	require.NoError(t, store.Set(ctx, "campaigns", `[]`))

	value, _, err := store.Get(ctx, "campaigns")
	require.NoError(t, err)
	assert.Equal(t, `[]`, value)
}

func TestKVStoreServerDown(t *testing.T) {
	store, srv := newTestStore(t)
	srv.Close()

	assert.Error(t, store.Set(context.Background(), "theme", "light"))
	_, _, err := store.Get(context.Background(), "theme")
	assert.Error(t, err)
}
