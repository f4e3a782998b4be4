package cart

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	raw := []byte(`{"items":[],"total_item_count":0,"total_amount":"0","is_visible":true}`)
	require.NoError(t, store.Save(ctx, "user-1", raw))

	loaded, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, raw, loaded)
}

func TestRedisStore_LoadMissing(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	_, err := store.Load(ctx, "user-never-seen")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	require.NoError(t, store.Save(ctx, "user-1", []byte(`{}`)))
	require.NoError(t, store.Delete(ctx, "user-1"))

	_, err := store.Load(ctx, "user-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_KeysAreScopedPerUser(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	require.NoError(t, store.Save(ctx, "user-1", []byte(`{"total_item_count":1}`)))
	require.NoError(t, store.Save(ctx, "user-2", []byte(`{"total_item_count":2}`)))

	one, err := store.Load(ctx, "user-1")
	require.NoError(t, err)
	two, err := store.Load(ctx, "user-2")
	require.NoError(t, err)
	assert.NotEqual(t, one, two)
}
