package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and a client pointed at it.
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		client.Close()
	})

	return client, mr
}

func TestCartStore_AddIsAdditive(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "p1", 3))
	require.NoError(t, store.Add(ctx, "s1", "p1", 2))

	entries, err := store.Entries(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, int64(5), entries["p1"])
}

func TestCartStore_AddSetsTTL(t *testing.T) {
	client, mr := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "p1", 1))

	ttl := mr.TTL(cartKey("s1"))
	assert.True(t, ttl > 0, "cart key should expire with the session")
	assert.True(t, ttl <= time.Hour)
}

func TestCartStore_EntriesUnknownSession(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)

	entries, err := store.Entries(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCartStore_RemoveLeavesOtherEntries(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "p1", 2))
	require.NoError(t, store.Add(ctx, "s1", "p2", 4))

	require.NoError(t, store.Remove(ctx, "s1", "p1"))

	entries, err := store.Entries(ctx, "s1")
	require.NoError(t, err)
	assert.NotContains(t, entries, "p1")
	assert.Equal(t, int64(4), entries["p2"])
}

func TestCartStore_RemoveUnknownSessionIsNoop(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)

	assert.NoError(t, store.Remove(context.Background(), "nobody", "p1"))
}

func TestCartStore_Clear(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "p1", 2))
	require.NoError(t, store.Add(ctx, "s1", "p2", 1))

	require.NoError(t, store.Clear(ctx, "s1"))

	entries, err := store.Entries(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCartStore_SessionsAreIsolated(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisCartStore(client, time.Hour)
	ctx := context.Background()

	require.NoError(t, store.Add(ctx, "s1", "p1", 2))
	require.NoError(t, store.Add(ctx, "s2", "p1", 7))

	require.NoError(t, store.Clear(ctx, "s1"))

	entries, err := store.Entries(ctx, "s2")
	require.NoError(t, err)
	assert.Equal(t, int64(7), entries["p1"])
}

func TestCartKey_Format(t *testing.T) {
	assert.Equal(t, "cart:abc123", cartKey("abc123"))
}
