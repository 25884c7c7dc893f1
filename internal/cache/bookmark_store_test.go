package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookmarkStore_ToggleAddsThenRemoves(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisBookmarkStore(client)
	ctx := context.Background()

	added, err := store.Toggle(ctx, "s1", "blue-parrot")
	require.NoError(t, err)
	assert.True(t, added)

	slugs, err := store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"blue-parrot"}, slugs)

	added, err = store.Toggle(ctx, "s1", "blue-parrot")
	require.NoError(t, err)
	assert.False(t, added)

	slugs, err = store.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, slugs)
}

func TestBookmarkStore_ListUnknownSession(t *testing.T) {
	client, _ := setupTestRedis(t)
	store := NewRedisBookmarkStore(client)

	slugs, err := store.List(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Empty(t, slugs)
}
