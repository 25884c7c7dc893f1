package service

import (
	"context"
	"sync"
	"testing"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBookmarkStore struct {
	mu   sync.Mutex
	sets map[string]map[string]bool
}

func newMockBookmarkStore() *mockBookmarkStore {
	return &mockBookmarkStore{sets: make(map[string]map[string]bool)}
}

func (m *mockBookmarkStore) Toggle(_ context.Context, sessionKey, slug string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sets[sessionKey] == nil {
		m.sets[sessionKey] = make(map[string]bool)
	}
	if m.sets[sessionKey][slug] {
		delete(m.sets[sessionKey], slug)
		return false, nil
	}
	m.sets[sessionKey][slug] = true
	return true, nil
}

func (m *mockBookmarkStore) List(_ context.Context, sessionKey string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var slugs []string
	for slug := range m.sets[sessionKey] {
		slugs = append(slugs, slug)
	}
	return slugs, nil
}

func TestBookmarkToggle_UnknownProductRejected(t *testing.T) {
	store := newMockBookmarkStore()
	sut := NewBookmarkService(store, &mockProductRepo{products: testProducts()}, discardLogger())

	_, err := sut.Toggle(context.Background(), "s1", "dodo")
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
	assert.Empty(t, store.sets["s1"])
}

func TestBookmarkToggleAndList(t *testing.T) {
	store := newMockBookmarkStore()
	sut := NewBookmarkService(store, &mockProductRepo{products: testProducts()}, discardLogger())
	ctx := context.Background()

	added, err := sut.Toggle(ctx, "s1", "blue-parrot")
	require.NoError(t, err)
	assert.True(t, added)

	products, err := sut.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "blue-parrot", products[0].Slug)

	added, err = sut.Toggle(ctx, "s1", "blue-parrot")
	require.NoError(t, err)
	assert.False(t, added)

	products, err = sut.List(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, products)
}
