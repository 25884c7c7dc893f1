package tasks

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/domain"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reaperRepoStub struct {
	mu      sync.Mutex
	cutoffs []time.Time
	sweeps  chan struct{}
}

func (s *reaperRepoStub) RemoveStaleNewTags(_ context.Context, olderThan time.Time) (int64, error) {
	s.mu.Lock()
	s.cutoffs = append(s.cutoffs, olderThan)
	s.mu.Unlock()
	select {
	case s.sweeps <- struct{}{}:
	default:
	}
	return 1, nil
}

func (s *reaperRepoStub) Create(context.Context, *domain.Product) (string, error) {
	return "", nil
}
func (s *reaperRepoStub) BySlug(context.Context, string) (*domain.Product, error) {
	return nil, nil
}
func (s *reaperRepoStub) BySlugs(context.Context, []string) ([]domain.Product, error) {
	return nil, nil
}
func (s *reaperRepoStub) ByIDs(context.Context, []string) ([]domain.Product, error) {
	return nil, nil
}
func (s *reaperRepoStub) List(context.Context, domain.ProductFilter) ([]domain.Product, error) {
	return nil, nil
}
func (s *reaperRepoStub) Update(context.Context, string, domain.ProductPatch) (*domain.Product, error) {
	return nil, nil
}
func (s *reaperRepoStub) AddComment(context.Context, string, domain.Comment) (*domain.Product, error) {
	return nil, nil
}
func (s *reaperRepoStub) Delete(context.Context, string) error { return nil }
func (s *reaperRepoStub) CategoriesByTitle(context.Context, []string) ([]domain.CategoryRef, error) {
	return nil, nil
}

func TestTagReaper_SweepUsesMaxAgeCutoff(t *testing.T) {
	repo := &reaperRepoStub{sweeps: make(chan struct{}, 1)}
	reaper := NewTagReaper(repo, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour)

	fixed := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)
	reaper.now = func() time.Time { return fixed }

	reaper.sweep(context.Background())

	require.Len(t, repo.cutoffs, 1)
	assert.Equal(t, fixed.Add(-service.NewProductMaxAge), repo.cutoffs[0])
}

func TestTagReaper_RunStopsOnCancel(t *testing.T) {
	repo := &reaperRepoStub{sweeps: make(chan struct{}, 1)}
	reaper := NewTagReaper(repo, slog.New(slog.NewTextHandler(io.Discard, nil)), 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		reaper.Run(ctx)
		close(done)
	}()

	select {
	case <-repo.sweeps:
	case <-time.After(time.Second):
		t.Fatal("reaper never swept")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop on cancel")
	}
}
