package service

import (
	"context"
	"log/slog"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/cache"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/domain"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/repository"
)

type BookmarkService struct {
	store    cache.BookmarkStore
	products repository.ProductRepository
	logger   *slog.Logger
}

func NewBookmarkService(store cache.BookmarkStore, products repository.ProductRepository, logger *slog.Logger) *BookmarkService {
	return &BookmarkService{store: store, products: products, logger: logger}
}

// Toggle flips the bookmark for slug and reports whether it is now set.
// Unknown products are rejected before the set is touched.
func (s *BookmarkService) Toggle(ctx context.Context, sessionKey, slug string) (bool, error) {
	if _, err := s.products.BySlug(ctx, slug); err != nil {
		return false, err
	}
	return s.store.Toggle(ctx, sessionKey, slug)
}

// List resolves the session's bookmarked slugs to products. Slugs whose
// product has been deleted are dropped from the result.
func (s *BookmarkService) List(ctx context.Context, sessionKey string) ([]domain.Product, error) {
	slugs, err := s.store.List(ctx, sessionKey)
	if err != nil {
		return nil, err
	}
	if len(slugs) == 0 {
		return nil, nil
	}

	products, err := s.products.BySlugs(ctx, slugs)
	if err != nil {
		return nil, err
	}

	if dropped := len(slugs) - len(products); dropped > 0 {
		s.logger.WarnContext(ctx, "bookmarks reference missing products",
			"session_key", sessionKey, "dropped", dropped)
	}
	return products, nil
}
