package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/cache"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/domain"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/pricing"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/repository"
	"golang.org/x/sync/singleflight"
)

// CartService turns the raw session cart into a priced view. It holds a
// product lookup capability instead of inheriting repository methods.
type CartService struct {
	store    cache.CartStore
	products repository.ProductRepository
	logger   *slog.Logger
	sfg      singleflight.Group // dedupes concurrent snapshot reads per session
}

func NewCartService(store cache.CartStore, products repository.ProductRepository, logger *slog.Logger) *CartService {
	return &CartService{
		store:    store,
		products: products,
		logger:   logger,
	}
}

// AddItem increments the cart quantity for the product behind slug.
// Repeated adds for the same product are additive.
func (s *CartService) AddItem(ctx context.Context, sessionKey, slug string, qty int64) error {
	if qty < 1 {
		verr := newValidationError()
		verr.add("quantity", "must be a positive integer")
		return verr
	}

	product, err := s.products.BySlug(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.store.Add(ctx, sessionKey, product.ID, qty); err != nil {
		return fmt.Errorf("add to cart: %w", err)
	}
	return nil
}

// RemoveItem deletes exactly one product's entry from the session cart.
func (s *CartService) RemoveItem(ctx context.Context, sessionKey, slug string) error {
	product, err := s.products.BySlug(ctx, slug)
	if err != nil {
		return err
	}

	if err := s.store.Remove(ctx, sessionKey, product.ID); err != nil {
		return fmt.Errorf("remove from cart: %w", err)
	}
	return nil
}

func (s *CartService) Clear(ctx context.Context, sessionKey string) error {
	if err := s.store.Clear(ctx, sessionKey); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}

// Snapshot computes a fresh priced view of the session's cart. A nil
// snapshot with a nil error means the cart is empty; callers must treat
// that differently from a snapshot whose total is zero.
//
// Products that no longer resolve (deleted after being added) are logged
// and dropped from the snapshot rather than failing the whole read.
func (s *CartService) Snapshot(ctx context.Context, sessionKey string) (*domain.CartSnapshot, error) {
	v, err, _ := s.sfg.Do(sessionKey, func() (interface{}, error) {
		return s.buildSnapshot(ctx, sessionKey)
	})
	if err != nil {
		return nil, err
	}

	snapshot, _ := v.(*domain.CartSnapshot)
	return snapshot, nil
}

func (s *CartService) buildSnapshot(ctx context.Context, sessionKey string) (*domain.CartSnapshot, error) {
	entries, err := s.store.Entries(ctx, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("read cart entries: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	ids := make([]string, 0, len(entries))
	for id := range entries {
		ids = append(ids, id)
	}

	// One batch lookup for the whole cart, never a query per line.
	products, err := s.products.ByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve cart products: %w", err)
	}
	if len(products) == 0 {
		return nil, nil
	}

	if dropped := len(entries) - len(products); dropped > 0 {
		s.logger.WarnContext(ctx, "cart references missing products",
			"session_key", sessionKey, "dropped", dropped)
	}

	snapshot := &domain.CartSnapshot{
		Items: make([]domain.LineItem, 0, len(products)),
	}
	for _, product := range products {
		qty := entries[product.ID]
		unit := pricing.UnitPrice(product.Price, qty)
		total := pricing.LineTotal(product.Price, qty)

		snapshot.Items = append(snapshot.Items, domain.LineItem{
			Title:     product.Title,
			Slug:      product.Slug,
			UnitPrice: unit,
			Quantity:  qty,
			LineTotal: total,
		})
		snapshot.GrandTotal += total
	}

	return snapshot, nil
}
