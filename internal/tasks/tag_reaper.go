// Package tasks holds the background loops the server runs next to the
// request handlers.
package tasks

import (
	"context"
	"log/slog"
	"time"

	"github.com/SerhiiL06/feathered-friends-marketplace/internal/repository"
	"github.com/SerhiiL06/feathered-friends-marketplace/internal/service"
)

// TagReaper strips the "new" tag from products older than maxAge.
type TagReaper struct {
	products repository.ProductRepository
	logger   *slog.Logger
	interval time.Duration
	maxAge   time.Duration
	now      func() time.Time
}

func NewTagReaper(products repository.ProductRepository, logger *slog.Logger, interval time.Duration) *TagReaper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &TagReaper{
		products: products,
		logger:   logger,
		interval: interval,
		maxAge:   service.NewProductMaxAge,
		now:      time.Now,
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval.
func (r *TagReaper) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.sweep(ctx)
		}
	}
}

func (r *TagReaper) sweep(ctx context.Context) {
	cutoff := r.now().Add(-r.maxAge)

	removed, err := r.products.RemoveStaleNewTags(ctx, cutoff)
	if err != nil {
		r.logger.ErrorContext(ctx, "tag sweep failed", "error", err)
		return
	}
	if removed > 0 {
		r.logger.InfoContext(ctx, "removed stale new tags", "count", removed)
	}
}
