package catalog

import (
	"context"
	"errors"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

// ProductCache caches catalog reads. Product detail pages are the hottest
// path in the storefront and the catalog rarely changes, so a short TTL is
// safe.
type ProductCache interface {
	Get(ctx context.Context, productID int64) (*domain.Product, error)
	Set(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, productID int64) error
}

var ErrCacheMiss = errors.New("cache miss")

// NopCache misses on every read; used when no redis address is configured.
type NopCache struct{}

func (NopCache) Get(context.Context, int64) (*domain.Product, error) { return nil, ErrCacheMiss }
func (NopCache) Set(context.Context, *domain.Product) error          { return nil }
func (NopCache) Delete(context.Context, int64) error                 { return nil }
