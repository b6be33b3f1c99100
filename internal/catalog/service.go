package catalog

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/RedBeret/AIChatPoweredEcommerce/internal/domain"
)

// CatalogAPI is the slice of the backend the catalog reads from. Satisfied by
// *backend.Client.
type CatalogAPI interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id int64) (domain.Product, error)
}

// Service serves product reads with a cache-aside strategy. Concurrent
// lookups of the same product are coalesced with singleflight so a cache miss
// under load turns into a single backend call.
type Service struct {
	api   CatalogAPI
	cache ProductCache
	log   *slog.Logger
	sfg   singleflight.Group
}

func NewService(api CatalogAPI, cache ProductCache, log *slog.Logger) *Service {
	return &Service{
		api:   api,
		cache: cache,
		log:   log,
	}
}

// List fetches the full catalog. List responses are small and already cheap
// on the backend, so only coalescing is applied, no caching.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("list", func() (interface{}, error) {
		return s.api.ListProducts(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.([]domain.Product), nil
}

// Get returns one product, cache first.
func (s *Service) Get(ctx context.Context, id int64) (domain.Product, error) {
	v, err, _ := s.sfg.Do(strconv.FormatInt(id, 10), func() (interface{}, error) {
		product, err := s.cache.Get(ctx, id)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			s.log.Warn("product cache get failed", "product_id", id, "err", err)
		}

		fetched, err := s.api.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}

		// Fill the cache off the request path.
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if err := s.cache.Set(ctx, &fetched); err != nil {
				s.log.Warn("product cache set failed", "product_id", id, "err", err)
			}
		}()

		return &fetched, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return *v.(*domain.Product), nil
}
