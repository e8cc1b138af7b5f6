package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/catalogkit/product-catalog-service/internal/apperr"
	"github.com/catalogkit/product-catalog-service/internal/cache"
	"github.com/catalogkit/product-catalog-service/internal/domain"
	"github.com/catalogkit/product-catalog-service/internal/observability"
	"github.com/catalogkit/product-catalog-service/internal/repository"
)

// allProductsCacheKey holds the cached full collection. Single-item reads
// bypass the cache, so this is the only product cache key.
const allProductsCacheKey = "all_products"

// CatalogReadService serves catalog reads cache-aside: the collection read
// checks the cache first and falls back to the store on miss, repopulating
// the cache for subsequent readers. Within the TTL window callers accept
// possibly-stale data.
type CatalogReadService struct {
	products    repository.ProductRepository
	cache       cache.Store
	logger      *slog.Logger
	absoluteTTL time.Duration
	slidingTTL  time.Duration
}

func NewCatalogReadService(products repository.ProductRepository, store cache.Store, logger *slog.Logger, absoluteTTL, slidingTTL time.Duration) *CatalogReadService {
	return &CatalogReadService{
		products:    products,
		cache:       store,
		logger:      logger,
		absoluteTTL: absoluteTTL,
		slidingTTL:  slidingTTL,
	}
}

// ListAll returns every product as DTOs, ordered by id. Cache hits are
// returned verbatim without re-validation against the store. A cache outage
// degrades to a direct store read and never fails the request.
func (s *CatalogReadService) ListAll(ctx context.Context) ([]domain.ProductDTO, error) {
	payload, found, err := s.cache.Get(ctx, allProductsCacheKey)
	switch {
	case err != nil:
		observability.RecordCacheOperation(ctx, "get", "error")
		s.logger.WarnContext(ctx, "product cache unavailable, reading store", "error", err)
	case found:
		var dtos []domain.ProductDTO
		if err := json.Unmarshal(payload, &dtos); err == nil {
			observability.RecordCacheOperation(ctx, "get", "hit")
			return dtos, nil
		}
		// Undecodable entry: drop it and fall through to the store.
		_ = s.cache.Invalidate(ctx, allProductsCacheKey)
		observability.RecordCacheOperation(ctx, "get", "error")
	default:
		observability.RecordCacheOperation(ctx, "get", "miss")
	}

	products, err := s.products.FindAllJoined(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	dtos := make([]domain.ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, domain.NewProductDTO(p))
	}

	if payload, err := json.Marshal(dtos); err == nil {
		if err := s.cache.Set(ctx, allProductsCacheKey, payload, s.absoluteTTL, s.slidingTTL); err != nil {
			observability.RecordCacheOperation(ctx, "set", "error")
			s.logger.WarnContext(ctx, "failed to populate product cache", "error", err)
		} else {
			observability.RecordCacheOperation(ctx, "set", "success")
		}
	}
	return dtos, nil
}

// GetByID loads a single product DTO straight from the store; single-item
// reads do not use the cache.
func (s *CatalogReadService) GetByID(ctx context.Context, id uint) (*domain.ProductDTO, error) {
	p, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, apperr.NotFound("Product", id)
		}
		return nil, apperr.Store(err)
	}
	dto := domain.NewProductDTO(*p)
	return &dto, nil
}
