package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/catalogkit/product-catalog-service/internal/apperr"
	"github.com/catalogkit/product-catalog-service/internal/cache"
	"github.com/catalogkit/product-catalog-service/internal/domain"
	"github.com/catalogkit/product-catalog-service/internal/observability"
	"github.com/catalogkit/product-catalog-service/internal/repository"
)

// CatalogWriteService is the single write path for products. Every write
// runs inside a unit-of-work session, so single-aggregate writes and the
// supplier+product atomic create share one implementation instead of two
// parallel ones. Successful writes invalidate the cached collection so the
// next read repopulates from the store.
type CatalogWriteService struct {
	uow    repository.UnitOfWork
	cache  cache.Store
	logger *slog.Logger
}

func NewCatalogWriteService(uow repository.UnitOfWork, store cache.Store, logger *slog.Logger) *CatalogWriteService {
	return &CatalogWriteService{uow: uow, cache: store, logger: logger}
}

// Create validates the input before touching the store, inserts the product
// in a transaction and returns it with its server-assigned id and initial
// row version token.
func (s *CatalogWriteService) Create(ctx context.Context, in CreateProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p := &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
	}
	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	defer func() { _ = sess.Rollback() }()

	if err := sess.Products().Insert(ctx, p); err != nil {
		return nil, apperr.Store(err)
	}
	if _, err := sess.Commit(); err != nil {
		return nil, apperr.Store(err)
	}
	s.logger.InfoContext(ctx, "product created", "product_id", p.ID)
	s.invalidateCollection(ctx)
	return p, nil
}

// Update applies the supplied fields to the product; unsupplied fields keep
// their current values. When the input carries an expected version token the
// store compares it atomically as part of the update predicate and a stale
// token fails with a conflict, leaving the row untouched.
func (s *CatalogWriteService) Update(ctx context.Context, id uint, in UpdateProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	defer func() { _ = sess.Rollback() }()

	updated, err := sess.Products().UpdateWithVersionCheck(ctx, id, in.fields(), in.ExpectedVersion)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrProductNotFound):
			return nil, apperr.NotFound("Product", id)
		case errors.Is(err, repository.ErrVersionMismatch):
			return nil, apperr.Conflict("Product", id)
		default:
			return nil, apperr.Store(err)
		}
	}
	if _, err := sess.Commit(); err != nil {
		return nil, apperr.Store(err)
	}
	s.logger.InfoContext(ctx, "product updated", "product_id", id)
	s.invalidateCollection(ctx)
	return updated, nil
}

// Delete removes the product in one transaction.
func (s *CatalogWriteService) Delete(ctx context.Context, id uint) error {
	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return apperr.Store(err)
	}
	defer func() { _ = sess.Rollback() }()

	if err := sess.Products().Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return apperr.NotFound("Product", id)
		}
		return apperr.Store(err)
	}
	if _, err := sess.Commit(); err != nil {
		return apperr.Store(err)
	}
	s.logger.InfoContext(ctx, "product deleted", "product_id", id)
	s.invalidateCollection(ctx)
	return nil
}

// CreateSupplierWithProduct inserts a supplier and a product through one
// session: both commit or both roll back, a partial insert is never
// observable.
func (s *CatalogWriteService) CreateSupplierWithProduct(ctx context.Context, in AtomicSupplierProductInput) (*domain.Supplier, *domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, nil, err
	}
	sup := &domain.Supplier{
		Name:         in.Supplier.Name,
		Description:  in.Supplier.Description,
		ContactEmail: in.Supplier.ContactEmail,
	}
	p := &domain.Product{
		Name:        in.Product.Name,
		Description: in.Product.Description,
		Price:       in.Product.Price,
		CategoryID:  in.Product.CategoryID,
	}
	sess, err := s.uow.Begin(ctx)
	if err != nil {
		return nil, nil, apperr.Store(err)
	}
	defer func() { _ = sess.Rollback() }()

	if err := sess.Suppliers().Create(ctx, sup); err != nil {
		return nil, nil, apperr.Store(err)
	}
	if err := sess.Products().Insert(ctx, p); err != nil {
		return nil, nil, apperr.Store(err)
	}
	rows, err := sess.Commit()
	if err != nil {
		return nil, nil, apperr.Store(err)
	}
	s.logger.InfoContext(ctx, "supplier and product created atomically",
		"supplier_id", sup.ID, "product_id", p.ID, "rows_affected", rows)
	s.invalidateCollection(ctx)
	return sup, p, nil
}

// invalidateCollection drops the cached collection after a successful write.
// The original catalog left the cache untouched on update and delete, which
// served stale collections for up to the TTL window; this implementation
// invalidates on every write instead.
func (s *CatalogWriteService) invalidateCollection(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, allProductsCacheKey); err != nil {
		observability.RecordCacheOperation(ctx, "invalidate", "error")
		s.logger.WarnContext(ctx, "failed to invalidate product cache", "error", err)
		return
	}
	observability.RecordCacheOperation(ctx, "invalidate", "success")
}
