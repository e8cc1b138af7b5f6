package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/catalogkit/product-catalog-service/internal/apperr"
	"github.com/catalogkit/product-catalog-service/internal/domain"
	"github.com/catalogkit/product-catalog-service/internal/repository"
)

// SupplierService covers plain supplier CRUD. Supplier writes do not touch
// the product cache.
type SupplierService struct {
	suppliers repository.SupplierRepository
	logger    *slog.Logger
}

func NewSupplierService(suppliers repository.SupplierRepository, logger *slog.Logger) *SupplierService {
	return &SupplierService{suppliers: suppliers, logger: logger}
}

func (s *SupplierService) List(ctx context.Context) ([]domain.Supplier, error) {
	suppliers, err := s.suppliers.List(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return suppliers, nil
}

func (s *SupplierService) GetByID(ctx context.Context, id uint) (*domain.Supplier, error) {
	sup, err := s.suppliers.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			return nil, apperr.NotFound("Supplier", id)
		}
		return nil, apperr.Store(err)
	}
	return sup, nil
}

func (s *SupplierService) Create(ctx context.Context, in SupplierInput) (*domain.Supplier, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	sup := &domain.Supplier{
		Name:         in.Name,
		Description:  in.Description,
		ContactEmail: in.ContactEmail,
	}
	if err := s.suppliers.Create(ctx, sup); err != nil {
		return nil, apperr.Store(err)
	}
	s.logger.InfoContext(ctx, "supplier created", "supplier_id", sup.ID)
	return sup, nil
}

func (s *SupplierService) Update(ctx context.Context, id uint, in SupplierInput) (*domain.Supplier, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	sup := &domain.Supplier{
		ID:           id,
		Name:         in.Name,
		Description:  in.Description,
		ContactEmail: in.ContactEmail,
	}
	if err := s.suppliers.Update(ctx, sup); err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			return nil, apperr.NotFound("Supplier", id)
		}
		return nil, apperr.Store(err)
	}
	s.logger.InfoContext(ctx, "supplier updated", "supplier_id", id)
	return s.GetByID(ctx, id)
}

func (s *SupplierService) Delete(ctx context.Context, id uint) error {
	if err := s.suppliers.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrSupplierNotFound) {
			return apperr.NotFound("Supplier", id)
		}
		return apperr.Store(err)
	}
	s.logger.InfoContext(ctx, "supplier deleted", "supplier_id", id)
	return nil
}
