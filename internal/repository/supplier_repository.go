package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/catalogkit/product-catalog-service/internal/domain"
	"github.com/catalogkit/product-catalog-service/internal/observability"
)

type SupplierRepository interface {
	List(ctx context.Context) ([]domain.Supplier, error)
	FindByID(ctx context.Context, id uint) (*domain.Supplier, error)
	Create(ctx context.Context, s *domain.Supplier) error
	Update(ctx context.Context, s *domain.Supplier) error
	Delete(ctx context.Context, id uint) error
}

type GormSupplierRepository struct {
	db    *gorm.DB
	tally *int64
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &GormSupplierRepository{db: db}
}

func (r *GormSupplierRepository) add(n int64) {
	if r.tally != nil {
		*r.tally += n
	}
}

func (r *GormSupplierRepository) List(ctx context.Context) ([]domain.Supplier, error) {
	var suppliers []domain.Supplier
	err := r.db.WithContext(ctx).Order("id asc").Find(&suppliers).Error
	if err != nil {
		observability.RecordRepositoryOperation(ctx, "supplier", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "supplier", "list", "success")
	return suppliers, nil
}

func (r *GormSupplierRepository) FindByID(ctx context.Context, id uint) (*domain.Supplier, error) {
	var s domain.Supplier
	err := r.db.WithContext(ctx).First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(ctx, "supplier", "find_by_id", "not_found")
			return nil, ErrSupplierNotFound
		}
		observability.RecordRepositoryOperation(ctx, "supplier", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "supplier", "find_by_id", "success")
	return &s, nil
}

func (r *GormSupplierRepository) Create(ctx context.Context, s *domain.Supplier) error {
	res := r.db.WithContext(ctx).Create(s)
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "supplier", "create", "error")
		return res.Error
	}
	r.add(res.RowsAffected)
	observability.RecordRepositoryOperation(ctx, "supplier", "create", "success")
	return nil
}

func (r *GormSupplierRepository) Update(ctx context.Context, s *domain.Supplier) error {
	res := r.db.WithContext(ctx).Model(&domain.Supplier{}).Where("id = ?", s.ID).Updates(map[string]any{
		"name":          s.Name,
		"description":   s.Description,
		"contact_email": s.ContactEmail,
	})
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "supplier", "update", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(ctx, "supplier", "update", "not_found")
		return ErrSupplierNotFound
	}
	r.add(res.RowsAffected)
	observability.RecordRepositoryOperation(ctx, "supplier", "update", "success")
	return nil
}

func (r *GormSupplierRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Supplier{}, id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "supplier", "delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(ctx, "supplier", "delete", "not_found")
		return ErrSupplierNotFound
	}
	r.add(res.RowsAffected)
	observability.RecordRepositoryOperation(ctx, "supplier", "delete", "success")
	return nil
}
