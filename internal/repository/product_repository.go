package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/catalogkit/product-catalog-service/internal/domain"
	"github.com/catalogkit/product-catalog-service/internal/observability"
)

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrVersionMismatch  = errors.New("product row version mismatch")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSupplierNotFound = errors.New("supplier not found")
)

type ProductRepository interface {
	// FindByID loads one product joined with its category.
	FindByID(ctx context.Context, id uint) (*domain.Product, error)
	// FindAllJoined loads every product joined with its category, ordered
	// by id.
	FindAllJoined(ctx context.Context) ([]domain.Product, error)
	// Insert stores a new product and assigns its id and initial row
	// version token.
	Insert(ctx context.Context, p *domain.Product) error
	// UpdateWithVersionCheck applies fields to the product with the given
	// id. When expected is non-nil it becomes part of the update predicate:
	// a row whose current token differs is left untouched and
	// ErrVersionMismatch is returned. Every successful update stores a
	// fresh token.
	UpdateWithVersionCheck(ctx context.Context, id uint, fields map[string]any, expected []byte) (*domain.Product, error)
	// Delete removes the product or returns ErrProductNotFound.
	Delete(ctx context.Context, id uint) error
}

type GormProductRepository struct {
	db    *gorm.DB
	tally *int64
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) add(n int64) {
	if r.tally != nil {
		*r.tally += n
	}
}

func (r *GormProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Preload("Category").First(&p, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(ctx, "product", "find_by_id", "not_found")
			return nil, ErrProductNotFound
		}
		observability.RecordRepositoryOperation(ctx, "product", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "product", "find_by_id", "success")
	return &p, nil
}

func (r *GormProductRepository) FindAllJoined(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Joins("Category").Order("products.id asc").Find(&products).Error
	if err != nil {
		observability.RecordRepositoryOperation(ctx, "product", "find_all", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "product", "find_all", "success")
	return products, nil
}

func (r *GormProductRepository) Insert(ctx context.Context, p *domain.Product) error {
	if p.CategoryID == 0 {
		p.CategoryID = domain.DefaultCategoryID
	}
	if len(p.RowVersion) == 0 {
		p.RowVersion = domain.NewRowVersion()
	}
	res := r.db.WithContext(ctx).Create(p)
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "product", "insert", "error")
		return res.Error
	}
	r.add(res.RowsAffected)
	observability.RecordRepositoryOperation(ctx, "product", "insert", "success")
	return nil
}

func (r *GormProductRepository) UpdateWithVersionCheck(ctx context.Context, id uint, fields map[string]any, expected []byte) (*domain.Product, error) {
	updates := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		updates[k] = v
	}
	updates["row_version"] = domain.NewRowVersion()

	q := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id)
	if expected != nil {
		q = q.Where("row_version = ?", expected)
	}
	res := q.Updates(updates)
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "product", "update", "error")
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish a missing row from a stale token.
		var count int64
		if err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
			observability.RecordRepositoryOperation(ctx, "product", "update", "error")
			return nil, err
		}
		if count == 0 {
			observability.RecordRepositoryOperation(ctx, "product", "update", "not_found")
			return nil, ErrProductNotFound
		}
		observability.RecordRepositoryOperation(ctx, "product", "update", "conflict")
		return nil, ErrVersionMismatch
	}
	r.add(res.RowsAffected)

	var updated domain.Product
	if err := r.db.WithContext(ctx).Preload("Category").First(&updated, id).Error; err != nil {
		observability.RecordRepositoryOperation(ctx, "product", "update", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "product", "update", "success")
	return &updated, nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "product", "delete", "error")
		return res.Error
	}
	if res.RowsAffected == 0 {
		observability.RecordRepositoryOperation(ctx, "product", "delete", "not_found")
		return ErrProductNotFound
	}
	r.add(res.RowsAffected)
	observability.RecordRepositoryOperation(ctx, "product", "delete", "success")
	return nil
}
