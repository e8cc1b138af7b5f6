package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/catalogkit/product-catalog-service/internal/domain"
	"github.com/catalogkit/product-catalog-service/internal/observability"
)

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.Category, error)
	FindByID(ctx context.Context, id uint) (*domain.Category, error)
	Create(ctx context.Context, c *domain.Category) error
	// Delete removes the category and all of its products. The cascade is
	// a documented side effect of the association.
	Delete(ctx context.Context, id uint) error
}

type GormCategoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

func (r *GormCategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	err := r.db.WithContext(ctx).Order("id asc").Find(&categories).Error
	if err != nil {
		observability.RecordRepositoryOperation(ctx, "category", "list", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "category", "list", "success")
	return categories, nil
}

func (r *GormCategoryRepository) FindByID(ctx context.Context, id uint) (*domain.Category, error) {
	var c domain.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordRepositoryOperation(ctx, "category", "find_by_id", "not_found")
			return nil, ErrCategoryNotFound
		}
		observability.RecordRepositoryOperation(ctx, "category", "find_by_id", "error")
		return nil, err
	}
	observability.RecordRepositoryOperation(ctx, "category", "find_by_id", "success")
	return &c, nil
}

func (r *GormCategoryRepository) Create(ctx context.Context, c *domain.Category) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		observability.RecordRepositoryOperation(ctx, "category", "create", "error")
		return err
	}
	observability.RecordRepositoryOperation(ctx, "category", "create", "success")
	return nil
}

func (r *GormCategoryRepository) Delete(ctx context.Context, id uint) error {
	c, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	// Select(Associations) deletes the products explicitly so the cascade
	// holds on backends that do not enforce the FK constraint.
	res := r.db.WithContext(ctx).Select(clause.Associations).Delete(c)
	if res.Error != nil {
		observability.RecordRepositoryOperation(ctx, "category", "delete", "error")
		return res.Error
	}
	observability.RecordRepositoryOperation(ctx, "category", "delete", "success")
	return nil
}
