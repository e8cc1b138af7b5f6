package service

import (
	"context"
	"errors"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/catalogkit/product-catalog-service/internal/apperr"
	"github.com/catalogkit/product-catalog-service/internal/cache"
	"github.com/catalogkit/product-catalog-service/internal/domain"
	"github.com/catalogkit/product-catalog-service/internal/repository"
)

type CategoryInput struct {
	Name string `json:"name"`
}

func (in CategoryInput) Validate() error {
	return asValidationError(validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 100)),
	))
}

type CategoryService struct {
	categories repository.CategoryRepository
	cache      cache.Store
	logger     *slog.Logger
}

func NewCategoryService(categories repository.CategoryRepository, store cache.Store, logger *slog.Logger) *CategoryService {
	return &CategoryService{categories: categories, cache: store, logger: logger}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, apperr.Store(err)
	}
	return categories, nil
}

func (s *CategoryService) Create(ctx context.Context, in CategoryInput) (*domain.Category, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	c := &domain.Category{Name: in.Name}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, apperr.Store(err)
	}
	s.logger.InfoContext(ctx, "category created", "category_id", c.ID)
	return c, nil
}

// Delete removes the category and, by cascade, every product in it. Since
// the cached collection may contain those products it is invalidated too.
func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return apperr.NotFound("Category", id)
		}
		return apperr.Store(err)
	}
	s.logger.InfoContext(ctx, "category deleted with its products", "category_id", id)
	_ = s.cache.Invalidate(ctx, allProductsCacheKey)
	return nil
}
