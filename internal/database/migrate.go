package database

import (
	"gorm.io/gorm"

	"github.com/catalogkit/product-catalog-service/internal/domain"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Category{},
		&domain.Product{},
		&domain.Supplier{},
	)
}
