package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/catalogkit/product-catalog-service/internal/domain"
)

func newRepositoryDBForTest(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&domain.Category{},
		&domain.Product{},
		&domain.Supplier{},
	); err != nil {
		t.Fatalf("migrate db: %v", err)
	}
	if err := db.Create(&domain.Category{ID: domain.DefaultCategoryID, Name: "Default"}).Error; err != nil {
		t.Fatalf("seed default category: %v", err)
	}
	return db
}

func mustInsertProduct(t *testing.T, repo ProductRepository, name string, price float64) *domain.Product {
	t.Helper()
	p := &domain.Product{Name: name, Price: price}
	if err := repo.Insert(context.Background(), p); err != nil {
		t.Fatalf("insert product %q: %v", name, err)
	}
	return p
}
