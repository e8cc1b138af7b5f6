package database

import (
	"gorm.io/gorm"

	"github.com/catalogkit/product-catalog-service/internal/domain"
)

type SeedReport struct {
	CreatedCategories int
	CreatedSuppliers  int
	Noop              bool
}

// SeedSync ensures the default category and the initial suppliers exist.
// Safe to run on every boot; a second run reports Noop.
func SeedSync(db *gorm.DB) (SeedReport, error) {
	var report SeedReport

	category := domain.Category{ID: domain.DefaultCategoryID, Name: "Default"}
	res := db.Where("id = ?", category.ID).FirstOrCreate(&category)
	if res.Error != nil {
		return report, res.Error
	}
	report.CreatedCategories += int(res.RowsAffected)

	suppliers := []domain.Supplier{
		{Name: "Acme Supplies", Description: "Leading supplier of office products.", ContactEmail: "contact@acme.com"},
		{Name: "Global Tech", Description: "Electronics and IT supplier.", ContactEmail: "info@globaltech.com"},
	}
	for i := range suppliers {
		res := db.Where("name = ?", suppliers[i].Name).FirstOrCreate(&suppliers[i])
		if res.Error != nil {
			return report, res.Error
		}
		report.CreatedSuppliers += int(res.RowsAffected)
	}

	report.Noop = report.CreatedCategories == 0 && report.CreatedSuppliers == 0
	return report, nil
}
