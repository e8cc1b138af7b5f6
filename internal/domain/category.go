package domain

// Category groups products. Deleting a category deletes its products; the
// cascade is declared on the association and is a documented side effect.
type Category struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Name     string    `gorm:"size:100;not null" json:"name"`
	Products []Product `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"products,omitempty"`
}

// DefaultCategoryID is assigned to products created without an explicit
// category. The seed step guarantees the row exists.
const DefaultCategoryID uint = 1
