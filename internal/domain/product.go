package domain

import (
	"bytes"
	"time"

	"github.com/google/uuid"
)

// RowVersionSize is the length of the opaque concurrency token attached to
// every product row. The token is compared only for equality; its contents
// carry no meaning.
const RowVersionSize = 16

type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"size:1000" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	CategoryID  uint      `gorm:"not null;default:1;index" json:"category_id"`
	Category    Category  `json:"-"`
	RowVersion  []byte    `gorm:"size:16;not null" json:"row_version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewRowVersion returns a fresh opaque row version token. Every successful
// write stores a new token so stale writers can be detected.
func NewRowVersion() []byte {
	u := uuid.New()
	return u[:]
}

// RowVersionEqual reports whether two tokens match. Tokens are opaque byte
// sequences, equality is the only defined comparison.
func RowVersionEqual(a, b []byte) bool {
	return bytes.Equal(a, b)
}
