package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Product is a catalog master record. Quantity is the nominal stock count at
// the last restock; the reconciliation path never writes it. Current stock is
// re-derived by subtracting matched sales. ItemCode should be unique per
// company but is deliberately not enforced (legacy data contains duplicates).
type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID string    `gorm:"index;not null"`
	ItemCode  string    `gorm:"index;not null"`
	ItemName  string    `gorm:"index;not null"`
	Quantity  int       `gorm:"not null;default:0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	GST       decimal.Decimal `gorm:"type:decimal(5,2)"` // tax rate percent
	HSN       string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
