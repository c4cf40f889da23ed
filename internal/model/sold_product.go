package model

import (
	"time"

	"github.com/google/uuid"
)

// SoldProduct is a manually entered sale record, one row per sold line.
// Creating one does NOT decrement Product.Quantity: stock is reconciled
// virtually by the inventory analysis, never by mutating the catalog.
type SoldProduct struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID string    `gorm:"index;not null"`
	ItemCode  string    `gorm:"index"`
	ItemName  string
	Quantity  int `gorm:"not null;default:0"`
	Invoice   string
	SoldDate  time.Time `gorm:"index"`
	CreatedAt time.Time
}
