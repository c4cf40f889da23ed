package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Staff is an employee record managed by the admin/HR endpoints.
// Distinct from User: staff rows may exist without a login.
type Staff struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID  string    `gorm:"index;not null"`
	Name       string    `gorm:"not null"`
	Role       string    `gorm:"not null"`
	Department string    `gorm:"index;not null"`
	Phone      string
	Email      string
	Salary     decimal.Decimal `gorm:"type:decimal(12,2)"`
	Active     bool            `gorm:"not null;default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
