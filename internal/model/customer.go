package model

import (
	"time"

	"github.com/google/uuid"
)

type Customer struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID string    `gorm:"index;not null"`
	Name      string    `gorm:"index;not null"`
	Phone     string    `gorm:"index"`
	Email     string
	Address   string
	GSTIN     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
