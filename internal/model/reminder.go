package model

import (
	"time"

	"github.com/google/uuid"
)

// Reminder is a scheduled notification. The reminder cron scans unsent rows
// whose RemindAt has passed and enqueues one email job each.
type Reminder struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID      string    `gorm:"index;not null"`
	Title          string    `gorm:"not null"`
	Notes          string
	RemindAt       time.Time `gorm:"index;not null"`
	RecipientEmail string    `gorm:"not null"`
	Sent           bool      `gorm:"not null;default:false;index"`
	CreatedAt      time.Time
}
