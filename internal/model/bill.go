package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Bill line items are stored as a jsonb document rather than a child table.
// The rows were migrated from a document store and carry inconsistent field
// names (code/itemCode, itemname/itemName, rate/unitPrice); the reconcile
// package owns the alias-resolving normalization. New bills are written with
// canonical camelCase keys only.

// CashBill is a point-of-sale bill settled immediately.
type CashBill struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     string    `gorm:"index;not null"`
	InvoiceNo     int64     `gorm:"index;not null"`
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Items         json.RawMessage `gorm:"type:jsonb;not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PaymentMode   string          `gorm:"not null;default:'cash'"` // cash | upi | card
	PDFPath       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreditBill is a bill payable later; Paid flips on settlement.
type CreditBill struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID     string    `gorm:"index;not null"`
	InvoiceNo     int64     `gorm:"index;not null"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	Items         json.RawMessage `gorm:"type:jsonb;not null"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	GSTAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DueDate       *time.Time
	Paid          bool `gorm:"not null;default:false"`
	PaidAt        *time.Time
	PDFPath       string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Customer *Customer `gorm:"foreignKey:CustomerID"`
}

// InvoiceCounter backs the per-company, per-kind invoice number sequence.
// Incremented inside the bill-creation transaction with a row lock.
type InvoiceCounter struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CompanyID string    `gorm:"uniqueIndex:idx_counter_company_kind;not null"`
	Kind      string    `gorm:"uniqueIndex:idx_counter_company_kind;not null"` // cash | credit
	Next      int64     `gorm:"not null;default:1"`
}

func (InvoiceCounter) TableName() string { return "invoice_counters" }
