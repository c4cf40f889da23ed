package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillItemRequest is one line of an incoming bill. Totals are computed
// server-side from quantity, unit price and GST rate.
type BillItemRequest struct {
	ItemCode  string          `json:"itemCode" binding:"required,max=64"`
	ItemName  string          `json:"itemName" binding:"required,max=255"`
	Quantity  int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required,dgte=0"`
	GST       decimal.Decimal `json:"gst" binding:"dgte=0"`
	HSN       string          `json:"hsn" binding:"max=16"`
}

type CreateCashBillRequest struct {
	CustomerName  string            `json:"customerName" binding:"max=128"`
	CustomerPhone string            `json:"customerPhone" binding:"max=20"`
	CustomerEmail string            `json:"customerEmail" binding:"omitempty,email"`
	PaymentMode   string            `json:"paymentMode" binding:"omitempty,oneof=cash upi card"`
	Items         []BillItemRequest `json:"items" binding:"required,min=1,dive"`
}

type CreateCreditBillRequest struct {
	CustomerID    *string           `json:"customerId" binding:"omitempty,uuid"`
	CustomerName  string            `json:"customerName" binding:"max=128"`
	CustomerPhone string            `json:"customerPhone" binding:"max=20"`
	CustomerEmail string            `json:"customerEmail" binding:"omitempty,email"`
	DueDate       *time.Time        `json:"dueDate"`
	Items         []BillItemRequest `json:"items" binding:"required,min=1,dive"`
}

type BillResponse struct {
	ID            string            `json:"id"`
	InvoiceNo     int64             `json:"invoiceNo"`
	CustomerName  string            `json:"customerName,omitempty"`
	CustomerPhone string            `json:"customerPhone,omitempty"`
	Items         []BillItemRequest `json:"items"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	GSTAmount     decimal.Decimal   `json:"gstAmount"`
	Total         decimal.Decimal   `json:"total"`
	PaymentMode   string            `json:"paymentMode,omitempty"`
	DueDate       *time.Time        `json:"dueDate,omitempty"`
	Paid          *bool             `json:"paid,omitempty"`
	PDFPath       string            `json:"pdfPath,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
}

type BillListResponse struct {
	Bills []BillResponse `json:"bills"`
	Total int64          `json:"total"`
}
