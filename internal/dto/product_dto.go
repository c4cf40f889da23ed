package dto

import "github.com/shopspring/decimal"

type CreateProductRequest struct {
	ItemCode  string          `json:"itemCode" binding:"required,max=64"`
	ItemName  string          `json:"itemName" binding:"required,max=255"`
	Quantity  int             `json:"quantity" binding:"gte=0"`
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"required,dgte=0"`
	GST       decimal.Decimal `json:"gst" binding:"dgte=0"`
	HSN       string          `json:"hsn" binding:"max=16"`
}

type UpdateProductRequest struct {
	ItemName  *string          `json:"itemName" binding:"omitempty,max=255"`
	UnitPrice *decimal.Decimal `json:"unitPrice" binding:"omitempty,dgte=0"`
	GST       *decimal.Decimal `json:"gst" binding:"omitempty,dgte=0"`
	HSN       *string          `json:"hsn" binding:"omitempty,max=16"`
	Active    *bool            `json:"active"`
}

// RestockRequest resets the nominal quantity; the value is the counted stock
// on hand, not a delta.
type RestockRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=0"`
}

type ProductResponse struct {
	ID        string          `json:"id"`
	ItemCode  string          `json:"itemCode"`
	ItemName  string          `json:"itemName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	GST       decimal.Decimal `json:"gst"`
	HSN       string          `json:"hsn,omitempty"`
	Active    bool            `json:"active"`
}
