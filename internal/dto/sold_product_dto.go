package dto

import "time"

// CreateSoldProductRequest records a manual sale entry. It never touches the
// product catalog; stock impact shows up through the inventory analysis.
type CreateSoldProductRequest struct {
	ItemCode string     `json:"itemCode" binding:"max=64"`
	ItemName string     `json:"itemName" binding:"required,max=255"`
	Quantity int        `json:"quantity" binding:"required,gt=0"`
	Invoice  string     `json:"invoice" binding:"max=64"`
	SoldDate *time.Time `json:"soldDate"`
}

type SoldProductResponse struct {
	ID       string    `json:"id"`
	ItemCode string    `json:"itemCode,omitempty"`
	ItemName string    `json:"itemName"`
	Quantity int       `json:"quantity"`
	Invoice  string    `json:"invoice,omitempty"`
	SoldDate time.Time `json:"soldDate"`
}
