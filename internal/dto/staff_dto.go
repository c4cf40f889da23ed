package dto

import "github.com/shopspring/decimal"

type CreateStaffRequest struct {
	Name       string          `json:"name" binding:"required,max=128"`
	Role       string          `json:"role" binding:"required,max=64"`
	Department string          `json:"department" binding:"required,max=64"`
	Phone      string          `json:"phone" binding:"max=20"`
	Email      string          `json:"email" binding:"omitempty,email"`
	Salary     decimal.Decimal `json:"salary" binding:"dgte=0"`
}

type UpdateStaffRequest struct {
	Name       *string          `json:"name" binding:"omitempty,max=128"`
	Role       *string          `json:"role" binding:"omitempty,max=64"`
	Department *string          `json:"department" binding:"omitempty,max=64"`
	Phone      *string          `json:"phone" binding:"omitempty,max=20"`
	Email      *string          `json:"email" binding:"omitempty,email"`
	Salary     *decimal.Decimal `json:"salary" binding:"omitempty,dgte=0"`
	Active     *bool            `json:"active"`
}

type StaffResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Role       string          `json:"role"`
	Department string          `json:"department"`
	Phone      string          `json:"phone,omitempty"`
	Email      string          `json:"email,omitempty"`
	Salary     decimal.Decimal `json:"salary"`
	Active     bool            `json:"active"`
}
