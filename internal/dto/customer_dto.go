package dto

type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,max=128"`
	Phone   string `json:"phone" binding:"max=20"`
	Email   string `json:"email" binding:"omitempty,email"`
	Address string `json:"address" binding:"max=255"`
	GSTIN   string `json:"gstin" binding:"max=15"`
}

type UpdateCustomerRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=128"`
	Phone   *string `json:"phone" binding:"omitempty,max=20"`
	Email   *string `json:"email" binding:"omitempty,email"`
	Address *string `json:"address" binding:"omitempty,max=255"`
	GSTIN   *string `json:"gstin" binding:"omitempty,max=15"`
}

type CustomerResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
	GSTIN   string `json:"gstin,omitempty"`
}
