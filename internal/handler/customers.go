package handler

import (
	"billtrack/internal/dto"
	"billtrack/internal/service"

	"github.com/gin-gonic/gin"
)

type CustomersHandler struct {
	customers service.CustomerService
}

func NewCustomersHandler(customers service.CustomerService) *CustomersHandler {
	return &CustomersHandler{customers: customers}
}

func (h *CustomersHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.customers.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (h *CustomersHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.customers.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

// List supports ?search= matching name or phone.
func (h *CustomersHandler) List(c *gin.Context) {
	resp, err := h.customers.List(c.Request.Context(), companyID(c), c.Query("search"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *CustomersHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.customers.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *CustomersHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.customers.Delete(c.Request.Context(), companyID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
