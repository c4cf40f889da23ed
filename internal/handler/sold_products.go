package handler

import (
	"billtrack/internal/dto"
	"billtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// SoldProductsHandler records and lists manual sale entries.
type SoldProductsHandler struct {
	soldProducts service.SoldProductService
}

func NewSoldProductsHandler(soldProducts service.SoldProductService) *SoldProductsHandler {
	return &SoldProductsHandler{soldProducts: soldProducts}
}

func (h *SoldProductsHandler) Create(c *gin.Context) {
	var req dto.CreateSoldProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.soldProducts.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (h *SoldProductsHandler) List(c *gin.Context) {
	resp, err := h.soldProducts.List(c.Request.Context(), companyID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *SoldProductsHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.soldProducts.Delete(c.Request.Context(), companyID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}
