package handler

import (
	"billtrack/internal/dto"
	"billtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// ProductsHandler is the catalog CRUD surface.
type ProductsHandler struct {
	products service.ProductService
}

func NewProductsHandler(products service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: products}
}

func (h *ProductsHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.Create(c.Request.Context(), companyID(c), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (h *ProductsHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.products.Get(c.Request.Context(), companyID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

// GetByCode is the price-lookup endpoint hit on every line the cashier
// scans, served from the Redis read-through cache.
func (h *ProductsHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	resp, err := h.products.GetByCode(c.Request.Context(), companyID(c), code)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *ProductsHandler) List(c *gin.Context) {
	resp, err := h.products.List(c.Request.Context(), companyID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *ProductsHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.Update(c.Request.Context(), companyID(c), id, req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *ProductsHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), companyID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

func (h *ProductsHandler) Restock(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var req dto.RestockRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.products.Restock(c.Request.Context(), companyID(c), id, req.Quantity)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}
