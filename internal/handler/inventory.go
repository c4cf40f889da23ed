package handler

import (
	"billtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// InventoryHandler exposes the reconciliation reports.
type InventoryHandler struct {
	inventory service.InventoryService
}

func NewInventoryHandler(inventory service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

// Analysis runs the reconciliation with the tight legacy thresholds.
func (h *InventoryHandler) Analysis(c *gin.Context) {
	report, err := h.inventory.Analysis(c.Request.Context(), companyID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, report)
}

// UnifiedAnalysis runs the reconciliation with the dashboard thresholds.
func (h *InventoryHandler) UnifiedAnalysis(c *gin.Context) {
	report, err := h.inventory.UnifiedAnalysis(c.Request.Context(), companyID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, report)
}

// UnifiedSales returns the merged deduplicated sales feed.
func (h *InventoryHandler) UnifiedSales(c *gin.Context) {
	sales, err := h.inventory.UnifiedSales(c.Request.Context(), companyID(c))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, sales)
}
