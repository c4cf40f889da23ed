package handler

import (
	"net/http"
	"strconv"

	"billtrack/internal/apierror"
	"billtrack/internal/config"
	"billtrack/internal/dto"
	"billtrack/internal/infra"
	"billtrack/internal/service"

	"github.com/gin-gonic/gin"
)

// BillsHandler covers both bill kinds; the kind is fixed per route group.
type BillsHandler struct {
	bills service.BillService
	cfg   *config.Config
}

func NewBillsHandler(bills service.BillService, cfg *config.Config) *BillsHandler {
	return &BillsHandler{bills: bills, cfg: cfg}
}

// ── cash bills ───────────────────────────────────────────────────────────────

func (h *BillsHandler) CreateCash(c *gin.Context) {
	var req dto.CreateCashBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.bills.CreateCashBill(c.Request.Context(), companyID(c), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (h *BillsHandler) GetCash(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.bills.GetCashBill(c.Request.Context(), companyID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *BillsHandler) ListCash(c *gin.Context) {
	limit, offset := paginationParams(c)
	resp, err := h.bills.ListCashBills(c.Request.Context(), companyID(c), limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *BillsHandler) DeleteCash(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.bills.DeleteCashBill(c.Request.Context(), companyID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// CashQR streams the payment QR for a cash bill as a PNG.
func (h *BillsHandler) CashQR(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	bill, err := h.bills.GetCashBill(c.Request.Context(), companyID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	h.writeQR(c, bill)
}

// ── credit bills ─────────────────────────────────────────────────────────────

func (h *BillsHandler) CreateCredit(c *gin.Context) {
	var req dto.CreateCreditBillRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.bills.CreateCreditBill(c.Request.Context(), companyID(c), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondCreated(c, resp)
}

func (h *BillsHandler) GetCredit(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.bills.GetCreditBill(c.Request.Context(), companyID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *BillsHandler) ListCredit(c *gin.Context) {
	limit, offset := paginationParams(c)
	resp, err := h.bills.ListCreditBills(c.Request.Context(), companyID(c), limit, offset)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

func (h *BillsHandler) DeleteCredit(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := h.bills.DeleteCreditBill(c.Request.Context(), companyID(c), id); err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"deleted": true})
}

// MarkPaid settles a credit bill. Idempotency is rejected loudly: settling
// twice returns 409 so double-submits are visible to the frontend.
func (h *BillsHandler) MarkPaid(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	resp, err := h.bills.MarkCreditBillPaid(c.Request.Context(), companyID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	respondOK(c, resp)
}

// CreditQR streams the payment QR for a credit bill as a PNG.
func (h *BillsHandler) CreditQR(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	bill, err := h.bills.GetCreditBill(c.Request.Context(), companyID(c), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	h.writeQR(c, bill)
}

func (h *BillsHandler) writeQR(c *gin.Context, bill *dto.BillResponse) {
	if h.cfg.UPIAddress == "" {
		c.JSON(http.StatusNotFound, apierror.New("UPI payments are not configured"))
		return
	}
	payload := infra.BuildUPIPayload(h.cfg.UPIAddress, h.cfg.BusinessName, bill.Total, invoiceRefOf(bill))
	png, err := infra.GenerateQRPNG(payload, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("failed to generate QR code"))
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

func invoiceRefOf(bill *dto.BillResponse) string {
	if bill.InvoiceNo == 0 {
		return ""
	}
	return "INV-" + strconv.FormatInt(bill.InvoiceNo, 10)
}
