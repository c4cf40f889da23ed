package worker

// invoice_worker.go
// Renders invoice PDFs off the request path. Bill creation enqueues a job
// here; the worker loads the bill, rebuilds its line items, embeds a UPI
// payment QR and writes the PDF path back onto the bill. When the bill has
// a customer email on record, a copy is queued for delivery.

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"billtrack/internal/config"
	"billtrack/internal/infra"
	"billtrack/internal/reconcile"
	"billtrack/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// InvoiceJobPayload is the job envelope sent to QueueInvoicePDF.
type InvoiceJobPayload struct {
	CompanyID string `json:"company_id"`
	BillID    string `json:"bill_id"`
	Kind      string `json:"kind"` // cash | credit
}

// InvoiceWorker generates invoice PDFs for newly created bills.
type InvoiceWorker struct {
	cfg        *config.Config
	cashRepo   repository.CashBillRepository
	creditRepo repository.CreditBillRepository
	dispatcher *Dispatcher
}

func NewInvoiceWorker(cfg *config.Config, cashRepo repository.CashBillRepository, creditRepo repository.CreditBillRepository, dispatcher *Dispatcher) *InvoiceWorker {
	return &InvoiceWorker{cfg: cfg, cashRepo: cashRepo, creditRepo: creditRepo, dispatcher: dispatcher}
}

func (w *InvoiceWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload InvoiceJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("invoice_worker: invalid payload: %w", err)
	}
	billID, err := uuid.Parse(payload.BillID)
	if err != nil {
		return fmt.Errorf("invoice_worker: bad bill id %q: %w", payload.BillID, err)
	}

	switch payload.Kind {
	case "cash":
		return w.processCash(ctx, payload.CompanyID, billID)
	case "credit":
		return w.processCredit(ctx, payload.CompanyID, billID)
	default:
		return fmt.Errorf("invoice_worker: unknown bill kind %q", payload.Kind)
	}
}

func (w *InvoiceWorker) processCash(ctx context.Context, companyID string, id uuid.UUID) error {
	bill, err := w.cashRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("invoice_worker: load cash bill: %w", err)
	}

	lines := reconcile.ParseBillLines(bill.Items)

	data := infra.InvoiceData{
		BusinessName:  w.cfg.BusinessName,
		Kind:          "cash",
		InvoiceNo:     bill.InvoiceNo,
		CustomerName:  bill.CustomerName,
		CustomerPhone: bill.CustomerPhone,
		Lines:         lines,
		Subtotal:      bill.Subtotal,
		GSTAmount:     bill.GSTAmount,
		Total:         bill.Total,
		CreatedAt:     bill.CreatedAt,
		QRPNG:         w.paymentQR(bill.Total, bill.InvoiceNo),
	}

	path, err := infra.GenerateInvoicePDF(data, w.cfg.PDFStoragePath)
	if err != nil {
		return err
	}
	if err := w.cashRepo.UpdatePDFPath(ctx, bill.ID, path); err != nil {
		return fmt.Errorf("invoice_worker: save pdf path: %w", err)
	}

	w.mailCopy(ctx, bill.CustomerEmail, bill.CustomerName, bill.InvoiceNo, path)
	log.Info().Int64("invoice_no", bill.InvoiceNo).Str("path", path).Msg("invoice_worker: cash invoice rendered")
	return nil
}

func (w *InvoiceWorker) processCredit(ctx context.Context, companyID string, id uuid.UUID) error {
	bill, err := w.creditRepo.FindByID(ctx, companyID, id)
	if err != nil {
		return fmt.Errorf("invoice_worker: load credit bill: %w", err)
	}

	lines := reconcile.ParseBillLines(bill.Items)

	data := infra.InvoiceData{
		BusinessName:  w.cfg.BusinessName,
		Kind:          "credit",
		InvoiceNo:     bill.InvoiceNo,
		CustomerName:  bill.CustomerName,
		CustomerPhone: bill.CustomerPhone,
		Lines:         lines,
		Subtotal:      bill.Subtotal,
		GSTAmount:     bill.GSTAmount,
		Total:         bill.Total,
		CreatedAt:     bill.CreatedAt,
		QRPNG:         w.paymentQR(bill.Total, bill.InvoiceNo),
	}

	path, err := infra.GenerateInvoicePDF(data, w.cfg.PDFStoragePath)
	if err != nil {
		return err
	}
	if err := w.creditRepo.UpdatePDFPath(ctx, bill.ID, path); err != nil {
		return fmt.Errorf("invoice_worker: save pdf path: %w", err)
	}

	w.mailCopy(ctx, bill.CustomerEmail, bill.CustomerName, bill.InvoiceNo, path)
	log.Info().Int64("invoice_no", bill.InvoiceNo).Str("path", path).Msg("invoice_worker: credit invoice rendered")
	return nil
}

// paymentQR builds the UPI QR for the bill total. Returns nil when no payee
// VPA is configured, in which case the PDF simply omits the QR block.
func (w *InvoiceWorker) paymentQR(total decimal.Decimal, invoiceNo int64) []byte {
	if w.cfg.UPIAddress == "" {
		return nil
	}
	payload := infra.BuildUPIPayload(w.cfg.UPIAddress, w.cfg.BusinessName, total, "INV-"+strconv.FormatInt(invoiceNo, 10))
	png, err := infra.GenerateQRPNG(payload, 256)
	if err != nil {
		log.Warn().Err(err).Int64("invoice_no", invoiceNo).Msg("invoice_worker: qr generation failed")
		return nil
	}
	return png
}

// mailCopy queues the rendered invoice for email delivery. Best-effort: a
// full queue or missing address never fails the render job.
func (w *InvoiceWorker) mailCopy(ctx context.Context, to, customerName string, invoiceNo int64, pdfPath string) {
	if to == "" {
		return
	}
	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Please find attached invoice <b>#%d</b>. Thank you for your business.</p>",
		customerName, invoiceNo,
	)
	err := w.dispatcher.EnqueueEmail(ctx, EmailJobPayload{
		To:         to,
		Subject:    fmt.Sprintf("Invoice #%d from %s", invoiceNo, w.cfg.BusinessName),
		HTML:       body,
		Attachment: pdfPath,
	})
	if err != nil {
		log.Warn().Err(err).Int64("invoice_no", invoiceNo).Msg("invoice_worker: failed to queue invoice email")
	}
}
