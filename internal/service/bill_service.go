package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"billtrack/internal/dto"
	"billtrack/internal/model"
	"billtrack/internal/reconcile"
	"billtrack/internal/repository"
	"billtrack/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// BillService creates and manages cash and credit bills. Creation allocates
// the next invoice number and inserts the bill in one transaction, then
// queues the PDF render asynchronously.
//
// Note: creating a bill does not decrement catalog quantities. Stock impact
// is derived by the inventory analysis from the bill's line items.
type BillService interface {
	CreateCashBill(ctx context.Context, companyID string, req dto.CreateCashBillRequest) (*dto.BillResponse, error)
	CreateCreditBill(ctx context.Context, companyID string, req dto.CreateCreditBillRequest) (*dto.BillResponse, error)
	GetCashBill(ctx context.Context, companyID string, id uuid.UUID) (*dto.BillResponse, error)
	GetCreditBill(ctx context.Context, companyID string, id uuid.UUID) (*dto.BillResponse, error)
	ListCashBills(ctx context.Context, companyID string, limit, offset int) (*dto.BillListResponse, error)
	ListCreditBills(ctx context.Context, companyID string, limit, offset int) (*dto.BillListResponse, error)
	DeleteCashBill(ctx context.Context, companyID string, id uuid.UUID) error
	DeleteCreditBill(ctx context.Context, companyID string, id uuid.UUID) error
	MarkCreditBillPaid(ctx context.Context, companyID string, id uuid.UUID) (*dto.BillResponse, error)
}

type billService struct {
	cashBills   repository.CashBillRepository
	creditBills repository.CreditBillRepository
	dispatcher  *worker.Dispatcher
}

func NewBillService(cashBills repository.CashBillRepository, creditBills repository.CreditBillRepository, dispatcher *worker.Dispatcher) BillService {
	return &billService{cashBills: cashBills, creditBills: creditBills, dispatcher: dispatcher}
}

// billTotals computes subtotal, GST amount and grand total from the line
// items with decimal arithmetic throughout.
func billTotals(items []dto.BillItemRequest) (subtotal, gstAmount, total decimal.Decimal) {
	hundred := decimal.NewFromInt(100)
	for _, it := range items {
		lineAmount := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
		subtotal = subtotal.Add(lineAmount)
		gstAmount = gstAmount.Add(lineAmount.Mul(it.GST).Div(hundred))
	}
	subtotal = subtotal.Round(2)
	gstAmount = gstAmount.Round(2)
	total = subtotal.Add(gstAmount)
	return
}

// canonicalItems re-encodes the request lines with canonical camelCase keys.
// Only legacy rows carry aliased keys; everything written by this service is
// uniform.
func canonicalItems(items []dto.BillItemRequest) (json.RawMessage, error) {
	lines := make([]reconcile.BillLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, reconcile.BillLine{
			ItemCode:  it.ItemCode,
			ItemName:  it.ItemName,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			GST:       it.GST,
			HSN:       it.HSN,
		})
	}
	return json.Marshal(lines)
}

func (s *billService) CreateCashBill(ctx context.Context, companyID string, req dto.CreateCashBillRequest) (*dto.BillResponse, error) {
	items, err := canonicalItems(req.Items)
	if err != nil {
		return nil, err
	}
	subtotal, gstAmount, total := billTotals(req.Items)

	paymentMode := req.PaymentMode
	if paymentMode == "" {
		paymentMode = "cash"
	}

	bill := &model.CashBill{
		CompanyID:     companyID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Items:         items,
		Subtotal:      subtotal,
		GSTAmount:     gstAmount,
		Total:         total,
		PaymentMode:   paymentMode,
	}

	err = s.cashBills.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		no, err := s.cashBills.NextInvoiceNo(tx, companyID)
		if err != nil {
			return err
		}
		bill.InvoiceNo = no
		return s.cashBills.Create(ctx, tx, bill)
	})
	if err != nil {
		return nil, err
	}

	s.queuePDF(ctx, companyID, bill.ID, "cash", bill.InvoiceNo)
	return cashBillResponse(bill), nil
}

func (s *billService) CreateCreditBill(ctx context.Context, companyID string, req dto.CreateCreditBillRequest) (*dto.BillResponse, error) {
	items, err := canonicalItems(req.Items)
	if err != nil {
		return nil, err
	}
	subtotal, gstAmount, total := billTotals(req.Items)

	var customerID *uuid.UUID
	if req.CustomerID != nil {
		id, err := uuid.Parse(*req.CustomerID)
		if err != nil {
			return nil, ErrNotFound
		}
		customerID = &id
	}

	bill := &model.CreditBill{
		CompanyID:     companyID,
		CustomerID:    customerID,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		Items:         items,
		Subtotal:      subtotal,
		GSTAmount:     gstAmount,
		Total:         total,
		DueDate:       req.DueDate,
	}

	err = s.creditBills.DB().WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		no, err := s.creditBills.NextInvoiceNo(tx, companyID)
		if err != nil {
			return err
		}
		bill.InvoiceNo = no
		return s.creditBills.Create(ctx, tx, bill)
	})
	if err != nil {
		return nil, err
	}

	s.queuePDF(ctx, companyID, bill.ID, "credit", bill.InvoiceNo)
	return creditBillResponse(bill), nil
}

// queuePDF is fire-and-forget. A bill without a PDF is still a valid bill;
// the path stays empty until a later render.
func (s *billService) queuePDF(ctx context.Context, companyID string, billID uuid.UUID, kind string, invoiceNo int64) {
	if s.dispatcher == nil {
		return
	}
	err := s.dispatcher.EnqueueInvoicePDF(ctx, worker.InvoiceJobPayload{
		CompanyID: companyID,
		BillID:    billID.String(),
		Kind:      kind,
	})
	if err != nil {
		log.Warn().Err(err).Int64("invoice_no", invoiceNo).Str("kind", kind).Msg("failed to queue invoice pdf job")
	}
}

func (s *billService) GetCashBill(ctx context.Context, companyID string, id uuid.UUID) (*dto.BillResponse, error) {
	bill, err := s.cashBills.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cashBillResponse(bill), nil
}

func (s *billService) GetCreditBill(ctx context.Context, companyID string, id uuid.UUID) (*dto.BillResponse, error) {
	bill, err := s.creditBills.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return creditBillResponse(bill), nil
}

func (s *billService) ListCashBills(ctx context.Context, companyID string, limit, offset int) (*dto.BillListResponse, error) {
	bills, total, err := s.cashBills.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		out = append(out, *cashBillResponse(&bills[i]))
	}
	return &dto.BillListResponse{Bills: out, Total: total}, nil
}

func (s *billService) ListCreditBills(ctx context.Context, companyID string, limit, offset int) (*dto.BillListResponse, error) {
	bills, total, err := s.creditBills.List(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.BillResponse, 0, len(bills))
	for i := range bills {
		out = append(out, *creditBillResponse(&bills[i]))
	}
	return &dto.BillListResponse{Bills: out, Total: total}, nil
}

func (s *billService) DeleteCashBill(ctx context.Context, companyID string, id uuid.UUID) error {
	return s.cashBills.Delete(ctx, companyID, id)
}

func (s *billService) DeleteCreditBill(ctx context.Context, companyID string, id uuid.UUID) error {
	return s.creditBills.Delete(ctx, companyID, id)
}

func (s *billService) MarkCreditBillPaid(ctx context.Context, companyID string, id uuid.UUID) (*dto.BillResponse, error) {
	bill, err := s.creditBills.FindByID(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if bill.Paid {
		return nil, ErrAlreadyPaid
	}
	if err := s.creditBills.MarkPaid(ctx, companyID, id, time.Now()); err != nil {
		return nil, err
	}
	return s.GetCreditBill(ctx, companyID, id)
}

func billItems(raw json.RawMessage) []dto.BillItemRequest {
	lines := reconcile.ParseBillLines(raw)
	items := make([]dto.BillItemRequest, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.BillItemRequest{
			ItemCode:  l.ItemCode,
			ItemName:  l.ItemName,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			GST:       l.GST,
			HSN:       l.HSN,
		})
	}
	return items
}

func cashBillResponse(b *model.CashBill) *dto.BillResponse {
	return &dto.BillResponse{
		ID:            b.ID.String(),
		InvoiceNo:     b.InvoiceNo,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Items:         billItems(b.Items),
		Subtotal:      b.Subtotal,
		GSTAmount:     b.GSTAmount,
		Total:         b.Total,
		PaymentMode:   b.PaymentMode,
		PDFPath:       b.PDFPath,
		CreatedAt:     b.CreatedAt,
	}
}

func creditBillResponse(b *model.CreditBill) *dto.BillResponse {
	paid := b.Paid
	return &dto.BillResponse{
		ID:            b.ID.String(),
		InvoiceNo:     b.InvoiceNo,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		Items:         billItems(b.Items),
		Subtotal:      b.Subtotal,
		GSTAmount:     b.GSTAmount,
		Total:         b.Total,
		DueDate:       b.DueDate,
		Paid:          &paid,
		PDFPath:       b.PDFPath,
		CreatedAt:     b.CreatedAt,
	}
}
