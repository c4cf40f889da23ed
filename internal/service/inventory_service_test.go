package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"billtrack/internal/model"
	"billtrack/internal/reconcile"
	"billtrack/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── stubs ────────────────────────────────────────────────────────────────────

type stubProductRepo struct {
	products []model.Product
	err      error
}

func (s *stubProductRepo) Create(context.Context, *model.Product) error { return nil }
func (s *stubProductRepo) FindByID(context.Context, string, uuid.UUID) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubProductRepo) FindByItemCode(context.Context, string, string) (*model.Product, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubProductRepo) List(context.Context, string) ([]model.Product, error) {
	return s.products, s.err
}
func (s *stubProductRepo) Update(context.Context, *model.Product) error          { return nil }
func (s *stubProductRepo) SoftDelete(context.Context, string, uuid.UUID) error   { return nil }
func (s *stubProductRepo) Restock(context.Context, string, uuid.UUID, int) error { return nil }

type stubSoldRepo struct {
	rows []model.SoldProduct
	err  error
}

func (s *stubSoldRepo) Create(context.Context, *model.SoldProduct) error { return nil }
func (s *stubSoldRepo) List(context.Context, string) ([]model.SoldProduct, error) {
	return s.rows, s.err
}
func (s *stubSoldRepo) Delete(context.Context, string, uuid.UUID) error { return nil }

type stubCashRepo struct {
	bills []model.CashBill
	err   error
}

func (s *stubCashRepo) Create(context.Context, *gorm.DB, *model.CashBill) error { return nil }
func (s *stubCashRepo) FindByID(context.Context, string, uuid.UUID) (*model.CashBill, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCashRepo) List(context.Context, string, int, int) ([]model.CashBill, int64, error) {
	return nil, 0, nil
}
func (s *stubCashRepo) ListAll(context.Context, string) ([]model.CashBill, error) {
	return s.bills, s.err
}
func (s *stubCashRepo) Delete(context.Context, string, uuid.UUID) error        { return nil }
func (s *stubCashRepo) UpdatePDFPath(context.Context, uuid.UUID, string) error { return nil }
func (s *stubCashRepo) NextInvoiceNo(*gorm.DB, string) (int64, error)          { return 1, nil }
func (s *stubCashRepo) DB() *gorm.DB                                           { return nil }

type stubCreditRepo struct {
	bills []model.CreditBill
	err   error
}

func (s *stubCreditRepo) Create(context.Context, *gorm.DB, *model.CreditBill) error { return nil }
func (s *stubCreditRepo) FindByID(context.Context, string, uuid.UUID) (*model.CreditBill, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubCreditRepo) List(context.Context, string, int, int) ([]model.CreditBill, int64, error) {
	return nil, 0, nil
}
func (s *stubCreditRepo) ListAll(context.Context, string) ([]model.CreditBill, error) {
	return s.bills, s.err
}
func (s *stubCreditRepo) Delete(context.Context, string, uuid.UUID) error            { return nil }
func (s *stubCreditRepo) UpdatePDFPath(context.Context, uuid.UUID, string) error     { return nil }
func (s *stubCreditRepo) MarkPaid(context.Context, string, uuid.UUID, time.Time) error {
	return nil
}
func (s *stubCreditRepo) NextInvoiceNo(*gorm.DB, string) (int64, error) { return 1, nil }
func (s *stubCreditRepo) DB() *gorm.DB                                  { return nil }

type stubNotifier struct {
	events []reconcile.StockEvent
}

func (s *stubNotifier) NotifyStock(_ context.Context, e reconcile.StockEvent) {
	s.events = append(s.events, e)
}

// ── tests ────────────────────────────────────────────────────────────────────

func newTestInventoryService(p *stubProductRepo, sp *stubSoldRepo, cb *stubCashRepo, cr *stubCreditRepo, n reconcile.StockNotifier) InventoryService {
	return NewInventoryService(p, sp, cb, cr, nil, n, "", 30)
}

func TestAnalysisMergesAllThreeSources(t *testing.T) {
	now := time.Now()
	products := &stubProductRepo{products: []model.Product{
		{ID: uuid.New(), ItemCode: "P1", ItemName: "Milk 1L", Quantity: 20, Active: true},
	}}
	sold := &stubSoldRepo{rows: []model.SoldProduct{
		{ItemCode: "P1", ItemName: "Milk 1L", Quantity: 2, SoldDate: now},
	}}
	cash := &stubCashRepo{bills: []model.CashBill{
		{InvoiceNo: 1, Items: json.RawMessage(`[{"itemCode":"P1","quantity":3}]`), CreatedAt: now},
	}}
	credit := &stubCreditRepo{bills: []model.CreditBill{
		{InvoiceNo: 1, Items: json.RawMessage(`[{"itemCode":"P1","quantity":4}]`), CreatedAt: now},
	}}

	svc := newTestInventoryService(products, sold, cash, credit, nil)
	report, err := svc.Analysis(context.Background(), "acme")
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)

	row := report.Rows[0]
	assert.Equal(t, 9, row.TotalSold)
	assert.Equal(t, 11, row.CurrentStock)
	assert.Equal(t, 2, row.SalesBreakdown[reconcile.SourceManualEntry])
	assert.Equal(t, 3, row.SalesBreakdown[reconcile.SourceCashBill])
	assert.Equal(t, 4, row.SalesBreakdown[reconcile.SourceCreditBill])
}

func TestAnalysisCatalogFailureIsFatal(t *testing.T) {
	products := &stubProductRepo{err: errors.New("connection refused")}

	svc := newTestInventoryService(products, &stubSoldRepo{}, &stubCashRepo{}, &stubCreditRepo{}, nil)
	_, err := svc.Analysis(context.Background(), "acme")
	assert.Error(t, err, "no catalog means no analysis")
}

func TestAnalysisSurvivesOneSourceFailing(t *testing.T) {
	now := time.Now()
	products := &stubProductRepo{products: []model.Product{
		{ID: uuid.New(), ItemCode: "P1", ItemName: "Milk 1L", Quantity: 10, Active: true},
	}}
	sold := &stubSoldRepo{rows: []model.SoldProduct{
		{ItemCode: "P1", ItemName: "Milk 1L", Quantity: 2, SoldDate: now},
	}}
	cash := &stubCashRepo{err: errors.New("cash bills table is on fire")}
	credit := &stubCreditRepo{}

	svc := newTestInventoryService(products, sold, cash, credit, nil)
	report, err := svc.Analysis(context.Background(), "acme")
	require.NoError(t, err, "a broken sales source degrades, it does not fail the call")

	row := report.Rows[0]
	assert.Equal(t, 2, row.TotalSold, "only the healthy sources contribute")
	assert.Equal(t, 8, row.CurrentStock)
}

func TestAnalysisNotifiesCriticalStock(t *testing.T) {
	now := time.Now()
	products := &stubProductRepo{products: []model.Product{
		{ID: uuid.New(), ItemCode: "P1", ItemName: "Milk 1L", Quantity: 1, Active: true},
	}}
	sold := &stubSoldRepo{rows: []model.SoldProduct{
		{ItemCode: "P1", ItemName: "Milk 1L", Quantity: 5, SoldDate: now},
	}}

	notifier := &stubNotifier{}
	svc := newTestInventoryService(products, sold, &stubCashRepo{}, &stubCreditRepo{}, notifier)
	_, err := svc.Analysis(context.Background(), "acme")
	require.NoError(t, err)

	require.Len(t, notifier.events, 1)
	assert.Equal(t, "P1", notifier.events[0].ItemCode)
	assert.Equal(t, reconcile.SeverityCritical, notifier.events[0].Severity)
	assert.Zero(t, notifier.events[0].CurrentStock)
}

func TestUnifiedAnalysisUsesWiderThresholds(t *testing.T) {
	products := &stubProductRepo{products: []model.Product{
		{ID: uuid.New(), ItemCode: "P1", ItemName: "Milk 1L", Quantity: 4, Active: true},
	}}

	svc := newTestInventoryService(products, &stubSoldRepo{}, &stubCashRepo{}, &stubCreditRepo{}, nil)

	def, err := svc.Analysis(context.Background(), "acme")
	require.NoError(t, err)
	uni, err := svc.UnifiedAnalysis(context.Background(), "acme")
	require.NoError(t, err)

	assert.Equal(t, reconcile.StatusMediumStock, def.Rows[0].StockStatus)
	assert.Equal(t, reconcile.StatusLowStock, uni.Rows[0].StockStatus)
}

func TestUnifiedSalesDeduplicates(t *testing.T) {
	now := time.Now()
	dup := model.SoldProduct{ItemCode: "P1", ItemName: "Milk", Quantity: 2, Invoice: "M-1", SoldDate: now}
	sold := &stubSoldRepo{rows: []model.SoldProduct{dup, dup}}

	svc := newTestInventoryService(&stubProductRepo{}, sold, &stubCashRepo{}, &stubCreditRepo{}, nil)
	out, err := svc.UnifiedSales(context.Background(), "acme")
	require.NoError(t, err)

	assert.Equal(t, 1, out.TotalRecords)
	assert.Equal(t, 2, out.TotalUnits)
	assert.Equal(t, 2, out.SourceTotals[reconcile.SourceManualEntry])
}

type stubAlertDispatcher struct {
	emails   []worker.EmailJobPayload
	failNext int // fail this many leading calls
}

func (s *stubAlertDispatcher) EnqueueEmail(_ context.Context, payload interface{}) error {
	if s.failNext > 0 {
		s.failNext--
		return errors.New("redis gone")
	}
	s.emails = append(s.emails, payload.(worker.EmailJobPayload))
	return nil
}

func TestAnalysisQueuesOneEmailPerAlertRow(t *testing.T) {
	now := time.Now()
	products := &stubProductRepo{products: []model.Product{
		{ID: uuid.New(), ItemCode: "P1", ItemName: "Milk 1L", Quantity: 1, Active: true},
		{ID: uuid.New(), ItemCode: "P2", ItemName: "Bread", Quantity: 20, Active: true},
	}}
	sold := &stubSoldRepo{rows: []model.SoldProduct{
		{ItemCode: "P1", ItemName: "Milk 1L", Quantity: 5, SoldDate: now},
		{ItemCode: "P2", ItemName: "Bread", Quantity: 18, SoldDate: now},
	}}

	dispatcher := &stubAlertDispatcher{}
	svc := NewInventoryService(products, sold, &stubCashRepo{}, &stubCreditRepo{}, dispatcher, nil, "alerts@acme.test", 30)
	_, err := svc.Analysis(context.Background(), "acme")
	require.NoError(t, err)

	require.Len(t, dispatcher.emails, 2, "one mail per qualifying row, not a digest")
	assert.Contains(t, dispatcher.emails[0].Subject, "Milk 1L")
	assert.Contains(t, dispatcher.emails[0].Subject, reconcile.SeverityCritical)
	assert.Contains(t, dispatcher.emails[1].Subject, "Bread")
	assert.Contains(t, dispatcher.emails[1].Subject, reconcile.SeverityLowStock)
	for _, e := range dispatcher.emails {
		assert.Equal(t, "alerts@acme.test", e.To)
	}
}

func TestAnalysisAlertEnqueueFailureDoesNotBlockOthers(t *testing.T) {
	now := time.Now()
	products := &stubProductRepo{products: []model.Product{
		{ID: uuid.New(), ItemCode: "P1", ItemName: "Milk 1L", Quantity: 1, Active: true},
		{ID: uuid.New(), ItemCode: "P2", ItemName: "Bread", Quantity: 20, Active: true},
	}}
	sold := &stubSoldRepo{rows: []model.SoldProduct{
		{ItemCode: "P1", ItemName: "Milk 1L", Quantity: 5, SoldDate: now},
		{ItemCode: "P2", ItemName: "Bread", Quantity: 18, SoldDate: now},
	}}

	dispatcher := &stubAlertDispatcher{failNext: 1}
	svc := NewInventoryService(products, sold, &stubCashRepo{}, &stubCreditRepo{}, dispatcher, nil, "alerts@acme.test", 30)
	report, err := svc.Analysis(context.Background(), "acme")
	require.NoError(t, err, "alert delivery is best-effort")

	require.Len(t, dispatcher.emails, 1, "the failed enqueue is skipped, the rest still go out")
	assert.Contains(t, dispatcher.emails[0].Subject, "Bread")
	require.Len(t, report.CriticalAlerts, 1)
	require.Len(t, report.LowStockAlerts, 1)
}
