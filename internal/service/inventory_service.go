package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"billtrack/internal/model"
	"billtrack/internal/reconcile"
	"billtrack/internal/repository"
	"billtrack/internal/worker"

	"github.com/rs/zerolog/log"
)

// UnifiedSales is the merged, deduplicated sales feed plus per-source totals.
type UnifiedSales struct {
	SoldProducts []reconcile.SoldItem     `json:"soldProducts"`
	TotalRecords int                      `json:"totalRecords"`
	TotalUnits   int                      `json:"totalUnits"`
	SourceTotals map[reconcile.Source]int `json:"sourceTotals"`
}

// InventoryService runs the reconciliation analysis over the catalog and the
// three sales sources.
//
// The catalog read is fatal: without products there is nothing to analyze.
// Each sales source degrades independently to an empty slice with a warning,
// so one broken collection cannot take the whole analysis down.
type InventoryService interface {
	Analysis(ctx context.Context, companyID string) (*reconcile.Report, error)
	UnifiedAnalysis(ctx context.Context, companyID string) (*reconcile.Report, error)
	UnifiedSales(ctx context.Context, companyID string) (*UnifiedSales, error)
}

// AlertDispatcher is the slice of the job dispatcher the alert fan-out needs.
// *worker.Dispatcher satisfies it.
type AlertDispatcher interface {
	EnqueueEmail(ctx context.Context, payload interface{}) error
}

type inventoryService struct {
	products     repository.ProductRepository
	soldProducts repository.SoldProductRepository
	cashBills    repository.CashBillRepository
	creditBills  repository.CreditBillRepository
	dispatcher   AlertDispatcher
	notifier     reconcile.StockNotifier
	alertTo      string
	window       time.Duration
}

func NewInventoryService(
	products repository.ProductRepository,
	soldProducts repository.SoldProductRepository,
	cashBills repository.CashBillRepository,
	creditBills repository.CreditBillRepository,
	dispatcher AlertDispatcher,
	notifier reconcile.StockNotifier,
	alertRecipient string,
	velocityWindowDays int,
) InventoryService {
	if velocityWindowDays <= 0 {
		velocityWindowDays = 30
	}
	return &inventoryService{
		products:     products,
		soldProducts: soldProducts,
		cashBills:    cashBills,
		creditBills:  creditBills,
		dispatcher:   dispatcher,
		notifier:     notifier,
		alertTo:      alertRecipient,
		window:       time.Duration(velocityWindowDays) * 24 * time.Hour,
	}
}

// Analysis is the classic endpoint with the tight thresholds.
func (s *inventoryService) Analysis(ctx context.Context, companyID string) (*reconcile.Report, error) {
	return s.analyze(ctx, companyID, reconcile.DefaultThresholds)
}

// UnifiedAnalysis uses the wider thresholds the dashboard expects.
func (s *inventoryService) UnifiedAnalysis(ctx context.Context, companyID string) (*reconcile.Report, error) {
	return s.analyze(ctx, companyID, reconcile.UnifiedThresholds)
}

func (s *inventoryService) analyze(ctx context.Context, companyID string, th reconcile.Thresholds) (*reconcile.Report, error) {
	products, err := s.products.List(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("inventory: load catalog: %w", err)
	}

	sold := s.collectSales(ctx, companyID)
	report := reconcile.Analyze(products, sold, th, s.window, time.Now())

	s.fanOutAlerts(ctx, report)
	return report, nil
}

// UnifiedSales returns the merged deduplicated sales feed without the
// per-product analysis.
func (s *inventoryService) UnifiedSales(ctx context.Context, companyID string) (*UnifiedSales, error) {
	sold := reconcile.Deduplicate(s.collectSales(ctx, companyID))

	out := &UnifiedSales{
		SoldProducts: sold,
		TotalRecords: len(sold),
		SourceTotals: map[reconcile.Source]int{},
	}
	for _, it := range sold {
		out.TotalUnits += it.Quantity
		out.SourceTotals[it.Source] += it.Quantity
	}
	return out, nil
}

// collectSales fetches the three sources concurrently. Failures are logged
// and replaced with empty slices.
func (s *inventoryService) collectSales(ctx context.Context, companyID string) []reconcile.SoldItem {
	var (
		wg     sync.WaitGroup
		manual []model.SoldProduct
		cash   []model.CashBill
		credit []model.CreditBill
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		if manual, err = s.soldProducts.List(ctx, companyID); err != nil {
			log.Warn().Err(err).Msg("inventory: manual sales unavailable, continuing without")
			manual = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if cash, err = s.cashBills.ListAll(ctx, companyID); err != nil {
			log.Warn().Err(err).Msg("inventory: cash bills unavailable, continuing without")
			cash = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		if credit, err = s.creditBills.ListAll(ctx, companyID); err != nil {
			log.Warn().Err(err).Msg("inventory: credit bills unavailable, continuing without")
			credit = nil
		}
	}()
	wg.Wait()

	return reconcile.Aggregate(manual, cash, credit)
}

// fanOutAlerts pushes critical and low-stock findings to the alert email
// queue and the live pub/sub channel. Both paths are best-effort.
func (s *inventoryService) fanOutAlerts(ctx context.Context, report *reconcile.Report) {
	if s.notifier != nil {
		for _, a := range report.CriticalAlerts {
			s.notifier.NotifyStock(ctx, reconcile.StockEvent{
				ItemCode:     a.ItemCode,
				ItemName:     a.ItemName,
				CurrentStock: a.CurrentStock,
				Severity:     a.Severity,
			})
		}
		for _, a := range report.LowStockAlerts {
			s.notifier.NotifyStock(ctx, reconcile.StockEvent{
				ItemCode:     a.ItemCode,
				ItemName:     a.ItemName,
				CurrentStock: a.CurrentStock,
				Severity:     a.Severity,
			})
		}
	}

	if s.dispatcher == nil || s.alertTo == "" {
		return
	}

	// One mail per qualifying row. A failed enqueue is logged and skipped so
	// the remaining alerts still go out.
	alerts := append(append([]reconcile.AlertEntry{}, report.CriticalAlerts...), report.LowStockAlerts...)
	for _, a := range alerts {
		err := s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			To:      s.alertTo,
			Subject: fmt.Sprintf("Stock alert: %s (%s)", a.ItemName, a.Severity),
			HTML: fmt.Sprintf("<h3>Stock alert</h3><p><b>%s</b> (%s): %s</p><p>Current stock: %d</p>",
				a.ItemName, a.Severity, a.Message, a.CurrentStock),
		})
		if err != nil {
			log.Warn().Err(err).Str("item_code", a.ItemCode).Msg("inventory: failed to queue alert email")
		}
	}
}
