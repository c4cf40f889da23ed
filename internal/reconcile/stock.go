package reconcile

import (
	"fmt"
	"time"

	"billtrack/internal/model"
)

// StockStatus is the coarse bucket derived from current stock thresholds.
type StockStatus string

const (
	StatusOutOfStock  StockStatus = "OUT_OF_STOCK"
	StatusLowStock    StockStatus = "LOW_STOCK"
	StatusMediumStock StockStatus = "MEDIUM_STOCK"
	StatusGoodStock   StockStatus = "GOOD_STOCK"
)

// Alert severities.
const (
	SeverityCritical       = "CRITICAL"
	SeverityLowStock       = "LOW_STOCK"
	SeverityRapidDepletion = "RAPID_DEPLETION"
)

// DaysOfStockIndefinite is the sentinel for "no qualifying sales, stock lasts
// indefinitely".
const DaysOfStockIndefinite = 999

// rapidDepletionDays: a product burning through its remaining stock within
// this many days raises a RAPID_DEPLETION alert.
const rapidDepletionDays = 7

// Thresholds parameterize the stock-status buckets. The two legacy analysis
// endpoints historically disagreed on these values, so each endpoint passes
// its own set into the shared engine.
type Thresholds struct {
	Low    int
	Medium int
}

var (
	// DefaultThresholds backs /inventory/analysis.
	DefaultThresholds = Thresholds{Low: 2, Medium: 5}
	// UnifiedThresholds backs /inventory/unified-analysis.
	UnifiedThresholds = Thresholds{Low: 5, Medium: 10}
)

// Alert is data, not an exception.
type Alert struct {
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

// Row is the derived per-product analysis record. Not persisted.
type Row struct {
	ProductID         string         `json:"productId"`
	ItemCode          string         `json:"itemCode"`
	ItemName          string         `json:"itemName"`
	AvailableQuantity int            `json:"availableQuantity"`
	TotalSold         int            `json:"totalSold"`
	CurrentStock      int            `json:"currentStock"`
	StockStatus       StockStatus    `json:"stockStatus"`
	SalesVelocity     float64        `json:"salesVelocity"` // units per day over the trailing window
	DaysOfStock       int            `json:"daysOfStock"`
	Alerts            []Alert        `json:"alerts"`
	SalesBreakdown    map[Source]int `json:"salesBreakdown"`
}

// AlertEntry is a row-level alert surfaced in the report's flat alert lists.
type AlertEntry struct {
	ItemCode     string `json:"itemCode"`
	ItemName     string `json:"itemName"`
	CurrentStock int    `json:"currentStock"`
	DaysOfStock  int    `json:"daysOfStock"`
	Severity     string `json:"severity"`
	Message      string `json:"message"`
}

// Summary aggregates the report.
type Summary struct {
	TotalProducts  int            `json:"totalProducts"`
	OutOfStock     int            `json:"outOfStock"`
	LowStock       int            `json:"lowStock"`
	MediumStock    int            `json:"mediumStock"`
	GoodStock      int            `json:"goodStock"`
	TotalUnitsSold int            `json:"totalUnitsSold"`
	SourceTotals   map[Source]int `json:"sourceTotals"`
}

// Report is the full reconciliation result for one analysis call.
type Report struct {
	Rows                 []Row        `json:"inventoryAnalysis"`
	Summary              Summary      `json:"summary"`
	CriticalAlerts       []AlertEntry `json:"criticalAlerts"`
	LowStockAlerts       []AlertEntry `json:"lowStockAlerts"`
	RapidDepletionAlerts []AlertEntry `json:"rapidDepletionAlerts"`
}

// Analyze folds matched, deduplicated sold items into one Row per product.
// sold may contain duplicates; deduplication happens here, once, before
// matching. window is the trailing period for the velocity estimate and now
// is its upper bound (injected for testability).
//
// currentStock is clamped at zero: the catalog quantity is the nominal count
// at last restock and oversold/double-matched items must not drive it
// negative.
func Analyze(products []model.Product, sold []SoldItem, th Thresholds, window time.Duration, now time.Time) *Report {
	deduped := Deduplicate(sold)
	windowDays := window.Hours() / 24
	if windowDays <= 0 {
		windowDays = 1
	}
	windowStart := now.Add(-window)

	// Alert lists start as empty slices so the response always carries
	// arrays, never null.
	report := &Report{
		Rows:                 make([]Row, 0, len(products)),
		CriticalAlerts:       []AlertEntry{},
		LowStockAlerts:       []AlertEntry{},
		RapidDepletionAlerts: []AlertEntry{},
		Summary: Summary{
			TotalProducts: len(products),
			SourceTotals:  map[Source]int{},
		},
	}

	for _, p := range products {
		row := Row{
			ProductID:         p.ID.String(),
			ItemCode:          p.ItemCode,
			ItemName:          p.ItemName,
			AvailableQuantity: p.Quantity,
			Alerts:            []Alert{},
			SalesBreakdown:    map[Source]int{},
		}

		windowSold := 0
		for _, it := range deduped {
			if !Matches(p.ItemCode, p.ItemName, it) {
				continue
			}
			row.TotalSold += it.Quantity
			row.SalesBreakdown[it.Source] += it.Quantity
			if !it.SoldDate.Before(windowStart) && !it.SoldDate.After(now) {
				windowSold += it.Quantity
			}
		}

		row.CurrentStock = p.Quantity - row.TotalSold
		if row.CurrentStock < 0 {
			row.CurrentStock = 0
		}
		row.StockStatus = statusFor(row.CurrentStock, th)
		row.SalesVelocity = float64(windowSold) / windowDays
		if row.SalesVelocity > 0 {
			row.DaysOfStock = int(float64(row.CurrentStock) / row.SalesVelocity)
		} else {
			row.DaysOfStock = DaysOfStockIndefinite
		}

		appendAlerts(report, &row, th)

		report.Summary.TotalUnitsSold += row.TotalSold
		for src, qty := range row.SalesBreakdown {
			report.Summary.SourceTotals[src] += qty
		}
		switch row.StockStatus {
		case StatusOutOfStock:
			report.Summary.OutOfStock++
		case StatusLowStock:
			report.Summary.LowStock++
		case StatusMediumStock:
			report.Summary.MediumStock++
		default:
			report.Summary.GoodStock++
		}

		report.Rows = append(report.Rows, row)
	}

	return report
}

func statusFor(currentStock int, th Thresholds) StockStatus {
	switch {
	case currentStock <= 0:
		return StatusOutOfStock
	case currentStock <= th.Low:
		return StatusLowStock
	case currentStock <= th.Medium:
		return StatusMediumStock
	default:
		return StatusGoodStock
	}
}

func appendAlerts(report *Report, row *Row, th Thresholds) {
	entry := func(severity, msg string) AlertEntry {
		return AlertEntry{
			ItemCode:     row.ItemCode,
			ItemName:     row.ItemName,
			CurrentStock: row.CurrentStock,
			DaysOfStock:  row.DaysOfStock,
			Severity:     severity,
			Message:      msg,
		}
	}

	if row.CurrentStock <= 0 {
		msg := fmt.Sprintf("%s is out of stock", row.ItemName)
		row.Alerts = append(row.Alerts, Alert{Severity: SeverityCritical, Message: msg})
		report.CriticalAlerts = append(report.CriticalAlerts, entry(SeverityCritical, msg))
	} else if row.CurrentStock <= th.Low {
		msg := fmt.Sprintf("%s is low on stock (%d left)", row.ItemName, row.CurrentStock)
		row.Alerts = append(row.Alerts, Alert{Severity: SeverityLowStock, Message: msg})
		report.LowStockAlerts = append(report.LowStockAlerts, entry(SeverityLowStock, msg))
	}

	if row.SalesVelocity > 0 && row.DaysOfStock <= rapidDepletionDays {
		msg := fmt.Sprintf("%s will run out in ~%d days at the current rate", row.ItemName, row.DaysOfStock)
		row.Alerts = append(row.Alerts, Alert{Severity: SeverityRapidDepletion, Message: msg})
		report.RapidDepletionAlerts = append(report.RapidDepletionAlerts, entry(SeverityRapidDepletion, msg))
	}
}
