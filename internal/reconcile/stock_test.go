package reconcile

import (
	"encoding/json"
	"testing"
	"time"

	"billtrack/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var analysisNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const analysisWindow = 30 * 24 * time.Hour

func product(code, name string, qty int) model.Product {
	return model.Product{
		ID:       uuid.New(),
		ItemCode: code,
		ItemName: name,
		Quantity: qty,
		Active:   true,
	}
}

func saleAt(code, name string, qty int, at time.Time) SoldItem {
	return SoldItem{
		ItemCode: code,
		ItemName: name,
		Quantity: qty,
		Source:   SourceManualEntry,
		SoldDate: at,
	}
}

func TestAnalyzeDerivesCurrentStock(t *testing.T) {
	products := []model.Product{product("P1", "Milk 1L", 10)}
	sold := []SoldItem{saleAt("P1", "Milk 1L", 4, analysisNow.Add(-24*time.Hour))}

	report := Analyze(products, sold, DefaultThresholds, analysisWindow, analysisNow)
	require.Len(t, report.Rows, 1)

	row := report.Rows[0]
	assert.Equal(t, 10, row.AvailableQuantity)
	assert.Equal(t, 4, row.TotalSold)
	assert.Equal(t, 6, row.CurrentStock)
	assert.Equal(t, StatusGoodStock, row.StockStatus)
	assert.Equal(t, 4, row.SalesBreakdown[SourceManualEntry])
}

func TestAnalyzeClampsStockAtZero(t *testing.T) {
	products := []model.Product{product("P1", "Milk 1L", 2)}
	sold := []SoldItem{saleAt("P1", "Milk 1L", 10, analysisNow.Add(-time.Hour))}

	report := Analyze(products, sold, DefaultThresholds, analysisWindow, analysisNow)
	require.Len(t, report.Rows, 1)

	row := report.Rows[0]
	assert.Equal(t, 0, row.CurrentStock, "oversold stock must clamp at zero, never go negative")
	assert.Equal(t, 10, row.TotalSold, "total sold still reflects the raw sum")
	assert.Equal(t, StatusOutOfStock, row.StockStatus)
}

func TestAnalyzeZeroQuantityIsOutOfStockAndCritical(t *testing.T) {
	products := []model.Product{product("P1", "Milk 1L", 0)}

	report := Analyze(products, nil, DefaultThresholds, analysisWindow, analysisNow)
	require.Len(t, report.Rows, 1)

	assert.Equal(t, StatusOutOfStock, report.Rows[0].StockStatus)
	require.Len(t, report.CriticalAlerts, 1)
	assert.Equal(t, SeverityCritical, report.CriticalAlerts[0].Severity)
	assert.Equal(t, 1, report.Summary.OutOfStock)
}

// The two endpoints bucket the same stock level differently: 5 left out of 10
// is MEDIUM_STOCK under the default thresholds but LOW_STOCK under the wider
// unified ones.
func TestAnalyzeThresholdSetsDisagree(t *testing.T) {
	products := []model.Product{product("P1", "Fridge", 10)}
	sold := []SoldItem{saleAt("P1", "Fridge", 5, analysisNow.Add(-48*time.Hour))}

	def := Analyze(products, sold, DefaultThresholds, analysisWindow, analysisNow)
	uni := Analyze(products, sold, UnifiedThresholds, analysisWindow, analysisNow)

	assert.Equal(t, StatusMediumStock, def.Rows[0].StockStatus)
	assert.Equal(t, StatusLowStock, uni.Rows[0].StockStatus)
	assert.Empty(t, def.LowStockAlerts)
	assert.Len(t, uni.LowStockAlerts, 1)
}

func TestAnalyzeLowStockAlert(t *testing.T) {
	products := []model.Product{product("P1", "Milk 1L", 3)}
	sold := []SoldItem{saleAt("P1", "Milk 1L", 1, analysisNow.Add(-time.Hour))}

	report := Analyze(products, sold, DefaultThresholds, analysisWindow, analysisNow)

	row := report.Rows[0]
	assert.Equal(t, 2, row.CurrentStock)
	assert.Equal(t, StatusLowStock, row.StockStatus)
	require.Len(t, report.LowStockAlerts, 1)
	assert.Equal(t, SeverityLowStock, report.LowStockAlerts[0].Severity)
	assert.Empty(t, report.CriticalAlerts)
}

func TestAnalyzeVelocityAndRapidDepletion(t *testing.T) {
	// 30 units sold inside the 30-day window: velocity 1/day. 6 left means
	// ~6 days of stock, which is under the rapid-depletion horizon.
	products := []model.Product{product("P1", "Milk 1L", 36)}
	sold := []SoldItem{saleAt("P1", "Milk 1L", 30, analysisNow.Add(-10*24*time.Hour))}

	report := Analyze(products, sold, DefaultThresholds, analysisWindow, analysisNow)

	row := report.Rows[0]
	assert.InDelta(t, 1.0, row.SalesVelocity, 0.001)
	assert.Equal(t, 6, row.DaysOfStock)
	require.Len(t, report.RapidDepletionAlerts, 1)
	assert.Equal(t, SeverityRapidDepletion, report.RapidDepletionAlerts[0].Severity)
}

func TestAnalyzeNoSalesMeansIndefiniteStock(t *testing.T) {
	products := []model.Product{product("P1", "Milk 1L", 50)}

	report := Analyze(products, nil, DefaultThresholds, analysisWindow, analysisNow)

	row := report.Rows[0]
	assert.Zero(t, row.SalesVelocity)
	assert.Equal(t, DaysOfStockIndefinite, row.DaysOfStock)
	assert.Empty(t, report.RapidDepletionAlerts)
}

func TestAnalyzeSalesOutsideWindowCountTowardStockNotVelocity(t *testing.T) {
	products := []model.Product{product("P1", "Milk 1L", 20)}
	sold := []SoldItem{saleAt("P1", "Milk 1L", 10, analysisNow.Add(-60*24*time.Hour))}

	report := Analyze(products, sold, DefaultThresholds, analysisWindow, analysisNow)

	row := report.Rows[0]
	assert.Equal(t, 10, row.TotalSold)
	assert.Equal(t, 10, row.CurrentStock)
	assert.Zero(t, row.SalesVelocity, "old sales deplete stock but carry no velocity")
}

func TestAnalyzeDeduplicatesBeforeMatching(t *testing.T) {
	products := []model.Product{product("P1", "Milk 1L", 10)}
	dup := saleAt("P1", "Milk 1L", 4, analysisNow.Add(-time.Hour))
	dup.Invoice = "INV-7"

	report := Analyze(products, []SoldItem{dup, dup}, DefaultThresholds, analysisWindow, analysisNow)

	assert.Equal(t, 4, report.Rows[0].TotalSold, "identical records must be counted exactly once")
}

func TestAnalyzeSummaryAggregates(t *testing.T) {
	products := []model.Product{
		product("P1", "Milk 1L", 0),
		product("P2", "Bread", 100),
	}
	sold := []SoldItem{
		saleAt("P2", "Bread", 5, analysisNow.Add(-time.Hour)),
		{ItemCode: "P2", ItemName: "Bread", Quantity: 3, Source: SourceCashBill, Invoice: "INV-1", SoldDate: analysisNow.Add(-2 * time.Hour)},
	}

	report := Analyze(products, sold, DefaultThresholds, analysisWindow, analysisNow)

	s := report.Summary
	assert.Equal(t, 2, s.TotalProducts)
	assert.Equal(t, 1, s.OutOfStock)
	assert.Equal(t, 1, s.GoodStock)
	assert.Equal(t, 8, s.TotalUnitsSold)
	assert.Equal(t, 5, s.SourceTotals[SourceManualEntry])
	assert.Equal(t, 3, s.SourceTotals[SourceCashBill])
}

func TestAnalyzeEmptyCatalog(t *testing.T) {
	report := Analyze(nil, []SoldItem{saleAt("P1", "Milk", 2, analysisNow)}, DefaultThresholds, analysisWindow, analysisNow)

	assert.Empty(t, report.Rows)
	assert.Zero(t, report.Summary.TotalProducts)
}

func TestAnalyzeAlertListsSerializeAsArraysWhenEmpty(t *testing.T) {
	products := []model.Product{product("P1", "Milk 1L", 50)}

	report := Analyze(products, nil, DefaultThresholds, analysisWindow, analysisNow)

	data, err := json.Marshal(report)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"criticalAlerts":[]`)
	assert.Contains(t, string(data), `"lowStockAlerts":[]`)
	assert.Contains(t, string(data), `"rapidDepletionAlerts":[]`)
}
