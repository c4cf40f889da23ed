package reconcile

import (
	"encoding/json"
	"testing"
	"time"

	"billtrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBillLinesCanonicalKeys(t *testing.T) {
	raw := json.RawMessage(`[{"itemCode":"P1","itemName":"Milk 1L","quantity":3,"unitPrice":42.50,"gst":5,"hsn":"0401"}]`)

	lines := ParseBillLines(raw)
	require.Len(t, lines, 1)

	l := lines[0]
	assert.Equal(t, "P1", l.ItemCode)
	assert.Equal(t, "Milk 1L", l.ItemName)
	assert.Equal(t, 3, l.Quantity)
	assert.Equal(t, "42.5", l.UnitPrice.String())
	assert.Equal(t, "5", l.GST.String())
	assert.Equal(t, "0401", l.HSN)
}

func TestParseBillLinesLegacyAliases(t *testing.T) {
	raw := json.RawMessage(`[{"code":"P1","itemname":"Milk 1L","quantity":2,"rate":10}]`)

	lines := ParseBillLines(raw)
	require.Len(t, lines, 1)

	assert.Equal(t, "P1", lines[0].ItemCode)
	assert.Equal(t, "Milk 1L", lines[0].ItemName)
	assert.Equal(t, "10", lines[0].UnitPrice.String())
}

func TestParseBillLinesCanonicalKeyWinsOverAlias(t *testing.T) {
	raw := json.RawMessage(`[{"itemCode":"NEW","code":"OLD","itemName":"New Name","itemname":"Old Name","unitPrice":7,"rate":9}]`)

	lines := ParseBillLines(raw)
	require.Len(t, lines, 1)

	assert.Equal(t, "NEW", lines[0].ItemCode)
	assert.Equal(t, "New Name", lines[0].ItemName)
	assert.Equal(t, "7", lines[0].UnitPrice.String())
}

func TestParseBillLinesMissingFieldsDefault(t *testing.T) {
	raw := json.RawMessage(`[{"itemName":"Mystery"}]`)

	lines := ParseBillLines(raw)
	require.Len(t, lines, 1)

	assert.Empty(t, lines[0].ItemCode)
	assert.Zero(t, lines[0].Quantity, "missing quantity defaults to zero, not an error")
	assert.True(t, lines[0].UnitPrice.IsZero())
}

func TestParseBillLinesNumericStrings(t *testing.T) {
	// Legacy rows sometimes stored numbers as strings.
	raw := json.RawMessage(`[{"itemCode":"P1","quantity":"4","unitPrice":"19.99"}]`)

	lines := ParseBillLines(raw)
	require.Len(t, lines, 1)

	assert.Equal(t, 4, lines[0].Quantity)
	assert.Equal(t, "19.99", lines[0].UnitPrice.String())
}

func TestParseBillLinesMalformedDocument(t *testing.T) {
	assert.Nil(t, ParseBillLines(json.RawMessage(`{"not":"an array"}`)))
	assert.Nil(t, ParseBillLines(json.RawMessage(`garbage`)))
}

func TestBillSoldItemsTagsSourceAndInvoice(t *testing.T) {
	raw := json.RawMessage(`[{"itemCode":"P1","quantity":2},{"itemCode":"P2","quantity":1}]`)
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	items := BillSoldItems(raw, SourceCashBill, "INV-12", date)
	require.Len(t, items, 2)

	for _, it := range items {
		assert.Equal(t, SourceCashBill, it.Source)
		assert.Equal(t, "INV-12", it.Invoice)
		assert.Equal(t, date, it.SoldDate)
	}
}

func TestAggregateMergesAllSources(t *testing.T) {
	date := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	manual := []model.SoldProduct{
		{ItemCode: "P1", ItemName: "Milk", Quantity: 2, Invoice: "M-1", SoldDate: date},
	}
	cash := []model.CashBill{
		{InvoiceNo: 7, Items: json.RawMessage(`[{"itemCode":"P2","quantity":1}]`), CreatedAt: date},
	}
	credit := []model.CreditBill{
		{InvoiceNo: 3, Items: json.RawMessage(`[{"itemCode":"P3","quantity":5}]`), CreatedAt: date},
	}

	items := Aggregate(manual, cash, credit)
	require.Len(t, items, 3)

	assert.Equal(t, SourceManualEntry, items[0].Source)
	assert.Equal(t, "M-1", items[0].Invoice)
	assert.Equal(t, SourceCashBill, items[1].Source)
	assert.Equal(t, "INV-7", items[1].Invoice)
	assert.Equal(t, SourceCreditBill, items[2].Source)
	assert.Equal(t, "INV-3", items[2].Invoice)
}

func TestAggregateEmptySources(t *testing.T) {
	assert.Empty(t, Aggregate(nil, nil, nil))
}
