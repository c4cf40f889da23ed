// Package reconcile implements the inventory-vs-sales reconciliation engine:
// it normalizes sale records from three heterogeneous sources, matches them
// against the product catalog with a cascading rule set, deduplicates
// overlapping records, and derives stock levels, velocity and alerts.
//
// The computation is pure and request-scoped: it never writes back to the
// catalog. Current stock is reported, not persisted.
package reconcile

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"billtrack/internal/model"

	"github.com/shopspring/decimal"
)

// Source identifies which collection a sale record came from.
type Source string

const (
	SourceManualEntry Source = "ManualEntry"
	SourceCashBill    Source = "CashBill"
	SourceCreditBill  Source = "CreditBill"
)

// SoldItem is the normalized unit of a sale, regardless of originating
// document shape. It is derived, never stored.
type SoldItem struct {
	ItemCode string    `json:"itemCode"`
	ItemName string    `json:"itemName"`
	Quantity int       `json:"quantity"`
	Source   Source    `json:"source"`
	Invoice  string    `json:"invoice"`
	SoldDate time.Time `json:"soldDate"`
}

// BillLine is a parsed bill line item with money fields, used both by the
// reconciliation (quantity only) and by invoice PDF rendering.
type BillLine struct {
	ItemCode  string          `json:"itemCode"`
	ItemName  string          `json:"itemName"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	GST       decimal.Decimal `json:"gst"`
	HSN       string          `json:"hsn"`
}

// FromManual maps one manually entered sale row to a SoldItem.
// Zero/missing fields stay at their defaults; malformed rows never error.
func FromManual(sp model.SoldProduct) SoldItem {
	return SoldItem{
		ItemCode: sp.ItemCode,
		ItemName: sp.ItemName,
		Quantity: sp.Quantity,
		Source:   SourceManualEntry,
		Invoice:  sp.Invoice,
		SoldDate: sp.SoldDate,
	}
}

// ParseBillLines decodes a bill's jsonb items array, resolving legacy field
// aliases by a fixed priority: itemCode > code, itemName > itemname,
// unitPrice > rate. Missing quantity defaults to 0, missing strings to "".
// A document that cannot be decoded at all contributes no lines.
func ParseBillLines(raw json.RawMessage) []BillLine {
	var docs []map[string]interface{}
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil
	}
	lines := make([]BillLine, 0, len(docs))
	for _, d := range docs {
		lines = append(lines, BillLine{
			ItemCode:  firstNonEmpty(stringField(d, "itemCode"), stringField(d, "code")),
			ItemName:  firstNonEmpty(stringField(d, "itemName"), stringField(d, "itemname")),
			Quantity:  intField(d, "quantity"),
			UnitPrice: decimalField(d, "unitPrice", "rate"),
			GST:       decimalField(d, "gst"),
			HSN:       stringField(d, "hsn"),
		})
	}
	return lines
}

// BillSoldItems converts a bill's line items into SoldItems tagged with the
// bill's source, invoice reference and creation date.
func BillSoldItems(raw json.RawMessage, src Source, invoice string, billDate time.Time) []SoldItem {
	lines := ParseBillLines(raw)
	items := make([]SoldItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, SoldItem{
			ItemCode: l.ItemCode,
			ItemName: l.ItemName,
			Quantity: l.Quantity,
			Source:   src,
			Invoice:  invoice,
			SoldDate: billDate,
		})
	}
	return items
}

// Aggregate flattens the three sales sources into one sequence. Order is
// irrelevant to downstream consumers; duplicates survive here and are
// collapsed later by Deduplicate.
func Aggregate(manual []model.SoldProduct, cash []model.CashBill, credit []model.CreditBill) []SoldItem {
	var items []SoldItem
	for _, sp := range manual {
		items = append(items, FromManual(sp))
	}
	for _, b := range cash {
		items = append(items, BillSoldItems(b.Items, SourceCashBill, invoiceRef(b.InvoiceNo), b.CreatedAt)...)
	}
	for _, b := range credit {
		items = append(items, BillSoldItems(b.Items, SourceCreditBill, invoiceRef(b.InvoiceNo), b.CreatedAt)...)
	}
	return items
}

func invoiceRef(n int64) string {
	if n == 0 {
		return ""
	}
	return "INV-" + strconv.FormatInt(n, 10)
}

// ── loosely-typed field extraction ───────────────────────────────────────────

func stringField(d map[string]interface{}, key string) string {
	if v, ok := d[key].(string); ok {
		return v
	}
	return ""
}

func intField(d map[string]interface{}, key string) int {
	switch v := d[key].(type) {
	case float64:
		return int(v)
	case string:
		if dec, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
			return int(dec.IntPart())
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return int(n)
		}
	}
	return 0
}

func decimalField(d map[string]interface{}, keys ...string) decimal.Decimal {
	for _, key := range keys {
		switch v := d[key].(type) {
		case float64:
			return decimal.NewFromFloat(v)
		case string:
			if dec, err := decimal.NewFromString(strings.TrimSpace(v)); err == nil {
				return dec
			}
		}
	}
	return decimal.Zero
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
