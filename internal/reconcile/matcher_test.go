package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func soldItem(code, name string, qty int) SoldItem {
	return SoldItem{
		ItemCode: code,
		ItemName: name,
		Quantity: qty,
		Source:   SourceManualEntry,
		SoldDate: time.Now(),
	}
}

func TestMatchesExactCode(t *testing.T) {
	assert.True(t, Matches("P1", "Milk 1L", soldItem("P1", "", 1)))
	assert.True(t, Matches("P1", "Milk 1L", soldItem("p1", "", 1)), "code match is case-insensitive")
	assert.True(t, Matches("P1", "Milk 1L", soldItem(" P1 ", "", 1)), "code is trimmed before comparing")
}

func TestMatchesExactName(t *testing.T) {
	assert.True(t, Matches("P1", "Milk 1L", soldItem("", "Milk 1L", 1)))
	assert.True(t, Matches("P1", "Milk 1L", soldItem("", "milk 1l", 1)), "falls through to case-insensitive name")
}

func TestMatchesNameSubstringBothDirections(t *testing.T) {
	// sold name contains product name
	assert.True(t, Matches("", "Milk", soldItem("", "Fresh Milk 1L", 1)))
	// product name contains sold name
	assert.True(t, Matches("", "Fresh Milk 1L", soldItem("", "Milk", 1)))
}

func TestMatchesCodeSubstring(t *testing.T) {
	assert.True(t, Matches("ABC-100", "X", soldItem("abc", "Y", 1)))
	assert.True(t, Matches("abc", "X", soldItem("ABC-100", "Y", 1)))
}

func TestMatchesEmptySoldItemNeverMatches(t *testing.T) {
	// An all-empty sold item must not match anything, including a product
	// with empty fields.
	assert.False(t, Matches("", "", soldItem("", "", 5)))
	assert.False(t, Matches("P1", "Milk", soldItem("", "", 5)))
	assert.False(t, Matches("P1", "Milk", soldItem("  ", "  ", 5)), "whitespace-only is treated as empty")
}

func TestMatchesNoOverlap(t *testing.T) {
	assert.False(t, Matches("P1", "Milk 1L", soldItem("P2", "Bread", 1)))
}

// The substring rule is known to over-match: a generic sold name like "Milk"
// applies to every product whose name contains it. The engine counts it for
// all of them.
func TestMatchesSubstringOverlapHitsMultipleProducts(t *testing.T) {
	it := soldItem("", "Milk", 3)
	assert.True(t, Matches("P1", "Milk 500ml", it))
	assert.True(t, Matches("P2", "Milk 1L", it))
}

func TestDeduplicateKeepsFirstOccurrence(t *testing.T) {
	a := soldItem("P1", "Milk", 2)
	a.Invoice = "INV-1"
	b := a // exact duplicate
	c := a
	c.Quantity = 3 // differs in quantity, kept

	out := Deduplicate([]SoldItem{a, b, c})
	assert.Len(t, out, 2)
	assert.Equal(t, 2, out[0].Quantity)
	assert.Equal(t, 3, out[1].Quantity)
}

func TestDeduplicateDistinguishesSources(t *testing.T) {
	a := soldItem("P1", "Milk", 2)
	b := a
	b.Source = SourceCashBill

	out := Deduplicate([]SoldItem{a, b})
	assert.Len(t, out, 2, "same fields from different sources are distinct sales")
}

func TestDeduplicateEmptyInput(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
}
