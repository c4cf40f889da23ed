package reconcile

import "strings"

// Matches decides whether a sold item applies to a product, via a cascade of
// rules where the first rule that fires wins. All comparisons are
// whitespace-trimmed; rules 2, 4, 5 and 6 are case-insensitive, rule 3 is a
// case-sensitive name compare with rule 4 as its lowercased fallback.
//
// Known hazard, kept on purpose: the cascade is evaluated once per product,
// so a sold item whose name/code is substring-compatible with several
// products will count toward all of them. Callers must not assume the
// matching is injective.
func Matches(productCode, productName string, it SoldItem) bool {
	code := strings.TrimSpace(it.ItemCode)
	name := strings.TrimSpace(it.ItemName)
	pCode := strings.TrimSpace(productCode)
	pName := strings.TrimSpace(productName)

	// 1. Nothing to match on.
	if code == "" && name == "" {
		return false
	}

	// 2. Exact item code.
	if code != "" && pCode != "" && strings.EqualFold(code, pCode) {
		return true
	}

	// 3. Exact item name.
	if name != "" && name == pName {
		return true
	}

	// 4. Case-insensitive item name.
	if name != "" && pName != "" && strings.EqualFold(name, pName) {
		return true
	}

	lowName := strings.ToLower(name)
	lowPName := strings.ToLower(pName)
	lowCode := strings.ToLower(code)
	lowPCode := strings.ToLower(pCode)

	// 5. Bidirectional name substring.
	if lowName != "" && lowPName != "" &&
		(strings.Contains(lowName, lowPName) || strings.Contains(lowPName, lowName)) {
		return true
	}

	// 6. Bidirectional code substring.
	if lowCode != "" && lowPCode != "" &&
		(strings.Contains(lowCode, lowPCode) || strings.Contains(lowPCode, lowCode)) {
		return true
	}

	return false
}

type dedupKey struct {
	itemCode string
	itemName string
	quantity int
	source   Source
	invoice  string
}

// Deduplicate collapses sold items that agree on all five identity fields,
// keeping the first occurrence. Deliberately conservative: legitimately
// distinct sales sharing all five fields are indistinguishable and will be
// under-counted.
func Deduplicate(items []SoldItem) []SoldItem {
	seen := make(map[dedupKey]bool, len(items))
	out := make([]SoldItem, 0, len(items))
	for _, it := range items {
		k := dedupKey{
			itemCode: it.ItemCode,
			itemName: it.ItemName,
			quantity: it.Quantity,
			source:   it.Source,
			invoice:  it.Invoice,
		}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, it)
	}
	return out
}
