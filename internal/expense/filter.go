package expense

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Filter selects records for list and summary.
// Zero-valued fields are not applied.
type Filter struct {
	Month    string
	Category string
}

// IsEmpty reports whether the filter selects every record.
func (f Filter) IsEmpty() bool {
	return f.Month == "" && f.Category == ""
}

// Matches reports whether e passes every supplied condition.
func (f Filter) Matches(e Expense) bool {
	if f.Month != "" && !strings.EqualFold(e.Month.String(), strings.TrimSpace(f.Month)) {
		return false
	}
	if f.Category != "" && !strings.EqualFold(e.Category, f.Category) {
		return false
	}
	return true
}

// Apply returns the matching records in their original order.
func (f Filter) Apply(expenses []Expense) []Expense {
	var filtered []Expense
	for _, e := range expenses {
		if f.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Total sums the amounts of the given records.
func Total(expenses []Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return total
}
