// Package expense defines the core domain types for expense records.
package expense

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single spending entry.
type Expense struct {
	ID          int64           // Required: unique, assigned on add
	Description string          // Expected non-empty
	Amount      decimal.Decimal // Must be >= MinAmount on add/update
	Month       time.Month      // Stamped at creation, never changed
	Category    string          // Free text, matched case-insensitively
}

// MinAmount is the smallest amount accepted by add and update.
var MinAmount = decimal.NewFromInt(1)

// Validation errors.
var (
	ErrAmountTooLow     = errors.New("amount cannot be lower than 1")
	ErrInvalidMonth     = errors.New("month must be a full English month name")
	ErrEmptyDescription = errors.New("description is required")
	ErrEmptyCategory    = errors.New("category is required")
	ErrNotFound         = errors.New("expense not found")
)

// ValidateAmount checks that an amount meets the minimum.
func ValidateAmount(amount decimal.Decimal) error {
	if amount.LessThan(MinAmount) {
		return ErrAmountTooLow
	}
	return nil
}

// Validate reports the first problem with the record, if any.
// Stored records are not required to pass; check uses this to report issues.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(e.Category) == "" {
		return ErrEmptyCategory
	}
	return ValidateAmount(e.Amount)
}

// MonthNames lists the canonical month names in calendar order.
var MonthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// ParseMonth converts a month name to a time.Month, ignoring case.
func ParseMonth(s string) (time.Month, error) {
	s = strings.TrimSpace(s)
	for i, name := range MonthNames {
		if strings.EqualFold(s, name) {
			return time.Month(i + 1), nil
		}
	}
	return 0, ErrInvalidMonth
}

// FormatNumber renders an amount as a plain number with at least one
// fractional digit: 12.5 -> "12.5", 40 -> "40.0".
func FormatNumber(d decimal.Decimal) string {
	s := d.String()
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
