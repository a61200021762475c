package expense

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "USD"

// ValidateCurrency checks that code is a known ISO 4217 currency.
func ValidateCurrency(code string) error {
	if money.GetCurrency(strings.ToUpper(code)) == nil {
		return fmt.Errorf("unknown currency: %s", code)
	}
	return nil
}

// FormatAmount renders an amount with the currency's symbol and fraction
// digits, e.g. 12.5 USD -> "$12.50".
func FormatAmount(d decimal.Decimal, code string) string {
	code = strings.ToUpper(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		code = DefaultCurrency
		cur = money.GetCurrency(code)
	}
	frac := int32(cur.Fraction)
	minor := d.Round(frac).Shift(frac).IntPart()
	return money.New(minor, code).Display()
}
