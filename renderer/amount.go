package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/etnz/payments"
	"github.com/shopspring/decimal"
)

// FormatAmount formats an amount for display.
//
// With a currency code, the amount is rounded to the currency fraction and
// formatted the way that currency is usually written ("$1,234.50"). Without
// one, the amount is written with all its payments.Precision digits.
func FormatAmount(d decimal.Decimal, currency string) string {
	if currency == "" {
		return d.StringFixed(payments.Precision)
	}
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	minor := d.Shift(int32(cur.Fraction)).RoundBank(0)
	return cur.Formatter().Format(minor.IntPart())
}
