package utils

import "github.com/shopspring/decimal"

// AmountScale is the number of fractional digits stored for every money amount
// (NUMERIC(20,2) in PostgreSQL).
const AmountScale = 2

// HasAmountScale reports whether d fits AmountScale without rounding.
func HasAmountScale(d decimal.Decimal) bool {
	return d.Equal(d.Round(AmountScale))
}

// FormatAmount renders d with exactly AmountScale fractional digits.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(AmountScale)
}
