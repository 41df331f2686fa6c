// Package core holds the domain model and the pure budget computations.
//
// All monetary values are shopspring decimals so that repeated percentage
// splits and 2-decimal roundings never accumulate float drift.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount coerces a user-entered amount string to a non-negative decimal.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators, an
// optional leading currency symbol, and treats the empty string as zero.
// Negative or otherwise malformed input is rejected with ErrInvalidAmount.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.TrimPrefix(s, "$")
	s = strings.TrimSpace(s)
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if d.IsNegative() {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// FormatAmount renders an amount with exactly two decimal places, the way
// it is serialized in the ledger and shown in reports.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// PercentOf returns amount as a percentage of total, rounded to two
// decimals. A zero total yields zero rather than a division error.
func PercentOf(amount, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return amount.Div(total).Mul(decimal.NewFromInt(100)).Round(2)
}
