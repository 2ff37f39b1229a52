// Package types provides common type aliases and utilities.
package types

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary value with full precision.
// Uses decimal.Decimal to avoid floating-point errors; all amounts in the
// ledger and invoices round to two decimal places at computation boundaries.
type Money = decimal.Decimal

// NewMoney creates a Money value from a float.
// WARNING: prefer NewMoneyFromString for precise values.
func NewMoney(f float64) Money {
	return decimal.NewFromFloat(f)
}

// NewMoneyFromString creates a Money value from a string.
func NewMoneyFromString(s string) (Money, error) {
	return decimal.NewFromString(s)
}

// MustMoney creates a Money value from a string, panics on error.
// Use only for constants and tests.
func MustMoney(s string) Money {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Zero returns the zero Money value.
func Zero() Money {
	return decimal.Zero
}

// RoundMoney applies the 2-decimal rounding policy used for totals and tax.
func RoundMoney(m Money) Money {
	return m.Round(2)
}
