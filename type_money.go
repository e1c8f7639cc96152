package valutatrade

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value for display. Stored values stay in
// decimal; the rounding applied here never feeds back into them.
type Money struct {
	value decimal.Decimal
	cur   string
}

// M wraps a decimal value with its currency.
func M(value decimal.Decimal, currency string) Money {
	return Money{value: value, cur: currency}
}

// Currency returns the money's currency code.
func (m Money) Currency() string { return m.cur }

// Decimal returns the underlying unrounded value.
func (m Money) Decimal() decimal.Decimal { return m.value }

// String formats the value with the currency's own conventions. ISO
// currencies use go-money's formatter; anything else (crypto) is shown with
// eight decimal places.
func (m Money) String() string {
	cur := money.GetCurrency(m.cur)
	if cur == nil {
		return m.value.StringFixed(8) + " " + m.cur
	}
	minor := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}
