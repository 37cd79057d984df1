package cryptotracker

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ReportingCurrency is the currency every Gateway price is expressed in.
const ReportingCurrency = "USD"

// Money represents a monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns value in currency. A float64 value must be finite.
func M[T float64 | int | int64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// USD is a shortcut for money in the ReportingCurrency.
func USD(v float64) Money { return M(v, ReportingCurrency) }

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, e.g. "$1,234.56".
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

func (m Money) Equal(n Money) bool    { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) Mul(q Quantity) Money  { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Shift(exp int32) Money { return Money{value: m.value.Shift(exp), cur: m.cur} }
func (m Money) Add(n Money) Money     { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch " + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// AsFloat returns the closest float64 value.
func (m Money) AsFloat() float64 { return m.value.InexactFloat64() }
