package cryptotracker

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// newDecimal is a convenient factory for decimal.Decimal
func newDecimal[T float64 | int | int64 | decimal.Decimal](value T) decimal.Decimal {
	switch v := any(value).(type) {
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	default:
		panic("unsupported type")
	}
}

// finite reports whether v can be turned into a decimal.
func finite(v float64) bool { return !math.IsInf(v, 0) && !math.IsNaN(v) }

// Quantity is an exact amount of units of an asset.
type Quantity struct {
	value decimal.Decimal
}

// Q returns the quantity of value. A float64 value must be finite.
func Q[T float64 | int | int64 | decimal.Decimal](value T) Quantity {
	return Quantity{value: newDecimal(value)}
}

// ParseQuantity parses a decimal quantity as held in a Holding: the result is
// the float64 closest to s, and s must fit in a float64.
func ParseQuantity(s string) (Quantity, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Quantity{}, fmt.Errorf("invalid quantity %q: %w", s, err)
	}
	f := d.InexactFloat64()
	if !finite(f) {
		return Quantity{}, fmt.Errorf("quantity %q is out of range", s)
	}
	return Q(f), nil
}

func (q Quantity) IsNegative() bool { return q.value.IsNegative() }
func (q Quantity) IsZero() bool     { return q.value.IsZero() }
func (q Quantity) String() string   { return q.value.String() }

// Float returns the quantity as held in a Holding.
func (q Quantity) Float() float64 { return q.value.InexactFloat64() }
