package kernel

import "fmt"

// Money is a monetary amount in centavos. Storing amounts as integer
// centavos keeps order totals exact: subtotal, fees and total reconcile
// without floating point drift.
//
// Money is a plain value type. Negative amounts are representable so that
// arithmetic stays closed; call sites that require non-negative amounts
// (prices, fees) validate with IsNegative.
type Money int64

// NewMoney creates a Money amount from centavos.
func NewMoney(centavos int64) Money {
	return Money(centavos)
}

// Centavos returns the amount in centavos.
func (m Money) Centavos() int64 {
	return int64(m)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// MulInt returns the amount multiplied by an integer factor,
// e.g. a unit price times a quantity.
func (m Money) MulInt(factor int) Money {
	return m * Money(factor)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m < 0
}

// Clamp returns the amount bounded to the inclusive [low, high] band.
func (m Money) Clamp(low Money, high Money) Money {
	if m < low {
		return low
	}
	if m > high {
		return high
	}
	return m
}

// String formats the amount as Philippine pesos, e.g. "₱350.00".
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s₱%d.%02d", sign, v/100, v%100)
}
