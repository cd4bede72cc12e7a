package kernel

import (
	"fmt"

	"ordering/internal/pkg/errs"
)

// Money represents a monetary amount in minor currency units (e.g. cents).
// Totals are accumulated with integer arithmetic only; the domain never uses
// floating point for prices or amounts.
//
// Example:
//
//	price, _ := kernel.NewMoney(1999) // 19.99 in major units
//	line := price.MulQuantity(3)
type Money int64

// NewMoney creates a non-negative monetary amount in minor units.
// Returns an error for negative values.
func NewMoney(minorUnits int64) (Money, error) {
	if minorUnits < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("money",
			fmt.Errorf("%d is negative", minorUnits))
	}
	return Money(minorUnits), nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// MulQuantity returns the amount multiplied by an item quantity.
func (m Money) MulQuantity(quantity int) Money {
	return m * Money(quantity)
}

// Int64 returns the amount in minor units.
func (m Money) Int64() int64 {
	return int64(m)
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m > 0
}

// String renders the amount in minor units, e.g. "2500".
func (m Money) String() string {
	return fmt.Sprintf("%d", int64(m))
}
