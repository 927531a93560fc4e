package kernel

import (
	"fmt"
	"strconv"
	"strings"

	"restaurant/internal/pkg/errs"
)

// Money is an amount of currency in whole cents. Dish prices and order costs
// use fixed-point arithmetic so that repeated additions never drift the way
// binary floating point does.
type Money int64

// NewMoneyFromCents validates and returns a Money value.
func NewMoneyFromCents(cents int64) (Money, error) {
	if cents < 0 {
		return 0, errs.NewValueIsInvalidError("money must not be negative")
	}
	return Money(cents), nil
}

// ParseMoney reads a decimal amount such as "2.50" or "12" into cents.
// At most two fractional digits are accepted.
func ParseMoney(s string) (Money, error) {
	whole, frac, _ := strings.Cut(strings.TrimSpace(s), ".")
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%q is not a decimal amount", s))
	}
	cents := units * 100
	if frac != "" {
		if len(frac) > 2 {
			return 0, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%q has more than two fractional digits", s))
		}
		part, fracErr := strconv.ParseInt(frac, 10, 64)
		if fracErr != nil || part < 0 {
			return 0, errs.NewValueIsInvalidErrorWithCause("money", fmt.Errorf("%q is not a decimal amount", s))
		}
		if len(frac) == 1 {
			part *= 10
		}
		cents += part
	}
	return Money(cents), nil
}

// Cents returns the amount in whole cents.
func (m Money) Cents() int64 {
	return int64(m)
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return m + other
}

// Mul returns the amount multiplied by a quantity, as used for order lines.
func (m Money) Mul(q Quantity) Money {
	return m * Money(q)
}

// String renders the amount as a decimal with two fractional digits, the form
// the flat-file description and the wire protocol use.
func (m Money) String() string {
	return fmt.Sprintf("%d.%02d", int64(m)/100, int64(m)%100)
}
