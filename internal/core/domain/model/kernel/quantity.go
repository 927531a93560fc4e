package kernel

import "restaurant/internal/pkg/errs"

// Quantity is a count of discrete units: dishes in stock, ingredients in a
// recipe, lines in a basket. Quantities are never negative; subtraction that
// would go below zero is a caller bug surfaced as an error rather than
// silently clamped.
type Quantity int

// NewQuantity validates and returns a Quantity.
func NewQuantity(n int) (Quantity, error) {
	if n < 0 {
		return 0, errs.NewValueIsInvalidError("quantity must not be negative")
	}
	return Quantity(n), nil
}

// Int returns the quantity as a plain int.
func (q Quantity) Int() int {
	return int(q)
}

// Add returns the sum of two quantities.
func (q Quantity) Add(other Quantity) Quantity {
	return q + other
}

// Sub returns q minus other, or an error if the result would be negative.
func (q Quantity) Sub(other Quantity) (Quantity, error) {
	if other > q {
		return 0, errs.NewValueIsOutOfRangeError("quantity", int(other), 0, int(q))
	}
	return q - other, nil
}

// Validate returns an error for negative quantities. The zero value is a
// legitimate quantity, so no constructor guard is used.
func (q Quantity) Validate() error {
	if q < 0 {
		return errs.NewValueIsInvalidError("quantity must not be negative")
	}
	return nil
}
