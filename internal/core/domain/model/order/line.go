package order

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Domain errors for order line operations.
var (
	// ErrLineDishIsRequired is returned when a line names no dish.
	ErrLineDishIsRequired = errs.NewValueIsRequiredError("line dish")
	// ErrLineQuantityIsInvalid is returned when a line has a non-positive quantity.
	ErrLineQuantityIsInvalid = errs.NewValueIsInvalidError("line quantity")
	// ErrLineIsNotConstructed is returned when using an improperly initialized Line.
	ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")
)

// Line is one priced position of an order: a dish, the unit price captured at
// checkout and the number of portions. Capturing the price on the line keeps
// the order's cost stable when the menu price changes later.
type Line struct {
	dish      string
	unitPrice kernel.Money
	quantity  kernel.Quantity
	guard     guard.ConstructorGuard
}

// NewLine creates a priced order line.
func NewLine(dish string, unitPrice kernel.Money, quantity kernel.Quantity) (Line, error) {
	line := Line{
		guard: guard.NewConstructorGuard(),
	}

	if dish == "" {
		return Line{}, ErrLineDishIsRequired
	}
	if quantity <= 0 {
		return Line{}, ErrLineQuantityIsInvalid
	}
	if unitPrice < 0 {
		return Line{}, errs.NewValueIsInvalidError("line unit price")
	}

	line.dish = dish
	line.unitPrice = unitPrice
	line.quantity = quantity
	return line, nil
}

// Dish returns the name of the ordered dish.
func (l Line) Dish() string {
	return l.dish
}

// UnitPrice returns the price of one portion at checkout time.
func (l Line) UnitPrice() kernel.Money {
	return l.unitPrice
}

// Quantity returns the number of portions.
func (l Line) Quantity() kernel.Quantity {
	return l.quantity
}

// Cost returns the line total.
func (l Line) Cost() kernel.Money {
	return l.unitPrice.Mul(l.quantity)
}

// Validate checks that the Line was created via NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}
