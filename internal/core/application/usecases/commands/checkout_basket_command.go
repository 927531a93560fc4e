package commands

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/guard"
)

var (
	ErrCheckoutBasketCommandIsNotConstructed = errors.New(
		"CheckoutBasketCommand must be created via NewCheckoutBasketCommand constructor",
	)
	ErrCheckoutUsernameIsRequired = errors.New("username is required")
	ErrCheckoutBasketIsEmpty      = errors.New("basket must not be empty")
	ErrCheckoutBasketLineInvalid  = errors.New("basket lines must have a dish and a positive quantity")
)

// CheckoutBasketCommand represents a request to convert a basket snapshot
// into an order. The basket travels with the request: the client's view of
// the basket at the moment of checkout is what gets ordered.
type CheckoutBasketCommand struct { //nolint:recvcheck //using for validation
	username string
	basket   map[string]kernel.Quantity

	guard guard.ConstructorGuard
}

// NewCheckoutBasketCommand creates a checkout command from a non-empty
// basket snapshot.
func NewCheckoutBasketCommand(username string, basket map[string]kernel.Quantity) (CheckoutBasketCommand, error) {
	cmd := CheckoutBasketCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUsername(username),
		cmd.setBasket(basket),
	); err != nil {
		return CheckoutBasketCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CheckoutBasketCommand) Validate() error {
	return c.guard.Validate(ErrCheckoutBasketCommandIsNotConstructed)
}

// Username returns the customer checking out.
func (c CheckoutBasketCommand) Username() string {
	return c.username
}

// Basket returns a copy of the basket snapshot.
func (c CheckoutBasketCommand) Basket() map[string]kernel.Quantity {
	out := make(map[string]kernel.Quantity, len(c.basket))
	for dish, qty := range c.basket {
		out[dish] = qty
	}
	return out
}

func (c *CheckoutBasketCommand) setUsername(username string) error {
	if username == "" {
		return ErrCheckoutUsernameIsRequired
	}

	c.username = username
	return nil
}

func (c *CheckoutBasketCommand) setBasket(basket map[string]kernel.Quantity) error {
	if len(basket) == 0 {
		return ErrCheckoutBasketIsEmpty
	}

	c.basket = make(map[string]kernel.Quantity, len(basket))
	for dish, qty := range basket {
		if dish == "" || qty <= 0 {
			return ErrCheckoutBasketLineInvalid
		}
		c.basket[dish] = qty
	}
	return nil
}
