package menu

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Domain errors for dish operations.
var (
	// ErrDishNameIsRequired is returned when attempting to create a dish without a name.
	ErrDishNameIsRequired = errs.NewValueIsRequiredError("dish name")
	// ErrRecipeLineIsInvalid is returned when a recipe line has an empty ingredient or a non-positive quantity.
	ErrRecipeLineIsInvalid = errs.NewValueIsInvalidError("recipe line")
	// ErrRecipeLineNotFound is returned when removing an ingredient that is not part of the recipe.
	ErrRecipeLineNotFound = errors.New("ingredient is not part of the recipe")
	// ErrDishIsNotConstructed is returned when using an improperly initialized Dish.
	ErrDishIsNotConstructed = errors.New("Dish must be created via NewDish constructor")
)

// Dish is a menu item customers can order. It is an entity identified by name
// that carries a price and a recipe: the ingredient quantities the kitchen
// consumes to prepare one portion.
//
// Business rules:
//   - Dish must have a non-empty name; the description may be empty
//   - Recipe lines map ingredient names to positive quantities
//   - Setting a quantity of zero for an ingredient removes it from the recipe
//
// Example usage:
//
//	dish, err := NewDish("Maki", "Rice rolls", price)
//	if err != nil {
//	    // Handle construction error
//	}
//	_ = dish.UpsertRecipeLine("Rice", 2)
type Dish struct {
	name        string
	description string
	price       kernel.Money
	recipe      map[string]kernel.Quantity
	guard       guard.ConstructorGuard
}

// NewDish creates a new Dish with an empty recipe.
func NewDish(name, description string, price kernel.Money) (*Dish, error) {
	dish := &Dish{
		recipe: make(map[string]kernel.Quantity),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		dish.setName(name),
		dish.setDescription(description),
		dish.setPrice(price),
	); err != nil {
		return nil, err
	}

	return dish, nil
}

// RestoreDish reconstructs a Dish from persistent storage together with its
// recipe. The restored dish behaves identically to one assembled through
// NewDish and UpsertRecipeLine calls.
func RestoreDish(name, description string, price kernel.Money, recipe map[string]kernel.Quantity) (*Dish, error) {
	dish, err := NewDish(name, description, price)
	if err != nil {
		return nil, err
	}

	for ingredient, qty := range recipe {
		if err = dish.UpsertRecipeLine(ingredient, qty); err != nil {
			return nil, err
		}
	}

	return dish, nil
}

// Name returns the dish's identifying name.
func (d *Dish) Name() string {
	return d.name
}

// Description returns the customer-facing description.
func (d *Dish) Description() string {
	return d.description
}

// Price returns the price of one portion.
func (d *Dish) Price() kernel.Money {
	return d.price
}

// Recipe returns a copy of the recipe so callers cannot mutate the dish
// through the returned map.
func (d *Dish) Recipe() map[string]kernel.Quantity {
	out := make(map[string]kernel.Quantity, len(d.recipe))
	for ingredient, qty := range d.recipe {
		out[ingredient] = qty
	}
	return out
}

// UpsertRecipeLine sets the quantity of an ingredient required for one
// portion. A zero quantity removes the line, so a bulk editor can apply a
// full recipe in one loop.
func (d *Dish) UpsertRecipeLine(ingredient string, qty kernel.Quantity) error {
	if ingredient == "" || qty < 0 {
		return ErrRecipeLineIsInvalid
	}

	if qty == 0 {
		delete(d.recipe, ingredient)
		return nil
	}

	d.recipe[ingredient] = qty
	return nil
}

// RemoveRecipeLine deletes an ingredient from the recipe.
func (d *Dish) RemoveRecipeLine(ingredient string) error {
	if _, ok := d.recipe[ingredient]; !ok {
		return ErrRecipeLineNotFound
	}

	delete(d.recipe, ingredient)
	return nil
}

// IsEqual compares two dishes by name.
func (d *Dish) IsEqual(other *Dish) bool {
	if other == nil {
		return false
	}
	return d.name == other.name
}

// Validate checks that the Dish was created via NewDish.
func (d *Dish) Validate() error {
	if d == nil {
		return ErrDishIsNotConstructed
	}
	return d.guard.Validate(ErrDishIsNotConstructed)
}

func (d *Dish) setName(name string) error {
	if name == "" {
		return ErrDishNameIsRequired
	}

	d.name = name
	return nil
}

func (d *Dish) setDescription(description string) error {
	d.description = description
	return nil
}

func (d *Dish) setPrice(price kernel.Money) error {
	if price < 0 {
		return errs.NewValueIsInvalidError("dish price")
	}

	d.price = price
	return nil
}
