package menu

import (
	"errors"

	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Domain errors for ingredient operations.
var (
	// ErrIngredientNameIsRequired is returned when attempting to create an ingredient without a name.
	ErrIngredientNameIsRequired = errs.NewValueIsRequiredError("ingredient name")
	// ErrIngredientUnitIsRequired is returned when attempting to create an ingredient without a unit of measure.
	ErrIngredientUnitIsRequired = errs.NewValueIsRequiredError("ingredient unit")
	// ErrIngredientIsNotConstructed is returned when using an improperly initialized Ingredient.
	ErrIngredientIsNotConstructed = errors.New("Ingredient must be created via NewIngredient constructor")
)

// Ingredient is a raw material used by dish recipes. It is identified by name
// and sourced from exactly one supplier, whose distance determines how long a
// fetch trip takes. The unit records how the ingredient is measured ("grams",
// "litres", "items").
type Ingredient struct {
	name     string
	unit     string
	supplier *Supplier
	guard    guard.ConstructorGuard
}

// NewIngredient creates a new Ingredient sourced from the given supplier.
func NewIngredient(name, unit string, supplier *Supplier) (*Ingredient, error) {
	ingredient := &Ingredient{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ingredient.setName(name),
		ingredient.setUnit(unit),
		ingredient.setSupplier(supplier),
	); err != nil {
		return nil, err
	}

	return ingredient, nil
}

// Name returns the ingredient's identifying name.
func (i *Ingredient) Name() string {
	return i.name
}

// Unit returns the unit of measure.
func (i *Ingredient) Unit() string {
	return i.unit
}

// Supplier returns the supplier this ingredient is fetched from.
func (i *Ingredient) Supplier() *Supplier {
	return i.supplier
}

// IsEqual compares two ingredients by name.
func (i *Ingredient) IsEqual(other *Ingredient) bool {
	if other == nil {
		return false
	}
	return i.name == other.name
}

// Validate checks that the Ingredient was created via NewIngredient.
func (i *Ingredient) Validate() error {
	if i == nil {
		return ErrIngredientIsNotConstructed
	}
	return i.guard.Validate(ErrIngredientIsNotConstructed)
}

func (i *Ingredient) setName(name string) error {
	if name == "" {
		return ErrIngredientNameIsRequired
	}

	i.name = name
	return nil
}

func (i *Ingredient) setUnit(unit string) error {
	if unit == "" {
		return ErrIngredientUnitIsRequired
	}

	i.unit = unit
	return nil
}

func (i *Ingredient) setSupplier(supplier *Supplier) error {
	if err := supplier.Validate(); err != nil {
		return err
	}

	i.supplier = supplier
	return nil
}
