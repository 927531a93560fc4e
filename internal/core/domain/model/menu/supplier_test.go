package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSupplier(t *testing.T) {
	supplier, err := NewSupplier("Acme", 25)

	require.NoError(t, err)
	assert.NoError(t, supplier.Validate())
	assert.Equal(t, "Acme", supplier.Name())
	assert.InDelta(t, 25.0, supplier.Distance().Float(), 0)
}

func TestNewSupplierRequiresName(t *testing.T) {
	_, err := NewSupplier("", 25)
	assert.ErrorIs(t, err, ErrSupplierNameIsRequired)
}

func TestSupplierZeroValueIsInvalid(t *testing.T) {
	var supplier Supplier
	assert.ErrorIs(t, supplier.Validate(), ErrSupplierIsNotConstructed)
}

func TestNewIngredient(t *testing.T) {
	supplier, err := NewSupplier("Acme", 25)
	require.NoError(t, err)

	ingredient, err := NewIngredient("Rice", "grams", supplier)

	require.NoError(t, err)
	assert.NoError(t, ingredient.Validate())
	assert.Equal(t, "Rice", ingredient.Name())
	assert.Equal(t, "grams", ingredient.Unit())
	assert.Equal(t, "Acme", ingredient.Supplier().Name())
}

func TestNewIngredientValidation(t *testing.T) {
	supplier, err := NewSupplier("Acme", 25)
	require.NoError(t, err)

	_, err = NewIngredient("", "grams", supplier)
	assert.ErrorIs(t, err, ErrIngredientNameIsRequired)

	_, err = NewIngredient("Rice", "", supplier)
	assert.ErrorIs(t, err, ErrIngredientUnitIsRequired)

	_, err = NewIngredient("Rice", "grams", nil)
	assert.ErrorIs(t, err, ErrSupplierIsNotConstructed)
}
