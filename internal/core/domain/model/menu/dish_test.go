package menu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/core/domain/model/kernel"
)

func mustMoney(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.ParseMoney(s)
	require.NoError(t, err)
	return m
}

func TestNewDish(t *testing.T) {
	dish, err := NewDish("Maki", "Rice rolls", mustMoney(t, "3.50"))

	require.NoError(t, err)
	assert.NoError(t, dish.Validate())
	assert.Equal(t, "Maki", dish.Name())
	assert.Equal(t, "Rice rolls", dish.Description())
	assert.Equal(t, int64(350), dish.Price().Cents())
	assert.Empty(t, dish.Recipe())
}

func TestNewDishRequiresName(t *testing.T) {
	_, err := NewDish("", "no name", mustMoney(t, "1.00"))
	assert.ErrorIs(t, err, ErrDishNameIsRequired)
}

func TestDishZeroValueIsInvalid(t *testing.T) {
	var dish Dish
	assert.ErrorIs(t, dish.Validate(), ErrDishIsNotConstructed)
}

func TestDishRecipeLines(t *testing.T) {
	dish, err := NewDish("Maki", "Rice rolls", mustMoney(t, "3.50"))
	require.NoError(t, err)

	require.NoError(t, dish.UpsertRecipeLine("Rice", 2))
	require.NoError(t, dish.UpsertRecipeLine("Seaweed", 1))
	require.NoError(t, dish.UpsertRecipeLine("Rice", 3))

	recipe := dish.Recipe()
	assert.Equal(t, kernel.Quantity(3), recipe["Rice"])
	assert.Equal(t, kernel.Quantity(1), recipe["Seaweed"])

	// A zero quantity drops the line.
	require.NoError(t, dish.UpsertRecipeLine("Seaweed", 0))
	assert.NotContains(t, dish.Recipe(), "Seaweed")
}

func TestDishRecipeLineValidation(t *testing.T) {
	dish, err := NewDish("Maki", "", mustMoney(t, "3.50"))
	require.NoError(t, err)

	assert.ErrorIs(t, dish.UpsertRecipeLine("", 1), ErrRecipeLineIsInvalid)
	assert.ErrorIs(t, dish.RemoveRecipeLine("Rice"), ErrRecipeLineNotFound)
}

func TestDishRecipeReturnsCopy(t *testing.T) {
	dish, err := NewDish("Maki", "", mustMoney(t, "3.50"))
	require.NoError(t, err)
	require.NoError(t, dish.UpsertRecipeLine("Rice", 2))

	recipe := dish.Recipe()
	recipe["Rice"] = 99

	assert.Equal(t, kernel.Quantity(2), dish.Recipe()["Rice"])
}

func TestRestoreDish(t *testing.T) {
	dish, err := RestoreDish("Maki", "Rice rolls", mustMoney(t, "3.50"), map[string]kernel.Quantity{
		"Rice":    2,
		"Seaweed": 1,
	})

	require.NoError(t, err)
	assert.Len(t, dish.Recipe(), 2)
}
