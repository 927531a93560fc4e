package ledger

import (
	"sort"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/errs"
)

// StockLine is one row of a stock report: an item with its current level and
// restock levels plus how many queue entries are pending for it.
type StockLine struct {
	Name      string
	Level     kernel.Quantity
	Threshold kernel.Quantity
	Amount    kernel.Quantity
	Pending   int
}

// Dishes returns the dish catalog sorted by name.
func (l *Ledger) Dishes() []*menu.Dish {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*menu.Dish, 0, len(l.dishes))
	for _, dish := range l.dishes {
		out = append(out, dish)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Ingredients returns the ingredient catalog sorted by name.
func (l *Ledger) Ingredients() []*menu.Ingredient {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]*menu.Ingredient, 0, len(l.ingredients))
	for _, ingredient := range l.ingredients {
		out = append(out, ingredient)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Dish looks a dish up by name.
func (l *Ledger) Dish(name string) (*menu.Dish, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dish, ok := l.dishes[name]
	if !ok {
		return nil, errs.NewObjectNotFoundError("dish", name)
	}
	return dish, nil
}

// Ingredient looks an ingredient up by name.
func (l *Ledger) Ingredient(name string) (*menu.Ingredient, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	ingredient, ok := l.ingredients[name]
	if !ok {
		return nil, errs.NewObjectNotFoundError("ingredient", name)
	}
	return ingredient, nil
}

// DishStock returns a dish's current stock level.
func (l *Ledger) DishStock(name string) (kernel.Quantity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	level, ok := l.dishStock[name]
	if !ok {
		return 0, errs.NewObjectNotFoundError("dish", name)
	}
	return level, nil
}

// IngredientStock returns an ingredient's current stock level.
func (l *Ledger) IngredientStock(name string) (kernel.Quantity, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	level, ok := l.ingredientStock[name]
	if !ok {
		return 0, errs.NewObjectNotFoundError("ingredient", name)
	}
	return level, nil
}

// DishRestockLevels returns a dish's threshold and amount.
func (l *Ledger) DishRestockLevels(name string) (threshold, amount kernel.Quantity, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.dishes[name]; !ok {
		return 0, 0, errs.NewObjectNotFoundError("dish", name)
	}
	return l.dishThreshold[name], l.dishAmount[name], nil
}

// IngredientRestockLevels returns an ingredient's threshold and amount.
func (l *Ledger) IngredientRestockLevels(name string) (threshold, amount kernel.Quantity, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.ingredients[name]; !ok {
		return 0, 0, errs.NewObjectNotFoundError("ingredient", name)
	}
	return l.ingredientThreshold[name], l.ingredientAmount[name], nil
}

// DishReport returns a sorted stock report for every dish.
func (l *Ledger) DishReport() []StockLine {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending := make(map[string]int, len(l.dishes))
	for _, dish := range l.cookQueue {
		pending[dish.Name()]++
	}

	out := make([]StockLine, 0, len(l.dishes))
	for name := range l.dishes {
		out = append(out, StockLine{
			Name:      name,
			Level:     l.dishStock[name],
			Threshold: l.dishThreshold[name],
			Amount:    l.dishAmount[name],
			Pending:   pending[name],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// IngredientReport returns a sorted stock report for every ingredient.
func (l *Ledger) IngredientReport() []StockLine {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending := make(map[string]int, len(l.ingredients))
	for _, ingredient := range l.fetchQueue {
		pending[ingredient.Name()]++
	}

	out := make([]StockLine, 0, len(l.ingredients))
	for name := range l.ingredients {
		out = append(out, StockLine{
			Name:      name,
			Level:     l.ingredientStock[name],
			Threshold: l.ingredientThreshold[name],
			Amount:    l.ingredientAmount[name],
			Pending:   pending[name],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// RequeueMissingFetches enqueues a fetch request for every ingredient that
// sits below its threshold with no pending fetch entry, and returns how many
// were enqueued. The stock audit job runs it to recover restocks lost to an
// agent dying mid-trip, which the at-most-once trip semantics would otherwise
// never replay.
func (l *Ledger) RequeueMissingFetches() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.restockIngredients || l.closed {
		return 0
	}

	pending := make(map[string]bool, len(l.fetchQueue))
	for _, ingredient := range l.fetchQueue {
		pending[ingredient.Name()] = true
	}

	requeued := 0
	for name, ingredient := range l.ingredients {
		if pending[name] {
			continue
		}
		if l.ingredientStock[name] < l.ingredientThreshold[name] {
			l.fetchQueue = append(l.fetchQueue, ingredient)
			requeued++
		}
	}
	if requeued > 0 {
		l.deliveryCond.Broadcast()
	}
	return requeued
}
