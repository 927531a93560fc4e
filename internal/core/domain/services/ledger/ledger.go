package ledger

import (
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

// Ledger is the single authority over catalogs, stock records and the three
// work queues of the fulfilment pipeline. All state is guarded by one mutex;
// the two condition variables wake kitchen and delivery agents blocked on
// empty queues.
//
// Concurrency contract:
//   - Every read that participates in a threshold decision is paired with the
//     subsequent queue mutation under the same lock, so a restock check never
//     races a concurrent decrement of the same item.
//   - A stock write that crosses below threshold enqueues work at most once
//     per call.
//   - Close releases every blocked agent; after Close the queue operations
//     report shutdown instead of blocking.
type Ledger struct {
	mu           sync.Mutex
	cookCond     *sync.Cond
	deliveryCond *sync.Cond

	dishes      map[string]*menu.Dish
	ingredients map[string]*menu.Ingredient

	dishStock     map[string]kernel.Quantity
	dishThreshold map[string]kernel.Quantity
	dishAmount    map[string]kernel.Quantity

	ingredientStock     map[string]kernel.Quantity
	ingredientThreshold map[string]kernel.Quantity
	ingredientAmount    map[string]kernel.Quantity

	cookQueue    []*menu.Dish
	fetchQueue   []*menu.Ingredient
	deliverQueue []*order.Order

	restockDishes      bool
	restockIngredients bool

	closed bool
}

// NewLedger creates an empty Ledger with restocking enabled for both
// catalogs.
func NewLedger() *Ledger {
	l := &Ledger{
		dishes:              make(map[string]*menu.Dish),
		ingredients:         make(map[string]*menu.Ingredient),
		dishStock:           make(map[string]kernel.Quantity),
		dishThreshold:       make(map[string]kernel.Quantity),
		dishAmount:          make(map[string]kernel.Quantity),
		ingredientStock:     make(map[string]kernel.Quantity),
		ingredientThreshold: make(map[string]kernel.Quantity),
		ingredientAmount:    make(map[string]kernel.Quantity),
		restockDishes:       true,
		restockIngredients:  true,
	}
	l.cookCond = sync.NewCond(&l.mu)
	l.deliveryCond = sync.NewCond(&l.mu)
	return l
}

// AddDish registers a dish with its restock levels and zero stock. Stock is
// set through SetDishStock afterwards so the initial level decides whether
// the kitchen starts cooking.
func (l *Ledger) AddDish(dish *menu.Dish, threshold, amount kernel.Quantity) error {
	if err := dish.Validate(); err != nil {
		return err
	}
	if threshold < 0 || amount < 0 {
		return errs.NewValueIsInvalidError("restock levels")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.dishes[dish.Name()]; ok {
		return errs.NewDuplicateError("dish", dish.Name())
	}

	l.dishes[dish.Name()] = dish
	l.dishStock[dish.Name()] = 0
	l.dishThreshold[dish.Name()] = threshold
	l.dishAmount[dish.Name()] = amount
	return nil
}

// AddIngredient registers an ingredient with its restock levels and zero
// stock.
func (l *Ledger) AddIngredient(ingredient *menu.Ingredient, threshold, amount kernel.Quantity) error {
	if err := ingredient.Validate(); err != nil {
		return err
	}
	if threshold < 0 || amount < 0 {
		return errs.NewValueIsInvalidError("restock levels")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.ingredients[ingredient.Name()]; ok {
		return errs.NewDuplicateError("ingredient", ingredient.Name())
	}

	l.ingredients[ingredient.Name()] = ingredient
	l.ingredientStock[ingredient.Name()] = 0
	l.ingredientThreshold[ingredient.Name()] = threshold
	l.ingredientAmount[ingredient.Name()] = amount
	return nil
}

// RemoveDish deletes a dish from the catalog and all stock records. The dish
// must be present in the catalog and in every stock map; partial presence is
// corruption and is rejected rather than partially cleaned up.
func (l *Ledger) RemoveDish(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, inCatalog := l.dishes[name]
	_, inStock := l.dishStock[name]
	_, inThreshold := l.dishThreshold[name]
	_, inAmount := l.dishAmount[name]
	if !inCatalog || !inStock || !inThreshold || !inAmount {
		return errs.NewObjectNotFoundError("dish", name)
	}

	delete(l.dishes, name)
	delete(l.dishStock, name)
	delete(l.dishThreshold, name)
	delete(l.dishAmount, name)
	return nil
}

// RemoveIngredient deletes an ingredient from the catalog and all stock
// records, with the same all-or-nothing presence check as RemoveDish.
func (l *Ledger) RemoveIngredient(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, inCatalog := l.ingredients[name]
	_, inStock := l.ingredientStock[name]
	_, inThreshold := l.ingredientThreshold[name]
	_, inAmount := l.ingredientAmount[name]
	if !inCatalog || !inStock || !inThreshold || !inAmount {
		return errs.NewObjectNotFoundError("ingredient", name)
	}

	delete(l.ingredients, name)
	delete(l.ingredientStock, name)
	delete(l.ingredientThreshold, name)
	delete(l.ingredientAmount, name)
	return nil
}

// SetDishStock sets a dish's stock level. When the level drops strictly below
// the threshold and dish restocking is enabled, enough cook requests are
// enqueued to bring projected stock up to threshold + amount, one entry per
// unit, and all waiting kitchen agents are woken. A level equal to the
// threshold does not trigger.
func (l *Ledger) SetDishStock(name string, level kernel.Quantity) error {
	if level < 0 {
		return errs.NewValueIsInvalidError("stock level")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.setDishStockLocked(name, level)
}

// ConsumeDishStock removes qty portions from a dish's stock, flooring at
// zero, and runs the same restock trigger as SetDishStock. Checkout uses it
// to account for sold portions.
func (l *Ledger) ConsumeDishStock(name string, qty kernel.Quantity) error {
	if qty < 0 {
		return errs.NewValueIsInvalidError("quantity")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	level, ok := l.dishStock[name]
	if !ok {
		return errs.NewObjectNotFoundError("dish", name)
	}

	level -= qty
	if level < 0 {
		level = 0
	}
	return l.setDishStockLocked(name, level)
}

// AddDishStock credits one finished portion, as the kitchen does on cook
// completion. Crediting never triggers restocking.
func (l *Ledger) AddDishStock(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	level, ok := l.dishStock[name]
	if !ok {
		return errs.NewObjectNotFoundError("dish", name)
	}

	l.dishStock[name] = level + 1
	return nil
}

// SetIngredientStock sets an ingredient's stock level. When the level drops
// strictly below the threshold and ingredient restocking is enabled, exactly
// one fetch request is enqueued and one waiting delivery agent is woken.
func (l *Ledger) SetIngredientStock(name string, level kernel.Quantity) error {
	if level < 0 {
		return errs.NewValueIsInvalidError("stock level")
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	return l.setIngredientStockLocked(name, level)
}

// ReplenishIngredient sets an ingredient's stock to threshold + amount, as a
// delivery agent does when a fetch trip completes: the whole pending order
// arrives atomically. Kitchen agents are woken because a previously
// uncookable queue head may now be cookable.
func (l *Ledger) ReplenishIngredient(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.ingredientStock[name]; !ok {
		return errs.NewObjectNotFoundError("ingredient", name)
	}

	l.ingredientStock[name] = l.ingredientThreshold[name] + l.ingredientAmount[name]
	l.cookCond.Broadcast()
	return nil
}

// SetDishRestocking toggles automatic dish replenishment. When disabled,
// stock writes never enqueue cook requests; already queued work still drains.
func (l *Ledger) SetDishRestocking(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.restockDishes = enabled
}

// SetIngredientRestocking toggles automatic ingredient replenishment.
func (l *Ledger) SetIngredientRestocking(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.restockIngredients = enabled
}

// SetDishRestockLevels replaces a dish's threshold and amount.
func (l *Ledger) SetDishRestockLevels(name string, threshold, amount kernel.Quantity) error {
	if threshold < 0 || amount < 0 {
		return errs.NewValueIsInvalidError("restock levels")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.dishes[name]; !ok {
		return errs.NewObjectNotFoundError("dish", name)
	}

	l.dishThreshold[name] = threshold
	l.dishAmount[name] = amount
	return nil
}

// SetIngredientRestockLevels replaces an ingredient's threshold and amount.
func (l *Ledger) SetIngredientRestockLevels(name string, threshold, amount kernel.Quantity) error {
	if threshold < 0 || amount < 0 {
		return errs.NewValueIsInvalidError("restock levels")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.ingredients[name]; !ok {
		return errs.NewObjectNotFoundError("ingredient", name)
	}

	l.ingredientThreshold[name] = threshold
	l.ingredientAmount[name] = amount
	return nil
}

// setDishStockLocked writes the level and applies the restock trigger.
// Callers hold l.mu.
func (l *Ledger) setDishStockLocked(name string, level kernel.Quantity) error {
	dish, ok := l.dishes[name]
	if !ok {
		return errs.NewObjectNotFoundError("dish", name)
	}

	l.dishStock[name] = level

	threshold := l.dishThreshold[name]
	if !l.restockDishes || level >= threshold {
		return nil
	}

	needed := threshold + l.dishAmount[name] - level
	for i := kernel.Quantity(0); i < needed; i++ {
		l.cookQueue = append(l.cookQueue, dish)
	}
	l.cookCond.Broadcast()
	return nil
}

// setIngredientStockLocked writes the level and applies the restock trigger.
// Callers hold l.mu.
func (l *Ledger) setIngredientStockLocked(name string, level kernel.Quantity) error {
	ingredient, ok := l.ingredients[name]
	if !ok {
		return errs.NewObjectNotFoundError("ingredient", name)
	}

	l.ingredientStock[name] = level

	// A blocked kitchen agent may find its queue head cookable now.
	l.cookCond.Broadcast()

	if !l.restockIngredients || level >= l.ingredientThreshold[name] {
		return nil
	}

	l.fetchQueue = append(l.fetchQueue, ingredient)
	l.deliveryCond.Signal()
	return nil
}
