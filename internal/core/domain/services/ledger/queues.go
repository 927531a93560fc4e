package ledger

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
)

// DeliveryJob is one unit of delivery work: either a checked-out order or an
// ingredient fetch trip, never both.
type DeliveryJob struct {
	Order      *order.Order
	Ingredient *menu.Ingredient
}

// NextCook blocks until a cookable dish is at the head of the cook queue,
// dequeues it, consumes the recipe ingredients and returns the dish. The
// second return value is false when the ledger has been closed or ctx
// cancelled; a cancelled caller never takes work.
//
// The queue stays strictly FIFO: when the head dish cannot be cooked because
// some recipe ingredient is short, the agent goes back to waiting and is
// woken again when ingredient stock changes. Ingredient decrements run under
// the same critical section as the cookability check, so stock never goes
// below what the check saw, and each decrement re-evaluates the ingredient
// restock trigger.
func (l *Ledger) NextCook(ctx context.Context) (*menu.Dish, bool) {
	stop := context.AfterFunc(ctx, func() {
		l.mu.Lock()
		l.cookCond.Broadcast()
		l.mu.Unlock()
	})
	defer stop()

	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		if l.closed || ctx.Err() != nil {
			return nil, false
		}

		if len(l.cookQueue) > 0 {
			dish := l.cookQueue[0]

			if _, ok := l.dishes[dish.Name()]; !ok {
				// Dish was removed from the catalog while queued.
				l.cookQueue = l.cookQueue[1:]
				continue
			}

			if l.canCookLocked(dish) {
				l.cookQueue = l.cookQueue[1:]
				for ingredient, qty := range dish.Recipe() {
					level := l.ingredientStock[ingredient] - qty
					_ = l.setIngredientStockLocked(ingredient, level)
				}
				return dish, true
			}
		}

		l.cookCond.Wait()
	}
}

// NextDelivery blocks until delivery work is available and returns one job.
// Orders are always serviced before ingredient fetches. The second return
// value is false when the ledger has been closed or ctx cancelled.
func (l *Ledger) NextDelivery(ctx context.Context) (DeliveryJob, bool) {
	stop := context.AfterFunc(ctx, func() {
		l.mu.Lock()
		l.deliveryCond.Broadcast()
		l.mu.Unlock()
	})
	defer stop()

	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		if l.closed || ctx.Err() != nil {
			return DeliveryJob{}, false
		}

		if len(l.deliverQueue) > 0 {
			o := l.deliverQueue[0]
			l.deliverQueue = l.deliverQueue[1:]
			return DeliveryJob{Order: o}, true
		}

		if len(l.fetchQueue) > 0 {
			ingredient := l.fetchQueue[0]
			l.fetchQueue = l.fetchQueue[1:]
			return DeliveryJob{Ingredient: ingredient}, true
		}

		l.deliveryCond.Wait()
	}
}

// EnqueueOrder appends a checked-out order to the delivery queue and wakes
// one waiting delivery agent.
func (l *Ledger) EnqueueOrder(o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.deliverQueue = append(l.deliverQueue, o)
	l.deliveryCond.Signal()
	return nil
}

// RemoveQueuedOrder drops a cancelled order from the delivery queue. It
/// reports false when the order was not queued, which is legitimate: an agent
// may already have picked it up.
func (l *Ledger) RemoveQueuedOrder(id kernel.UUID) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, o := range l.deliverQueue {
		if o.ID().IsEqual(id) {
			l.deliverQueue = append(l.deliverQueue[:i], l.deliverQueue[i+1:]...)
			return true
		}
	}
	return false
}

// Close marks the ledger as shut down and releases every agent blocked in
// NextCook or NextDelivery. Stock and catalog reads remain usable so state
// can still be persisted after Close.
func (l *Ledger) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.closed = true
	l.cookCond.Broadcast()
	l.deliveryCond.Broadcast()
}

// QueueLengths reports the current cook, fetch and deliver queue sizes.
func (l *Ledger) QueueLengths() (cook, fetch, deliver int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.cookQueue), len(l.fetchQueue), len(l.deliverQueue)
}

// canCookLocked reports whether every recipe ingredient is in sufficient
// stock. Callers hold l.mu.
func (l *Ledger) canCookLocked(dish *menu.Dish) bool {
	for ingredient, qty := range dish.Recipe() {
		if l.ingredientStock[ingredient] < qty {
			return false
		}
	}
	return true
}
