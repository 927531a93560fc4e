package memstore

import (
	"context"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/pkg/errs"
)

// OrderRepository is a slice-backed order store. Insertion order is preserved
// so order listings match placement order. The dispatcher writes it while the
// dashboard and snapshot capture read it from their own goroutines, so access
// is guarded.
type OrderRepository struct {
	mu     sync.RWMutex
	orders []*order.Order
}

// NewOrderRepository creates an empty order store.
func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Add stores a new order.
func (r *OrderRepository) Add(_ context.Context, o *order.Order) error {
	if err := o.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.orders {
		if existing.IsEqual(o) {
			return errs.NewDuplicateError("order", o.ID().String())
		}
	}

	r.orders = append(r.orders, o)
	return nil
}

// Get retrieves an order by its unique identifier.
func (r *OrderRepository) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, o := range r.orders {
		if o.ID().IsEqual(id) {
			return o, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("order", id.String())
}

// Remove deletes an order, as cancellation does.
func (r *OrderRepository) Remove(_ context.Context, id kernel.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, o := range r.orders {
		if o.ID().IsEqual(id) {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}
	return errs.NewObjectNotFoundError("order", id.String())
}

// GetAllByCustomer returns the orders placed by the given customer in
// placement order.
func (r *OrderRepository) GetAllByCustomer(_ context.Context, username string) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*order.Order, 0)
	for _, o := range r.orders {
		if o.Customer() == username {
			out = append(out, o)
		}
	}
	return out, nil
}

// GetAll returns every order in placement order.
func (r *OrderRepository) GetAll(_ context.Context) ([]*order.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*order.Order, len(r.orders))
	copy(out, r.orders)
	return out, nil
}
