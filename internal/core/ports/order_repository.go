package ports

import (
	"context"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
)

// OrderRepository defines the storage contract for checked-out orders.
type OrderRepository interface {
	// Add stores a new order.
	Add(ctx context.Context, o *order.Order) error

	// Get retrieves an order by its unique identifier. Returns a NotFound
	// error when the order does not exist.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// Remove deletes an order, as cancellation does.
	Remove(ctx context.Context, id kernel.UUID) error

	// GetAllByCustomer returns the orders placed by the given customer.
	GetAllByCustomer(ctx context.Context, username string) ([]*order.Order, error)

	// GetAll returns every order.
	GetAll(ctx context.Context) ([]*order.Order, error)
}
