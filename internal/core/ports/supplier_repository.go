package ports

import (
	"context"

	"restaurant/internal/core/domain/model/menu"
)

// SupplierRepository defines the storage contract for ingredient suppliers.
type SupplierRepository interface {
	// Add stores a new supplier. Returns a Duplicate error on name collision.
	Add(ctx context.Context, supplier *menu.Supplier) error

	// Get retrieves a supplier by name.
	Get(ctx context.Context, name string) (*menu.Supplier, error)

	// Remove deletes a supplier by name.
	Remove(ctx context.Context, name string) error

	// GetAll returns every supplier sorted by name.
	GetAll(ctx context.Context) ([]*menu.Supplier, error)
}
