package memstore

import (
	"context"
	"sort"
	"sync"

	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/pkg/errs"
)

// SupplierRepository is a map-backed supplier store. The admin facade mutates
// it from caller goroutines while snapshot capture reads it, so access is
// guarded.
type SupplierRepository struct {
	mu        sync.RWMutex
	suppliers map[string]*menu.Supplier
}

// NewSupplierRepository creates an empty supplier store.
func NewSupplierRepository() *SupplierRepository {
	return &SupplierRepository{suppliers: make(map[string]*menu.Supplier)}
}

// Add stores a new supplier, rejecting name collisions.
func (r *SupplierRepository) Add(_ context.Context, supplier *menu.Supplier) error {
	if err := supplier.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.suppliers[supplier.Name()]; ok {
		return errs.NewDuplicateError("supplier", supplier.Name())
	}

	r.suppliers[supplier.Name()] = supplier
	return nil
}

// Get retrieves a supplier by name.
func (r *SupplierRepository) Get(_ context.Context, name string) (*menu.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	supplier, ok := r.suppliers[name]
	if !ok {
		return nil, errs.NewObjectNotFoundError("supplier", name)
	}
	return supplier, nil
}

// Remove deletes a supplier by name.
func (r *SupplierRepository) Remove(_ context.Context, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.suppliers[name]; !ok {
		return errs.NewObjectNotFoundError("supplier", name)
	}

	delete(r.suppliers, name)
	return nil
}

// GetAll returns every supplier sorted by name.
func (r *SupplierRepository) GetAll(_ context.Context) ([]*menu.Supplier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*menu.Supplier, 0, len(r.suppliers))
	for _, supplier := range r.suppliers {
		out = append(out, supplier)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out, nil
}
