package memstore

import (
	"context"
	"sort"
	"sync"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/pkg/errs"
)

// PostcodeRepository is a map-backed postcode store. The dispatcher reads it
// while the admin facade mutates it from caller goroutines, so access is
// guarded.
type PostcodeRepository struct {
	mu        sync.RWMutex
	postcodes map[string]*account.Postcode
}

// NewPostcodeRepository creates an empty postcode store.
func NewPostcodeRepository() *PostcodeRepository {
	return &PostcodeRepository{postcodes: make(map[string]*account.Postcode)}
}

// Add stores a new postcode, rejecting code collisions.
func (r *PostcodeRepository) Add(_ context.Context, postcode *account.Postcode) error {
	if err := postcode.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.postcodes[postcode.Code()]; ok {
		return errs.NewDuplicateError("postcode", postcode.Code())
	}

	r.postcodes[postcode.Code()] = postcode
	return nil
}

// Get retrieves a postcode by code.
func (r *PostcodeRepository) Get(_ context.Context, code string) (*account.Postcode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	postcode, ok := r.postcodes[code]
	if !ok {
		return nil, errs.NewObjectNotFoundError("postcode", code)
	}
	return postcode, nil
}

// Remove deletes a postcode by code.
func (r *PostcodeRepository) Remove(_ context.Context, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.postcodes[code]; !ok {
		return errs.NewObjectNotFoundError("postcode", code)
	}

	delete(r.postcodes, code)
	return nil
}

// GetAll returns every served postcode sorted by code.
func (r *PostcodeRepository) GetAll(_ context.Context) ([]*account.Postcode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*account.Postcode, 0, len(r.postcodes))
	for _, postcode := range r.postcodes {
		out = append(out, postcode)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code() < out[j].Code() })
	return out, nil
}
