package memstore

import (
	"context"
	"sort"
	"sync"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/pkg/errs"
)

// UserRepository is a map-backed user store. The dispatcher writes it while
// snapshot capture and the admin facade read it from their own goroutines, so
// access is guarded.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]*account.User
}

// NewUserRepository creates an empty user store.
func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]*account.User)}
}

// Add stores a new user, rejecting username collisions.
func (r *UserRepository) Add(_ context.Context, user *account.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Username()]; ok {
		return errs.NewDuplicateError("username", user.Username())
	}

	r.users[user.Username()] = user
	return nil
}

// Get retrieves a user by username.
func (r *UserRepository) Get(_ context.Context, username string) (*account.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[username]
	if !ok {
		return nil, errs.NewObjectNotFoundError("username", username)
	}
	return user, nil
}

// Remove deletes a user by username.
func (r *UserRepository) Remove(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[username]; !ok {
		return errs.NewObjectNotFoundError("username", username)
	}

	delete(r.users, username)
	return nil
}

// GetAll returns every registered user sorted by username.
func (r *UserRepository) GetAll(_ context.Context) ([]*account.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*account.User, 0, len(r.users))
	for _, user := range r.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username() < out[j].Username() })
	return out, nil
}
