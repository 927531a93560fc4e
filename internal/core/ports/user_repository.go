package ports

import (
	"context"

	"restaurant/internal/core/domain/model/account"
)

// UserRepository defines the storage contract for registered customers.
// The command dispatcher is the only writer, so implementations may be
// single-threaded.
type UserRepository interface {
	// Add stores a new user. Returns a Duplicate error when the username
	// is already taken.
	Add(ctx context.Context, user *account.User) error

	// Get retrieves a user by username. Returns a NotFound error when the
	// user does not exist.
	Get(ctx context.Context, username string) (*account.User, error)

	// Remove deletes a user by username.
	Remove(ctx context.Context, username string) error

	// GetAll returns every registered user sorted by username.
	GetAll(ctx context.Context) ([]*account.User, error)
}

// PostcodeRepository defines the storage contract for served postcodes.
type PostcodeRepository interface {
	// Add stores a new postcode. Returns a Duplicate error on code collision.
	Add(ctx context.Context, postcode *account.Postcode) error

	// Get retrieves a postcode by code.
	Get(ctx context.Context, code string) (*account.Postcode, error)

	// Remove deletes a postcode by code.
	Remove(ctx context.Context, code string) error

	// GetAll returns every served postcode sorted by code.
	GetAll(ctx context.Context) ([]*account.Postcode, error)
}
