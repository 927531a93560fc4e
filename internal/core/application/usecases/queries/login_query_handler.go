package queries

import (
	"context"
	"errors"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

// LoginQueryHandler checks credentials against the user store. A wrong
// username or password yields a nil user with no error: the protocol layer
// renders it as a null reply, which clients must treat as a legitimate
// negative outcome distinct from a broken connection.
type LoginQueryHandler struct {
	users ports.UserRepository
}

// NewLoginQueryHandler creates a handler for credential checks.
func NewLoginQueryHandler(users ports.UserRepository) LoginQueryHandler {
	return LoginQueryHandler{users: users}
}

// Handle returns the matching user, or nil when the credentials do not match.
func (h *LoginQueryHandler) Handle(ctx context.Context, query LoginQuery) (*account.User, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	user, err := h.users.Get(ctx, query.Username())
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if !user.Authenticate(query.Password()) {
		return nil, nil
	}
	return user, nil
}
