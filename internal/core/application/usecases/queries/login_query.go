package queries

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var (
	ErrLoginQueryIsNotConstructed = errors.New(
		"LoginQuery must be created via NewLoginQuery constructor",
	)
	ErrLoginUsernameIsRequired = errors.New("username is required")
)

// LoginQuery represents a credential check for an existing account.
type LoginQuery struct { //nolint:recvcheck //using for validation
	username string
	password string

	guard guard.ConstructorGuard
}

// NewLoginQuery creates a login query. An empty password is allowed through
// so the check fails on comparison rather than validation; wrong credentials
// are a legitimate negative outcome, not a malformed request.
func NewLoginQuery(username, password string) (LoginQuery, error) {
	query := LoginQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setUsername(username); err != nil {
		return LoginQuery{}, err
	}
	query.password = password

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q LoginQuery) Validate() error {
	return q.guard.Validate(ErrLoginQueryIsNotConstructed)
}

// Username returns the account name to check.
func (q LoginQuery) Username() string {
	return q.username
}

// Password returns the password to check.
func (q LoginQuery) Password() string {
	return q.password
}

func (q *LoginQuery) setUsername(username string) error {
	if username == "" {
		return ErrLoginUsernameIsRequired
	}

	q.username = username
	return nil
}
