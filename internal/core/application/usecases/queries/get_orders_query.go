package queries

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var (
	ErrGetOrdersQueryIsNotConstructed = errors.New(
		"GetOrdersQuery must be created via NewGetOrdersQuery constructor",
	)
	ErrGetOrdersUsernameIsRequired = errors.New("username is required")
)

// GetOrdersQuery represents a request for one customer's orders.
type GetOrdersQuery struct { //nolint:recvcheck //using for validation
	username string

	guard guard.ConstructorGuard
}

// NewGetOrdersQuery creates an order-listing query.
func NewGetOrdersQuery(username string) (GetOrdersQuery, error) {
	query := GetOrdersQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setUsername(username); err != nil {
		return GetOrdersQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOrdersQueryIsNotConstructed)
}

// Username returns the customer whose orders are listed.
func (q GetOrdersQuery) Username() string {
	return q.username
}

func (q *GetOrdersQuery) setUsername(username string) error {
	if username == "" {
		return ErrGetOrdersUsernameIsRequired
	}

	q.username = username
	return nil
}
