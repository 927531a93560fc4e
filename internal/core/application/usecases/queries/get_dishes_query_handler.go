package queries

import (
	"context"

	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/services/ledger"
)

// GetDishesQueryHandler snapshots the dish catalog. The returned slice is a
// copy; callers may hold it while workers keep mutating stock.
type GetDishesQueryHandler struct {
	ledger *ledger.Ledger
}

// NewGetDishesQueryHandler creates a handler for menu listing.
func NewGetDishesQueryHandler(l *ledger.Ledger) GetDishesQueryHandler {
	return GetDishesQueryHandler{ledger: l}
}

// Handle returns the dish catalog sorted by name.
func (h *GetDishesQueryHandler) Handle(_ context.Context) ([]*menu.Dish, error) {
	return h.ledger.Dishes(), nil
}
