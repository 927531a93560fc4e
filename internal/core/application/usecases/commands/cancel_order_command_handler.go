package commands

import (
	"context"

	"restaurant/internal/core/domain/services/ledger"
	"restaurant/internal/core/ports"
)

// CancelOrderCommandHandler withdraws a placed order: the order leaves the
// order list, and its delivery queue entry is dropped when an agent has not
// picked it up yet. A trip already in flight runs to completion; cancelling
// mid-air is out of scope.
type CancelOrderCommandHandler struct {
	orders    ports.OrderRepository
	ledger    *ledger.Ledger
	publisher ports.UpdatePublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	orders ports.OrderRepository,
	l *ledger.Ledger,
	publisher ports.UpdatePublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		orders:    orders,
		ledger:    l,
		publisher: publisher,
	}
}

// Handle processes the cancellation command. Cancelling an absent order
// returns a NotFound error.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if _, err := h.orders.Get(ctx, cmd.OrderID()); err != nil {
		return err
	}

	h.ledger.RemoveQueuedOrder(cmd.OrderID())

	if err := h.orders.Remove(ctx, cmd.OrderID()); err != nil {
		return err
	}

	h.publisher.Publish()
	return nil
}
