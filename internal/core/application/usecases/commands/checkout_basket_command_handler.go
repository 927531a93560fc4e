package commands

import (
	"context"
	"sort"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services/ledger"
	"restaurant/internal/core/ports"
)

// CheckoutBasketCommandHandler turns a basket snapshot into an order: it
// prices every line against the current menu, decrements dish stock (which
// may trigger cook requests), enqueues the order for delivery and empties the
// customer's server-side basket.
type CheckoutBasketCommandHandler struct {
	users     ports.UserRepository
	orders    ports.OrderRepository
	ledger    *ledger.Ledger
	publisher ports.UpdatePublisher
}

// NewCheckoutBasketCommandHandler creates a handler for basket checkout.
func NewCheckoutBasketCommandHandler(
	users ports.UserRepository,
	orders ports.OrderRepository,
	l *ledger.Ledger,
	publisher ports.UpdatePublisher,
) CheckoutBasketCommandHandler {
	return CheckoutBasketCommandHandler{
		users:     users,
		orders:    orders,
		ledger:    l,
		publisher: publisher,
	}
}

// Handle processes the checkout command and returns the created order.
func (h *CheckoutBasketCommandHandler) Handle(ctx context.Context, cmd CheckoutBasketCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	user, err := h.users.Get(ctx, cmd.Username())
	if err != nil {
		return nil, err
	}

	basket := cmd.Basket()
	dishes := make([]string, 0, len(basket))
	for dish := range basket {
		dishes = append(dishes, dish)
	}
	sort.Strings(dishes)

	lines := make([]order.Line, 0, len(dishes))
	for _, name := range dishes {
		dish, dishErr := h.ledger.Dish(name)
		if dishErr != nil {
			return nil, dishErr
		}
		line, lineErr := order.NewLine(name, dish.Price(), basket[name])
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)
	}

	o, err := order.NewOrder(kernel.NewUUID(), user.Username(), user.Postcode(), lines)
	if err != nil {
		return nil, err
	}

	// Stock is consumed before the order goes on the books, so a dish that
	// vanished since pricing fails the checkout without leaving a stored
	// order behind.
	for _, line := range o.Lines() {
		if err = h.ledger.ConsumeDishStock(line.Dish(), line.Quantity()); err != nil {
			return nil, err
		}
	}

	if err = h.orders.Add(ctx, o); err != nil {
		return nil, err
	}

	if err = h.ledger.EnqueueOrder(o); err != nil {
		return nil, err
	}

	user.ClearBasket()
	h.publisher.Publish()
	return o, nil
}
