package order

import (
	"errors"
	"sync"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Domain errors for order operations.
var (
	// ErrCustomerIsRequired is returned when attempting to create an order without a customer.
	ErrCustomerIsRequired = errs.NewValueIsRequiredError("customer")
	// ErrLinesAreRequired is returned when attempting to create an order with no lines.
	ErrLinesAreRequired = errs.NewValueIsRequiredError("order lines")
	// ErrOrderIsNotConstructed is returned when using an improperly initialized Order.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order represents a checked-out customer order travelling through the
// fulfilment pipeline. It is the aggregate root that manages the order
// lifecycle from checkout through delivery.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a non-empty customer
//   - Must have at least one line; lines are immutable after checkout
//   - Status transitions follow the one-way WaitingOnDelivery ->
//     BeingDelivered -> Delivered machine
//   - Can only be created through the NewOrder constructor
//
// A delivery agent goroutine advances the status while the dispatcher and the
// management API read it, so status access is guarded by an internal mutex.
// Identity and lines are written once at construction and read lock-free.
type Order struct {
	id       kernel.UUID
	customer string
	postcode *account.Postcode
	lines    []Line

	mu     sync.Mutex
	status Status

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in the WaitingOnDelivery state.
//
// Parameters:
//   - id: unique identifier (must be a valid UUID)
//   - customer: username of the ordering customer
//   - postcode: delivery destination, determines transit time
//   - lines: snapshot of the customer's basket priced at checkout
func NewOrder(id kernel.UUID, customer string, postcode *account.Postcode, lines []Line) (*Order, error) {
	return newOrder(id, customer, postcode, lines, WaitingOnDelivery)
}

// RestoreOrder reconstructs an Order from persistent storage in the given
// status.
func RestoreOrder(id kernel.UUID, customer string, postcode *account.Postcode, lines []Line, status Status) (*Order, error) {
	if err := status.Validate(); err != nil {
		return nil, err
	}
	return newOrder(id, customer, postcode, lines, status)
}

func newOrder(id kernel.UUID, customer string, postcode *account.Postcode, lines []Line, status Status) (*Order, error) {
	o := &Order{
		status: status,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomer(customer),
		o.setPostcode(postcode),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Customer returns the username of the ordering customer.
func (o *Order) Customer() string {
	return o.customer
}

// Postcode returns the delivery destination.
func (o *Order) Postcode() *account.Postcode {
	return o.postcode
}

// Lines returns a copy of the priced order lines.
func (o *Order) Lines() []Line {
	out := make([]Line, len(o.lines))
	copy(out, o.lines)
	return out
}

// Cost returns the total price of the order.
func (o *Order) Cost() kernel.Money {
	var total kernel.Money
	for _, line := range o.lines {
		total = total.Add(line.Cost())
	}
	return total
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.status
}

// IsCompleted reports whether the order reached the customer.
func (o *Order) IsCompleted() bool {
	return o.Status() == Delivered
}

// BeginDelivery marks the order as picked up by a delivery agent.
func (o *Order) BeginDelivery() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := o.status.BeginDelivery()
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

// Complete marks the order as delivered. This is the only transition that
// sets the completion flag.
func (o *Order) Complete() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	next, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = next
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// Validate checks that the Order was created via NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	o.id = id
	return nil
}

func (o *Order) setCustomer(customer string) error {
	if customer == "" {
		return ErrCustomerIsRequired
	}

	o.customer = customer
	return nil
}

func (o *Order) setPostcode(postcode *account.Postcode) error {
	if err := postcode.Validate(); err != nil {
		return err
	}

	o.postcode = postcode
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return ErrLinesAreRequired
	}

	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}
