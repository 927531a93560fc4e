package order

import (
	"fmt"

	"restaurant/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a one-way state machine:
//
//	WaitingOnDelivery ──> BeingDelivered ──> Delivered
//
// There are no backward transitions: once an agent picks the order up it is
// delivered or the process dies, never requeued.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// WaitingOnDelivery is the initial status of a checked-out order
	// sitting in the delivery queue.
	WaitingOnDelivery

	// BeingDelivered indicates a delivery agent has picked the order up
	// and is in transit.
	BeingDelivered

	// Delivered indicates the order reached the customer. This is a final
	// state with no further transitions allowed.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:           "Unknown",
		WaitingOnDelivery: "Waiting on Delivery",
		BeingDelivered:    "Being Delivered",
		Delivered:         "Delivered",
	}
}

// StatusFromString maps a display string back to a Status, as used when
// loading persisted orders.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks if the Status value is valid. Unknown (0) and out-of-range
// values are invalid.
func (s Status) Validate() error {
	if s != WaitingOnDelivery && s != BeingDelivered && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. It is safe to call on
// any Status value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// BeginDelivery transitions the status to BeingDelivered. The only valid
// source state is WaitingOnDelivery.
func (s Status) BeginDelivery() (Status, error) {
	if s != WaitingOnDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to begin delivery", s.String()),
		)
	}

	return BeingDelivered, nil
}

// Complete transitions the status to Delivered. The only valid source state
// is BeingDelivered.
func (s Status) Complete() (Status, error) {
	if s != BeingDelivered {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Delivered, nil
}
