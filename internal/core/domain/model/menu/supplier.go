package menu

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Domain errors for supplier operations.
var (
	// ErrSupplierNameIsRequired is returned when attempting to create a supplier without a name.
	ErrSupplierNameIsRequired = errs.NewValueIsRequiredError("supplier name")
	// ErrSupplierIsNotConstructed is returned when using an improperly initialized Supplier.
	ErrSupplierIsNotConstructed = errors.New("Supplier must be created via NewSupplier constructor")
)

// Supplier is a source of ingredients located at some transit distance from
// the restaurant. Fetch trips to a supplier take time proportional to that
// distance. Suppliers are identified by name.
type Supplier struct {
	name     string
	distance kernel.Distance
	guard    guard.ConstructorGuard
}

// NewSupplier creates a new Supplier with the specified name and distance.
func NewSupplier(name string, distance kernel.Distance) (*Supplier, error) {
	supplier := &Supplier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		supplier.setName(name),
		supplier.setDistance(distance),
	); err != nil {
		return nil, err
	}

	return supplier, nil
}

// Name returns the supplier's identifying name.
func (s *Supplier) Name() string {
	return s.name
}

// Distance returns the transit distance from the restaurant.
func (s *Supplier) Distance() kernel.Distance {
	return s.distance
}

// IsEqual compares two suppliers by name.
func (s *Supplier) IsEqual(other *Supplier) bool {
	if other == nil {
		return false
	}
	return s.name == other.name
}

// Validate checks that the Supplier was created via NewSupplier.
func (s *Supplier) Validate() error {
	if s == nil {
		return ErrSupplierIsNotConstructed
	}
	return s.guard.Validate(ErrSupplierIsNotConstructed)
}

func (s *Supplier) setName(name string) error {
	if name == "" {
		return ErrSupplierNameIsRequired
	}

	s.name = name
	return nil
}

func (s *Supplier) setDistance(distance kernel.Distance) error {
	if err := distance.Validate(); err != nil {
		return err
	}

	s.distance = distance
	return nil
}
