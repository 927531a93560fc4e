package account

import (
	"errors"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Domain errors for postcode operations.
var (
	// ErrPostcodeCodeIsRequired is returned when attempting to create a postcode without a code.
	ErrPostcodeCodeIsRequired = errs.NewValueIsRequiredError("postcode code")
	// ErrPostcodeIsNotConstructed is returned when using an improperly initialized Postcode.
	ErrPostcodeIsNotConstructed = errors.New("Postcode must be created via NewPostcode constructor")
)

// Postcode is a delivery area the restaurant serves, identified by its code
// and carrying the transit distance from the restaurant. Customers register
// against a postcode and delivery trips to them take time proportional to its
// distance.
type Postcode struct {
	code     string
	distance kernel.Distance
	guard    guard.ConstructorGuard
}

// NewPostcode creates a new Postcode with the specified code and distance.
func NewPostcode(code string, distance kernel.Distance) (*Postcode, error) {
	postcode := &Postcode{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		postcode.setCode(code),
		postcode.setDistance(distance),
	); err != nil {
		return nil, err
	}

	return postcode, nil
}

// Code returns the postcode's identifying code.
func (p *Postcode) Code() string {
	return p.code
}

// Distance returns the transit distance from the restaurant.
func (p *Postcode) Distance() kernel.Distance {
	return p.distance
}

// IsEqual compares two postcodes by code.
func (p *Postcode) IsEqual(other *Postcode) bool {
	if other == nil {
		return false
	}
	return p.code == other.code
}

// Validate checks that the Postcode was created via NewPostcode.
func (p *Postcode) Validate() error {
	if p == nil {
		return ErrPostcodeIsNotConstructed
	}
	return p.guard.Validate(ErrPostcodeIsNotConstructed)
}

func (p *Postcode) setCode(code string) error {
	if code == "" {
		return ErrPostcodeCodeIsRequired
	}

	p.code = code
	return nil
}

func (p *Postcode) setDistance(distance kernel.Distance) error {
	if err := distance.Validate(); err != nil {
		return err
	}

	p.distance = distance
	return nil
}
