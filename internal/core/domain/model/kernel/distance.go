package kernel

import (
	"time"

	"restaurant/internal/pkg/errs"
)

// Distance is the scalar transit cost between the restaurant and a supplier or
// a customer postcode. It is dimensionless: together with an agent's speed and
// the configured transit scale it determines how long a simulated trip takes.
type Distance float64

// NewDistance validates and returns a Distance.
func NewDistance(v float64) (Distance, error) {
	if v < 0 {
		return 0, errs.NewValueIsInvalidError("distance must not be negative")
	}
	return Distance(v), nil
}

// Validate returns an error for negative distances.
func (d Distance) Validate() error {
	if d < 0 {
		return errs.NewValueIsInvalidError("distance must not be negative")
	}
	return nil
}

// Float returns the distance as a float64.
func (d Distance) Float() float64 {
	return float64(d)
}

// TransitTime computes the simulated travel duration for an agent moving at
// the given speed: (distance / speed) * scale. A non-positive speed yields
// zero so a misconfigured agent degrades to instant trips instead of
// dividing by zero.
func (d Distance) TransitTime(speed float64, scale time.Duration) time.Duration {
	if speed <= 0 {
		return 0
	}
	return time.Duration(float64(d) / speed * float64(scale))
}
