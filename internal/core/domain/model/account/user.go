package account

import (
	"errors"
	"sync"

	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/pkg/guard"
)

// Domain errors for user operations.
var (
	// ErrUsernameIsRequired is returned when attempting to create a user without a username.
	ErrUsernameIsRequired = errs.NewValueIsRequiredError("username")
	// ErrPasswordIsRequired is returned when attempting to create a user without a password.
	ErrPasswordIsRequired = errs.NewValueIsRequiredError("password")
	// ErrBasketLineIsInvalid is returned when a basket mutation names no dish.
	ErrBasketLineIsInvalid = errs.NewValueIsInvalidError("basket line")
	// ErrUserIsNotConstructed is returned when using an improperly initialized User.
	ErrUserIsNotConstructed = errors.New("User must be created via NewUser constructor")
)

// User is a registered customer. It is an aggregate root identified by
// username that owns the customer's credentials, delivery details and the
// basket of dishes staged for checkout.
//
// Business rules:
//   - Username and password must be non-empty; the street address may be empty
//   - The user belongs to exactly one served postcode
//   - Basket lines map dish names to positive quantities
//   - Checkout empties the basket; the basket is never shared between users
//
// Basket access is synchronized: the dispatcher mutates it while snapshot
// capture reads it from the scheduler goroutine.
//
// Example usage:
//
//	postcode, _ := NewPostcode("AB1 2CD", 10)
//	user, err := NewUser("bob", "secret", "1 High St", postcode)
//	if err != nil {
//	    // Handle construction error
//	}
//	_ = user.AddToBasket("Maki", 2)
type User struct {
	username string
	password string
	address  string
	postcode *Postcode

	mu     sync.Mutex
	basket map[string]kernel.Quantity

	guard guard.ConstructorGuard
}

// NewUser creates a new User with an empty basket.
func NewUser(username, password, address string, postcode *Postcode) (*User, error) {
	user := &User{
		basket: make(map[string]kernel.Quantity),
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		user.setUsername(username),
		user.setPassword(password),
		user.setAddress(address),
		user.setPostcode(postcode),
	); err != nil {
		return nil, err
	}

	return user, nil
}

// Username returns the user's identifying name.
func (u *User) Username() string {
	return u.username
}

// Address returns the user's street address.
func (u *User) Address() string {
	return u.address
}

// Postcode returns the postcode the user registered against.
func (u *User) Postcode() *Postcode {
	return u.postcode
}

// Authenticate reports whether the supplied password matches.
func (u *User) Authenticate(password string) bool {
	return u.password == password
}

// Password returns the stored password. It is exposed for persistence
// adapters only.
func (u *User) Password() string {
	return u.password
}

// Basket returns a copy of the staged basket lines.
func (u *User) Basket() map[string]kernel.Quantity {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make(map[string]kernel.Quantity, len(u.basket))
	for dish, qty := range u.basket {
		out[dish] = qty
	}
	return out
}

// AddToBasket adds the given number of portions of a dish to the basket,
// accumulating with any portions already staged.
func (u *User) AddToBasket(dish string, qty kernel.Quantity) error {
	if dish == "" || qty <= 0 {
		return ErrBasketLineIsInvalid
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	u.basket[dish] = u.basket[dish] + qty
	return nil
}

// UpdateBasket sets the staged quantity of a dish outright. A zero quantity
// removes the line.
func (u *User) UpdateBasket(dish string, qty kernel.Quantity) error {
	if dish == "" || qty < 0 {
		return ErrBasketLineIsInvalid
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if qty == 0 {
		delete(u.basket, dish)
		return nil
	}

	u.basket[dish] = qty
	return nil
}

// ClearBasket empties the basket, as checkout does after the order is placed.
func (u *User) ClearBasket() {
	u.mu.Lock()
	defer u.mu.Unlock()

	u.basket = make(map[string]kernel.Quantity)
}

// IsEqual compares two users by username.
func (u *User) IsEqual(other *User) bool {
	if other == nil {
		return false
	}
	return u.username == other.username
}

// Validate checks that the User was created via NewUser.
func (u *User) Validate() error {
	if u == nil {
		return ErrUserIsNotConstructed
	}
	return u.guard.Validate(ErrUserIsNotConstructed)
}

func (u *User) setUsername(username string) error {
	if username == "" {
		return ErrUsernameIsRequired
	}

	u.username = username
	return nil
}

func (u *User) setPassword(password string) error {
	if password == "" {
		return ErrPasswordIsRequired
	}

	u.password = password
	return nil
}

func (u *User) setAddress(address string) error {
	u.address = address
	return nil
}

func (u *User) setPostcode(postcode *Postcode) error {
	if err := postcode.Validate(); err != nil {
		return err
	}

	u.postcode = postcode
	return nil
}
