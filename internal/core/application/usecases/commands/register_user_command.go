package commands

import (
	"errors"

	"restaurant/internal/pkg/guard"
)

var (
	ErrRegisterUserCommandIsNotConstructed = errors.New(
		"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
	)
	ErrRegisterUsernameIsRequired = errors.New("username is required")
	ErrRegisterPasswordIsRequired = errors.New("password is required")
	ErrRegisterPostcodeIsRequired = errors.New("postcode is required")
)

// RegisterUserCommand represents a request to create a customer account
// against one of the served postcodes.
type RegisterUserCommand struct { //nolint:recvcheck //using for validation
	username string
	password string
	address  string
	postcode string

	guard guard.ConstructorGuard
}

// NewRegisterUserCommand creates a registration command. Username, password
// and postcode are required; the street address may be empty.
func NewRegisterUserCommand(username, password, address, postcode string) (RegisterUserCommand, error) {
	cmd := RegisterUserCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setUsername(username),
		cmd.setPassword(password),
		cmd.setAddress(address),
		cmd.setPostcode(postcode),
	); err != nil {
		return RegisterUserCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

// Username returns the requested account name.
func (c RegisterUserCommand) Username() string {
	return c.username
}

// Password returns the account password.
func (c RegisterUserCommand) Password() string {
	return c.password
}

// Address returns the customer's street address.
func (c RegisterUserCommand) Address() string {
	return c.address
}

// Postcode returns the code of the postcode the customer registers against.
func (c RegisterUserCommand) Postcode() string {
	return c.postcode
}

func (c *RegisterUserCommand) setUsername(username string) error {
	if username == "" {
		return ErrRegisterUsernameIsRequired
	}

	c.username = username
	return nil
}

func (c *RegisterUserCommand) setPassword(password string) error {
	if password == "" {
		return ErrRegisterPasswordIsRequired
	}

	c.password = password
	return nil
}

func (c *RegisterUserCommand) setAddress(address string) error {
	c.address = address
	return nil
}

func (c *RegisterUserCommand) setPostcode(postcode string) error {
	if postcode == "" {
		return ErrRegisterPostcodeIsRequired
	}

	c.postcode = postcode
	return nil
}
