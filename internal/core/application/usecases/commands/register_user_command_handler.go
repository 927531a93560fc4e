package commands

import (
	"context"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/ports"
)

// RegisterUserCommandHandler creates customer accounts. A username collision
// surfaces as a Duplicate error, which the protocol layer renders as a null
// reply rather than a failure.
type RegisterUserCommandHandler struct {
	users     ports.UserRepository
	postcodes ports.PostcodeRepository
	publisher ports.UpdatePublisher
}

// NewRegisterUserCommandHandler creates a handler for account registration.
func NewRegisterUserCommandHandler(
	users ports.UserRepository,
	postcodes ports.PostcodeRepository,
	publisher ports.UpdatePublisher,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		users:     users,
		postcodes: postcodes,
		publisher: publisher,
	}
}

// Handle processes the registration command and returns the created user.
func (h *RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*account.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	postcode, err := h.postcodes.Get(ctx, cmd.Postcode())
	if err != nil {
		return nil, err
	}

	user, err := account.NewUser(cmd.Username(), cmd.Password(), cmd.Address(), postcode)
	if err != nil {
		return nil, err
	}

	if err = h.users.Add(ctx, user); err != nil {
		return nil, err
	}

	h.publisher.Publish()
	return user, nil
}
