package admin

import (
	"context"
	"log/slog"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/services/ledger"
	"restaurant/internal/core/ports"
	"restaurant/internal/workers"
)

// Service is the management facade: the catalog, account and agent
// administration operations that opaque back-office callers use. Like the
// protocol commands it publishes an update notification after every
// successful mutation. Removals check presence only; removing an entity that
// is still referenced elsewhere is the caller's problem.
type Service struct {
	ledger    *ledger.Ledger
	suppliers ports.SupplierRepository
	postcodes ports.PostcodeRepository
	users     ports.UserRepository
	pool      *workers.Pool
	publisher ports.UpdatePublisher
	log       *slog.Logger
}

// NewService creates the management facade.
func NewService(
	l *ledger.Ledger,
	suppliers ports.SupplierRepository,
	postcodes ports.PostcodeRepository,
	users ports.UserRepository,
	pool *workers.Pool,
	publisher ports.UpdatePublisher,
	log *slog.Logger,
) *Service {
	return &Service{
		ledger:    l,
		suppliers: suppliers,
		postcodes: postcodes,
		users:     users,
		pool:      pool,
		publisher: publisher,
		log:       log.With("component", "admin"),
	}
}

// AddSupplier registers an ingredient supplier.
func (s *Service) AddSupplier(ctx context.Context, name string, distance kernel.Distance) (*menu.Supplier, error) {
	supplier, err := menu.NewSupplier(name, distance)
	if err != nil {
		return nil, err
	}
	if err = s.suppliers.Add(ctx, supplier); err != nil {
		return nil, err
	}
	s.publisher.Publish()
	return supplier, nil
}

// RemoveSupplier deletes a supplier by name.
func (s *Service) RemoveSupplier(ctx context.Context, name string) error {
	if err := s.suppliers.Remove(ctx, name); err != nil {
		return err
	}
	s.publisher.Publish()
	return nil
}

// AddPostcode registers a served delivery area.
func (s *Service) AddPostcode(ctx context.Context, code string, distance kernel.Distance) (*account.Postcode, error) {
	postcode, err := account.NewPostcode(code, distance)
	if err != nil {
		return nil, err
	}
	if err = s.postcodes.Add(ctx, postcode); err != nil {
		return nil, err
	}
	s.publisher.Publish()
	return postcode, nil
}

// RemovePostcode deletes a postcode by code.
func (s *Service) RemovePostcode(ctx context.Context, code string) error {
	if err := s.postcodes.Remove(ctx, code); err != nil {
		return err
	}
	s.publisher.Publish()
	return nil
}

// AddIngredient registers an ingredient sourced from a known supplier.
func (s *Service) AddIngredient(
	ctx context.Context,
	name, unit, supplierName string,
	threshold, amount kernel.Quantity,
) (*menu.Ingredient, error) {
	supplier, err := s.suppliers.Get(ctx, supplierName)
	if err != nil {
		return nil, err
	}

	ingredient, err := menu.NewIngredient(name, unit, supplier)
	if err != nil {
		return nil, err
	}
	if err = s.ledger.AddIngredient(ingredient, threshold, amount); err != nil {
		return nil, err
	}
	s.publisher.Publish()
	return ingredient, nil
}

// RemoveIngredient deletes an ingredient and its stock record.
func (s *Service) RemoveIngredient(_ context.Context, name string) error {
	if err := s.ledger.RemoveIngredient(name); err != nil {
		return err
	}
	s.publisher.Publish()
	return nil
}

// AddDish registers a dish with an empty recipe.
func (s *Service) AddDish(
	_ context.Context,
	name, description string,
	price kernel.Money,
	threshold, amount kernel.Quantity,
) (*menu.Dish, error) {
	dish, err := menu.NewDish(name, description, price)
	if err != nil {
		return nil, err
	}
	if err = s.ledger.AddDish(dish, threshold, amount); err != nil {
		return nil, err
	}
	s.publisher.Publish()
	return dish, nil
}

// RemoveDish deletes a dish and its stock record.
func (s *Service) RemoveDish(_ context.Context, name string) error {
	if err := s.ledger.RemoveDish(name); err != nil {
		return err
	}
	s.publisher.Publish()
	return nil
}

// SetRecipeLine sets how much of an ingredient one portion of a dish
// consumes. A zero quantity removes the line.
func (s *Service) SetRecipeLine(_ context.Context, dishName, ingredient string, qty kernel.Quantity) error {
	dish, err := s.ledger.Dish(dishName)
	if err != nil {
		return err
	}
	if err = dish.UpsertRecipeLine(ingredient, qty); err != nil {
		return err
	}
	s.publisher.Publish()
	return nil
}

// SetDishRestockLevels replaces a dish's restock threshold and amount.
func (s *Service) SetDishRestockLevels(_ context.Context, name string, threshold, amount kernel.Quantity) error {
	if err := s.ledger.SetDishRestockLevels(name, threshold, amount); err != nil {
		return err
	}
	s.publisher.Publish()
	return nil
}

// SetIngredientRestockLevels replaces an ingredient's restock threshold and
// amount.
func (s *Service) SetIngredientRestockLevels(_ context.Context, name string, threshold, amount kernel.Quantity) error {
	if err := s.ledger.SetIngredientRestockLevels(name, threshold, amount); err != nil {
		return err
	}
	s.publisher.Publish()
	return nil
}

// RemoveUser deletes a customer account.
func (s *Service) RemoveUser(ctx context.Context, username string) error {
	if err := s.users.Remove(ctx, username); err != nil {
		return err
	}
	s.publisher.Publish()
	return nil
}

// AddKitchenAgent hires a kitchen agent; when the pool is running the agent
// starts draining work immediately.
func (s *Service) AddKitchenAgent(_ context.Context, name string) *workers.Kitchen {
	k := s.pool.AddKitchen(name)
	s.log.Info("kitchen agent added", "agent", name)
	s.publisher.Publish()
	return k
}

// AddDeliveryAgent hires a delivery agent with the given speed.
func (s *Service) AddDeliveryAgent(_ context.Context, name string, speed float64) *workers.Delivery {
	d := s.pool.AddDelivery(name, speed)
	s.log.Info("delivery agent added", "agent", name, "speed", speed)
	s.publisher.Publish()
	return d
}

// RemoveKitchenAgent dismisses a kitchen agent, interrupting any cook in
// hand.
func (s *Service) RemoveKitchenAgent(_ context.Context, name string) error {
	if err := s.pool.RemoveKitchen(name); err != nil {
		return err
	}
	s.log.Info("kitchen agent removed", "agent", name)
	s.publisher.Publish()
	return nil
}

// RemoveDeliveryAgent dismisses a delivery agent, interrupting any trip in
// hand.
func (s *Service) RemoveDeliveryAgent(_ context.Context, name string) error {
	if err := s.pool.RemoveDelivery(name); err != nil {
		return err
	}
	s.log.Info("delivery agent removed", "agent", name)
	s.publisher.Publish()
	return nil
}

// AgentStatuses reports every agent's current status.
func (s *Service) AgentStatuses(_ context.Context) []workers.AgentStatus {
	return s.pool.Statuses()
}
