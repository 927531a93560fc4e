package snapshot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services/ledger"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
	"restaurant/internal/workers"
)

// Service moves whole-server state across the persistence boundary: Restore
// replays a stored snapshot into the live structures at startup, Save
// captures them back out for autosave and shutdown.
type Service struct {
	store     ports.SnapshotStore
	ledger    *ledger.Ledger
	suppliers ports.SupplierRepository
	postcodes ports.PostcodeRepository
	users     ports.UserRepository
	orders    ports.OrderRepository
	pool      *workers.Pool
	log       *slog.Logger
}

// NewService creates the snapshot service.
func NewService(
	store ports.SnapshotStore,
	l *ledger.Ledger,
	suppliers ports.SupplierRepository,
	postcodes ports.PostcodeRepository,
	users ports.UserRepository,
	orders ports.OrderRepository,
	pool *workers.Pool,
	log *slog.Logger,
) *Service {
	return &Service{
		store:     store,
		ledger:    l,
		suppliers: suppliers,
		postcodes: postcodes,
		users:     users,
		orders:    orders,
		pool:      pool,
		log:       log.With("component", "snapshot"),
	}
}

// Save captures the live state and persists it.
func (s *Service) Save(ctx context.Context) error {
	snapshot, err := s.Capture(ctx)
	if err != nil {
		return err
	}
	if err = s.store.Save(ctx, snapshot); err != nil {
		return err
	}
	s.log.Info("state saved",
		"dishes", len(snapshot.Dishes), "users", len(snapshot.Users), "orders", len(snapshot.Orders))
	return nil
}

// Restore loads the stored snapshot and replays it. A missing snapshot means
// a first boot and is not an error. Agents named by the snapshot are added
// to the pool; if the pool is already started they begin working immediately.
func (s *Service) Restore(ctx context.Context) error {
	snapshot, err := s.store.Load(ctx)
	if errors.Is(err, errs.ErrObjectNotFound) {
		s.log.Info("no stored state, starting empty")
		return nil
	}
	if err != nil {
		return err
	}
	return s.apply(ctx, snapshot)
}

// Capture assembles a snapshot of the live state.
func (s *Service) Capture(ctx context.Context) (*ports.Snapshot, error) {
	snapshot := &ports.Snapshot{}

	suppliers, err := s.suppliers.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, supplier := range suppliers {
		snapshot.Suppliers = append(snapshot.Suppliers, ports.SupplierRecord{
			Name:     supplier.Name(),
			Distance: supplier.Distance().Float(),
		})
	}

	postcodes, err := s.postcodes.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, postcode := range postcodes {
		snapshot.Postcodes = append(snapshot.Postcodes, ports.PostcodeRecord{
			Code:     postcode.Code(),
			Distance: postcode.Distance().Float(),
		})
	}

	if err = s.captureCatalog(snapshot); err != nil {
		return nil, err
	}

	usersList, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, user := range usersList {
		basket := make(map[string]int)
		for dish, qty := range user.Basket() {
			basket[dish] = qty.Int()
		}
		snapshot.Users = append(snapshot.Users, ports.UserRecord{
			Username: user.Username(),
			Password: user.Password(),
			Address:  user.Address(),
			Postcode: user.Postcode().Code(),
			Basket:   basket,
		})
	}

	snapshot.Staff, snapshot.Drones = s.pool.Roster()

	ordersList, err := s.orders.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, o := range ordersList {
		record := ports.OrderRecord{
			ID:       o.ID().String(),
			Customer: o.Customer(),
			Postcode: o.Postcode().Code(),
			Status:   o.Status().String(),
		}
		for _, line := range o.Lines() {
			record.Lines = append(record.Lines, ports.OrderLineRecord{
				Dish:           line.Dish(),
				Quantity:       line.Quantity().Int(),
				UnitPriceCents: line.UnitPrice().Cents(),
			})
		}
		snapshot.Orders = append(snapshot.Orders, record)
	}

	return snapshot, nil
}

func (s *Service) captureCatalog(snapshot *ports.Snapshot) error {
	for _, ingredient := range s.ledger.Ingredients() {
		stock, err := s.ledger.IngredientStock(ingredient.Name())
		if err != nil {
			return err
		}
		threshold, amount, err := s.ledger.IngredientRestockLevels(ingredient.Name())
		if err != nil {
			return err
		}
		snapshot.Ingredients = append(snapshot.Ingredients, ports.IngredientRecord{
			Name:      ingredient.Name(),
			Unit:      ingredient.Unit(),
			Supplier:  ingredient.Supplier().Name(),
			Threshold: threshold.Int(),
			Amount:    amount.Int(),
			Stock:     stock.Int(),
		})
	}

	for _, dish := range s.ledger.Dishes() {
		stock, err := s.ledger.DishStock(dish.Name())
		if err != nil {
			return err
		}
		threshold, amount, err := s.ledger.DishRestockLevels(dish.Name())
		if err != nil {
			return err
		}
		recipe := make(map[string]int)
		for ingredient, qty := range dish.Recipe() {
			recipe[ingredient] = qty.Int()
		}
		snapshot.Dishes = append(snapshot.Dishes, ports.DishRecord{
			Name:        dish.Name(),
			Description: dish.Description(),
			PriceCents:  dish.Price().Cents(),
			Threshold:   threshold.Int(),
			Amount:      amount.Int(),
			Stock:       stock.Int(),
			Recipe:      recipe,
		})
	}

	return nil
}

// apply replays a snapshot in dependency order. Restocking is suspended
// while stock levels are written so the replay does not spawn work the
// snapshot already accounts for.
func (s *Service) apply(ctx context.Context, snapshot *ports.Snapshot) error {
	suppliersByName := make(map[string]*menu.Supplier, len(snapshot.Suppliers))
	for _, record := range snapshot.Suppliers {
		supplier, err := menu.NewSupplier(record.Name, kernel.Distance(record.Distance))
		if err != nil {
			return err
		}
		if err = s.suppliers.Add(ctx, supplier); err != nil {
			return err
		}
		suppliersByName[record.Name] = supplier
	}

	postcodesByCode := make(map[string]*account.Postcode, len(snapshot.Postcodes))
	for _, record := range snapshot.Postcodes {
		postcode, err := account.NewPostcode(record.Code, kernel.Distance(record.Distance))
		if err != nil {
			return err
		}
		if err = s.postcodes.Add(ctx, postcode); err != nil {
			return err
		}
		postcodesByCode[record.Code] = postcode
	}

	s.ledger.SetDishRestocking(false)
	s.ledger.SetIngredientRestocking(false)
	defer s.ledger.SetDishRestocking(true)
	defer s.ledger.SetIngredientRestocking(true)

	if err := s.applyCatalog(snapshot, suppliersByName); err != nil {
		return err
	}
	if err := s.applyUsers(ctx, snapshot, postcodesByCode); err != nil {
		return err
	}

	for _, name := range snapshot.Staff {
		s.pool.AddKitchen(name)
	}
	for i, speed := range snapshot.Drones {
		s.pool.AddDelivery(droneName(i), speed)
	}

	if err := s.applyOrders(ctx, snapshot, postcodesByCode); err != nil {
		return err
	}

	s.log.Info("state restored",
		"dishes", len(snapshot.Dishes), "users", len(snapshot.Users), "orders", len(snapshot.Orders))
	return nil
}

func (s *Service) applyCatalog(snapshot *ports.Snapshot, suppliersByName map[string]*menu.Supplier) error {
	for _, record := range snapshot.Ingredients {
		supplier, ok := suppliersByName[record.Supplier]
		if !ok {
			return errs.NewObjectNotFoundError("supplier", record.Supplier)
		}
		ingredient, err := menu.NewIngredient(record.Name, record.Unit, supplier)
		if err != nil {
			return err
		}
		if err = s.ledger.AddIngredient(ingredient, kernel.Quantity(record.Threshold), kernel.Quantity(record.Amount)); err != nil {
			return err
		}
		if err = s.ledger.SetIngredientStock(record.Name, kernel.Quantity(record.Stock)); err != nil {
			return err
		}
	}

	for _, record := range snapshot.Dishes {
		recipe := make(map[string]kernel.Quantity, len(record.Recipe))
		for ingredient, qty := range record.Recipe {
			recipe[ingredient] = kernel.Quantity(qty)
		}
		dish, err := menu.RestoreDish(record.Name, record.Description, kernel.Money(record.PriceCents), recipe)
		if err != nil {
			return err
		}
		if err = s.ledger.AddDish(dish, kernel.Quantity(record.Threshold), kernel.Quantity(record.Amount)); err != nil {
			return err
		}
		if err = s.ledger.SetDishStock(record.Name, kernel.Quantity(record.Stock)); err != nil {
			return err
		}
	}

	return nil
}

func (s *Service) applyUsers(ctx context.Context, snapshot *ports.Snapshot, postcodesByCode map[string]*account.Postcode) error {
	for _, record := range snapshot.Users {
		postcode, ok := postcodesByCode[record.Postcode]
		if !ok {
			return errs.NewObjectNotFoundError("postcode", record.Postcode)
		}
		user, err := account.NewUser(record.Username, record.Password, record.Address, postcode)
		if err != nil {
			return err
		}
		for dish, qty := range record.Basket {
			if err = user.UpdateBasket(dish, kernel.Quantity(qty)); err != nil {
				return err
			}
		}
		if err = s.users.Add(ctx, user); err != nil {
			return err
		}
	}
	return nil
}

// applyOrders re-creates stored orders. Anything short of delivered goes
// back on the delivery queue as waiting: an interrupted trip never happened
// as far as a restarted server is concerned.
func (s *Service) applyOrders(ctx context.Context, snapshot *ports.Snapshot, postcodesByCode map[string]*account.Postcode) error {
	for _, record := range snapshot.Orders {
		postcode, ok := postcodesByCode[record.Postcode]
		if !ok {
			return errs.NewObjectNotFoundError("postcode", record.Postcode)
		}

		id := kernel.NewUUID()
		if record.ID != "" {
			parsed, err := kernel.UUIDFromString(record.ID)
			if err != nil {
				return err
			}
			id = parsed
		}

		lines := make([]order.Line, 0, len(record.Lines))
		for _, lineRecord := range record.Lines {
			line, err := order.NewLine(lineRecord.Dish, kernel.Money(lineRecord.UnitPriceCents), kernel.Quantity(lineRecord.Quantity))
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}

		delivered := record.Status == order.Delivered.String()

		var o *order.Order
		var err error
		if delivered {
			o, err = order.RestoreOrder(id, record.Customer, postcode, lines, order.Delivered)
		} else {
			o, err = order.NewOrder(id, record.Customer, postcode, lines)
		}
		if err != nil {
			return err
		}

		if err = s.orders.Add(ctx, o); err != nil {
			return err
		}
		if !delivered {
			if err = s.ledger.EnqueueOrder(o); err != nil {
				return err
			}
		}
	}
	return nil
}

func droneName(i int) string {
	return "drone-" + strconv.Itoa(i+1)
}
