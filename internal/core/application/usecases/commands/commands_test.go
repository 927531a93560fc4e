package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/adapters/out/memstore"
	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/model/order"
	"restaurant/internal/core/domain/services/ledger"
	"restaurant/internal/core/ports"
	"restaurant/internal/pkg/errs"
)

type countingPublisher struct {
	published int
}

func (p *countingPublisher) Publish() { p.published++ }

type fixture struct {
	users     *memstore.UserRepository
	postcodes *memstore.PostcodeRepository
	orders    *memstore.OrderRepository
	ledger    *ledger.Ledger
	publisher *countingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		users:     memstore.NewUserRepository(),
		postcodes: memstore.NewPostcodeRepository(),
		orders:    memstore.NewOrderRepository(),
		ledger:    ledger.NewLedger(),
		publisher: &countingPublisher{},
	}

	postcode, err := account.NewPostcode("AB1 2CD", 30)
	require.NoError(t, err)
	require.NoError(t, f.postcodes.Add(context.Background(), postcode))

	maki, err := menu.NewDish("Maki", "Rice rolls", 350)
	require.NoError(t, err)
	require.NoError(t, f.ledger.AddDish(maki, 0, 0))
	require.NoError(t, f.ledger.SetDishStock("Maki", 10))
	return f
}

func (f *fixture) registerBob(t *testing.T) *account.User {
	t.Helper()
	handler := NewRegisterUserCommandHandler(f.users, f.postcodes, f.publisher)
	cmd, err := NewRegisterUserCommand("bob", "secret", "1 High St", "AB1 2CD")
	require.NoError(t, err)
	user, err := handler.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return user
}

func TestRegisterUser(t *testing.T) {
	f := newFixture(t)

	user := f.registerBob(t)

	assert.Equal(t, "bob", user.Username())
	assert.Equal(t, "AB1 2CD", user.Postcode().Code())
	assert.Equal(t, 1, f.publisher.published)
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	f := newFixture(t)
	f.registerBob(t)

	handler := NewRegisterUserCommandHandler(f.users, f.postcodes, f.publisher)
	cmd, err := NewRegisterUserCommand("bob", "other", "", "AB1 2CD")
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), cmd)

	assert.ErrorIs(t, err, errs.ErrDuplicate)

	all, err := f.users.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)
	// The failed registration publishes nothing.
	assert.Equal(t, 1, f.publisher.published)
}

func TestRegisterUserUnknownPostcode(t *testing.T) {
	f := newFixture(t)

	handler := NewRegisterUserCommandHandler(f.users, f.postcodes, f.publisher)
	cmd, err := NewRegisterUserCommand("bob", "secret", "", "ZZ9 9ZZ")
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestRegisterUserCommandZeroValueIsInvalid(t *testing.T) {
	var cmd RegisterUserCommand
	assert.ErrorIs(t, cmd.Validate(), ErrRegisterUserCommandIsNotConstructed)
}

func TestCheckoutBasket(t *testing.T) {
	f := newFixture(t)
	user := f.registerBob(t)
	require.NoError(t, user.AddToBasket("Maki", 2))

	handler := NewCheckoutBasketCommandHandler(f.users, f.orders, f.ledger, f.publisher)
	cmd, err := NewCheckoutBasketCommand("bob", user.Basket())
	require.NoError(t, err)

	o, err := handler.Handle(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, "bob", o.Customer())
	assert.Equal(t, int64(700), o.Cost().Cents())

	level, err := f.ledger.DishStock("Maki")
	require.NoError(t, err)
	assert.Equal(t, kernel.Quantity(8), level)

	_, _, deliver := f.ledger.QueueLengths()
	assert.Equal(t, 1, deliver)

	assert.Empty(t, user.Basket())

	stored, err := f.orders.Get(context.Background(), o.ID())
	require.NoError(t, err)
	assert.True(t, o.IsEqual(stored))
}

func TestCheckoutStockAccountingAcrossCheckouts(t *testing.T) {
	f := newFixture(t)
	user := f.registerBob(t)
	handler := NewCheckoutBasketCommandHandler(f.users, f.orders, f.ledger, f.publisher)

	total := kernel.Quantity(0)
	for _, qty := range []kernel.Quantity{2, 3, 1} {
		require.NoError(t, user.AddToBasket("Maki", qty))
		cmd, err := NewCheckoutBasketCommand("bob", user.Basket())
		require.NoError(t, err)
		_, err = handler.Handle(context.Background(), cmd)
		require.NoError(t, err)
		total += qty
	}

	level, err := f.ledger.DishStock("Maki")
	require.NoError(t, err)
	assert.Equal(t, kernel.Quantity(10)-total, level)
}

func TestCheckoutUnknownDish(t *testing.T) {
	f := newFixture(t)
	f.registerBob(t)

	handler := NewCheckoutBasketCommandHandler(f.users, f.orders, f.ledger, f.publisher)
	cmd, err := NewCheckoutBasketCommand("bob", map[string]kernel.Quantity{"Sushi": 1})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), cmd)

	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	all, err := f.orders.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

var errOrderStoreRejected = errors.New("order store rejected")

type rejectingOrderRepository struct {
	ports.OrderRepository
}

func (rejectingOrderRepository) Add(context.Context, *order.Order) error {
	return errOrderStoreRejected
}

func TestCheckoutRejectedOrderIsNeitherStoredNorQueued(t *testing.T) {
	f := newFixture(t)
	user := f.registerBob(t)
	require.NoError(t, user.AddToBasket("Maki", 2))

	handler := NewCheckoutBasketCommandHandler(f.users, rejectingOrderRepository{}, f.ledger, f.publisher)
	cmd, err := NewCheckoutBasketCommand("bob", user.Basket())
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), cmd)

	assert.ErrorIs(t, err, errOrderStoreRejected)

	// Stock consumption precedes bookkeeping, so the failed checkout has
	// consumed stock but queued nothing, and the basket survives for a retry.
	level, err := f.ledger.DishStock("Maki")
	require.NoError(t, err)
	assert.Equal(t, kernel.Quantity(8), level)

	_, _, deliver := f.ledger.QueueLengths()
	assert.Zero(t, deliver)
	assert.Equal(t, kernel.Quantity(2), user.Basket()["Maki"])
	// Only the registration published.
	assert.Equal(t, 1, f.publisher.published)
}

func TestCheckoutRequiresNonEmptyBasket(t *testing.T) {
	_, err := NewCheckoutBasketCommand("bob", nil)
	assert.ErrorIs(t, err, ErrCheckoutBasketIsEmpty)
}

func TestCancelOrder(t *testing.T) {
	f := newFixture(t)
	user := f.registerBob(t)
	require.NoError(t, user.AddToBasket("Maki", 1))

	checkout := NewCheckoutBasketCommandHandler(f.users, f.orders, f.ledger, f.publisher)
	checkoutCmd, err := NewCheckoutBasketCommand("bob", user.Basket())
	require.NoError(t, err)
	o, err := checkout.Handle(context.Background(), checkoutCmd)
	require.NoError(t, err)

	cancel := NewCancelOrderCommandHandler(f.orders, f.ledger, f.publisher)
	cancelCmd, err := NewCancelOrderCommand(o.ID())
	require.NoError(t, err)

	require.NoError(t, cancel.Handle(context.Background(), cancelCmd))

	_, err = f.orders.Get(context.Background(), o.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)

	_, _, deliver := f.ledger.QueueLengths()
	assert.Zero(t, deliver)
}

func TestCancelUnknownOrder(t *testing.T) {
	f := newFixture(t)

	cancel := NewCancelOrderCommandHandler(f.orders, f.ledger, f.publisher)
	cmd, err := NewCancelOrderCommand(kernel.NewUUID())
	require.NoError(t, err)

	assert.ErrorIs(t, cancel.Handle(context.Background(), cmd), errs.ErrObjectNotFound)
}
