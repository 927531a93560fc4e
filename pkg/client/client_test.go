package client_test

import (
	"context"
	"log/slog"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/adapters/in/tcp"
	"restaurant/internal/adapters/out/memstore"
	"restaurant/internal/core/application/dispatch"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/services/ledger"
	"restaurant/pkg/client"
)

type noopPublisher struct{}

func (noopPublisher) Publish() {}

// startServer boots a full server stack on a loopback port: ledger,
// repositories, dispatcher and TCP multiplexer. Returns the listen address.
func startServer(t *testing.T) string {
	t.Helper()

	users := memstore.NewUserRepository()
	postcodes := memstore.NewPostcodeRepository()
	orders := memstore.NewOrderRepository()
	l := ledger.NewLedger()
	t.Cleanup(l.Close)

	ctx := context.Background()
	postcode, err := account.NewPostcode("AB1 2CD", 10)
	require.NoError(t, err)
	require.NoError(t, postcodes.Add(ctx, postcode))

	dish, err := menu.NewDish("Maki", "Rice rolls", 350)
	require.NoError(t, err)
	require.NoError(t, l.AddDish(dish, 2, 4))
	require.NoError(t, l.SetDishStock("Maki", 10))

	logger := slog.New(slog.DiscardHandler)
	publisher := noopPublisher{}

	dispatcher := dispatch.NewDispatcher(
		commands.NewRegisterUserCommandHandler(users, postcodes, publisher),
		commands.NewCheckoutBasketCommandHandler(users, orders, l, publisher),
		commands.NewCancelOrderCommandHandler(orders, l, publisher),
		queries.NewLoginQueryHandler(users),
		queries.NewGetOrdersQueryHandler(orders),
		queries.NewGetDishesQueryHandler(l),
		queries.NewGetPostcodesQueryHandler(postcodes),
		logger,
	)
	server := tcp.NewServer(dispatcher, logger)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	runCtx, cancel := context.WithCancel(context.Background())
	go dispatcher.Run(runCtx, server)
	done := make(chan struct{})
	go func() {
		defer close(done)
		assert.NoError(t, server.Serve(runCtx, listener))
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	return listener.Addr().String()
}

func TestClientWorkflow(t *testing.T) {
	addr := startServer(t)

	c, err := client.Dial(addr)
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })

	assert.Positive(t, c.ConnID())

	postcodesList, err := c.GetPostcodes()
	require.NoError(t, err)
	require.Len(t, postcodesList, 1)

	user, err := c.Register("bob", "hunter2", "1 High St", postcodesList[0].Code)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "bob", user.Username)

	// A second registration of the same name resolves to the null outcome.
	dup, err := c.Register("bob", "other", "2 Low Rd", postcodesList[0].Code)
	require.NoError(t, err)
	assert.Nil(t, dup)

	logged, err := c.Login("bob", "hunter2")
	require.NoError(t, err)
	require.NotNil(t, logged)

	wrong, err := c.Login("bob", "nope")
	require.NoError(t, err)
	assert.Nil(t, wrong)

	dishes, err := c.GetDishes()
	require.NoError(t, err)
	require.Len(t, dishes, 1)
	assert.Equal(t, "3.50", dishes[0].Price)

	placed, err := c.Checkout("bob", map[string]int{"Maki": 2})
	require.NoError(t, err)
	assert.Equal(t, "7.00", placed.Cost)
	assert.Equal(t, "Waiting on Delivery", placed.Status)

	ordersList, err := c.GetOrders("bob")
	require.NoError(t, err)
	require.Len(t, ordersList, 1)
	assert.Equal(t, placed.ID, ordersList[0].ID)

	require.NoError(t, c.CancelOrder(placed.ID))

	ordersList, err = c.GetOrders("bob")
	require.NoError(t, err)
	assert.Empty(t, ordersList)

	// Cancelling a gone order is a server-side error, not a dead connection.
	err = c.CancelOrder(placed.ID)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTwoClientsSeeTheSameState(t *testing.T) {
	addr := startServer(t)

	first, err := client.Dial(addr)
	require.NoError(t, err)
	t.Cleanup(func() { first.Close() })

	second, err := client.Dial(addr)
	require.NoError(t, err)
	t.Cleanup(func() { second.Close() })

	assert.NotEqual(t, first.ConnID(), second.ConnID())

	user, err := first.Register("carol", "pw", "3 Mid Ln", "AB1 2CD")
	require.NoError(t, err)
	require.NotNil(t, user)

	// The other connection logs straight into the new account.
	logged, err := second.Login("carol", "pw")
	require.NoError(t, err)
	require.NotNil(t, logged)
	assert.Equal(t, "carol", logged.Username)
}
