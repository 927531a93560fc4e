package dispatch

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant/internal/adapters/out/memstore"
	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/account"
	"restaurant/internal/core/domain/model/menu"
	"restaurant/internal/core/domain/services/ledger"
	"restaurant/pkg/proto"
)

type envelope struct {
	connID int
	reply  proto.Reply
}

type chanReplier struct {
	ch chan envelope
}

func (r *chanReplier) Reply(connID int, reply proto.Reply) {
	r.ch <- envelope{connID: connID, reply: reply}
}

type noopPublisher struct{}

func (noopPublisher) Publish() {}

type fixture struct {
	dispatcher *Dispatcher
	replier    *chanReplier
	cancel     context.CancelFunc
}

func newFixture(t *testing.T) *fixture {
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

	replier := &chanReplier{ch: make(chan envelope, 16)}
	publisher := noopPublisher{}
	d := NewDispatcher(
		commands.NewRegisterUserCommandHandler(users, postcodes, publisher),
		commands.NewCheckoutBasketCommandHandler(users, orders, l, publisher),
		commands.NewCancelOrderCommandHandler(orders, l, publisher),
		queries.NewLoginQueryHandler(users),
		queries.NewGetOrdersQueryHandler(orders),
		queries.NewGetDishesQueryHandler(l),
		queries.NewGetPostcodesQueryHandler(postcodes),
		slog.New(slog.DiscardHandler),
	)

	runCtx, cancel := context.WithCancel(context.Background())
	go d.Run(runCtx, replier)
	t.Cleanup(cancel)

	return &fixture{dispatcher: d, replier: replier, cancel: cancel}
}

func (f *fixture) roundTrip(t *testing.T, req proto.Request) proto.Reply {
	t.Helper()
	require.NoError(t, f.dispatcher.Submit(context.Background(), req))

	select {
	case env := <-f.replier.ch:
		assert.Equal(t, req.ConnID, env.connID)
		return env.reply
	case <-time.After(2 * time.Second):
		t.Fatalf("no reply for %s", req.Kind)
		return proto.Reply{}
	}
}

func registerRequest(connID int, username string) proto.Request {
	return proto.Request{
		ConnID: connID,
		Kind:   proto.KindRegister,
		Register: &proto.RegisterRequest{
			Username: username,
			Password: "hunter2",
			Address:  "1 High St",
			Postcode: "AB1 2CD",
		},
	}
}

func TestRegisterCollisionResolvesToOneWinner(t *testing.T) {
	f := newFixture(t)

	first := f.roundTrip(t, registerRequest(1, "bob"))
	second := f.roundTrip(t, registerRequest(2, "bob"))

	require.NotNil(t, first.User)
	assert.Equal(t, "bob", first.User.Username)
	assert.Empty(t, first.Error)

	// The loser gets the null reply, not an error.
	assert.Nil(t, second.User)
	assert.Empty(t, second.Error)
}

func TestLoginOutcomes(t *testing.T) {
	f := newFixture(t)
	f.roundTrip(t, registerRequest(1, "bob"))

	reply := f.roundTrip(t, proto.Request{
		ConnID: 1,
		Kind:   proto.KindLogin,
		Login:  &proto.LoginRequest{Username: "bob", Password: "hunter2"},
	})
	require.NotNil(t, reply.User)
	assert.Equal(t, "AB1 2CD", reply.User.Postcode)

	reply = f.roundTrip(t, proto.Request{
		ConnID: 1,
		Kind:   proto.KindLogin,
		Login:  &proto.LoginRequest{Username: "bob", Password: "wrong"},
	})
	assert.Nil(t, reply.User)
	assert.Empty(t, reply.Error)
}

func TestCheckoutAndOrderLifecycle(t *testing.T) {
	f := newFixture(t)
	f.roundTrip(t, registerRequest(1, "bob"))

	reply := f.roundTrip(t, proto.Request{
		ConnID:   1,
		Kind:     proto.KindCheckout,
		Checkout: &proto.CheckoutRequest{Username: "bob", Basket: map[string]int{"Maki": 2}},
	})
	require.Empty(t, reply.Error)
	require.NotNil(t, reply.Order)
	assert.Equal(t, "Waiting on Delivery", reply.Order.Status)
	assert.Equal(t, "7.00", reply.Order.Cost)

	orderID := reply.Order.ID

	reply = f.roundTrip(t, proto.Request{
		ConnID:    1,
		Kind:      proto.KindGetOrders,
		GetOrders: &proto.GetOrdersRequest{Username: "bob"},
	})
	require.Len(t, reply.Orders, 1)
	assert.Equal(t, orderID, reply.Orders[0].ID)

	reply = f.roundTrip(t, proto.Request{
		ConnID: 1,
		Kind:   proto.KindCancelOrder,
		Cancel: &proto.CancelOrderRequest{OrderID: orderID},
	})
	assert.Empty(t, reply.Error)

	reply = f.roundTrip(t, proto.Request{
		ConnID:    1,
		Kind:      proto.KindGetOrders,
		GetOrders: &proto.GetOrdersRequest{Username: "bob"},
	})
	assert.Empty(t, reply.Orders)

	// Cancelling again reports the order as gone.
	reply = f.roundTrip(t, proto.Request{
		ConnID: 1,
		Kind:   proto.KindCancelOrder,
		Cancel: &proto.CancelOrderRequest{OrderID: orderID},
	})
	assert.NotEmpty(t, reply.Error)
}

func TestCatalogQueries(t *testing.T) {
	f := newFixture(t)

	reply := f.roundTrip(t, proto.Request{ConnID: 1, Kind: proto.KindGetDishes})
	require.Len(t, reply.Dishes, 1)
	assert.Equal(t, "Maki", reply.Dishes[0].Name)
	assert.Equal(t, "3.50", reply.Dishes[0].Price)

	reply = f.roundTrip(t, proto.Request{ConnID: 1, Kind: proto.KindGetPostcodes})
	require.Len(t, reply.Postcodes, 1)
	assert.Equal(t, "AB1 2CD", reply.Postcodes[0].Code)
}
