package dispatch

import (
	"context"
	"errors"
	"log/slog"

	"restaurant/internal/core/application/usecases/commands"
	"restaurant/internal/core/application/usecases/queries"
	"restaurant/internal/core/domain/model/kernel"
	"restaurant/internal/pkg/errs"
	"restaurant/pkg/proto"
)

// Replier routes a finished reply back to the connection that asked.
// Implementations must tolerate the connection being gone already.
type Replier interface {
	Reply(connID int, reply proto.Reply)
}

// Dispatcher executes every protocol command on a single goroutine. Requests
// from all connections funnel into one queue and are handled strictly in
// arrival order, so two simultaneous registrations of the same username
// resolve deterministically: one wins, the other gets the null reply. The
// serialization also means command and query handlers never race on the
// repositories.
type Dispatcher struct {
	registerUser commands.RegisterUserCommandHandler
	checkout     commands.CheckoutBasketCommandHandler
	cancelOrder  commands.CancelOrderCommandHandler
	login        queries.LoginQueryHandler
	getOrders    queries.GetOrdersQueryHandler
	getDishes    queries.GetDishesQueryHandler
	getPostcodes queries.GetPostcodesQueryHandler

	in   chan proto.Request
	log  *slog.Logger
	done chan struct{}
}

// NewDispatcher wires the command and query handlers behind the inbound
// queue.
func NewDispatcher(
	registerUser commands.RegisterUserCommandHandler,
	checkout commands.CheckoutBasketCommandHandler,
	cancelOrder commands.CancelOrderCommandHandler,
	login queries.LoginQueryHandler,
	getOrders queries.GetOrdersQueryHandler,
	getDishes queries.GetDishesQueryHandler,
	getPostcodes queries.GetPostcodesQueryHandler,
	log *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		registerUser: registerUser,
		checkout:     checkout,
		cancelOrder:  cancelOrder,
		login:        login,
		getOrders:    getOrders,
		getDishes:    getDishes,
		getPostcodes: getPostcodes,
		in:           make(chan proto.Request, 128),
		log:          log.With("component", "dispatcher"),
		done:         make(chan struct{}),
	}
}

// Submit queues a request for execution. It blocks while the queue is full
// and fails once the dispatcher has stopped.
func (d *Dispatcher) Submit(ctx context.Context, req proto.Request) error {
	select {
	case d.in <- req:
		return nil
	case <-d.done:
		return errors.New("dispatcher stopped")
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains the queue until ctx is cancelled, routing each finished reply
// through the given replier. It is the only goroutine that touches the
// handlers. The replier arrives here rather than in the constructor because
// the transport needs the dispatcher first: the executor is built, the
// multiplexer is built on top of it, then Run ties them together.
func (d *Dispatcher) Run(ctx context.Context, replier Replier) {
	defer close(d.done)

	for {
		select {
		case <-ctx.Done():
			return
		case req := <-d.in:
			replier.Reply(req.ConnID, d.handle(ctx, req))
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, req proto.Request) proto.Reply {
	switch req.Kind {
	case proto.KindRegister:
		return d.handleRegister(ctx, req)
	case proto.KindLogin:
		return d.handleLogin(ctx, req)
	case proto.KindGetPostcodes:
		return d.handleGetPostcodes(ctx)
	case proto.KindGetDishes:
		return d.handleGetDishes(ctx)
	case proto.KindGetOrders:
		return d.handleGetOrders(ctx, req)
	case proto.KindCheckout:
		return d.handleCheckout(ctx, req)
	case proto.KindCancelOrder:
		return d.handleCancelOrder(ctx, req)
	default:
		return proto.Reply{Kind: req.Kind, Error: "unknown command"}
	}
}

func (d *Dispatcher) handleRegister(ctx context.Context, req proto.Request) proto.Reply {
	cmd, err := commands.NewRegisterUserCommand(
		req.Register.Username, req.Register.Password, req.Register.Address, req.Register.Postcode)
	if err != nil {
		return d.failure(proto.KindRegister, err)
	}

	user, err := d.registerUser.Handle(ctx, cmd)
	if errors.Is(err, errs.ErrDuplicate) {
		// Null reply: the name is taken.
		return proto.Reply{Kind: proto.KindRegister}
	}
	if err != nil {
		return d.failure(proto.KindRegister, err)
	}
	return proto.Reply{Kind: proto.KindRegister, User: userDTO(user)}
}

func (d *Dispatcher) handleLogin(ctx context.Context, req proto.Request) proto.Reply {
	query, err := queries.NewLoginQuery(req.Login.Username, req.Login.Password)
	if err != nil {
		return d.failure(proto.KindLogin, err)
	}

	user, err := d.login.Handle(ctx, query)
	if err != nil {
		return d.failure(proto.KindLogin, err)
	}
	if user == nil {
		// Null reply: unknown name or wrong password.
		return proto.Reply{Kind: proto.KindLogin}
	}
	return proto.Reply{Kind: proto.KindLogin, User: userDTO(user)}
}

func (d *Dispatcher) handleGetPostcodes(ctx context.Context) proto.Reply {
	postcodes, err := d.getPostcodes.Handle(ctx)
	if err != nil {
		return d.failure(proto.KindGetPostcodes, err)
	}
	return proto.Reply{Kind: proto.KindGetPostcodes, Postcodes: postcodeDTOs(postcodes)}
}

func (d *Dispatcher) handleGetDishes(ctx context.Context) proto.Reply {
	dishes, err := d.getDishes.Handle(ctx)
	if err != nil {
		return d.failure(proto.KindGetDishes, err)
	}
	return proto.Reply{Kind: proto.KindGetDishes, Dishes: dishDTOs(dishes)}
}

func (d *Dispatcher) handleGetOrders(ctx context.Context, req proto.Request) proto.Reply {
	query, err := queries.NewGetOrdersQuery(req.GetOrders.Username)
	if err != nil {
		return d.failure(proto.KindGetOrders, err)
	}

	orders, err := d.getOrders.Handle(ctx, query)
	if err != nil {
		return d.failure(proto.KindGetOrders, err)
	}
	return proto.Reply{Kind: proto.KindGetOrders, Orders: orderDTOs(orders)}
}

func (d *Dispatcher) handleCheckout(ctx context.Context, req proto.Request) proto.Reply {
	basket := make(map[string]kernel.Quantity, len(req.Checkout.Basket))
	for dish, qty := range req.Checkout.Basket {
		q, err := kernel.NewQuantity(qty)
		if err != nil {
			return d.failure(proto.KindCheckout, err)
		}
		basket[dish] = q
	}

	cmd, err := commands.NewCheckoutBasketCommand(req.Checkout.Username, basket)
	if err != nil {
		return d.failure(proto.KindCheckout, err)
	}

	o, err := d.checkout.Handle(ctx, cmd)
	if err != nil {
		return d.failure(proto.KindCheckout, err)
	}
	dto := orderDTO(o)
	return proto.Reply{Kind: proto.KindCheckout, Order: &dto}
}

func (d *Dispatcher) handleCancelOrder(ctx context.Context, req proto.Request) proto.Reply {
	id, err := kernel.UUIDFromString(req.Cancel.OrderID)
	if err != nil {
		return d.failure(proto.KindCancelOrder, err)
	}

	cmd, err := commands.NewCancelOrderCommand(id)
	if err != nil {
		return d.failure(proto.KindCancelOrder, err)
	}

	if err = d.cancelOrder.Handle(ctx, cmd); err != nil {
		return d.failure(proto.KindCancelOrder, err)
	}
	return proto.Reply{Kind: proto.KindCancelOrder}
}

func (d *Dispatcher) failure(kind proto.Kind, err error) proto.Reply {
	d.log.Warn("command failed", "kind", string(kind), "error", err)
	return proto.Reply{Kind: kind, Error: err.Error()}
}
