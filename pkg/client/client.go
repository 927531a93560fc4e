// Package client is the request proxy for the fulfilment server: a blocking
// facade over the wire protocol with one outstanding request per connection.
package client

import (
	"bufio"
	"errors"
	"fmt"
	"net"
	"sync"

	"restaurant/pkg/proto"
)

// Client talks to the fulfilment server over one TCP connection. Every call
// blocks until the reply arrives; the internal lock keeps at most one
// request in flight, so calls from multiple goroutines serialize.
type Client struct {
	mu     sync.Mutex
	conn   net.Conn
	reader *bufio.Reader
	connID int
}

// Dial connects to the server and completes the identity handshake.
func Dial(addr string) (*Client, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}

	reader := bufio.NewReader(conn)
	connID, err := proto.ReadConnected(reader)
	if err != nil {
		conn.Close()
		return nil, err
	}

	return &Client{conn: conn, reader: reader, connID: connID}, nil
}

// ConnID returns the identity the server assigned this connection.
func (c *Client) ConnID() int {
	return c.connID
}

// Close tears the connection down. In-flight calls fail with a read error.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Register creates an account. A nil user with a nil error means the
// username is already taken.
func (c *Client) Register(username, password, address, postcode string) (*proto.UserDTO, error) {
	reply, err := c.roundTrip(proto.Request{
		Kind: proto.KindRegister,
		Register: &proto.RegisterRequest{
			Username: username,
			Password: password,
			Address:  address,
			Postcode: postcode,
		},
	})
	if err != nil {
		return nil, err
	}
	return reply.User, nil
}

// Login checks credentials. A nil user with a nil error means the name or
// password is wrong.
func (c *Client) Login(username, password string) (*proto.UserDTO, error) {
	reply, err := c.roundTrip(proto.Request{
		Kind:  proto.KindLogin,
		Login: &proto.LoginRequest{Username: username, Password: password},
	})
	if err != nil {
		return nil, err
	}
	return reply.User, nil
}

// GetPostcodes lists the served delivery areas.
func (c *Client) GetPostcodes() ([]proto.PostcodeDTO, error) {
	reply, err := c.roundTrip(proto.Request{Kind: proto.KindGetPostcodes})
	if err != nil {
		return nil, err
	}
	return reply.Postcodes, nil
}

// GetDishes lists the menu.
func (c *Client) GetDishes() ([]proto.DishDTO, error) {
	reply, err := c.roundTrip(proto.Request{Kind: proto.KindGetDishes})
	if err != nil {
		return nil, err
	}
	return reply.Dishes, nil
}

// GetOrders lists the customer's orders.
func (c *Client) GetOrders(username string) ([]proto.OrderDTO, error) {
	reply, err := c.roundTrip(proto.Request{
		Kind:      proto.KindGetOrders,
		GetOrders: &proto.GetOrdersRequest{Username: username},
	})
	if err != nil {
		return nil, err
	}
	return reply.Orders, nil
}

// Checkout converts the given basket into an order and returns it.
func (c *Client) Checkout(username string, basket map[string]int) (*proto.OrderDTO, error) {
	reply, err := c.roundTrip(proto.Request{
		Kind:     proto.KindCheckout,
		Checkout: &proto.CheckoutRequest{Username: username, Basket: basket},
	})
	if err != nil {
		return nil, err
	}
	if reply.Order == nil {
		return nil, errors.New("checkout reply carried no order")
	}
	return reply.Order, nil
}

// CancelOrder withdraws a placed order.
func (c *Client) CancelOrder(orderID string) error {
	_, err := c.roundTrip(proto.Request{
		Kind:   proto.KindCancelOrder,
		Cancel: &proto.CancelOrderRequest{OrderID: orderID},
	})
	return err
}

func (c *Client) roundTrip(req proto.Request) (proto.Reply, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	req.ConnID = c.connID
	if err := proto.WriteRequest(c.conn, req); err != nil {
		return proto.Reply{}, err
	}

	reply, err := proto.ReadReply(c.reader)
	if err != nil {
		return proto.Reply{}, err
	}
	if reply.Error != "" {
		return proto.Reply{}, fmt.Errorf("server: %s", reply.Error)
	}
	return reply, nil
}
