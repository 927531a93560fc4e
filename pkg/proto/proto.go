package proto

// Kind tags a protocol message with the command it carries. The tag doubles
// as the first field of the wire header.
type Kind string

// Protocol commands.
const (
	KindRegister     Kind = "REGISTER"
	KindLogin        Kind = "LOGIN"
	KindGetPostcodes Kind = "GETPOSTCODES"
	KindGetDishes    Kind = "GETDISHES"
	KindGetOrders    Kind = "GETORDERS"
	KindCheckout     Kind = "CHECKOUT"
	KindCancelOrder  Kind = "CANCELORDER"
)

// Request is the tagged variant decoded once at the transport boundary.
// Exactly one payload pointer matching Kind is set; commands without a
// payload (GETPOSTCODES, GETDISHES) carry only the tag.
type Request struct {
	ConnID int
	Kind   Kind

	Register  *RegisterRequest
	Login     *LoginRequest
	GetOrders *GetOrdersRequest
	Checkout  *CheckoutRequest
	Cancel    *CancelOrderRequest
}

// RegisterRequest creates a customer account. The postcode code travels as
// the out-of-band payload line; the remaining fields sit in the header.
type RegisterRequest struct {
	Username string
	Password string
	Address  string
	Postcode string
}

// LoginRequest checks credentials.
type LoginRequest struct {
	Username string
	Password string
}

// GetOrdersRequest lists one customer's orders.
type GetOrdersRequest struct {
	Username string
}

// CheckoutRequest converts a basket snapshot into an order.
type CheckoutRequest struct {
	Username string
	Basket   map[string]int
}

// CancelOrderRequest withdraws a placed order.
type CancelOrderRequest struct {
	OrderID string
}

// Reply is the single structured value answering a request. A nil User on a
// REGISTER or LOGIN reply is the null outcome (name collision, wrong
// credentials); Error carries typed failures such as NotFound.
type Reply struct {
	Kind      Kind          `json:"kind"`
	User      *UserDTO      `json:"user,omitempty"`
	Postcodes []PostcodeDTO `json:"postcodes,omitempty"`
	Dishes    []DishDTO     `json:"dishes,omitempty"`
	Orders    []OrderDTO    `json:"orders,omitempty"`
	Order     *OrderDTO     `json:"order,omitempty"`
	Error     string        `json:"error,omitempty"`
}

// UserDTO is the wire shape of a customer account. The password never
// travels back to clients.
type UserDTO struct {
	Username string         `json:"username"`
	Address  string         `json:"address"`
	Postcode string         `json:"postcode"`
	Basket   map[string]int `json:"basket,omitempty"`
}

// PostcodeDTO is the wire shape of a served postcode.
type PostcodeDTO struct {
	Code     string  `json:"code"`
	Distance float64 `json:"distance"`
}

// DishDTO is the wire shape of a menu item. Price is the decimal string
// rendering of the fixed-point amount.
type DishDTO struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Price       string         `json:"price"`
	Recipe      map[string]int `json:"recipe,omitempty"`
}

// OrderDTO is the wire shape of an order.
type OrderDTO struct {
	ID        string         `json:"id"`
	Customer  string         `json:"customer"`
	Status    string         `json:"status"`
	Completed bool           `json:"completed"`
	Cost      string         `json:"cost"`
	Lines     []OrderLineDTO `json:"lines"`
}

// OrderLineDTO is one priced order line on the wire.
type OrderLineDTO struct {
	Dish      string `json:"dish"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}
