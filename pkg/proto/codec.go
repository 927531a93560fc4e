package proto

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedMessage is wrapped by every decode failure. The transport
// layer tears the offending connection down on it.
var ErrMalformedMessage = errors.New("malformed protocol message")

const connectedPrefix = "CONNECTED:"

type registerPayload struct {
	Code string `json:"code"`
}

type getOrdersPayload struct {
	Username string `json:"username"`
}

type checkoutPayload struct {
	Username string         `json:"username"`
	Basket   map[string]int `json:"basket"`
}

type cancelPayload struct {
	OrderID string `json:"orderId"`
}

// WriteConnected sends the handshake assigning a connection its identity.
func WriteConnected(w io.Writer, id int) error {
	_, err := fmt.Fprintf(w, "%s%d\n", connectedPrefix, id)
	return err
}

// ReadConnected reads the handshake and returns the assigned identity.
func ReadConnected(r *bufio.Reader) (int, error) {
	line, err := readLine(r)
	if err != nil {
		return 0, err
	}

	raw, ok := strings.CutPrefix(line, connectedPrefix)
	if !ok {
		return 0, fmt.Errorf("%w: expected handshake, got %q", ErrMalformedMessage, line)
	}

	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: bad connection id %q", ErrMalformedMessage, raw)
	}
	return id, nil
}

// WriteRequest encodes a request as its header line plus, for commands that
// carry one, a JSON payload line.
func WriteRequest(w io.Writer, req Request) error {
	var header string
	var payload any

	switch req.Kind {
	case KindRegister:
		if req.Register == nil {
			return fmt.Errorf("%w: REGISTER without payload", ErrMalformedMessage)
		}
		header = fmt.Sprintf("%s:%d:%s:%s:%s",
			KindRegister, req.ConnID, req.Register.Username, req.Register.Password, req.Register.Address)
		payload = registerPayload{Code: req.Register.Postcode}
	case KindLogin:
		if req.Login == nil {
			return fmt.Errorf("%w: LOGIN without payload", ErrMalformedMessage)
		}
		header = fmt.Sprintf("%s:%d:%s:%s", KindLogin, req.ConnID, req.Login.Username, req.Login.Password)
	case KindGetPostcodes, KindGetDishes:
		header = fmt.Sprintf("%s:%d", req.Kind, req.ConnID)
	case KindGetOrders:
		if req.GetOrders == nil {
			return fmt.Errorf("%w: GETORDERS without payload", ErrMalformedMessage)
		}
		header = fmt.Sprintf("%s:%d", KindGetOrders, req.ConnID)
		payload = getOrdersPayload{Username: req.GetOrders.Username}
	case KindCheckout:
		if req.Checkout == nil {
			return fmt.Errorf("%w: CHECKOUT without payload", ErrMalformedMessage)
		}
		header = fmt.Sprintf("%s:%d", KindCheckout, req.ConnID)
		payload = checkoutPayload{Username: req.Checkout.Username, Basket: req.Checkout.Basket}
	case KindCancelOrder:
		if req.Cancel == nil {
			return fmt.Errorf("%w: CANCELORDER without payload", ErrMalformedMessage)
		}
		header = fmt.Sprintf("%s:%d", KindCancelOrder, req.ConnID)
		payload = cancelPayload{OrderID: req.Cancel.OrderID}
	default:
		return fmt.Errorf("%w: unknown command %q", ErrMalformedMessage, req.Kind)
	}

	if _, err := io.WriteString(w, header+"\n"); err != nil {
		return err
	}
	if payload == nil {
		return nil
	}

	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = w.Write(append(encoded, '\n'))
	return err
}

// ReadRequest decodes one request: the header line and, when the command
// carries one, the following JSON payload line.
func ReadRequest(r *bufio.Reader) (Request, error) {
	header, err := readLine(r)
	if err != nil {
		return Request{}, err
	}

	kind, rest, ok := strings.Cut(header, ":")
	if !ok {
		return Request{}, fmt.Errorf("%w: header %q", ErrMalformedMessage, header)
	}

	req := Request{Kind: Kind(kind)}

	switch req.Kind {
	case KindRegister:
		fields := strings.SplitN(rest, ":", 4)
		if len(fields) != 4 {
			return Request{}, fmt.Errorf("%w: header %q", ErrMalformedMessage, header)
		}
		if req.ConnID, err = parseConnID(fields[0], header); err != nil {
			return Request{}, err
		}
		var p registerPayload
		if err = readPayload(r, &p); err != nil {
			return Request{}, err
		}
		req.Register = &RegisterRequest{
			Username: fields[1],
			Password: fields[2],
			Address:  fields[3],
			Postcode: p.Code,
		}
	case KindLogin:
		fields := strings.SplitN(rest, ":", 3)
		if len(fields) != 3 {
			return Request{}, fmt.Errorf("%w: header %q", ErrMalformedMessage, header)
		}
		if req.ConnID, err = parseConnID(fields[0], header); err != nil {
			return Request{}, err
		}
		req.Login = &LoginRequest{Username: fields[1], Password: fields[2]}
	case KindGetPostcodes, KindGetDishes:
		if req.ConnID, err = parseConnID(rest, header); err != nil {
			return Request{}, err
		}
	case KindGetOrders:
		if req.ConnID, err = parseConnID(rest, header); err != nil {
			return Request{}, err
		}
		var p getOrdersPayload
		if err = readPayload(r, &p); err != nil {
			return Request{}, err
		}
		req.GetOrders = &GetOrdersRequest{Username: p.Username}
	case KindCheckout:
		if req.ConnID, err = parseConnID(rest, header); err != nil {
			return Request{}, err
		}
		var p checkoutPayload
		if err = readPayload(r, &p); err != nil {
			return Request{}, err
		}
		req.Checkout = &CheckoutRequest{Username: p.Username, Basket: p.Basket}
	case KindCancelOrder:
		if req.ConnID, err = parseConnID(rest, header); err != nil {
			return Request{}, err
		}
		var p cancelPayload
		if err = readPayload(r, &p); err != nil {
			return Request{}, err
		}
		req.Cancel = &CancelOrderRequest{OrderID: p.OrderID}
	default:
		return Request{}, fmt.Errorf("%w: unknown command %q", ErrMalformedMessage, kind)
	}

	return req, nil
}

// WriteReply encodes a reply as one JSON line.
func WriteReply(w io.Writer, reply Reply) error {
	encoded, err := json.Marshal(reply)
	if err != nil {
		return err
	}
	_, err = w.Write(append(encoded, '\n'))
	return err
}

// ReadReply decodes one reply line.
func ReadReply(r *bufio.Reader) (Reply, error) {
	line, err := readLine(r)
	if err != nil {
		return Reply{}, err
	}

	var reply Reply
	if err = json.Unmarshal([]byte(line), &reply); err != nil {
		return Reply{}, fmt.Errorf("%w: %s", ErrMalformedMessage, err)
	}
	return reply, nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func readPayload(r *bufio.Reader, v any) error {
	line, err := readLine(r)
	if err != nil {
		return err
	}
	if err = json.Unmarshal([]byte(line), v); err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedMessage, err)
	}
	return nil
}

func parseConnID(raw, header string) (int, error) {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: bad connection id in %q", ErrMalformedMessage, header)
	}
	return id, nil
}
