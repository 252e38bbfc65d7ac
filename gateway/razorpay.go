package gateway

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net"
	"time"

	razorpay "github.com/razorpay/razorpay-go"
)

// ErrTimeout is returned when the gateway does not answer in time
var ErrTimeout = errors.New("payment gateway timed out")

// OrderRequest describes an order to open with the gateway
type OrderRequest struct {
	AmountMinor int64
	Currency    string
	Receipt     string
	Notes       map[string]string
}

// Order is the gateway's view of a created order
type Order struct {
	ID       string
	Amount   int64
	Currency string
	Receipt  string
	Status   string
}

// Gateway opens payment orders
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*Order, error)
}

// orderCreator is the slice of the Razorpay SDK used here
type orderCreator interface {
	Create(data map[string]interface{}, extraHeaders map[string]string) (map[string]interface{}, error)
}

// RazorpayGateway creates orders through the Razorpay Orders API
type RazorpayGateway struct {
	orders orderCreator
}

// NewRazorpayGateway builds a gateway from API credentials. The SDK's HTTP
// client gives up after timeout, rounded up to whole seconds.
func NewRazorpayGateway(keyID, keySecret string, timeout time.Duration) *RazorpayGateway {
	client := razorpay.NewClient(keyID, keySecret)
	if timeout > 0 {
		client.SetTimeout(timeoutSeconds(timeout))
	}
	return &RazorpayGateway{orders: client.Order}
}

func timeoutSeconds(d time.Duration) int16 {
	secs := (d + time.Second - 1) / time.Second
	if secs > math.MaxInt16 {
		return math.MaxInt16
	}
	return int16(secs)
}

// CreateOrder opens an order for req.AmountMinor in req.Currency. The SDK
// takes no context, so ctx is only checked before the call is made.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	notes := make(map[string]interface{}, len(req.Notes))
	for k, v := range req.Notes {
		notes[k] = v
	}
	data := map[string]interface{}{
		"amount":          req.AmountMinor,
		"currency":        req.Currency,
		"receipt":         req.Receipt,
		"notes":           notes,
		"payment_capture": 1,
	}

	body, err := g.orders.Create(data, nil)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return nil, fmt.Errorf("%w: %v", ErrTimeout, err)
		}
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}
	return parseOrder(body)
}

func parseOrder(body map[string]interface{}) (*Order, error) {
	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("razorpay order create: response has no order id")
	}
	amount, err := toInt64(body["amount"])
	if err != nil {
		return nil, fmt.Errorf("razorpay order create: %w", err)
	}
	order := &Order{ID: id, Amount: amount}
	order.Currency, _ = body["currency"].(string)
	order.Receipt, _ = body["receipt"].(string)
	order.Status, _ = body["status"].(string)
	return order, nil
}

func toInt64(v interface{}) (int64, error) {
	switch n := v.(type) {
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("unexpected amount %v (%T)", v, v)
	}
}
