package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Govind-619/BuyMeAChai/gateway"
	"github.com/Govind-619/BuyMeAChai/utils"
)

// MaxOrderAmount caps a single order in major units
const MaxOrderAmount = 500000

// OrderRequest is a request to buy chai. Amount is in major currency units.
type OrderRequest struct {
	Amount      int64
	Currency    string
	Name        string
	Message     string
	ChaiCount   int
	RequesterID string
}

// OrderHandle is what the client needs to open the checkout
type OrderHandle struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	KeyID    string `json:"key_id"`
}

// OrderService opens gateway orders for chai purchases
type OrderService struct {
	gateway         gateway.Gateway
	keyID           string
	defaultCurrency string
	now             func() time.Time
}

// NewOrderService creates an OrderService. keyID is the public gateway key
// handed to clients; the secret never passes through here.
func NewOrderService(gw gateway.Gateway, keyID, defaultCurrency string) *OrderService {
	return &OrderService{
		gateway:         gw,
		keyID:           keyID,
		defaultCurrency: defaultCurrency,
		now:             time.Now,
	}
}

// KeyID returns the public gateway key
func (s *OrderService) KeyID() string {
	return s.keyID
}

// DefaultCurrency returns the currency used when a request names none
func (s *OrderService) DefaultCurrency() string {
	return s.defaultCurrency
}

// CreateOrder validates req and opens a gateway order for it. Invalid input
// is rejected before the gateway is contacted.
func (s *OrderService) CreateOrder(ctx context.Context, req OrderRequest) (*OrderHandle, error) {
	if req.Amount < 1 || req.Amount > MaxOrderAmount {
		return nil, utils.ValidationFailed("Invalid amount", fmt.Errorf("amount %d out of range", req.Amount))
	}

	var errs utils.FieldValidationErrors
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = s.defaultCurrency
	}
	if err := utils.ValidateCurrency(currency); err != nil {
		errs.Add("currency", err.Error())
	}
	name := utils.ValidateRequiredText(&errs, "name", req.Name, utils.MaxNameLength)
	message := utils.ValidateRequiredText(&errs, "message", req.Message, utils.MaxMessageLength)
	chaiCount := req.ChaiCount
	if chaiCount == 0 {
		chaiCount = 1
	}
	if chaiCount < 0 {
		errs.Add("chaiCount", "must be at least 1")
	}
	if err := errs.Err(); err != nil {
		return nil, utils.ValidationFailed("Invalid request: "+err.Error(), err)
	}

	order, err := s.gateway.CreateOrder(ctx, gateway.OrderRequest{
		AmountMinor: req.Amount * utils.MinorUnitsPerMajor,
		Currency:    currency,
		Receipt:     fmt.Sprintf("receipt_%d", s.now().UnixMilli()),
		Notes: map[string]string{
			"name":      utils.TruncateRunes(name, utils.MaxGatewayNoteLength),
			"message":   utils.TruncateRunes(message, utils.MaxGatewayNoteLength),
			"chaiCount": strconv.Itoa(chaiCount),
			"user_id":   req.RequesterID,
		},
	})
	if err != nil {
		utils.Logger().Error().
			Str("event", utils.EventOrderFailed).
			Str("user_id", req.RequesterID).
			Int64("amount", req.Amount).
			Err(err).
			Msg("Error creating order")
		return nil, utils.UpstreamError("Failed to create order", err)
	}

	utils.Logger().Info().
		Str("event", utils.EventOrderCreated).
		Str("order_id", order.ID).
		Str("user_id", req.RequesterID).
		Int64("amount", order.Amount).
		Msgf("Order created: %s", order.ID)

	if order.Currency == "" {
		order.Currency = currency
	}
	return &OrderHandle{
		ID:       order.ID,
		Amount:   order.Amount,
		Currency: order.Currency,
		KeyID:    s.keyID,
	}, nil
}
