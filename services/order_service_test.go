package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Govind-619/BuyMeAChai/gateway"
	"github.com/Govind-619/BuyMeAChai/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGateway struct {
	calls []gateway.OrderRequest
	err   error
}

func (f *fakeGateway) CreateOrder(_ context.Context, req gateway.OrderRequest) (*gateway.Order, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return &gateway.Order{ID: "order_test", Amount: req.AmountMinor, Currency: req.Currency, Status: "created"}, nil
}

func newTestOrderService(gw gateway.Gateway) *OrderService {
	s := NewOrderService(gw, "rzp_test_key", "INR")
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestCreateOrder(t *testing.T) {
	gw := &fakeGateway{}
	s := newTestOrderService(gw)

	handle, err := s.CreateOrder(context.Background(), OrderRequest{
		Amount:      30,
		Currency:    "INR",
		Name:        "  Asha ",
		Message:     "Thanks!",
		ChaiCount:   1,
		RequesterID: "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, &OrderHandle{ID: "order_test", Amount: 3000, Currency: "INR", KeyID: "rzp_test_key"}, handle)

	require.Len(t, gw.calls, 1)
	req := gw.calls[0]
	assert.Equal(t, int64(3000), req.AmountMinor)
	assert.Equal(t, "receipt_1700000000000", req.Receipt)
	assert.Equal(t, map[string]string{
		"name":      "Asha",
		"message":   "Thanks!",
		"chaiCount": "1",
		"user_id":   "user-1",
	}, req.Notes)
}

func TestCreateOrderDefaults(t *testing.T) {
	gw := &fakeGateway{}
	s := newTestOrderService(gw)

	handle, err := s.CreateOrder(context.Background(), OrderRequest{Amount: 90, Currency: "usd", Name: "A", Message: "B"})
	require.NoError(t, err)
	assert.Equal(t, "USD", handle.Currency)
	assert.Equal(t, "1", gw.calls[0].Notes["chaiCount"])

	_, err = s.CreateOrder(context.Background(), OrderRequest{Amount: 90, Name: "A", Message: "B"})
	require.NoError(t, err)
	assert.Equal(t, "INR", gw.calls[1].Currency)
}

func TestCreateOrderRejectsBadAmountWithoutGateway(t *testing.T) {
	for _, amount := range []int64{0, -1, -30, MaxOrderAmount + 1} {
		gw := &fakeGateway{}
		s := newTestOrderService(gw)

		_, err := s.CreateOrder(context.Background(), OrderRequest{Amount: amount, Currency: "INR", Name: "A", Message: "B"})
		require.Error(t, err)
		assert.True(t, utils.IsKind(err, utils.KindValidation))
		assert.Equal(t, "Invalid amount", utils.GetAppError(err).Message)
		assert.Empty(t, gw.calls, "amount %d reached the gateway", amount)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	tests := []struct {
		name string
		req  OrderRequest
	}{
		{"missing name", OrderRequest{Amount: 30, Message: "hi"}},
		{"blank message", OrderRequest{Amount: 30, Name: "A", Message: "   "}},
		{"long name", OrderRequest{Amount: 30, Name: strings.Repeat("x", utils.MaxNameLength+1), Message: "hi"}},
		{"bad currency", OrderRequest{Amount: 30, Currency: "RUPEES", Name: "A", Message: "hi"}},
		{"negative count", OrderRequest{Amount: 30, Name: "A", Message: "hi", ChaiCount: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &fakeGateway{}
			_, err := newTestOrderService(gw).CreateOrder(context.Background(), tt.req)
			assert.Equal(t, 400, utils.GetAppError(err).Code)
			assert.Empty(t, gw.calls)
		})
	}
}

func TestCreateOrderGatewayFailure(t *testing.T) {
	gw := &fakeGateway{err: errors.New("razorpay: authentication failed for key rzp_test_key")}

	_, err := newTestOrderService(gw).CreateOrder(context.Background(), OrderRequest{Amount: 30, Name: "A", Message: "B"})
	appErr := utils.GetAppError(err)
	require.NotNil(t, appErr)
	assert.Equal(t, utils.KindUpstream, appErr.Kind)
	assert.Equal(t, 500, appErr.Code)
	assert.Equal(t, "Failed to create order", appErr.Message)
	assert.ErrorIs(t, err, gw.err)
}

func TestCreateOrderTruncatesNotes(t *testing.T) {
	gw := &fakeGateway{}
	long := strings.Repeat("é", utils.MaxMessageLength)

	_, err := newTestOrderService(gw).CreateOrder(context.Background(), OrderRequest{Amount: 30, Name: "A", Message: long})
	require.NoError(t, err)
	assert.Equal(t, utils.MaxGatewayNoteLength, len([]rune(gw.calls[0].Notes["message"])))
}
