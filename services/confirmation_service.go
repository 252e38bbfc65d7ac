package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Govind-619/BuyMeAChai/events"
	"github.com/Govind-619/BuyMeAChai/gateway"
	"github.com/Govind-619/BuyMeAChai/models"
	"github.com/Govind-619/BuyMeAChai/repository"
	"github.com/Govind-619/BuyMeAChai/utils"
)

// ConfirmationState tracks one payment confirmation through verification
// and persistence
type ConfirmationState string

const (
	StateReceived        ConfirmationState = "RECEIVED"
	StateVerified        ConfirmationState = "VERIFIED"
	StatePersisted       ConfirmationState = "PERSISTED"
	StateRejected        ConfirmationState = "REJECTED"
	StatePersistFailed   ConfirmationState = "PERSIST_FAILED"
	StateAlreadyRecorded ConfirmationState = "ALREADY_RECORDED"
)

// Terminal reports whether no further transition can happen
func (s ConfirmationState) Terminal() bool {
	switch s {
	case StatePersisted, StateRejected, StatePersistFailed, StateAlreadyRecorded:
		return true
	}
	return false
}

// PaymentConfirmation is the client's checkout callback payload plus the
// authenticated user. Amount is stored as sent.
type PaymentConfirmation struct {
	OrderID   string
	PaymentID string
	Signature string
	Name      string
	Message   string
	Amount    int64
	UserID    string
}

// ConfirmationResult is the outcome of Confirm. It is returned alongside
// errors too, so callers can see where the flow stopped.
type ConfirmationResult struct {
	State        ConfirmationState
	Contribution *models.Contribution
}

// SignatureVerifier checks a gateway signature
type SignatureVerifier func(orderID, paymentID, signature, secret string) bool

// ConfirmationService verifies checkout callbacks and records contributions
type ConfirmationService struct {
	store          repository.ContributionStore
	secret         string
	verify         SignatureVerifier
	alerter        OperatorAlerter
	publisher      events.Publisher
	storeTimeout   time.Duration
	publishTimeout time.Duration
}

// ConfirmationOption configures a ConfirmationService
type ConfirmationOption func(*ConfirmationService)

// WithAlerter sets who is told about verified payments that were not stored
func WithAlerter(a OperatorAlerter) ConfirmationOption {
	return func(s *ConfirmationService) { s.alerter = a }
}

// WithPublisher sets the destination of contribution events
func WithPublisher(p events.Publisher) ConfirmationOption {
	return func(s *ConfirmationService) { s.publisher = p }
}

// WithStoreTimeout bounds the store write
func WithStoreTimeout(d time.Duration) ConfirmationOption {
	return func(s *ConfirmationService) { s.storeTimeout = d }
}

// WithVerifier replaces the signature check
func WithVerifier(v SignatureVerifier) ConfirmationOption {
	return func(s *ConfirmationService) { s.verify = v }
}

// NewConfirmationService creates a service that checks signatures with the
// gateway secret and writes to store
func NewConfirmationService(store repository.ContributionStore, secret string, opts ...ConfirmationOption) *ConfirmationService {
	s := &ConfirmationService{
		store:          store,
		secret:         secret,
		verify:         gateway.VerifySignature,
		alerter:        LogAlerter{},
		publisher:      events.NoopPublisher{},
		storeTimeout:   5 * time.Second,
		publishTimeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Confirm verifies conf and, if the signature holds, stores exactly one
// contribution. Nothing is retried: a failed store write is reported and
// the operator alerted.
func (s *ConfirmationService) Confirm(ctx context.Context, conf PaymentConfirmation) (*ConfirmationResult, error) {
	conf.OrderID = strings.TrimSpace(conf.OrderID)
	conf.PaymentID = strings.TrimSpace(conf.PaymentID)
	conf.Signature = strings.TrimSpace(conf.Signature)

	var errs utils.FieldValidationErrors
	if conf.OrderID == "" {
		errs.Add("razorpay_order_id", "is required")
	}
	if conf.PaymentID == "" {
		errs.Add("razorpay_payment_id", "is required")
	}
	if conf.Signature == "" {
		errs.Add("razorpay_signature", "is required")
	}
	if err := errs.Err(); err != nil {
		return nil, utils.ValidationFailed("Invalid request: "+err.Error(), err)
	}

	result := &ConfirmationResult{State: StateReceived}
	utils.LogDebug("Confirmation %s for order %s", result.State, conf.OrderID)

	if !s.verify(conf.OrderID, conf.PaymentID, conf.Signature, s.secret) {
		result.State = StateRejected
		utils.Logger().Warn().
			Str("event", utils.EventSignatureRejected).
			Str("order_id", conf.OrderID).
			Str("payment_id", conf.PaymentID).
			Str("user_id", conf.UserID).
			Msg("Invalid payment signature")
		return result, utils.SignatureError("Invalid payment signature", nil)
	}
	result.State = StateVerified
	utils.LogDebug("Confirmation %s for order %s", result.State, conf.OrderID)

	// The gateway has taken the money by now, so a bad amount is a
	// reconciliation case rather than a plain validation failure.
	if conf.Amount < 1 {
		result.State = StatePersistFailed
		cause := fmt.Errorf("amount %d must be at least 1", conf.Amount)
		s.persistFailed(ctx, conf, cause)
		return result, utils.ValidationFailed("Invalid request: amount: must be at least 1", cause)
	}

	// A verified payment is written even if the client goes away meanwhile.
	storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.storeTimeout)
	defer cancel()

	saved, err := s.store.Append(storeCtx, &models.Contribution{
		UserID:    conf.UserID,
		Name:      utils.TruncateRunes(strings.TrimSpace(conf.Name), utils.MaxNameLength),
		Message:   utils.TruncateRunes(strings.TrimSpace(conf.Message), utils.MaxMessageLength),
		Amount:    conf.Amount,
		PaymentID: conf.PaymentID,
		OrderID:   conf.OrderID,
	})
	if errors.Is(err, repository.ErrAlreadyRecorded) {
		result.State = StateAlreadyRecorded
		result.Contribution = saved
		utils.Logger().Info().
			Str("event", utils.EventContributionDuplicate).
			Str("order_id", conf.OrderID).
			Str("payment_id", conf.PaymentID).
			Str("user_id", conf.UserID).
			Msg("Payment already recorded")
		return result, nil
	}
	if err != nil {
		result.State = StatePersistFailed
		s.persistFailed(ctx, conf, err)
		return result, utils.StorageError("Failed to store chai message", err)
	}

	result.State = StatePersisted
	result.Contribution = saved
	utils.Logger().Info().
		Str("event", utils.EventContributionRecorded).
		Uint("contribution_id", saved.ID).
		Str("order_id", conf.OrderID).
		Str("payment_id", conf.PaymentID).
		Str("user_id", conf.UserID).
		Msg("Payment verified and message stored")

	s.publish(ctx, *saved)
	return result, nil
}

// persistFailed records a verified payment that produced no contribution
func (s *ConfirmationService) persistFailed(ctx context.Context, conf PaymentConfirmation, cause error) {
	utils.Logger().Error().
		Str("event", utils.EventPersistFailed).
		Str("order_id", conf.OrderID).
		Str("payment_id", conf.PaymentID).
		Str("user_id", conf.UserID).
		Int64("amount", conf.Amount).
		Err(cause).
		Msg("Error storing chai message")
	s.alerter.StorageFailure(ctx, conf, cause)
}

func (s *ConfirmationService) publish(ctx context.Context, c models.Contribution) {
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.publisher.PublishContributionRecorded(pubCtx, events.NewContributionRecorded(c)); err != nil {
		utils.LogError("Failed to publish contribution %d: %v", c.ID, err)
	}
}
