// Package events announces recorded contributions to downstream consumers.
package events

import (
	"context"
	"time"

	"github.com/Govind-619/BuyMeAChai/models"
	"github.com/google/uuid"
)

// RoutingKeyContributionRecorded is the routing key of ContributionRecorded
const RoutingKeyContributionRecorded = "contribution.recorded"

// ContributionRecorded is published once a verified contribution is stored
type ContributionRecorded struct {
	EventID        string    `json:"event_id"`
	ContributionID uint      `json:"contribution_id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Message        string    `json:"message"`
	Amount         int64     `json:"amount"`
	OrderID        string    `json:"order_id"`
	PaymentID      string    `json:"payment_id"`
	CreatedAt      time.Time `json:"created_at"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// NewContributionRecorded builds the event for c
func NewContributionRecorded(c models.Contribution) ContributionRecorded {
	return ContributionRecorded{
		EventID:        uuid.NewString(),
		ContributionID: c.ID,
		UserID:         c.UserID,
		Name:           c.Name,
		Message:        c.Message,
		Amount:         c.Amount,
		OrderID:        c.OrderID,
		PaymentID:      c.PaymentID,
		CreatedAt:      c.CreatedAt,
		OccurredAt:     time.Now().UTC(),
	}
}

// Publisher sends contribution events
type Publisher interface {
	PublishContributionRecorded(ctx context.Context, event ContributionRecorded) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishContributionRecorded(context.Context, ContributionRecorded) error {
	return nil
}
