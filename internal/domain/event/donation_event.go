package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boring-ventures/minka-sub001/internal/domain/model"
)

// Event types published on the donations channel
const (
	TypeDonationCreated       = "donation.created"
	TypeDonationStatusChanged = "donation.status_changed"
)

// DonationEvent is published after a donation is committed or changes status
type DonationEvent struct {
	Type                string              `json:"type"`
	DonationID          uuid.UUID           `json:"donation_id"`
	CampaignID          uuid.UUID           `json:"campaign_id"`
	CampaignTitle       string              `json:"campaign_title"`
	OrganizerID         uuid.UUID           `json:"organizer_id"`
	DonorID             *uuid.UUID          `json:"donor_id,omitempty"`
	IsAnonymous         bool                `json:"is_anonymous"`
	NotificationEnabled bool                `json:"notification_enabled"`
	Amount              decimal.Decimal     `json:"amount"`
	Currency            string              `json:"currency"`
	Reference           string              `json:"reference"`
	PreviousStatus      model.PaymentStatus `json:"previous_status,omitempty"`
	Status              model.PaymentStatus `json:"status"`
	// Counted is true when this change moved the donation into the campaign total
	Counted    bool      `json:"counted"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers donation events to interested consumers
type Publisher interface {
	Publish(ctx context.Context, evt DonationEvent) error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, DonationEvent) error { return nil }
