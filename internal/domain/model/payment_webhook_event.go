package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WebhookProvider identifies who sent a payment notification
type WebhookProvider string

const (
	WebhookProviderGateway WebhookProvider = "gateway"
	WebhookProviderStripe  WebhookProvider = "stripe"
)

// PaymentWebhookEvent records every payment notification received.
// (provider, event_id) is unique so replays are detected on insert.
type PaymentWebhookEvent struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Provider    WebhookProvider `gorm:"size:20;not null;uniqueIndex:idx_webhook_provider_event" json:"provider"`
	EventID     string          `gorm:"size:255;not null;uniqueIndex:idx_webhook_provider_event" json:"event_id"`
	EventType   string          `gorm:"size:100;not null;index" json:"event_type"`
	DonationID  *uuid.UUID      `gorm:"type:uuid;index" json:"donation_id,omitempty"`
	Status      WebhookStatus   `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Payload     datatypes.JSON  `gorm:"type:jsonb" json:"payload"`
	LastError   *string         `json:"last_error,omitempty"`
	ProcessedAt *time.Time      `json:"processed_at,omitempty"`
	CreatedAt   time.Time       `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (PaymentWebhookEvent) TableName() string {
	return "payment_webhook_events"
}
