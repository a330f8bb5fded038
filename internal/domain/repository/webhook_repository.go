package repository

import (
	"context"

	"github.com/boring-ventures/minka-sub001/internal/domain/model"
)

// WebhookEventRepository records payment notifications
type WebhookEventRepository interface {
	// Create inserts the event. It returns false without error when an
	// event with the same provider and event id already exists.
	Create(ctx context.Context, event *model.PaymentWebhookEvent) (bool, error)

	// GetForUpdate locks the stored event. It returns nil when there is none.
	GetForUpdate(ctx context.Context, provider model.WebhookProvider, eventID string) (*model.PaymentWebhookEvent, error)

	MarkCompleted(ctx context.Context, id int64) error

	// RecordFailure stores the event as failed with reason, inserting it
	// when missing. Completed events are left untouched.
	RecordFailure(ctx context.Context, event *model.PaymentWebhookEvent, reason string) error
}
