package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	domainRepo "github.com/boring-ventures/minka-sub001/internal/domain/repository"
)

type webhookEventRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewWebhookEventRepository creates a new webhook event repository
func NewWebhookEventRepository(db *gorm.DB, logger *zap.Logger) domainRepo.WebhookEventRepository {
	return &webhookEventRepository{
		db:     db,
		logger: logger,
	}
}

// Create saves a new webhook event. Duplicates are skipped via ON CONFLICT.
func (r *webhookEventRepository) Create(ctx context.Context, event *model.PaymentWebhookEvent) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(event)

	if result.Error != nil {
		r.logger.Error("Failed to save webhook event",
			zap.String("provider", string(event.Provider)),
			zap.String("event_id", event.EventID),
			zap.String("event_type", event.EventType),
			zap.Error(result.Error))
		return false, fmt.Errorf("failed to save webhook event: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// MarkCompleted marks an event as processed successfully
func (r *webhookEventRepository) MarkCompleted(ctx context.Context, id int64) error {
	now := time.Now()
	err := r.db.WithContext(ctx).
		Model(&model.PaymentWebhookEvent{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       model.WebhookStatusCompleted,
			"processed_at": now,
			"last_error":   nil,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to mark webhook event completed: %w", err)
	}
	return nil
}

// GetForUpdate loads an event by provider and event id with a row lock
func (r *webhookEventRepository) GetForUpdate(ctx context.Context, provider model.WebhookProvider, eventID string) (*model.PaymentWebhookEvent, error) {
	var event model.PaymentWebhookEvent
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("provider = ? AND event_id = ?", provider, eventID).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get webhook event: %w", err)
	}
	return &event, nil
}

// RecordFailure upserts the event with status failed. The conflict update
// skips rows that are already completed.
func (r *webhookEventRepository) RecordFailure(ctx context.Context, event *model.PaymentWebhookEvent, reason string) error {
	now := time.Now()
	record := *event
	record.ID = 0
	record.Status = model.WebhookStatusFailed
	record.LastError = &reason
	record.ProcessedAt = &now

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "provider"}, {Name: "event_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "last_error", "processed_at"}),
			Where: clause.Where{Exprs: []clause.Expression{
				clause.Neq{
					Column: clause.Column{Table: record.TableName(), Name: "status"},
					Value:  model.WebhookStatusCompleted,
				},
			}},
		}).
		Create(&record).Error
	if err != nil {
		r.logger.Error("Failed to record webhook event failure",
			zap.String("provider", string(event.Provider)),
			zap.String("event_id", event.EventID),
			zap.Error(err))
		return fmt.Errorf("failed to record webhook event failure: %w", err)
	}
	return nil
}
