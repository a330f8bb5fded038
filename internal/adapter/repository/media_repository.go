package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	domainRepo "github.com/boring-ventures/minka-sub001/internal/domain/repository"
)

type campaignMediaRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCampaignMediaRepository creates a new campaign media repository instance
func NewCampaignMediaRepository(db *gorm.DB, logger *zap.Logger) domainRepo.CampaignMediaRepository {
	return &campaignMediaRepository{
		db:     db,
		logger: logger,
	}
}

func (r *campaignMediaRepository) Create(ctx context.Context, media *model.CampaignMedia) error {
	if err := r.db.WithContext(ctx).Create(media).Error; err != nil {
		r.logger.Error("Failed to create campaign media",
			zap.String("campaign_id", media.CampaignID.String()),
			zap.String("object_key", media.ObjectKey),
			zap.Error(err))
		return fmt.Errorf("failed to create campaign media: %w", err)
	}
	return nil
}

func (r *campaignMediaRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*model.CampaignMedia, error) {
	var media []*model.CampaignMedia
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("sort_order ASC, created_at ASC").
		Find(&media).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list campaign media: %w", err)
	}
	return media, nil
}

func (r *campaignMediaRepository) CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.CampaignMedia{}).
		Where("campaign_id = ?", campaignID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count campaign media: %w", err)
	}
	return count, nil
}
