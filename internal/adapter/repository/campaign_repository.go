package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	domainRepo "github.com/boring-ventures/minka-sub001/internal/domain/repository"
)

// campaignRepository implements the CampaignRepository interface
type campaignRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewCampaignRepository creates a new campaign repository instance
func NewCampaignRepository(db *gorm.DB, logger *zap.Logger) domainRepo.CampaignRepository {
	return &campaignRepository{
		db:     db,
		logger: logger,
	}
}

func (r *campaignRepository) Create(ctx context.Context, campaign *model.Campaign) error {
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		r.logger.Error("Failed to create campaign",
			zap.String("campaign_id", campaign.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (r *campaignRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetByIDForUpdate locks the campaign row so concurrent ledger updates serialize
func (r *campaignRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *campaignRepository) get(db *gorm.DB, id uuid.UUID) (*model.Campaign, error) {
	var campaign model.Campaign
	err := db.Where("id = ?", id).First(&campaign).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get campaign",
			zap.String("campaign_id", id.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &campaign, nil
}

func (r *campaignRepository) Update(ctx context.Context, campaign *model.Campaign) error {
	if err := r.db.WithContext(ctx).Save(campaign).Error; err != nil {
		r.logger.Error("Failed to update campaign",
			zap.String("campaign_id", campaign.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	return nil
}

func (r *campaignRepository) List(ctx context.Context, filter domainRepo.CampaignFilter, page entity.PaginationParams) ([]*model.Campaign, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Campaign{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Verified != nil {
		query = query.Where("verified = ?", *filter.Verified)
	}
	if filter.OrganizerID != nil {
		query = query.Where("organizer_id = ?", *filter.OrganizerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	var campaigns []*model.Campaign
	err := query.Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&campaigns).Error
	if err != nil {
		r.logger.Error("Failed to list campaigns", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}

	return campaigns, total, nil
}
