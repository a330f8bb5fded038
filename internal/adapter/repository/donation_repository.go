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

// countingStatuses mirrors ledger.CountsTowardTotal for SQL filters
var countingStatuses = []model.PaymentStatus{
	model.PaymentStatusActive,
	model.PaymentStatusCompleted,
}

// donationRepository implements the DonationRepository interface
type donationRepository struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDonationRepository creates a new donation repository instance
func NewDonationRepository(db *gorm.DB, logger *zap.Logger) domainRepo.DonationRepository {
	return &donationRepository{
		db:     db,
		logger: logger,
	}
}

func (r *donationRepository) Create(ctx context.Context, donation *model.Donation) error {
	if err := r.db.WithContext(ctx).Create(donation).Error; err != nil {
		r.logger.Error("Failed to create donation",
			zap.String("donation_id", donation.ID.String()),
			zap.String("campaign_id", donation.CampaignID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to create donation: %w", err)
	}
	return nil
}

func (r *donationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	return r.first(r.db.WithContext(ctx).Where("id = ?", id))
}

// GetByIDForUpdate locks the donation row for the rest of the transaction
func (r *donationRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	return r.first(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id))
}

func (r *donationRepository) GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (*model.Donation, error) {
	return r.first(r.db.WithContext(ctx).Where("provider_payment_id = ?", providerPaymentID))
}

func (r *donationRepository) first(query *gorm.DB) (*model.Donation, error) {
	var donation model.Donation
	if err := query.First(&donation).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Failed to get donation", zap.Error(err))
		return nil, fmt.Errorf("failed to get donation: %w", err)
	}
	return &donation, nil
}

func (r *donationRepository) Update(ctx context.Context, donation *model.Donation) error {
	if err := r.db.WithContext(ctx).Save(donation).Error; err != nil {
		r.logger.Error("Failed to update donation",
			zap.String("donation_id", donation.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to update donation: %w", err)
	}
	return nil
}

func (r *donationRepository) ListByCampaign(ctx context.Context, campaignID uuid.UUID, countedOnly bool, page entity.PaginationParams) ([]*model.Donation, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Donation{}).Where("campaign_id = ?", campaignID)
	if countedOnly {
		query = query.Where("payment_status IN ?", countingStatuses)
	}
	return r.paginate(query, page)
}

func (r *donationRepository) ListAllByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.Donation, error) {
	var donations []model.Donation
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Find(&donations).Error
	if err != nil {
		r.logger.Error("Failed to load campaign donations",
			zap.String("campaign_id", campaignID.String()),
			zap.Error(err))
		return nil, fmt.Errorf("failed to load campaign donations: %w", err)
	}
	return donations, nil
}

func (r *donationRepository) ListByDonor(ctx context.Context, donorID uuid.UUID, page entity.PaginationParams) ([]*model.Donation, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Donation{}).Where("donor_id = ?", donorID)
	return r.paginate(query, page)
}

func (r *donationRepository) paginate(query *gorm.DB, page entity.PaginationParams) ([]*model.Donation, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count donations: %w", err)
	}

	var donations []*model.Donation
	err := query.Order("created_at DESC").
		Limit(page.Limit).
		Offset(page.Offset()).
		Find(&donations).Error
	if err != nil {
		r.logger.Error("Failed to list donations", zap.Error(err))
		return nil, 0, fmt.Errorf("failed to list donations: %w", err)
	}
	return donations, total, nil
}
