package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domainRepo "github.com/boring-ventures/minka-sub001/internal/domain/repository"
)

// gormStore implements the Store interface on top of a *gorm.DB, which is
// either the connection pool or an open transaction.
type gormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewStore creates a new GORM-backed store
func NewStore(db *gorm.DB, logger *zap.Logger) domainRepo.Store {
	return &gormStore{db: db, logger: logger}
}

func (s *gormStore) Profiles() domainRepo.ProfileRepository {
	return NewProfileRepository(s.db, s.logger)
}

func (s *gormStore) Campaigns() domainRepo.CampaignRepository {
	return NewCampaignRepository(s.db, s.logger)
}

func (s *gormStore) Donations() domainRepo.DonationRepository {
	return NewDonationRepository(s.db, s.logger)
}

func (s *gormStore) Media() domainRepo.CampaignMediaRepository {
	return NewCampaignMediaRepository(s.db, s.logger)
}

func (s *gormStore) WebhookEvents() domainRepo.WebhookEventRepository {
	return NewWebhookEventRepository(s.db, s.logger)
}

// WithTx runs fn in a database transaction
func (s *gormStore) WithTx(ctx context.Context, fn func(tx domainRepo.Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx, logger: s.logger})
	})
}
