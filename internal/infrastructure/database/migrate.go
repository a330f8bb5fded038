package database

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/boring-ventures/minka-sub001/internal/domain/model"
)

// Migrate creates or updates the schema
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("Running database migrations...")

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "pgcrypto"`).Error; err != nil {
		logger.Error("Failed to create extensions", zap.Error(err))
		return err
	}

	err := db.AutoMigrate(
		&model.Profile{},
		&model.Campaign{},
		&model.Donation{},
		&model.CampaignMedia{},
		&model.PaymentWebhookEvent{},
	)
	if err != nil {
		logger.Error("Failed to run migrations", zap.Error(err))
		return err
	}

	if err := createConstraints(db); err != nil {
		logger.Error("Failed to create constraints", zap.Error(err))
		return err
	}

	if err := createCustomIndexes(db); err != nil {
		logger.Error("Failed to create custom indexes", zap.Error(err))
		return err
	}

	logger.Info("Database migrations completed successfully")
	return nil
}

var constraints = []struct {
	table, name, check string
}{
	{"campaigns", "chk_campaigns_goal_positive", "goal_amount > 0"},
	{"campaigns", "chk_campaigns_collected_nonnegative", "collected_amount >= 0"},
	{"campaigns", "chk_campaigns_donor_count_nonnegative", "donor_count >= 0"},
	{"campaigns", "chk_campaigns_percentage_nonnegative", "percentage_funded >= 0"},
	{"donations", "chk_donations_amount_positive", "amount > 0"},
	{"donations", "chk_donations_payment_status",
		"payment_status IN ('pending', 'active', 'completed', 'failed', 'refunded', 'rejected')"},
	{"donations", "chk_donations_payment_method",
		"payment_method IN ('credit_card', 'qr', 'bank_transfer')"},
}

// createConstraints adds the CHECK constraints AutoMigrate cannot express
func createConstraints(db *gorm.DB) error {
	for _, c := range constraints {
		var exists bool
		if err := db.Raw(`SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)`, c.name).Scan(&exists).Error; err != nil {
			return err
		}
		if exists {
			continue
		}
		if err := db.Exec(`ALTER TABLE ` + c.table + ` ADD CONSTRAINT ` + c.name + ` CHECK (` + c.check + `)`).Error; err != nil {
			return err
		}
	}
	return nil
}

// createCustomIndexes creates indexes GORM doesn't handle automatically
func createCustomIndexes(db *gorm.DB) error {
	// Recalculation and public listings scan counted donations per campaign
	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_donations_counted ON donations (campaign_id, created_at DESC) WHERE payment_status IN ('active', 'completed')`).Error; err != nil {
		return err
	}

	if err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_webhook_events_unprocessed ON payment_webhook_events (created_at) WHERE status IN ('pending', 'failed')`).Error; err != nil {
		return err
	}

	return nil
}
