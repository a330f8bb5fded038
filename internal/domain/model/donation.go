package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const MaxDonationMessageLength = 500

// Donation is a single pledge toward a campaign. Rows are never deleted;
// state changes go through PaymentStatus.
type Donation struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"campaign_id"`
	DonorID             *uuid.UUID      `gorm:"type:uuid;index" json:"donor_id,omitempty"`
	Amount              decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	Currency            string          `gorm:"size:3;not null;default:'BOB'" json:"currency"`
	PaymentMethod       PaymentMethod   `gorm:"size:20;not null" json:"payment_method"`
	PaymentStatus       PaymentStatus   `gorm:"size:20;not null;default:'pending';index" json:"payment_status"`
	IsAnonymous         bool            `gorm:"not null;default:false" json:"is_anonymous"`
	Message             *string         `gorm:"size:500" json:"message,omitempty"`
	NotificationEnabled bool            `gorm:"not null" json:"notification_enabled"`
	Reference           string          `gorm:"size:16;not null;uniqueIndex" json:"reference"`
	TransactionID       *string         `gorm:"size:255" json:"transaction_id,omitempty"`
	ProviderPaymentID   *string         `gorm:"column:provider_payment_id;size:100;index" json:"provider_payment_id,omitempty"`
	CreatedAt           time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Donation) TableName() string {
	return "donations"
}

// IsDonor reports whether the donation was made by the given profile.
func (d *Donation) IsDonor(profileID uuid.UUID) bool {
	return d.DonorID != nil && *d.DonorID == profileID
}
