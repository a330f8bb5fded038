package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Campaign is a fundraising campaign. CollectedAmount, DonorCount and
// PercentageFunded are maintained by the donation ledger only.
type Campaign struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrganizerID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"organizer_id"`
	Title            string          `gorm:"size:200;not null" json:"title"`
	Description      string          `gorm:"type:text" json:"description"`
	Category         string          `gorm:"size:50;index" json:"category"`
	Location         string          `gorm:"size:100" json:"location"`
	GoalAmount       decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"goal_amount"`
	CollectedAmount  decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"collected_amount"`
	DonorCount       int             `gorm:"not null;default:0" json:"donor_count"`
	PercentageFunded decimal.Decimal `gorm:"type:decimal(9,2);not null;default:0" json:"percentage_funded"`
	Status           CampaignStatus  `gorm:"size:20;not null;default:'draft';index" json:"status"`
	Verified         bool            `gorm:"not null;default:false" json:"verified"`
	VerifiedAt       *time.Time      `json:"verified_at,omitempty"`
	EndDate          *time.Time      `json:"end_date,omitempty"`
	CreatedAt        time.Time       `gorm:"default:now()" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"default:now()" json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Campaign) TableName() string {
	return "campaigns"
}

// AcceptsDonations reports whether new donations may be recorded at time now.
func (c *Campaign) AcceptsDonations(now time.Time) bool {
	if c.Status != CampaignStatusActive {
		return false
	}
	return c.EndDate == nil || now.Before(*c.EndDate)
}

// IsOrganizer reports whether the given profile organizes the campaign.
func (c *Campaign) IsOrganizer(profileID uuid.UUID) bool {
	return c.OrganizerID == profileID
}

// Editable reports whether descriptive fields may still change.
func (c *Campaign) Editable() bool {
	return c.Status == CampaignStatusDraft || c.Status == CampaignStatusActive
}
