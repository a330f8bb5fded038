package model

import (
	"time"

	"github.com/google/uuid"
)

// CampaignMedia is an image or document attached to a campaign, stored in S3
type CampaignMedia struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CampaignID  uuid.UUID `gorm:"type:uuid;not null;index" json:"campaign_id"`
	ObjectKey   string    `gorm:"size:512;not null;uniqueIndex" json:"object_key"`
	FileName    string    `gorm:"size:255" json:"file_name"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	IsPrimary   bool      `gorm:"not null;default:false" json:"is_primary"`
	SortOrder   int       `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt   time.Time `gorm:"default:now()" json:"created_at"`
}

// TableName specifies the table name for GORM
func (CampaignMedia) TableName() string {
	return "campaign_media"
}
