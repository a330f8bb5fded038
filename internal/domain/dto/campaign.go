package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	"github.com/boring-ventures/minka-sub001/internal/domain/ledger"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
)

// CreateCampaignRequest is the body of POST /api/v1/campaigns
type CreateCampaignRequest struct {
	Title       string          `json:"title" validate:"required,min=3,max=200"`
	Description string          `json:"description" validate:"max=10000"`
	Category    string          `json:"category" validate:"required,max=50"`
	Location    string          `json:"location" validate:"max=100"`
	GoalAmount  decimal.Decimal `json:"goal_amount"`
	EndDate     *time.Time      `json:"end_date,omitempty"`
}

// UpdateCampaignRequest is the body of PUT /api/v1/campaigns/:id.
// Nil fields are left unchanged.
type UpdateCampaignRequest struct {
	Title       *string          `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Description *string          `json:"description,omitempty" validate:"omitempty,max=10000"`
	Category    *string          `json:"category,omitempty" validate:"omitempty,max=50"`
	Location    *string          `json:"location,omitempty" validate:"omitempty,max=100"`
	GoalAmount  *decimal.Decimal `json:"goal_amount,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
}

// CloseCampaignRequest is the body of POST /api/v1/campaigns/:id/close
type CloseCampaignRequest struct {
	Status string `json:"status" validate:"required,oneof=completed cancelled"`
}

// ListCampaignsRequest holds the query parameters of GET /api/v1/campaigns
type ListCampaignsRequest struct {
	entity.PaginationParams
	Status   string `query:"status" validate:"omitempty,oneof=draft active completed cancelled"`
	Category string `query:"category"`
	Verified *bool  `query:"verified"`
}

// PaginatedCampaigns is the response of the campaign listing
type PaginatedCampaigns struct {
	Data       []*model.Campaign     `json:"data"`
	Pagination entity.PaginationMeta `json:"pagination"`
}

// CampaignStats summarizes the funding of a campaign
type CampaignStats struct {
	CampaignID uuid.UUID       `json:"campaign_id"`
	GoalAmount decimal.Decimal `json:"goal_amount"`
	ledger.Aggregate
}

// RecalculationResult reports the aggregate before and after a rebuild
type RecalculationResult struct {
	CampaignID uuid.UUID        `json:"campaign_id"`
	Before     ledger.Aggregate `json:"before"`
	After      ledger.Aggregate `json:"after"`
	Changed    bool             `json:"changed"`
}

// MediaResponse is a campaign media entry with a temporary download URL
type MediaResponse struct {
	ID          uuid.UUID `json:"id"`
	FileName    string    `json:"file_name"`
	ContentType string    `json:"content_type"`
	IsPrimary   bool      `json:"is_primary"`
	SortOrder   int       `json:"sort_order"`
	URL         string    `json:"url"`
	CreatedAt   time.Time `json:"created_at"`
}
