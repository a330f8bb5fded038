package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/boring-ventures/minka-sub001/internal/domain/model"
)

// CampaignMediaRepository defines the interface for campaign media metadata
type CampaignMediaRepository interface {
	Create(ctx context.Context, media *model.CampaignMedia) error

	// ListByCampaign returns media ordered by sort order
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]*model.CampaignMedia, error)

	CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error)
}
