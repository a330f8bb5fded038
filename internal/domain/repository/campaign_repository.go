package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
)

// CampaignFilter narrows campaign listings. Nil fields are ignored.
type CampaignFilter struct {
	Status      *model.CampaignStatus
	Category    *string
	Verified    *bool
	OrganizerID *uuid.UUID
}

// CampaignRepository defines the interface for campaign persistence
type CampaignRepository interface {
	Create(ctx context.Context, campaign *model.Campaign) error

	// GetByID returns nil, nil when the campaign does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*model.Campaign, error)

	// GetByIDForUpdate is GetByID holding a row lock until the transaction ends
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Campaign, error)

	// Update saves every column, aggregate fields included
	Update(ctx context.Context, campaign *model.Campaign) error

	List(ctx context.Context, filter CampaignFilter, page entity.PaginationParams) ([]*model.Campaign, int64, error)
}
