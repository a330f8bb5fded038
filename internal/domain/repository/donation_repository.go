package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
)

// DonationRepository defines the interface for donation persistence
type DonationRepository interface {
	Create(ctx context.Context, donation *model.Donation) error

	// GetByID returns nil, nil when the donation does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*model.Donation, error)

	// GetByIDForUpdate is GetByID holding a row lock until the transaction ends
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Donation, error)

	// GetByProviderPaymentID finds a donation by its card provider payment id
	GetByProviderPaymentID(ctx context.Context, providerPaymentID string) (*model.Donation, error)

	Update(ctx context.Context, donation *model.Donation) error

	// ListByCampaign lists donations of a campaign, newest first. With
	// countedOnly set, only donations in the counting set are returned.
	ListByCampaign(ctx context.Context, campaignID uuid.UUID, countedOnly bool, page entity.PaginationParams) ([]*model.Donation, int64, error)

	// ListAllByCampaign returns every donation of a campaign, used to rebuild totals
	ListAllByCampaign(ctx context.Context, campaignID uuid.UUID) ([]model.Donation, error)

	ListByDonor(ctx context.Context, donorID uuid.UUID, page entity.PaginationParams) ([]*model.Donation, int64, error)
}
