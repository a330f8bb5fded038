package http

import (
	"context"

	"github.com/google/uuid"

	"github.com/boring-ventures/minka-sub001/internal/domain/dto"
	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
	"github.com/boring-ventures/minka-sub001/internal/usecase"
)

// DonationUsecase is the donation behaviour the handlers depend on
type DonationUsecase interface {
	CreateDonation(ctx context.Context, donor *usecase.Donor, req dto.CreateDonationRequest) (*dto.CreateDonationResponse, error)
	GetDonation(ctx context.Context, actorID, donationID uuid.UUID) (*dto.DonationResponse, error)
	UpdateDonationStatus(ctx context.Context, actorID, donationID uuid.UUID, status string) (*dto.StatusChangeResult, error)
	ListCampaignDonations(ctx context.Context, campaignID uuid.UUID, page entity.PaginationParams) (*dto.PaginatedPublicDonations, error)
	ListMyDonations(ctx context.Context, donorID uuid.UUID, page entity.PaginationParams) (*dto.PaginatedDonations, error)
	ApplyPaymentWebhook(ctx context.Context, eventID string, req dto.PaymentWebhookRequest, payload []byte) (*dto.StatusChangeResult, error)
	HandleCardPaymentEvent(ctx context.Context, pe *provider.WebhookEvent) (*dto.StatusChangeResult, error)
}

// CampaignUsecase is the campaign behaviour the handlers depend on
type CampaignUsecase interface {
	CreateCampaign(ctx context.Context, organizerID uuid.UUID, req dto.CreateCampaignRequest) (*model.Campaign, error)
	GetCampaign(ctx context.Context, id uuid.UUID) (*model.Campaign, error)
	ListCampaigns(ctx context.Context, req dto.ListCampaignsRequest) (*dto.PaginatedCampaigns, error)
	UpdateCampaign(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateCampaignRequest) (*model.Campaign, error)
	PublishCampaign(ctx context.Context, actorID, id uuid.UUID) (*model.Campaign, error)
	CloseCampaign(ctx context.Context, actorID, id uuid.UUID, status string) (*model.Campaign, error)
	VerifyCampaign(ctx context.Context, adminID, id uuid.UUID) (*model.Campaign, error)
	GetCampaignStats(ctx context.Context, id uuid.UUID) (*dto.CampaignStats, error)
	RecalculateCampaignTotals(ctx context.Context, adminID, id uuid.UUID) (*dto.RecalculationResult, error)
}

// MediaUsecase is the campaign media behaviour the handlers depend on
type MediaUsecase interface {
	UploadMedia(ctx context.Context, actorID, campaignID uuid.UUID, upload usecase.MediaUpload) (*dto.MediaResponse, error)
	ListMedia(ctx context.Context, campaignID uuid.UUID) ([]*dto.MediaResponse, error)
}

// ProfileUsecase is the profile behaviour the handlers depend on
type ProfileUsecase interface {
	EnsureProfile(ctx context.Context, id uuid.UUID, email, name string) (*model.Profile, error)
}

var (
	_ DonationUsecase = (*usecase.DonationService)(nil)
	_ CampaignUsecase = (*usecase.CampaignService)(nil)
	_ MediaUsecase    = (*usecase.MediaService)(nil)
	_ ProfileUsecase  = (*usecase.ProfileService)(nil)
)
