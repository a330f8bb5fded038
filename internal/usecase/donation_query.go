package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/boring-ventures/minka-sub001/internal/domain/dto"
	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	domainErrors "github.com/boring-ventures/minka-sub001/internal/domain/errors"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

// ListCampaignDonations lists the counted donations of a campaign for its
// public page. Anonymous donors are not identified.
func (s *DonationService) ListCampaignDonations(ctx context.Context, campaignID uuid.UUID, page entity.PaginationParams) (*dto.PaginatedPublicDonations, error) {
	page.Validate()

	campaign, err := s.store.Campaigns().GetByID(ctx, campaignID)
	if err != nil {
		return nil, apperrors.Internal("failed to load campaign", err)
	}
	if campaign == nil {
		return nil, apperrors.NotFound("campaign not found", domainErrors.ErrCampaignNotFound)
	}

	donations, total, err := s.store.Donations().ListByCampaign(ctx, campaignID, true, page)
	if err != nil {
		return nil, apperrors.Internal("failed to list donations", err)
	}

	names := make(map[uuid.UUID]string)
	data := make([]dto.PublicDonation, 0, len(donations))
	for _, d := range donations {
		name := ""
		if !d.IsAnonymous && d.DonorID != nil {
			cached, ok := names[*d.DonorID]
			if !ok {
				profile, err := s.store.Profiles().GetByID(ctx, *d.DonorID)
				if err != nil {
					return nil, apperrors.Internal("failed to load donor profile", err)
				}
				if profile != nil {
					cached = profile.Name
				}
				names[*d.DonorID] = cached
			}
			name = cached
		}
		data = append(data, dto.NewPublicDonation(d, name))
	}

	return &dto.PaginatedPublicDonations{
		Data:       data,
		Pagination: entity.NewPaginationMeta(page, total),
	}, nil
}

// ListMyDonations lists every donation made by the caller, in any status
func (s *DonationService) ListMyDonations(ctx context.Context, donorID uuid.UUID, page entity.PaginationParams) (*dto.PaginatedDonations, error) {
	page.Validate()

	donations, total, err := s.store.Donations().ListByDonor(ctx, donorID, page)
	if err != nil {
		return nil, apperrors.Internal("failed to list donations", err)
	}

	data := make([]*dto.DonationResponse, 0, len(donations))
	for _, d := range donations {
		data = append(data, dto.NewDonationResponse(d))
	}

	return &dto.PaginatedDonations{
		Data:       data,
		Pagination: entity.NewPaginationMeta(page, total),
	}, nil
}
