package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/domain/dto"
	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	domainErrors "github.com/boring-ventures/minka-sub001/internal/domain/errors"
	"github.com/boring-ventures/minka-sub001/internal/domain/ledger"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	domainRepo "github.com/boring-ventures/minka-sub001/internal/domain/repository"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

// CampaignService handles campaign lifecycle and administration
type CampaignService struct {
	store  domainRepo.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewCampaignService creates a new campaign service
func NewCampaignService(store domainRepo.Store, logger *zap.Logger) *CampaignService {
	return &CampaignService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// CreateCampaign creates a draft campaign organized by the caller
func (s *CampaignService) CreateCampaign(ctx context.Context, organizerID uuid.UUID, req dto.CreateCampaignRequest) (*model.Campaign, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, apperrors.InvalidArgument("title is required", nil)
	}
	if !ledger.ValidAmount(req.GoalAmount) {
		return nil, apperrors.InvalidArgument("goal_amount must be greater than zero with at most 2 decimal places", nil)
	}
	if req.EndDate != nil && !req.EndDate.After(s.now()) {
		return nil, apperrors.InvalidArgument("end_date must be in the future", nil)
	}

	campaign := &model.Campaign{
		ID:               uuid.New(),
		OrganizerID:      organizerID,
		Title:            strings.TrimSpace(req.Title),
		Description:      req.Description,
		Category:         req.Category,
		Location:         req.Location,
		GoalAmount:       req.GoalAmount,
		CollectedAmount:  decimal.Zero,
		PercentageFunded: decimal.Zero,
		Status:           model.CampaignStatusDraft,
		EndDate:          req.EndDate,
	}
	if err := s.store.Campaigns().Create(ctx, campaign); err != nil {
		return nil, apperrors.Internal("failed to create campaign", err)
	}

	s.logger.Info("Campaign created",
		zap.String("campaign_id", campaign.ID.String()),
		zap.String("organizer_id", organizerID.String()))
	return campaign, nil
}

// GetCampaign returns a campaign by id
func (s *CampaignService) GetCampaign(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	campaign, err := s.store.Campaigns().GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.Internal("failed to load campaign", err)
	}
	if campaign == nil {
		return nil, apperrors.NotFound("campaign not found", domainErrors.ErrCampaignNotFound)
	}
	return campaign, nil
}

// ListCampaigns lists campaigns matching the request filters
func (s *CampaignService) ListCampaigns(ctx context.Context, req dto.ListCampaignsRequest) (*dto.PaginatedCampaigns, error) {
	page := req.PaginationParams
	page.Validate()

	var filter domainRepo.CampaignFilter
	if req.Status != "" {
		status := model.CampaignStatus(req.Status)
		if !status.IsValid() {
			return nil, apperrors.InvalidArgument("unknown campaign status", nil)
		}
		filter.Status = &status
	}
	if req.Category != "" {
		category := req.Category
		filter.Category = &category
	}
	filter.Verified = req.Verified

	campaigns, total, err := s.store.Campaigns().List(ctx, filter, page)
	if err != nil {
		return nil, apperrors.Internal("failed to list campaigns", err)
	}

	return &dto.PaginatedCampaigns{
		Data:       campaigns,
		Pagination: entity.NewPaginationMeta(page, total),
	}, nil
}

// UpdateCampaign edits descriptive fields. Aggregate fields are never
// written from request data; a new goal only recomputes the percentage.
func (s *CampaignService) UpdateCampaign(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateCampaignRequest) (*model.Campaign, error) {
	if req.GoalAmount != nil && !ledger.ValidAmount(*req.GoalAmount) {
		return nil, apperrors.InvalidArgument("goal_amount must be greater than zero with at most 2 decimal places", nil)
	}
	if req.EndDate != nil && !req.EndDate.After(s.now()) {
		return nil, apperrors.InvalidArgument("end_date must be in the future", nil)
	}
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return nil, apperrors.InvalidArgument("title cannot be empty", nil)
	}

	return s.mutate(ctx, actorID, id, func(c *model.Campaign) error {
		if !c.Editable() {
			return apperrors.Conflict("campaign can no longer be edited", domainErrors.ErrCampaignNotEditable)
		}
		if req.Title != nil {
			c.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		if req.Category != nil {
			c.Category = *req.Category
		}
		if req.Location != nil {
			c.Location = *req.Location
		}
		if req.EndDate != nil {
			c.EndDate = req.EndDate
		}
		if req.GoalAmount != nil {
			c.GoalAmount = *req.GoalAmount
			c.PercentageFunded = ledger.Percentage(c.CollectedAmount, c.GoalAmount)
		}
		return nil
	})
}

// PublishCampaign opens a draft campaign to donations
func (s *CampaignService) PublishCampaign(ctx context.Context, actorID, id uuid.UUID) (*model.Campaign, error) {
	return s.mutate(ctx, actorID, id, func(c *model.Campaign) error {
		if c.Status != model.CampaignStatusDraft {
			return apperrors.Conflict("only draft campaigns can be published",
				domainErrors.NewInvalidCampaignTransitionError(string(c.Status), string(model.CampaignStatusActive)))
		}
		if c.EndDate != nil && !c.EndDate.After(s.now()) {
			return apperrors.Conflict("campaign end date has passed", nil)
		}
		c.Status = model.CampaignStatusActive
		return nil
	})
}

// CloseCampaign completes or cancels a campaign. Drafts can only be cancelled.
func (s *CampaignService) CloseCampaign(ctx context.Context, actorID, id uuid.UUID, status string) (*model.Campaign, error) {
	target := model.CampaignStatus(status)
	if target != model.CampaignStatusCompleted && target != model.CampaignStatusCancelled {
		return nil, apperrors.InvalidArgument("status must be completed or cancelled", nil)
	}

	return s.mutate(ctx, actorID, id, func(c *model.Campaign) error {
		allowed := c.Status == model.CampaignStatusActive ||
			(c.Status == model.CampaignStatusDraft && target == model.CampaignStatusCancelled)
		if !allowed {
			return apperrors.Conflict("campaign cannot be closed from its current status",
				domainErrors.NewInvalidCampaignTransitionError(string(c.Status), string(target)))
		}
		c.Status = target
		return nil
	})
}

// mutate applies fn to a locked campaign the actor organizes (or any
// campaign for admins) and saves it
func (s *CampaignService) mutate(ctx context.Context, actorID, id uuid.UUID, fn func(c *model.Campaign) error) (*model.Campaign, error) {
	actor, err := s.store.Profiles().GetByID(ctx, actorID)
	if err != nil {
		return nil, apperrors.Internal("failed to load profile", err)
	}

	var campaign *model.Campaign
	err = s.store.WithTx(ctx, func(tx domainRepo.Store) error {
		c, err := tx.Campaigns().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if c == nil {
			return apperrors.NotFound("campaign not found", domainErrors.ErrCampaignNotFound)
		}
		if !c.IsOrganizer(actorID) && !actor.IsAdmin() {
			return apperrors.Forbidden("only the campaign organizer can modify the campaign", domainErrors.ErrNotCampaignOrganizer)
		}
		if err := fn(c); err != nil {
			return err
		}
		campaign = c
		return tx.Campaigns().Update(ctx, c)
	})
	if err != nil {
		apperrors.LogError(s.logger, err, "Failed to modify campaign",
			zap.String("campaign_id", id.String()),
			zap.String("actor_id", actorID.String()))
		return nil, toAppError(err, "failed to modify campaign")
	}
	return campaign, nil
}

// VerifyCampaign marks a campaign as verified by an admin
func (s *CampaignService) VerifyCampaign(ctx context.Context, adminID, id uuid.UUID) (*model.Campaign, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	return s.mutate(ctx, adminID, id, func(c *model.Campaign) error {
		if c.Verified {
			return nil
		}
		now := s.now()
		c.Verified = true
		c.VerifiedAt = &now
		return nil
	})
}

// GetCampaignStats returns the funding aggregate of a campaign
func (s *CampaignService) GetCampaignStats(ctx context.Context, id uuid.UUID) (*dto.CampaignStats, error) {
	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.CampaignStats{
		CampaignID: campaign.ID,
		GoalAmount: campaign.GoalAmount,
		Aggregate:  ledger.Snapshot(campaign),
	}, nil
}

// RecalculateCampaignTotals rebuilds a campaign aggregate from its donations
func (s *CampaignService) RecalculateCampaignTotals(ctx context.Context, adminID, id uuid.UUID) (*dto.RecalculationResult, error) {
	if err := s.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	result := &dto.RecalculationResult{CampaignID: id}
	err := s.store.WithTx(ctx, func(tx domainRepo.Store) error {
		campaign, err := tx.Campaigns().GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if campaign == nil {
			return apperrors.NotFound("campaign not found", domainErrors.ErrCampaignNotFound)
		}

		donations, err := tx.Donations().ListAllByCampaign(ctx, id)
		if err != nil {
			return err
		}

		result.Before = ledger.Snapshot(campaign)
		result.After = ledger.Totals(campaign.GoalAmount, donations)
		result.Changed = !result.Before.CollectedAmount.Equal(result.After.CollectedAmount) ||
			result.Before.DonorCount != result.After.DonorCount ||
			!result.Before.PercentageFunded.Equal(result.After.PercentageFunded)
		if !result.Changed {
			return nil
		}

		ledger.Set(campaign, result.After)
		return tx.Campaigns().Update(ctx, campaign)
	})
	if err != nil {
		apperrors.LogError(s.logger, err, "Failed to recalculate campaign totals",
			zap.String("campaign_id", id.String()))
		return nil, toAppError(err, "failed to recalculate campaign totals")
	}

	if result.Changed {
		s.logger.Warn("Campaign totals corrected",
			zap.String("campaign_id", id.String()),
			zap.String("collected_before", result.Before.CollectedAmount.String()),
			zap.String("collected_after", result.After.CollectedAmount.String()),
			zap.Int("donors_before", result.Before.DonorCount),
			zap.Int("donors_after", result.After.DonorCount))
	}
	return result, nil
}

func (s *CampaignService) requireAdmin(ctx context.Context, profileID uuid.UUID) error {
	profile, err := s.store.Profiles().GetByID(ctx, profileID)
	if err != nil {
		return apperrors.Internal("failed to load profile", err)
	}
	if !profile.IsAdmin() {
		return apperrors.Forbidden("admin role required", nil)
	}
	return nil
}
