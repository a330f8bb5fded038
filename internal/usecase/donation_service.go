package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/domain/dto"
	domainErrors "github.com/boring-ventures/minka-sub001/internal/domain/errors"
	"github.com/boring-ventures/minka-sub001/internal/domain/event"
	"github.com/boring-ventures/minka-sub001/internal/domain/ledger"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
	domainRepo "github.com/boring-ventures/minka-sub001/internal/domain/repository"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

const (
	referenceAlphabet = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	referenceLength   = 10
)

// DonationService records donations and drives every payment status change
// through the ledger
type DonationService struct {
	store     domainRepo.Store
	cards     provider.CardPaymentProvider
	publisher event.Publisher
	logger    *zap.Logger
	currency  string
	now       func() time.Time
}

// NewDonationService creates a new donation service. cards may be nil when
// card payments are confirmed out of band.
func NewDonationService(
	store domainRepo.Store,
	cards provider.CardPaymentProvider,
	publisher event.Publisher,
	logger *zap.Logger,
	currency string,
) *DonationService {
	if publisher == nil {
		publisher = event.NopPublisher{}
	}
	if currency == "" {
		currency = "BOB"
	}
	return &DonationService{
		store:     store,
		cards:     cards,
		publisher: publisher,
		logger:    logger,
		currency:  currency,
		now:       time.Now,
	}
}

// Donor identifies the authenticated caller of CreateDonation, if any
type Donor struct {
	ID    uuid.UUID
	Email string
}

// CreateDonation records a pending donation. The campaign aggregate is not
// touched until the payment is confirmed.
func (s *DonationService) CreateDonation(ctx context.Context, donor *Donor, req dto.CreateDonationRequest) (*dto.CreateDonationResponse, error) {
	if err := validateCreateDonation(req); err != nil {
		return nil, err
	}
	if !req.IsAnonymous && donor == nil {
		return nil, apperrors.Unauthenticated("sign in to make a non-anonymous donation", nil)
	}

	reference, err := gonanoid.Generate(referenceAlphabet, referenceLength)
	if err != nil {
		return nil, apperrors.Internal("failed to generate donation reference", err)
	}

	notify := true
	if req.NotificationEnabled != nil {
		notify = *req.NotificationEnabled
	}

	donation := &model.Donation{
		ID:                  uuid.New(),
		CampaignID:          req.CampaignID,
		Amount:              req.Amount,
		Currency:            s.currency,
		PaymentMethod:       model.PaymentMethod(req.PaymentMethod),
		PaymentStatus:       model.PaymentStatusPending,
		IsAnonymous:         req.IsAnonymous,
		Message:             req.Message,
		NotificationEnabled: notify,
		Reference:           reference,
	}
	// A signed-in donor stays linked even when anonymous; listings hide it.
	if donor != nil {
		donorID := donor.ID
		donation.DonorID = &donorID
	}

	var campaign *model.Campaign
	err = s.store.WithTx(ctx, func(tx domainRepo.Store) error {
		c, err := tx.Campaigns().GetByIDForUpdate(ctx, req.CampaignID)
		if err != nil {
			return err
		}
		if c == nil {
			return apperrors.NotFound("campaign not found", domainErrors.ErrCampaignNotFound)
		}
		if !c.AcceptsDonations(s.now()) {
			return apperrors.Conflict("campaign is not accepting donations", domainErrors.ErrCampaignNotAcceptingDonations)
		}
		campaign = c
		return tx.Donations().Create(ctx, donation)
	})
	if err != nil {
		apperrors.LogError(s.logger, err, "Failed to create donation",
			zap.String("campaign_id", req.CampaignID.String()))
		return nil, toAppError(err, "failed to create donation")
	}

	s.logger.Info("Donation created",
		zap.String("donation_id", donation.ID.String()),
		zap.String("campaign_id", donation.CampaignID.String()),
		zap.String("amount", donation.Amount.String()),
		zap.String("payment_method", string(donation.PaymentMethod)),
		zap.Bool("anonymous", donation.IsAnonymous))

	resp := &dto.CreateDonationResponse{}
	if donation.PaymentMethod == model.PaymentMethodCreditCard && s.cards != nil {
		email := ""
		if donor != nil {
			email = donor.Email
		}
		clientSecret, err := s.startCardPayment(ctx, donation, campaign, email)
		if err != nil {
			return nil, err
		}
		resp.ClientSecret = clientSecret
	}

	s.publish(ctx, newDonationEvent(event.TypeDonationCreated, donation, campaign, ""))

	resp.Donation = dto.NewDonationResponse(donation)
	return resp, nil
}

func validateCreateDonation(req dto.CreateDonationRequest) error {
	if req.CampaignID == uuid.Nil {
		return apperrors.InvalidArgument("campaign_id is required", nil)
	}
	if !ledger.ValidAmount(req.Amount) {
		return apperrors.InvalidArgument("amount must be greater than zero with at most 2 decimal places", nil)
	}
	if !model.PaymentMethod(req.PaymentMethod).IsValid() {
		return apperrors.InvalidArgument(fmt.Sprintf("unsupported payment method %q", req.PaymentMethod), nil)
	}
	if req.Message != nil && len([]rune(*req.Message)) > model.MaxDonationMessageLength {
		return apperrors.InvalidArgument("message is too long", nil)
	}
	return nil
}

// startCardPayment creates the provider payment for a card donation and
// stores its id. If the provider call fails the donation is marked failed.
func (s *DonationService) startCardPayment(ctx context.Context, donation *model.Donation, campaign *model.Campaign, email string) (string, error) {
	payment, err := s.cards.CreatePayment(ctx, &provider.CreatePaymentRequest{
		DonationID:   donation.ID.String(),
		AmountCents:  donation.Amount.Shift(2).IntPart(),
		Currency:     donation.Currency,
		Description:  fmt.Sprintf("Donation %s to %s", donation.Reference, campaign.Title),
		ReceiptEmail: email,
	})
	if err != nil {
		s.logger.Error("Failed to create card payment",
			zap.String("provider", s.cards.GetProviderName()),
			zap.String("donation_id", donation.ID.String()),
			zap.Error(err))
		if _, markErr := s.changeStatus(ctx, donation.ID, model.PaymentStatusFailed, statusChangeOptions{}); markErr != nil {
			s.logger.Error("Failed to mark donation failed", zap.Error(markErr))
		}
		return "", apperrors.Internal("failed to start card payment", err)
	}

	paymentID := payment.PaymentID
	err = s.store.WithTx(ctx, func(tx domainRepo.Store) error {
		d, err := tx.Donations().GetByIDForUpdate(ctx, donation.ID)
		if err != nil {
			return err
		}
		if d == nil {
			return domainErrors.ErrDonationNotFound
		}
		d.ProviderPaymentID = &paymentID
		return tx.Donations().Update(ctx, d)
	})
	if err != nil {
		return "", apperrors.Internal("failed to store card payment", err)
	}
	donation.ProviderPaymentID = &paymentID

	return payment.ClientSecret, nil
}

// statusChangeOptions customizes changeStatus for its callers
type statusChangeOptions struct {
	// authorize runs with both rows locked, before any change
	authorize func(d *model.Donation, c *model.Campaign) error
	// mutate runs when the status actually changes
	mutate func(d *model.Donation)
}

// statusChange is the committed outcome of changeStatus
type statusChange struct {
	donation *model.Donation
	campaign *model.Campaign
	previous model.PaymentStatus
	delta    ledger.Delta
	changed  bool
}

// changeStatus moves a donation to status and applies the ledger delta to
// its campaign in one transaction, holding row locks on both.
func (s *DonationService) changeStatus(ctx context.Context, donationID uuid.UUID, status model.PaymentStatus, opts statusChangeOptions) (*statusChange, error) {
	var change *statusChange
	err := s.store.WithTx(ctx, func(tx domainRepo.Store) error {
		var err error
		change, err = s.changeStatusTx(ctx, tx, donationID, status, opts)
		return err
	})
	if err != nil {
		return nil, toAppError(err, "failed to change donation status")
	}

	s.statusChanged(ctx, change)
	return change, nil
}

// changeStatusTx is changeStatus inside an open transaction. The caller
// commits and then calls statusChanged.
func (s *DonationService) changeStatusTx(ctx context.Context, tx domainRepo.Store, donationID uuid.UUID, status model.PaymentStatus, opts statusChangeOptions) (*statusChange, error) {
	donation, err := tx.Donations().GetByIDForUpdate(ctx, donationID)
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, apperrors.NotFound("donation not found", domainErrors.ErrDonationNotFound)
	}

	campaign, err := tx.Campaigns().GetByIDForUpdate(ctx, donation.CampaignID)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, apperrors.Internal("donation references a missing campaign", domainErrors.ErrCampaignNotFound)
	}

	if opts.authorize != nil {
		if err := opts.authorize(donation, campaign); err != nil {
			return nil, err
		}
	}

	change := &statusChange{donation: donation, campaign: campaign, previous: donation.PaymentStatus}
	if donation.PaymentStatus == status {
		return change, nil
	}

	change.delta = ledger.Transition(donation.PaymentStatus, status, donation.Amount)
	change.changed = true

	donation.PaymentStatus = status
	if opts.mutate != nil {
		opts.mutate(donation)
	}
	if err := tx.Donations().Update(ctx, donation); err != nil {
		return nil, err
	}

	if change.delta.IsZero() {
		return change, nil
	}
	ledger.Apply(campaign, change.delta)
	if err := tx.Campaigns().Update(ctx, campaign); err != nil {
		return nil, err
	}
	return change, nil
}

// statusChanged logs and publishes a committed status change
func (s *DonationService) statusChanged(ctx context.Context, change *statusChange) {
	if !change.changed {
		return
	}

	s.logger.Info("Donation status changed",
		zap.String("donation_id", change.donation.ID.String()),
		zap.String("campaign_id", change.campaign.ID.String()),
		zap.String("from", string(change.previous)),
		zap.String("to", string(change.donation.PaymentStatus)),
		zap.String("amount_delta", change.delta.Amount.String()),
		zap.Int("donor_delta", change.delta.Donors),
		zap.String("collected_amount", change.campaign.CollectedAmount.String()),
		zap.Int("donor_count", change.campaign.DonorCount))

	s.publish(ctx, newDonationEvent(event.TypeDonationStatusChanged, change.donation, change.campaign, change.previous))
}

func (r *statusChange) toResult() *dto.StatusChangeResult {
	return &dto.StatusChangeResult{
		Donation: dto.NewDonationResponse(r.donation),
		Changed:  r.changed,
		Campaign: ledger.Snapshot(r.campaign),
	}
}

// UpdateDonationStatus lets the campaign organizer or an admin approve,
// reset or reject a donation
func (s *DonationService) UpdateDonationStatus(ctx context.Context, actorID, donationID uuid.UUID, status string) (*dto.StatusChangeResult, error) {
	target := model.PaymentStatus(status)
	switch target {
	case model.PaymentStatusPending, model.PaymentStatusActive, model.PaymentStatusRejected:
	default:
		return nil, apperrors.InvalidArgument(fmt.Sprintf("status must be pending, active or rejected, got %q", status), domainErrors.ErrInvalidPaymentStatus)
	}

	actor, err := s.store.Profiles().GetByID(ctx, actorID)
	if err != nil {
		return nil, apperrors.Internal("failed to load profile", err)
	}

	change, err := s.changeStatus(ctx, donationID, target, statusChangeOptions{
		authorize: func(_ *model.Donation, c *model.Campaign) error {
			if actor.IsAdmin() || c.IsOrganizer(actorID) {
				return nil
			}
			return apperrors.Forbidden("only the campaign organizer or an admin can change donation status", domainErrors.ErrNotCampaignOrganizer)
		},
	})
	if err != nil {
		apperrors.LogError(s.logger, err, "Failed to update donation status",
			zap.String("donation_id", donationID.String()),
			zap.String("actor_id", actorID.String()))
		return nil, err
	}

	return change.toResult(), nil
}

// GetDonation returns a donation to its donor, the campaign organizer or an admin
func (s *DonationService) GetDonation(ctx context.Context, actorID, donationID uuid.UUID) (*dto.DonationResponse, error) {
	donation, err := s.store.Donations().GetByID(ctx, donationID)
	if err != nil {
		return nil, apperrors.Internal("failed to load donation", err)
	}
	if donation == nil {
		return nil, apperrors.NotFound("donation not found", domainErrors.ErrDonationNotFound)
	}
	if donation.IsDonor(actorID) {
		return dto.NewDonationResponse(donation), nil
	}

	campaign, err := s.store.Campaigns().GetByID(ctx, donation.CampaignID)
	if err != nil {
		return nil, apperrors.Internal("failed to load campaign", err)
	}
	if campaign != nil && campaign.IsOrganizer(actorID) {
		return dto.NewDonationResponse(donation), nil
	}

	actor, err := s.store.Profiles().GetByID(ctx, actorID)
	if err != nil {
		return nil, apperrors.Internal("failed to load profile", err)
	}
	if actor.IsAdmin() {
		return dto.NewDonationResponse(donation), nil
	}

	return nil, apperrors.Forbidden("not allowed to view this donation", nil)
}

func (s *DonationService) publish(ctx context.Context, evt event.DonationEvent) {
	if err := s.publisher.Publish(ctx, evt); err != nil {
		s.logger.Warn("Failed to publish donation event",
			zap.String("type", evt.Type),
			zap.String("donation_id", evt.DonationID.String()),
			zap.Error(err))
	}
}

func newDonationEvent(eventType string, d *model.Donation, c *model.Campaign, previous model.PaymentStatus) event.DonationEvent {
	evt := event.DonationEvent{
		Type:                eventType,
		DonationID:          d.ID,
		CampaignID:          d.CampaignID,
		DonorID:             d.DonorID,
		IsAnonymous:         d.IsAnonymous,
		NotificationEnabled: d.NotificationEnabled,
		Amount:              d.Amount,
		Currency:            d.Currency,
		Reference:           d.Reference,
		PreviousStatus:      previous,
		Status:              d.PaymentStatus,
		Counted:             ledger.CountsTowardTotal(d.PaymentStatus) && !ledger.CountsTowardTotal(previous),
		OccurredAt:          time.Now().UTC(),
	}
	if c != nil {
		evt.CampaignTitle = c.Title
		evt.OrganizerID = c.OrganizerID
	}
	return evt
}
