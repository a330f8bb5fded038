package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/boring-ventures/minka-sub001/internal/domain/dto"
	domainErrors "github.com/boring-ventures/minka-sub001/internal/domain/errors"
	"github.com/boring-ventures/minka-sub001/internal/domain/ledger"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
	domainRepo "github.com/boring-ventures/minka-sub001/internal/domain/repository"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

// gatewayStatuses are the statuses the payment gateway may report
var gatewayStatuses = map[model.PaymentStatus]bool{
	model.PaymentStatusPending:   true,
	model.PaymentStatusCompleted: true,
	model.PaymentStatusFailed:    true,
	model.PaymentStatusRefunded:  true,
}

// outcomeStatuses maps card provider outcomes onto donation statuses
var outcomeStatuses = map[provider.PaymentOutcome]model.PaymentStatus{
	provider.OutcomeSucceeded: model.PaymentStatusCompleted,
	provider.OutcomeFailed:    model.PaymentStatusFailed,
	provider.OutcomeRefunded:  model.PaymentStatusRefunded,
}

// ApplyPaymentWebhook applies a verified payment gateway notification.
// eventID identifies the delivery. A repeated eventID is acknowledged
// without being applied again once it has been applied; a delivery that
// failed is applied on retry.
func (s *DonationService) ApplyPaymentWebhook(ctx context.Context, eventID string, req dto.PaymentWebhookRequest, payload []byte) (*dto.StatusChangeResult, error) {
	status := model.PaymentStatus(req.PaymentStatus)
	if !gatewayStatuses[status] {
		return nil, apperrors.InvalidArgument(fmt.Sprintf("unsupported payment status %q", req.PaymentStatus), domainErrors.ErrInvalidPaymentStatus)
	}
	if req.DonationID == uuid.Nil {
		return nil, apperrors.InvalidArgument("donationId is required", nil)
	}

	donationID := req.DonationID
	evt := &model.PaymentWebhookEvent{
		Provider:   model.WebhookProviderGateway,
		EventID:    eventID,
		EventType:  "payment." + string(status),
		DonationID: &donationID,
		Status:     model.WebhookStatusPending,
		Payload:    datatypes.JSON(payload),
	}

	s.logger.Info("Payment webhook received",
		zap.String("event_id", eventID),
		zap.String("donation_id", donationID.String()),
		zap.String("payment_status", req.PaymentStatus))

	return s.processWebhookEvent(ctx, evt, func(tx domainRepo.Store) (*statusChange, error) {
		return s.changeStatusTx(ctx, tx, donationID, status, statusChangeOptions{
			mutate: func(d *model.Donation) {
				if req.TransactionID != nil && *req.TransactionID != "" {
					d.TransactionID = req.TransactionID
				}
			},
		})
	})
}

// HandleCardPaymentEvent applies a verified card provider notification
func (s *DonationService) HandleCardPaymentEvent(ctx context.Context, pe *provider.WebhookEvent) (*dto.StatusChangeResult, error) {
	status, ok := outcomeStatuses[pe.Outcome]
	if !ok {
		s.logger.Debug("Ignoring card payment event",
			zap.String("event_id", pe.ID),
			zap.String("event_type", pe.Type))
		return nil, nil
	}

	donation, err := s.resolveCardDonation(ctx, pe)
	if err != nil {
		return nil, err
	}

	evt := &model.PaymentWebhookEvent{
		Provider:  model.WebhookProviderStripe,
		EventID:   pe.ID,
		EventType: pe.Type,
		Status:    model.WebhookStatusPending,
		Payload:   datatypes.JSON(pe.Raw),
	}
	if donation != nil {
		evt.DonationID = &donation.ID
	}

	return s.processWebhookEvent(ctx, evt, func(tx domainRepo.Store) (*statusChange, error) {
		if donation == nil {
			return nil, apperrors.NotFound("donation not found for payment "+pe.PaymentID, domainErrors.ErrDonationNotFound)
		}
		paymentID := pe.PaymentID
		return s.changeStatusTx(ctx, tx, donation.ID, status, statusChangeOptions{
			mutate: func(d *model.Donation) {
				if d.ProviderPaymentID == nil && paymentID != "" {
					d.ProviderPaymentID = &paymentID
				}
			},
		})
	})
}

// resolveCardDonation finds the donation a provider event refers to, by the
// donation id in its metadata first and the provider payment id second.
func (s *DonationService) resolveCardDonation(ctx context.Context, pe *provider.WebhookEvent) (*model.Donation, error) {
	if id, err := uuid.Parse(pe.DonationID); err == nil {
		donation, err := s.store.Donations().GetByID(ctx, id)
		if err != nil {
			return nil, apperrors.Internal("failed to load donation", err)
		}
		if donation != nil {
			return donation, nil
		}
	}
	if pe.PaymentID == "" {
		return nil, nil
	}
	donation, err := s.store.Donations().GetByProviderPaymentID(ctx, pe.PaymentID)
	if err != nil {
		return nil, apperrors.Internal("failed to load donation", err)
	}
	return donation, nil
}

// processWebhookEvent records evt and runs apply in the same transaction,
// so an event is marked completed only together with its status change.
// Events already completed are replays. A failed attempt rolls back and is
// recorded as failed, and the next delivery of the same event applies it.
func (s *DonationService) processWebhookEvent(ctx context.Context, evt *model.PaymentWebhookEvent, apply func(tx domainRepo.Store) (*statusChange, error)) (*dto.StatusChangeResult, error) {
	fields := []zap.Field{
		zap.String("provider", string(evt.Provider)),
		zap.String("event_id", evt.EventID),
	}

	var (
		change    *statusChange
		duplicate bool
	)
	err := s.store.WithTx(ctx, func(tx domainRepo.Store) error {
		events := tx.WebhookEvents()

		created, err := events.Create(ctx, evt)
		if err != nil {
			return apperrors.Internal("failed to record webhook event", err)
		}
		if !created {
			stored, err := events.GetForUpdate(ctx, evt.Provider, evt.EventID)
			if err != nil {
				return apperrors.Internal("failed to load webhook event", err)
			}
			if stored == nil {
				return apperrors.Internal("webhook event disappeared", nil)
			}
			if stored.Status == model.WebhookStatusCompleted {
				duplicate = true
				return nil
			}
			s.logger.Info("Retrying webhook event",
				append(fields, zap.String("previous_status", string(stored.Status)))...)
			evt.ID = stored.ID
		}

		change, err = apply(tx)
		if err != nil {
			return err
		}
		return events.MarkCompleted(ctx, evt.ID)
	})
	if err != nil {
		if recordErr := s.store.WebhookEvents().RecordFailure(ctx, evt, err.Error()); recordErr != nil {
			s.logger.Error("Failed to record webhook event failure", append(fields, zap.Error(recordErr))...)
		}
		apperrors.LogError(s.logger, err, "Failed to process webhook event", fields...)
		return nil, toAppError(err, "failed to process webhook event")
	}

	if duplicate {
		s.logger.Info("Duplicate webhook event ignored", fields...)
		return s.duplicateResult(ctx, evt)
	}

	s.statusChanged(ctx, change)
	return change.toResult(), nil
}

func (s *DonationService) duplicateResult(ctx context.Context, evt *model.PaymentWebhookEvent) (*dto.StatusChangeResult, error) {
	result := &dto.StatusChangeResult{Duplicate: true}
	if evt.DonationID == nil {
		return result, nil
	}

	donation, err := s.store.Donations().GetByID(ctx, *evt.DonationID)
	if err != nil {
		return nil, apperrors.Internal("failed to load donation", err)
	}
	if donation == nil {
		return result, nil
	}
	result.Donation = dto.NewDonationResponse(donation)

	campaign, err := s.store.Campaigns().GetByID(ctx, donation.CampaignID)
	if err != nil {
		return nil, apperrors.Internal("failed to load campaign", err)
	}
	if campaign != nil {
		result.Campaign = ledger.Snapshot(campaign)
	}
	return result, nil
}
