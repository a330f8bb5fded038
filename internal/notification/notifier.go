package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/domain/event"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
	domainRepo "github.com/boring-ventures/minka-sub001/internal/domain/repository"
	"github.com/boring-ventures/minka-sub001/pkg/messaging"
)

const anonymousDonorName = "Una persona anónima"

// Notifier turns donation events into e-mails for donors and organizers
type Notifier struct {
	profiles  domainRepo.ProfileRepository
	mailer    provider.Mailer
	amounts   *AmountFormatter
	clientURL string
	logger    *zap.Logger
}

// NewNotifier creates a new Notifier. clientURL is the public web app base
// used for campaign links and may be empty.
func NewNotifier(profiles domainRepo.ProfileRepository, mailer provider.Mailer, amounts *AmountFormatter, clientURL string, logger *zap.Logger) *Notifier {
	return &Notifier{
		profiles:  profiles,
		mailer:    mailer,
		amounts:   amounts,
		clientURL: strings.TrimRight(clientURL, "/"),
		logger:    logger,
	}
}

// Run consumes the donations channel until ctx is cancelled. Messages that
// fail are logged and skipped.
func (n *Notifier) Run(ctx context.Context, client messaging.RedisClient, channel string) error {
	messages, err := client.Subscribe(ctx, channel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	n.logger.Info("Notifier subscribed", zap.String("channel", channel))

	for msg := range messages {
		if err := n.HandleMessage(ctx, msg.Payload); err != nil {
			n.logger.Error("Failed to handle donation event",
				zap.String("channel", msg.Channel),
				zap.Error(err))
		}
	}
	return ctx.Err()
}

// HandleMessage decodes a published donation event and handles it
func (n *Notifier) HandleMessage(ctx context.Context, payload []byte) error {
	var evt event.DonationEvent
	if err := json.Unmarshal(payload, &evt); err != nil {
		return fmt.Errorf("failed to decode donation event: %w", err)
	}
	return n.Handle(ctx, evt)
}

// Handle sends the mails for a donation that has just entered its campaign
// total. Other events are ignored.
func (n *Notifier) Handle(ctx context.Context, evt event.DonationEvent) error {
	if evt.Type != event.TypeDonationStatusChanged || !evt.Counted {
		return nil
	}

	var donor *model.Profile
	if evt.DonorID != nil {
		p, err := n.profiles.GetByID(ctx, *evt.DonorID)
		if err != nil {
			return fmt.Errorf("failed to load donor profile: %w", err)
		}
		donor = p
	}

	amount := n.amounts.Format(evt.Amount, evt.Currency)
	campaignURL := n.campaignURL(evt.CampaignID)

	var errs []error
	if donor != nil && !evt.IsAnonymous && evt.NotificationEnabled && donor.Email != "" {
		if err := n.sendReceipt(ctx, evt, donor, amount, campaignURL); err != nil {
			errs = append(errs, err)
		}
	}

	donorName := anonymousDonorName
	if donor != nil && !evt.IsAnonymous && donor.Name != "" {
		donorName = donor.Name
	}
	if err := n.notifyOrganizer(ctx, evt, donorName, amount, campaignURL); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func (n *Notifier) sendReceipt(ctx context.Context, evt event.DonationEvent, donor *model.Profile, amount, campaignURL string) error {
	data := receiptData{
		DonorName:     displayName(donor),
		CampaignTitle: evt.CampaignTitle,
		Amount:        amount,
		Reference:     evt.Reference,
		CampaignURL:   campaignURL,
	}
	html, err := renderHTML(receiptHTML, data)
	if err != nil {
		return err
	}

	if err := n.mailer.Send(ctx, &provider.Email{
		To:      donor.Email,
		ToName:  donor.Name,
		Subject: "Gracias por tu donación a " + evt.CampaignTitle,
		HTML:    html,
		Text:    receiptText(data),
	}); err != nil {
		return fmt.Errorf("failed to send donation receipt: %w", err)
	}

	n.logger.Info("Donation receipt sent",
		zap.String("donation_id", evt.DonationID.String()),
		zap.String("donor_id", donor.ID.String()))
	return nil
}

func (n *Notifier) notifyOrganizer(ctx context.Context, evt event.DonationEvent, donorName, amount, campaignURL string) error {
	organizer, err := n.profiles.GetByID(ctx, evt.OrganizerID)
	if err != nil {
		return fmt.Errorf("failed to load organizer profile: %w", err)
	}
	if organizer == nil || organizer.Email == "" {
		n.logger.Warn("Organizer has no e-mail",
			zap.String("organizer_id", evt.OrganizerID.String()),
			zap.String("campaign_id", evt.CampaignID.String()))
		return nil
	}

	data := organizerData{
		OrganizerName: displayName(organizer),
		DonorName:     donorName,
		CampaignTitle: evt.CampaignTitle,
		Amount:        amount,
		CampaignURL:   campaignURL,
	}
	html, err := renderHTML(organizerHTML, data)
	if err != nil {
		return err
	}

	if err := n.mailer.Send(ctx, &provider.Email{
		To:      organizer.Email,
		ToName:  organizer.Name,
		Subject: "Nueva donación para " + evt.CampaignTitle,
		HTML:    html,
		Text:    organizerText(data),
	}); err != nil {
		return fmt.Errorf("failed to send organizer notification: %w", err)
	}
	return nil
}

func (n *Notifier) campaignURL(id uuid.UUID) string {
	if n.clientURL == "" {
		return ""
	}
	return n.clientURL + "/campaigns/" + id.String()
}

func displayName(p *model.Profile) string {
	if p.Name != "" {
		return p.Name
	}
	if i := strings.Index(p.Email, "@"); i > 0 {
		return p.Email[:i]
	}
	return p.Email
}
