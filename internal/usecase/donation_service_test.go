package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/domain/dto"
	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	"github.com/boring-ventures/minka-sub001/internal/domain/event"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
	"github.com/boring-ventures/minka-sub001/internal/usecase"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

type donationFixture struct {
	store     *memStore
	publisher *recordingPublisher
	service   *usecase.DonationService
	organizer model.Profile
	campaign  model.Campaign
}

func newDonationFixture(t *testing.T, cards provider.CardPaymentProvider) *donationFixture {
	t.Helper()
	store := newMemStore()
	organizer := store.addProfile(model.RoleUser)
	campaign := store.addCampaign(model.Campaign{
		OrganizerID: organizer.ID,
		Title:       "Agua para Tiquipaya",
		GoalAmount:  dec("1000"),
		Status:      model.CampaignStatusActive,
	})
	publisher := &recordingPublisher{}
	return &donationFixture{
		store:     store,
		publisher: publisher,
		service:   usecase.NewDonationService(store, cards, publisher, zap.NewNop(), "BOB"),
		organizer: organizer,
		campaign:  campaign,
	}
}

func (f *donationFixture) webhook(t *testing.T, donationID uuid.UUID, status string) (*dto.StatusChangeResult, error) {
	t.Helper()
	return f.service.ApplyPaymentWebhook(context.Background(), uuid.NewString(), dto.PaymentWebhookRequest{
		DonationID:    donationID,
		PaymentStatus: status,
	}, []byte(`{}`))
}

func TestDonationService_CreateDonation(t *testing.T) {
	ctx := context.Background()

	t.Run("records a pending donation without touching the aggregate", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		donor := f.store.addProfile(model.RoleUser)
		msg := "Fuerza!"

		resp, err := f.service.CreateDonation(ctx, &usecase.Donor{ID: donor.ID}, dto.CreateDonationRequest{
			CampaignID:    f.campaign.ID,
			Amount:        dec("250"),
			PaymentMethod: "qr",
			Message:       &msg,
		})

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusPending, resp.Donation.PaymentStatus)
		assert.Equal(t, "BOB", resp.Donation.Currency)
		assert.Len(t, resp.Donation.Reference, 10)
		assert.True(t, resp.Donation.NotificationEnabled)
		assert.Equal(t, donor.ID, *resp.Donation.DonorID)
		assert.Empty(t, resp.ClientSecret)

		c := f.store.campaign(f.campaign.ID)
		assert.True(t, c.CollectedAmount.IsZero())
		assert.Equal(t, 0, c.DonorCount)
		assert.Equal(t, []string{event.TypeDonationCreated}, f.publisher.types())
	})

	t.Run("anonymous donation without session has no donor", func(t *testing.T) {
		f := newDonationFixture(t, nil)

		resp, err := f.service.CreateDonation(ctx, nil, dto.CreateDonationRequest{
			CampaignID:    f.campaign.ID,
			Amount:        dec("50"),
			PaymentMethod: "bank_transfer",
			IsAnonymous:   true,
		})

		require.NoError(t, err)
		assert.Nil(t, resp.Donation.DonorID)
		assert.True(t, resp.Donation.IsAnonymous)
	})

	t.Run("validation failures write nothing", func(t *testing.T) {
		long := strings.Repeat("a", model.MaxDonationMessageLength+1)
		tests := []struct {
			name  string
			donor *usecase.Donor
			req   dto.CreateDonationRequest
			code  string
		}{
			{"zero amount", &usecase.Donor{ID: uuid.New()}, dto.CreateDonationRequest{Amount: decimal.Zero, PaymentMethod: "qr"}, apperrors.ErrInvalidArgument},
			{"negative amount", &usecase.Donor{ID: uuid.New()}, dto.CreateDonationRequest{Amount: dec("-1"), PaymentMethod: "qr"}, apperrors.ErrInvalidArgument},
			{"amount below one cent", &usecase.Donor{ID: uuid.New()}, dto.CreateDonationRequest{Amount: dec("0.004"), PaymentMethod: "qr"}, apperrors.ErrInvalidArgument},
			{"amount with sub-cent digits", &usecase.Donor{ID: uuid.New()}, dto.CreateDonationRequest{Amount: dec("10.005"), PaymentMethod: "qr"}, apperrors.ErrInvalidArgument},
			{"amount too large", &usecase.Donor{ID: uuid.New()}, dto.CreateDonationRequest{Amount: dec("10000000000000"), PaymentMethod: "qr"}, apperrors.ErrInvalidArgument},
			{"unknown method", &usecase.Donor{ID: uuid.New()}, dto.CreateDonationRequest{Amount: dec("10"), PaymentMethod: "cash"}, apperrors.ErrInvalidArgument},
			{"message too long", &usecase.Donor{ID: uuid.New()}, dto.CreateDonationRequest{Amount: dec("10"), PaymentMethod: "qr", Message: &long}, apperrors.ErrInvalidArgument},
			{"not anonymous without session", nil, dto.CreateDonationRequest{Amount: dec("10"), PaymentMethod: "qr"}, apperrors.ErrUnauthenticated},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				f := newDonationFixture(t, nil)
				tt.req.CampaignID = f.campaign.ID

				_, err := f.service.CreateDonation(ctx, tt.donor, tt.req)

				assertCode(t, err, tt.code)
				assert.Empty(t, f.store.donations)
				assert.Empty(t, f.publisher.events)
			})
		}
	})

	t.Run("unknown campaign", func(t *testing.T) {
		f := newDonationFixture(t, nil)

		_, err := f.service.CreateDonation(ctx, nil, dto.CreateDonationRequest{
			CampaignID: uuid.New(), Amount: dec("10"), PaymentMethod: "qr", IsAnonymous: true,
		})

		assertCode(t, err, apperrors.ErrNotFound)
		assert.Empty(t, f.store.donations)
	})

	t.Run("campaign not accepting donations", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		for name, c := range map[string]model.Campaign{
			"draft":     {Status: model.CampaignStatusDraft, GoalAmount: dec("100")},
			"cancelled": {Status: model.CampaignStatusCancelled, GoalAmount: dec("100")},
			"ended":     {Status: model.CampaignStatusActive, GoalAmount: dec("100"), EndDate: &past},
		} {
			t.Run(name, func(t *testing.T) {
				f := newDonationFixture(t, nil)
				campaign := f.store.addCampaign(c)

				_, err := f.service.CreateDonation(ctx, nil, dto.CreateDonationRequest{
					CampaignID: campaign.ID, Amount: dec("10"), PaymentMethod: "qr", IsAnonymous: true,
				})

				assertCode(t, err, apperrors.ErrConflict)
				assert.Empty(t, f.store.donations)
			})
		}
	})

	t.Run("card payment returns client secret", func(t *testing.T) {
		cards := new(MockCardProvider)
		f := newDonationFixture(t, cards)
		donor := f.store.addProfile(model.RoleUser)

		cards.On("CreatePayment", mock.Anything, mock.MatchedBy(func(req *provider.CreatePaymentRequest) bool {
			return req.AmountCents == 12550 && req.Currency == "BOB" && req.ReceiptEmail == donor.Email
		})).Return(&provider.CreatePaymentResponse{PaymentID: "pi_123", ClientSecret: "pi_123_secret"}, nil)

		resp, err := f.service.CreateDonation(ctx, &usecase.Donor{ID: donor.ID, Email: donor.Email}, dto.CreateDonationRequest{
			CampaignID: f.campaign.ID, Amount: dec("125.50"), PaymentMethod: "credit_card",
		})

		require.NoError(t, err)
		assert.Equal(t, "pi_123_secret", resp.ClientSecret)
		stored := f.store.donation(resp.Donation.ID)
		require.NotNil(t, stored.ProviderPaymentID)
		assert.Equal(t, "pi_123", *stored.ProviderPaymentID)
		cards.AssertExpectations(t)
	})

	t.Run("card provider failure marks donation failed", func(t *testing.T) {
		cards := new(MockCardProvider)
		f := newDonationFixture(t, cards)
		cards.On("CreatePayment", mock.Anything, mock.Anything).Return(nil, errors.New("card declined"))

		_, err := f.service.CreateDonation(ctx, nil, dto.CreateDonationRequest{
			CampaignID: f.campaign.ID, Amount: dec("10"), PaymentMethod: "credit_card", IsAnonymous: true,
		})

		assertCode(t, err, apperrors.ErrInternal)
		require.Len(t, f.store.donations, 1)
		for _, d := range f.store.donations {
			assert.Equal(t, model.PaymentStatusFailed, d.PaymentStatus)
		}
		assert.True(t, f.store.campaign(f.campaign.ID).CollectedAmount.IsZero())
	})
}

func TestDonationService_ApplyPaymentWebhook(t *testing.T) {
	ctx := context.Background()

	t.Run("completion counts the donation once", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		resp, err := f.service.CreateDonation(ctx, nil, dto.CreateDonationRequest{
			CampaignID: f.campaign.ID, Amount: dec("250"), PaymentMethod: "qr", IsAnonymous: true,
		})
		require.NoError(t, err)

		result, err := f.webhook(t, resp.Donation.ID, "completed")
		require.NoError(t, err)
		assert.True(t, result.Changed)

		c := f.store.campaign(f.campaign.ID)
		assert.True(t, dec("250").Equal(c.CollectedAmount))
		assert.Equal(t, 1, c.DonorCount)
		assert.True(t, dec("25").Equal(c.PercentageFunded))

		// a second completion notification is a no-op
		result, err = f.webhook(t, resp.Donation.ID, "completed")
		require.NoError(t, err)
		assert.False(t, result.Changed)

		c = f.store.campaign(f.campaign.ID)
		assert.True(t, dec("250").Equal(c.CollectedAmount))
		assert.Equal(t, 1, c.DonorCount)

		assert.Equal(t, []string{event.TypeDonationCreated, event.TypeDonationStatusChanged}, f.publisher.types())
		assert.True(t, f.publisher.events[1].Counted)
	})

	t.Run("refund removes the donation from the total", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		c := f.campaign
		c.CollectedAmount = dec("250")
		c.DonorCount = 1
		c.PercentageFunded = dec("25")
		f.store.addCampaign(c)
		d := f.store.addDonation(model.Donation{CampaignID: c.ID, Amount: dec("250"), PaymentStatus: model.PaymentStatusCompleted})

		_, err := f.webhook(t, d.ID, "refunded")
		require.NoError(t, err)

		got := f.store.campaign(c.ID)
		assert.True(t, got.CollectedAmount.IsZero())
		assert.Equal(t, 0, got.DonorCount)
		assert.True(t, got.PercentageFunded.IsZero())
		assert.Equal(t, model.PaymentStatusRefunded, f.store.donation(d.ID).PaymentStatus)
	})

	t.Run("stores transaction id", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		d := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, Amount: dec("10"), PaymentStatus: model.PaymentStatusPending})
		txID := "TX-991"

		_, err := f.service.ApplyPaymentWebhook(ctx, "evt-1", dto.PaymentWebhookRequest{
			DonationID: d.ID, PaymentStatus: "completed", TransactionID: &txID,
		}, []byte(`{}`))
		require.NoError(t, err)

		stored := f.store.donation(d.ID)
		require.NotNil(t, stored.TransactionID)
		assert.Equal(t, txID, *stored.TransactionID)

		evt, ok := f.store.event(model.WebhookProviderGateway, "evt-1")
		require.True(t, ok)
		assert.Equal(t, model.WebhookStatusCompleted, evt.Status)
	})

	t.Run("replayed event is not applied again", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		d := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, Amount: dec("40"), PaymentStatus: model.PaymentStatusPending})
		req := dto.PaymentWebhookRequest{DonationID: d.ID, PaymentStatus: "completed"}

		_, err := f.service.ApplyPaymentWebhook(ctx, "evt-dup", req, nil)
		require.NoError(t, err)
		// refund in between; the replay must not re-count
		_, err = f.webhook(t, d.ID, "refunded")
		require.NoError(t, err)

		result, err := f.service.ApplyPaymentWebhook(ctx, "evt-dup", req, nil)
		require.NoError(t, err)
		assert.True(t, result.Duplicate)
		assert.Equal(t, model.PaymentStatusRefunded, f.store.donation(d.ID).PaymentStatus)
		assert.True(t, f.store.campaign(f.campaign.ID).CollectedAmount.IsZero())
	})

	t.Run("unknown status is rejected before mutation", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		d := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, Amount: dec("10"), PaymentStatus: model.PaymentStatusPending})

		for _, status := range []string{"approved", "active", "rejected", ""} {
			_, err := f.webhook(t, d.ID, status)
			assertCode(t, err, apperrors.ErrInvalidArgument)
		}
		assert.Equal(t, model.PaymentStatusPending, f.store.donation(d.ID).PaymentStatus)
		assert.Empty(t, f.store.events)
	})

	t.Run("unknown donation", func(t *testing.T) {
		f := newDonationFixture(t, nil)

		_, err := f.service.ApplyPaymentWebhook(ctx, "evt-missing", dto.PaymentWebhookRequest{
			DonationID: uuid.New(), PaymentStatus: "completed",
		}, nil)

		assertCode(t, err, apperrors.ErrNotFound)
		evt, ok := f.store.event(model.WebhookProviderGateway, "evt-missing")
		require.True(t, ok)
		assert.Equal(t, model.WebhookStatusFailed, evt.Status)
	})

	t.Run("failed campaign write rolls back the donation", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		d := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, Amount: dec("10"), PaymentStatus: model.PaymentStatusPending})
		f.store.failCampaignUpdate = errors.New("connection reset")

		_, err := f.webhook(t, d.ID, "completed")

		assertCode(t, err, apperrors.ErrInternal)
		assert.Equal(t, model.PaymentStatusPending, f.store.donation(d.ID).PaymentStatus)
		assert.True(t, f.store.campaign(f.campaign.ID).CollectedAmount.IsZero())
	})

	t.Run("failed delivery is applied when retried", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		d := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, Amount: dec("10"), PaymentStatus: model.PaymentStatusPending})
		req := dto.PaymentWebhookRequest{DonationID: d.ID, PaymentStatus: "completed"}

		f.store.failCampaignUpdate = errors.New("connection reset")
		_, err := f.service.ApplyPaymentWebhook(ctx, "evt-retry", req, nil)
		assertCode(t, err, apperrors.ErrInternal)

		evt, ok := f.store.event(model.WebhookProviderGateway, "evt-retry")
		require.True(t, ok)
		assert.Equal(t, model.WebhookStatusFailed, evt.Status)
		require.NotNil(t, evt.LastError)
		assert.Empty(t, f.publisher.types())

		f.store.failCampaignUpdate = nil
		result, err := f.service.ApplyPaymentWebhook(ctx, "evt-retry", req, nil)
		require.NoError(t, err)
		assert.False(t, result.Duplicate)
		assert.True(t, result.Changed)
		assert.Equal(t, model.PaymentStatusCompleted, f.store.donation(d.ID).PaymentStatus)
		assert.True(t, dec("10").Equal(f.store.campaign(f.campaign.ID).CollectedAmount))
		assert.Equal(t, 1, f.store.campaign(f.campaign.ID).DonorCount)

		evt, _ = f.store.event(model.WebhookProviderGateway, "evt-retry")
		assert.Equal(t, model.WebhookStatusCompleted, evt.Status)
		assert.Nil(t, evt.LastError)

		// once applied, the same event is a replay
		result, err = f.service.ApplyPaymentWebhook(ctx, "evt-retry", req, nil)
		require.NoError(t, err)
		assert.True(t, result.Duplicate)
		assert.Equal(t, 1, f.store.campaign(f.campaign.ID).DonorCount)
		assert.Equal(t, []string{event.TypeDonationStatusChanged}, f.publisher.types())
	})
}

func TestDonationService_UpdateDonationStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("organizer approves then rejects", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		d := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, Amount: dec("100"), PaymentStatus: model.PaymentStatusPending})

		result, err := f.service.UpdateDonationStatus(ctx, f.organizer.ID, d.ID, "active")
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.True(t, dec("100").Equal(result.Campaign.CollectedAmount))
		assert.Equal(t, 1, result.Campaign.DonorCount)

		result, err = f.service.UpdateDonationStatus(ctx, f.organizer.ID, d.ID, "rejected")
		require.NoError(t, err)
		assert.True(t, result.Campaign.CollectedAmount.IsZero())
		assert.Equal(t, 0, result.Campaign.DonorCount)
	})

	t.Run("rejecting moves amount and donor count together", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		admin := f.store.addProfile(model.RoleAdmin)
		c := f.campaign
		c.CollectedAmount = dec("400")
		c.DonorCount = 4
		c.PercentageFunded = dec("40")
		f.store.addCampaign(c)
		d := f.store.addDonation(model.Donation{CampaignID: c.ID, Amount: dec("100"), PaymentStatus: model.PaymentStatusActive})

		_, err := f.service.UpdateDonationStatus(ctx, admin.ID, d.ID, "rejected")
		require.NoError(t, err)

		got := f.store.campaign(c.ID)
		assert.True(t, dec("300").Equal(got.CollectedAmount))
		assert.Equal(t, 3, got.DonorCount)
		assert.True(t, dec("30").Equal(got.PercentageFunded))
	})

	t.Run("strangers cannot change status", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		stranger := f.store.addProfile(model.RoleUser)
		d := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, Amount: dec("100"), PaymentStatus: model.PaymentStatusPending})

		_, err := f.service.UpdateDonationStatus(ctx, stranger.ID, d.ID, "active")

		assertCode(t, err, apperrors.ErrUnauthorized)
		assert.Equal(t, model.PaymentStatusPending, f.store.donation(d.ID).PaymentStatus)
		assert.True(t, f.store.campaign(f.campaign.ID).CollectedAmount.IsZero())
	})

	t.Run("only admin statuses are accepted", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		d := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, Amount: dec("100"), PaymentStatus: model.PaymentStatusPending})

		_, err := f.service.UpdateDonationStatus(ctx, f.organizer.ID, d.ID, "completed")
		assertCode(t, err, apperrors.ErrInvalidArgument)
	})

	t.Run("unknown donation", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		_, err := f.service.UpdateDonationStatus(ctx, f.organizer.ID, uuid.New(), "active")
		assertCode(t, err, apperrors.ErrNotFound)
	})
}

func TestDonationService_HandleCardPaymentEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves donation from metadata", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		d := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, Amount: dec("75"), PaymentStatus: model.PaymentStatusPending})

		result, err := f.service.HandleCardPaymentEvent(ctx, &provider.WebhookEvent{
			ID: "evt_1", Type: "payment_intent.succeeded", Outcome: provider.OutcomeSucceeded,
			PaymentID: "pi_1", DonationID: d.ID.String(), Raw: []byte(`{}`),
		})

		require.NoError(t, err)
		assert.True(t, result.Changed)
		stored := f.store.donation(d.ID)
		assert.Equal(t, model.PaymentStatusCompleted, stored.PaymentStatus)
		require.NotNil(t, stored.ProviderPaymentID)
		assert.Equal(t, "pi_1", *stored.ProviderPaymentID)
		assert.True(t, dec("75").Equal(f.store.campaign(f.campaign.ID).CollectedAmount))
	})

	t.Run("resolves donation from payment id", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		pi := "pi_2"
		d := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, Amount: dec("75"), PaymentStatus: model.PaymentStatusCompleted, ProviderPaymentID: &pi})
		c := f.campaign
		c.CollectedAmount = dec("75")
		c.DonorCount = 1
		f.store.addCampaign(c)

		_, err := f.service.HandleCardPaymentEvent(ctx, &provider.WebhookEvent{
			ID: "evt_2", Type: "charge.refunded", Outcome: provider.OutcomeRefunded, PaymentID: pi,
		})

		require.NoError(t, err)
		assert.Equal(t, model.PaymentStatusRefunded, f.store.donation(d.ID).PaymentStatus)
		assert.Equal(t, 0, f.store.campaign(c.ID).DonorCount)
	})

	t.Run("ignores unrelated outcomes", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		result, err := f.service.HandleCardPaymentEvent(ctx, &provider.WebhookEvent{ID: "evt_3", Type: "customer.created"})
		assert.NoError(t, err)
		assert.Nil(t, result)
		assert.Empty(t, f.store.events)
	})

	t.Run("unknown payment", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		_, err := f.service.HandleCardPaymentEvent(ctx, &provider.WebhookEvent{
			ID: "evt_4", Type: "payment_intent.succeeded", Outcome: provider.OutcomeSucceeded, PaymentID: "pi_none",
		})
		assertCode(t, err, apperrors.ErrNotFound)
	})

	t.Run("unresolved payment is applied once the donation is known", func(t *testing.T) {
		f := newDonationFixture(t, nil)
		pe := &provider.WebhookEvent{
			ID: "evt_5", Type: "payment_intent.succeeded", Outcome: provider.OutcomeSucceeded, PaymentID: "pi_late",
		}

		_, err := f.service.HandleCardPaymentEvent(ctx, pe)
		assertCode(t, err, apperrors.ErrNotFound)
		evt, ok := f.store.event(model.WebhookProviderStripe, "evt_5")
		require.True(t, ok)
		assert.Equal(t, model.WebhookStatusFailed, evt.Status)

		pi := "pi_late"
		d := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, Amount: dec("30"), PaymentStatus: model.PaymentStatusPending, ProviderPaymentID: &pi})

		result, err := f.service.HandleCardPaymentEvent(ctx, pe)
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, model.PaymentStatusCompleted, f.store.donation(d.ID).PaymentStatus)
		assert.True(t, dec("30").Equal(f.store.campaign(f.campaign.ID).CollectedAmount))
	})
}

func TestDonationService_Queries(t *testing.T) {
	ctx := context.Background()
	f := newDonationFixture(t, nil)
	donor := f.store.addProfile(model.RoleUser)
	donor.Name = "Ana"
	f.store.profiles[donor.ID] = donor
	admin := f.store.addProfile(model.RoleAdmin)
	stranger := f.store.addProfile(model.RoleUser)

	named := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, DonorID: &donor.ID, Amount: dec("10"), PaymentStatus: model.PaymentStatusCompleted})
	anon := f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, DonorID: &donor.ID, IsAnonymous: true, Amount: dec("20"), PaymentStatus: model.PaymentStatusActive})
	f.store.addDonation(model.Donation{CampaignID: f.campaign.ID, DonorID: &donor.ID, Amount: dec("30"), PaymentStatus: model.PaymentStatusPending})

	t.Run("public listing hides anonymous donors and uncounted donations", func(t *testing.T) {
		list, err := f.service.ListCampaignDonations(ctx, f.campaign.ID, entity.PaginationParams{})
		require.NoError(t, err)
		assert.Equal(t, int64(2), list.Pagination.Total)

		byID := map[uuid.UUID]dto.PublicDonation{}
		for _, d := range list.Data {
			byID[d.ID] = d
		}
		assert.Equal(t, "Ana", byID[named.ID].DonorName)
		assert.Equal(t, donor.ID, *byID[named.ID].DonorID)
		assert.Empty(t, byID[anon.ID].DonorName)
		assert.Nil(t, byID[anon.ID].DonorID)
	})

	t.Run("donor sees all own donations", func(t *testing.T) {
		list, err := f.service.ListMyDonations(ctx, donor.ID, entity.PaginationParams{})
		require.NoError(t, err)
		assert.Len(t, list.Data, 3)
	})

	t.Run("get donation access", func(t *testing.T) {
		_, err := f.service.GetDonation(ctx, donor.ID, named.ID)
		assert.NoError(t, err)
		_, err = f.service.GetDonation(ctx, f.organizer.ID, named.ID)
		assert.NoError(t, err)
		_, err = f.service.GetDonation(ctx, admin.ID, named.ID)
		assert.NoError(t, err)
		_, err = f.service.GetDonation(ctx, stranger.ID, named.ID)
		assertCode(t, err, apperrors.ErrUnauthorized)
		_, err = f.service.GetDonation(ctx, donor.ID, uuid.New())
		assertCode(t, err, apperrors.ErrNotFound)
	})

	t.Run("listing for unknown campaign", func(t *testing.T) {
		_, err := f.service.ListCampaignDonations(ctx, uuid.New(), entity.PaginationParams{})
		assertCode(t, err, apperrors.ErrNotFound)
	})
}
