package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
)

const (
	providerName        = "stripe"
	donationMetadataKey = "donation_id"
)

// StripeProvider implements provider.CardPaymentProvider with PaymentIntents
type StripeProvider struct {
	api           *client.API
	webhookSecret string
	logger        *zap.Logger
}

// NewStripeProvider creates a new Stripe provider
func NewStripeProvider(secretKey, webhookSecret string, logger *zap.Logger) *StripeProvider {
	return NewStripeProviderWithBackends(secretKey, webhookSecret, nil, logger)
}

// NewStripeProviderWithBackends creates a Stripe provider talking to the
// given backends. A nil backends uses the Stripe API.
func NewStripeProviderWithBackends(secretKey, webhookSecret string, backends *stripe.Backends, logger *zap.Logger) *StripeProvider {
	api := &client.API{}
	api.Init(secretKey, backends)
	return &StripeProvider{
		api:           api,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// GetProviderName returns the provider name
func (s *StripeProvider) GetProviderName() string {
	return providerName
}

// CreatePayment creates a PaymentIntent tagged with the donation id
func (s *StripeProvider) CreatePayment(ctx context.Context, req *provider.CreatePaymentRequest) (*provider.CreatePaymentResponse, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(req.AmountCents),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	params.AddMetadata(donationMetadataKey, req.DonationID)
	params.Context = ctx

	pi, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	s.logger.Info("Created payment intent",
		zap.String("payment_intent_id", pi.ID),
		zap.String("donation_id", req.DonationID),
		zap.Int64("amount", req.AmountCents))

	return &provider.CreatePaymentResponse{
		PaymentID:    pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
	}, nil
}

// ParseWebhook verifies the Stripe-Signature header and maps the event onto
// a payment outcome. Event types unrelated to donations return nil.
func (s *StripeProvider) ParseWebhook(payload []byte, signature string) (*provider.WebhookEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, s.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %w", err)
	}

	result := &provider.WebhookEvent{
		ID:   event.ID,
		Type: string(event.Type),
		Raw:  payload,
	}

	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded, stripe.EventTypePaymentIntentPaymentFailed:
		var pi stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &pi); err != nil {
			return nil, fmt.Errorf("failed to parse payment intent: %w", err)
		}
		result.PaymentID = pi.ID
		result.DonationID = pi.Metadata[donationMetadataKey]
		result.Outcome = provider.OutcomeSucceeded
		if event.Type == stripe.EventTypePaymentIntentPaymentFailed {
			result.Outcome = provider.OutcomeFailed
		}

	case stripe.EventTypeChargeRefunded:
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return nil, fmt.Errorf("failed to parse charge: %w", err)
		}
		if charge.PaymentIntent != nil {
			result.PaymentID = charge.PaymentIntent.ID
		}
		result.DonationID = charge.Metadata[donationMetadataKey]
		result.Outcome = provider.OutcomeRefunded

	default:
		s.logger.Debug("Unhandled Stripe event", zap.String("type", string(event.Type)))
		return nil, nil
	}

	return result, nil
}
