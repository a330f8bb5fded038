package provider

import (
	"context"
	"io"
	"time"
)

// CardPaymentProvider creates card payments and interprets their notifications
type CardPaymentProvider interface {
	// CreatePayment starts a card payment and returns the data the client
	// needs to confirm it
	CreatePayment(ctx context.Context, req *CreatePaymentRequest) (*CreatePaymentResponse, error)

	// ParseWebhook verifies the signature and extracts the payment outcome.
	// Events unrelated to donations return a nil event.
	ParseWebhook(payload []byte, signature string) (*WebhookEvent, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// CreatePaymentRequest represents a provider-agnostic payment initialization request
type CreatePaymentRequest struct {
	DonationID   string
	AmountCents  int64 // Amount in smallest currency unit
	Currency     string
	Description  string
	ReceiptEmail string
}

// CreatePaymentResponse represents the response from payment initialization
type CreatePaymentResponse struct {
	PaymentID    string
	ClientSecret string
	Status       string
}

// PaymentOutcome is a provider event mapped onto the donation life cycle
type PaymentOutcome string

const (
	OutcomeSucceeded PaymentOutcome = "succeeded"
	OutcomeFailed    PaymentOutcome = "failed"
	OutcomeRefunded  PaymentOutcome = "refunded"
)

// WebhookEvent represents a verified provider notification
type WebhookEvent struct {
	ID         string
	Type       string
	Outcome    PaymentOutcome
	PaymentID  string
	DonationID string
	Raw        []byte
}

// ObjectStorage stores campaign media files
type ObjectStorage interface {
	Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// Email is an outgoing notification message
type Email struct {
	To      string
	ToName  string
	Subject string
	HTML    string
	Text    string
}

// Mailer delivers e-mail
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}
