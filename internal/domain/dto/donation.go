package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	"github.com/boring-ventures/minka-sub001/internal/domain/ledger"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
)

// CreateDonationRequest is the body of POST /api/v1/donations
type CreateDonationRequest struct {
	CampaignID          uuid.UUID       `json:"campaign_id" validate:"required"`
	Amount              decimal.Decimal `json:"amount"`
	PaymentMethod       string          `json:"payment_method" validate:"required,oneof=credit_card qr bank_transfer"`
	IsAnonymous         bool            `json:"is_anonymous"`
	Message             *string         `json:"message,omitempty" validate:"omitempty,max=500"`
	NotificationEnabled *bool           `json:"notification_enabled,omitempty"`
}

// CreateDonationResponse is returned after a donation is recorded
type CreateDonationResponse struct {
	Donation *DonationResponse `json:"donation"`
	// ClientSecret is set for card payments handled by Stripe
	ClientSecret string `json:"client_secret,omitempty"`
}

// PaymentWebhookRequest is the body sent by the payment gateway
type PaymentWebhookRequest struct {
	DonationID    uuid.UUID `json:"donationId" validate:"required"`
	PaymentStatus string    `json:"paymentStatus" validate:"required"`
	TransactionID *string   `json:"transactionId,omitempty"`
}

// UpdateDonationStatusRequest is the body of PATCH /api/v1/donations/:id/status
type UpdateDonationStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending active rejected"`
}

// StatusChangeResult describes the effect of a donation status change
type StatusChangeResult struct {
	Donation  *DonationResponse `json:"donation"`
	Changed   bool              `json:"changed"`
	Campaign  ledger.Aggregate  `json:"campaign"`
	Duplicate bool              `json:"duplicate,omitempty"`
}

// DonationResponse is the private view of a donation, shown to the donor,
// the organizer and admins
type DonationResponse struct {
	ID                  uuid.UUID           `json:"id"`
	CampaignID          uuid.UUID           `json:"campaign_id"`
	DonorID             *uuid.UUID          `json:"donor_id,omitempty"`
	Amount              decimal.Decimal     `json:"amount"`
	Currency            string              `json:"currency"`
	PaymentMethod       model.PaymentMethod `json:"payment_method"`
	PaymentStatus       model.PaymentStatus `json:"payment_status"`
	IsAnonymous         bool                `json:"is_anonymous"`
	Message             *string             `json:"message,omitempty"`
	NotificationEnabled bool                `json:"notification_enabled"`
	Reference           string              `json:"reference"`
	TransactionID       *string             `json:"transaction_id,omitempty"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// NewDonationResponse converts a donation model to its private view
func NewDonationResponse(d *model.Donation) *DonationResponse {
	if d == nil {
		return nil
	}
	return &DonationResponse{
		ID:                  d.ID,
		CampaignID:          d.CampaignID,
		DonorID:             d.DonorID,
		Amount:              d.Amount,
		Currency:            d.Currency,
		PaymentMethod:       d.PaymentMethod,
		PaymentStatus:       d.PaymentStatus,
		IsAnonymous:         d.IsAnonymous,
		Message:             d.Message,
		NotificationEnabled: d.NotificationEnabled,
		Reference:           d.Reference,
		TransactionID:       d.TransactionID,
		CreatedAt:           d.CreatedAt,
		UpdatedAt:           d.UpdatedAt,
	}
}

// PublicDonation is a donation as listed on a campaign page.
// DonorID and DonorName are empty for anonymous donations.
type PublicDonation struct {
	ID          uuid.UUID       `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	IsAnonymous bool            `json:"is_anonymous"`
	DonorID     *uuid.UUID      `json:"donor_id,omitempty"`
	DonorName   string          `json:"donor_name,omitempty"`
	Message     *string         `json:"message,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewPublicDonation converts a donation to its public view. donorName is
// ignored for anonymous donations.
func NewPublicDonation(d *model.Donation, donorName string) PublicDonation {
	pd := PublicDonation{
		ID:          d.ID,
		Amount:      d.Amount,
		Currency:    d.Currency,
		IsAnonymous: d.IsAnonymous,
		Message:     d.Message,
		CreatedAt:   d.CreatedAt,
	}
	if !d.IsAnonymous {
		pd.DonorID = d.DonorID
		pd.DonorName = donorName
	}
	return pd
}

// PaginatedPublicDonations is the response of the campaign donations listing
type PaginatedPublicDonations struct {
	Data       []PublicDonation      `json:"data"`
	Pagination entity.PaginationMeta `json:"pagination"`
}

// PaginatedDonations is the response of the donor's own donations listing
type PaginatedDonations struct {
	Data       []*DonationResponse   `json:"data"`
	Pagination entity.PaginationMeta `json:"pagination"`
}
