package errors

import "errors"

var (
	// ErrCampaignNotFound indicates that the campaign does not exist
	ErrCampaignNotFound = errors.New("campaign not found")

	// ErrDonationNotFound indicates that the donation does not exist
	ErrDonationNotFound = errors.New("donation not found")

	// ErrProfileNotFound indicates that the acting user has no profile row
	ErrProfileNotFound = errors.New("profile not found")

	// ErrCampaignNotAcceptingDonations is returned for campaigns that are not active or have ended
	ErrCampaignNotAcceptingDonations = errors.New("campaign is not accepting donations")

	// ErrInvalidPaymentStatus indicates a status outside the accepted set for the caller
	ErrInvalidPaymentStatus = errors.New("invalid payment status")

	// ErrNotCampaignOrganizer is returned when the caller neither organizes the campaign nor is an admin
	ErrNotCampaignOrganizer = errors.New("not the campaign organizer")

	// ErrDuplicateWebhookEvent indicates that the webhook event was already recorded
	ErrDuplicateWebhookEvent = errors.New("webhook event already processed")
)
