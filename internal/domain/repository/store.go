package repository

import "context"

// Store groups the repositories that take part in one unit of work.
type Store interface {
	Profiles() ProfileRepository
	Campaigns() CampaignRepository
	Donations() DonationRepository
	Media() CampaignMediaRepository
	WebhookEvents() WebhookEventRepository

	// WithTx runs fn inside a database transaction. The Store passed to fn
	// is bound to that transaction; returning an error rolls it back.
	WithTx(ctx context.Context, fn func(tx Store) error) error
}
