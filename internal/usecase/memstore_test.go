package usecase_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	domainRepo "github.com/boring-ventures/minka-sub001/internal/domain/repository"
)

// memStore is an in-memory Store. WithTx snapshots every table and restores
// the snapshot when fn fails, which is enough to observe rollbacks.
type memStore struct {
	profiles  map[uuid.UUID]model.Profile
	campaigns map[uuid.UUID]model.Campaign
	donations map[uuid.UUID]model.Donation
	media     map[uuid.UUID]model.CampaignMedia
	events    map[string]model.PaymentWebhookEvent
	nextEvent int64

	// failCampaignUpdate makes Campaigns().Update return this error
	failCampaignUpdate error
}

func newMemStore() *memStore {
	return &memStore{
		profiles:  map[uuid.UUID]model.Profile{},
		campaigns: map[uuid.UUID]model.Campaign{},
		donations: map[uuid.UUID]model.Donation{},
		media:     map[uuid.UUID]model.CampaignMedia{},
		events:    map[string]model.PaymentWebhookEvent{},
	}
}

func (s *memStore) Profiles() domainRepo.ProfileRepository           { return memProfiles{s} }
func (s *memStore) Campaigns() domainRepo.CampaignRepository         { return memCampaigns{s} }
func (s *memStore) Donations() domainRepo.DonationRepository         { return memDonations{s} }
func (s *memStore) Media() domainRepo.CampaignMediaRepository        { return memMedia{s} }
func (s *memStore) WebhookEvents() domainRepo.WebhookEventRepository { return memEvents{s} }

func (s *memStore) WithTx(ctx context.Context, fn func(tx domainRepo.Store) error) error {
	profiles := copyMap(s.profiles)
	campaigns := copyMap(s.campaigns)
	donations := copyMap(s.donations)
	media := copyMap(s.media)
	events := copyMap(s.events)

	if err := fn(s); err != nil {
		s.profiles, s.campaigns, s.donations, s.media, s.events = profiles, campaigns, donations, media, events
		return err
	}
	return nil
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func paginate[T any](items []T, page entity.PaginationParams) []T {
	start := page.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + page.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// seed helpers

func (s *memStore) addProfile(role model.ProfileRole) model.Profile {
	p := model.Profile{ID: uuid.New(), Email: uuid.NewString() + "@example.com", Name: "Test User", Role: role}
	s.profiles[p.ID] = p
	return p
}

func (s *memStore) addCampaign(c model.Campaign) model.Campaign {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = model.CampaignStatusActive
	}
	s.campaigns[c.ID] = c
	return c
}

func (s *memStore) addDonation(d model.Donation) model.Donation {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	if d.Reference == "" {
		d.Reference = d.ID.String()[:10]
	}
	s.donations[d.ID] = d
	return d
}

func (s *memStore) campaign(id uuid.UUID) model.Campaign { return s.campaigns[id] }
func (s *memStore) donation(id uuid.UUID) model.Donation { return s.donations[id] }

// profiles

type memProfiles struct{ s *memStore }

func (r memProfiles) GetByID(_ context.Context, id uuid.UUID) (*model.Profile, error) {
	p, ok := r.s.profiles[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r memProfiles) Create(_ context.Context, p *model.Profile) error {
	if _, ok := r.s.profiles[p.ID]; ok {
		return nil
	}
	r.s.profiles[p.ID] = *p
	return nil
}

// campaigns

type memCampaigns struct{ s *memStore }

func (r memCampaigns) Create(_ context.Context, c *model.Campaign) error {
	c.CreatedAt = time.Now()
	r.s.campaigns[c.ID] = *c
	return nil
}

func (r memCampaigns) GetByID(_ context.Context, id uuid.UUID) (*model.Campaign, error) {
	c, ok := r.s.campaigns[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r memCampaigns) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	return r.GetByID(ctx, id)
}

func (r memCampaigns) Update(_ context.Context, c *model.Campaign) error {
	if r.s.failCampaignUpdate != nil {
		return r.s.failCampaignUpdate
	}
	if _, ok := r.s.campaigns[c.ID]; !ok {
		return errors.New("campaign row missing")
	}
	r.s.campaigns[c.ID] = *c
	return nil
}

func (r memCampaigns) List(_ context.Context, f domainRepo.CampaignFilter, page entity.PaginationParams) ([]*model.Campaign, int64, error) {
	var out []*model.Campaign
	for _, c := range r.s.campaigns {
		c := c
		if f.Status != nil && c.Status != *f.Status {
			continue
		}
		if f.Category != nil && c.Category != *f.Category {
			continue
		}
		if f.Verified != nil && c.Verified != *f.Verified {
			continue
		}
		if f.OrganizerID != nil && c.OrganizerID != *f.OrganizerID {
			continue
		}
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, page), int64(len(out)), nil
}

// donations

type memDonations struct{ s *memStore }

func (r memDonations) Create(_ context.Context, d *model.Donation) error {
	d.CreatedAt = time.Now()
	d.UpdatedAt = d.CreatedAt
	r.s.donations[d.ID] = *d
	return nil
}

func (r memDonations) GetByID(_ context.Context, id uuid.UUID) (*model.Donation, error) {
	d, ok := r.s.donations[id]
	if !ok {
		return nil, nil
	}
	return &d, nil
}

func (r memDonations) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.Donation, error) {
	return r.GetByID(ctx, id)
}

func (r memDonations) GetByProviderPaymentID(_ context.Context, paymentID string) (*model.Donation, error) {
	for _, d := range r.s.donations {
		if d.ProviderPaymentID != nil && *d.ProviderPaymentID == paymentID {
			d := d
			return &d, nil
		}
	}
	return nil, nil
}

func (r memDonations) Update(_ context.Context, d *model.Donation) error {
	if _, ok := r.s.donations[d.ID]; !ok {
		return errors.New("donation row missing")
	}
	d.UpdatedAt = time.Now()
	r.s.donations[d.ID] = *d
	return nil
}

func (r memDonations) filter(keep func(d model.Donation) bool) []*model.Donation {
	var out []*model.Donation
	for _, d := range r.s.donations {
		d := d
		if keep(d) {
			out = append(out, &d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r memDonations) ListByCampaign(_ context.Context, campaignID uuid.UUID, countedOnly bool, page entity.PaginationParams) ([]*model.Donation, int64, error) {
	out := r.filter(func(d model.Donation) bool {
		if d.CampaignID != campaignID {
			return false
		}
		return !countedOnly || d.PaymentStatus == model.PaymentStatusActive || d.PaymentStatus == model.PaymentStatusCompleted
	})
	return paginate(out, page), int64(len(out)), nil
}

func (r memDonations) ListAllByCampaign(_ context.Context, campaignID uuid.UUID) ([]model.Donation, error) {
	var out []model.Donation
	for _, d := range r.filter(func(d model.Donation) bool { return d.CampaignID == campaignID }) {
		out = append(out, *d)
	}
	return out, nil
}

func (r memDonations) ListByDonor(_ context.Context, donorID uuid.UUID, page entity.PaginationParams) ([]*model.Donation, int64, error) {
	out := r.filter(func(d model.Donation) bool { return d.IsDonor(donorID) })
	return paginate(out, page), int64(len(out)), nil
}

// media

type memMedia struct{ s *memStore }

func (r memMedia) Create(_ context.Context, m *model.CampaignMedia) error {
	m.CreatedAt = time.Now()
	r.s.media[m.ID] = *m
	return nil
}

func (r memMedia) ListByCampaign(_ context.Context, campaignID uuid.UUID) ([]*model.CampaignMedia, error) {
	var out []*model.CampaignMedia
	for _, m := range r.s.media {
		m := m
		if m.CampaignID == campaignID {
			out = append(out, &m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SortOrder < out[j].SortOrder })
	return out, nil
}

func (r memMedia) CountByCampaign(ctx context.Context, campaignID uuid.UUID) (int64, error) {
	list, _ := r.ListByCampaign(ctx, campaignID)
	return int64(len(list)), nil
}

// webhook events

type memEvents struct{ s *memStore }

func eventKey(p model.WebhookProvider, id string) string { return string(p) + "/" + id }

func (r memEvents) Create(_ context.Context, e *model.PaymentWebhookEvent) (bool, error) {
	key := eventKey(e.Provider, e.EventID)
	if _, ok := r.s.events[key]; ok {
		return false, nil
	}
	r.s.nextEvent++
	e.ID = r.s.nextEvent
	r.s.events[key] = *e
	return true, nil
}

func (r memEvents) set(id int64, status model.WebhookStatus, reason *string) error {
	for k, e := range r.s.events {
		if e.ID == id {
			now := time.Now()
			e.Status = status
			e.ProcessedAt = &now
			e.LastError = reason
			r.s.events[k] = e
			return nil
		}
	}
	return errors.New("event not found")
}

func (r memEvents) MarkCompleted(_ context.Context, id int64) error {
	return r.set(id, model.WebhookStatusCompleted, nil)
}

func (r memEvents) GetForUpdate(_ context.Context, p model.WebhookProvider, eventID string) (*model.PaymentWebhookEvent, error) {
	e, ok := r.s.events[eventKey(p, eventID)]
	if !ok {
		return nil, nil
	}
	return &e, nil
}

func (r memEvents) RecordFailure(_ context.Context, e *model.PaymentWebhookEvent, reason string) error {
	key := eventKey(e.Provider, e.EventID)
	stored, ok := r.s.events[key]
	if ok && stored.Status == model.WebhookStatusCompleted {
		return nil
	}
	if !ok {
		stored = *e
		r.s.nextEvent++
		stored.ID = r.s.nextEvent
	}
	now := time.Now()
	stored.Status = model.WebhookStatusFailed
	stored.LastError = &reason
	stored.ProcessedAt = &now
	r.s.events[key] = stored
	return nil
}

func (s *memStore) event(p model.WebhookProvider, id string) (model.PaymentWebhookEvent, bool) {
	e, ok := s.events[eventKey(p, id)]
	return e, ok
}
