package http

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/boring-ventures/minka-sub001/internal/domain/dto"
	"github.com/boring-ventures/minka-sub001/internal/domain/entity"
	"github.com/boring-ventures/minka-sub001/internal/domain/model"
	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
	"github.com/boring-ventures/minka-sub001/internal/middleware/auth"
	"github.com/boring-ventures/minka-sub001/internal/usecase"
)

type mockDonations struct {
	mock.Mock
}

func (m *mockDonations) CreateDonation(ctx context.Context, donor *usecase.Donor, req dto.CreateDonationRequest) (*dto.CreateDonationResponse, error) {
	args := m.Called(ctx, donor, req)
	resp, _ := args.Get(0).(*dto.CreateDonationResponse)
	return resp, args.Error(1)
}

func (m *mockDonations) GetDonation(ctx context.Context, actorID, donationID uuid.UUID) (*dto.DonationResponse, error) {
	args := m.Called(ctx, actorID, donationID)
	resp, _ := args.Get(0).(*dto.DonationResponse)
	return resp, args.Error(1)
}

func (m *mockDonations) UpdateDonationStatus(ctx context.Context, actorID, donationID uuid.UUID, status string) (*dto.StatusChangeResult, error) {
	args := m.Called(ctx, actorID, donationID, status)
	resp, _ := args.Get(0).(*dto.StatusChangeResult)
	return resp, args.Error(1)
}

func (m *mockDonations) ListCampaignDonations(ctx context.Context, campaignID uuid.UUID, page entity.PaginationParams) (*dto.PaginatedPublicDonations, error) {
	args := m.Called(ctx, campaignID, page)
	resp, _ := args.Get(0).(*dto.PaginatedPublicDonations)
	return resp, args.Error(1)
}

func (m *mockDonations) ListMyDonations(ctx context.Context, donorID uuid.UUID, page entity.PaginationParams) (*dto.PaginatedDonations, error) {
	args := m.Called(ctx, donorID, page)
	resp, _ := args.Get(0).(*dto.PaginatedDonations)
	return resp, args.Error(1)
}

func (m *mockDonations) ApplyPaymentWebhook(ctx context.Context, eventID string, req dto.PaymentWebhookRequest, payload []byte) (*dto.StatusChangeResult, error) {
	args := m.Called(ctx, eventID, req, payload)
	resp, _ := args.Get(0).(*dto.StatusChangeResult)
	return resp, args.Error(1)
}

func (m *mockDonations) HandleCardPaymentEvent(ctx context.Context, pe *provider.WebhookEvent) (*dto.StatusChangeResult, error) {
	args := m.Called(ctx, pe)
	resp, _ := args.Get(0).(*dto.StatusChangeResult)
	return resp, args.Error(1)
}

type mockCampaigns struct {
	mock.Mock
}

func (m *mockCampaigns) CreateCampaign(ctx context.Context, organizerID uuid.UUID, req dto.CreateCampaignRequest) (*model.Campaign, error) {
	args := m.Called(ctx, organizerID, req)
	resp, _ := args.Get(0).(*model.Campaign)
	return resp, args.Error(1)
}

func (m *mockCampaigns) GetCampaign(ctx context.Context, id uuid.UUID) (*model.Campaign, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*model.Campaign)
	return resp, args.Error(1)
}

func (m *mockCampaigns) ListCampaigns(ctx context.Context, req dto.ListCampaignsRequest) (*dto.PaginatedCampaigns, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.PaginatedCampaigns)
	return resp, args.Error(1)
}

func (m *mockCampaigns) UpdateCampaign(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateCampaignRequest) (*model.Campaign, error) {
	args := m.Called(ctx, actorID, id, req)
	resp, _ := args.Get(0).(*model.Campaign)
	return resp, args.Error(1)
}

func (m *mockCampaigns) PublishCampaign(ctx context.Context, actorID, id uuid.UUID) (*model.Campaign, error) {
	args := m.Called(ctx, actorID, id)
	resp, _ := args.Get(0).(*model.Campaign)
	return resp, args.Error(1)
}

func (m *mockCampaigns) CloseCampaign(ctx context.Context, actorID, id uuid.UUID, status string) (*model.Campaign, error) {
	args := m.Called(ctx, actorID, id, status)
	resp, _ := args.Get(0).(*model.Campaign)
	return resp, args.Error(1)
}

func (m *mockCampaigns) VerifyCampaign(ctx context.Context, adminID, id uuid.UUID) (*model.Campaign, error) {
	args := m.Called(ctx, adminID, id)
	resp, _ := args.Get(0).(*model.Campaign)
	return resp, args.Error(1)
}

func (m *mockCampaigns) GetCampaignStats(ctx context.Context, id uuid.UUID) (*dto.CampaignStats, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.CampaignStats)
	return resp, args.Error(1)
}

func (m *mockCampaigns) RecalculateCampaignTotals(ctx context.Context, adminID, id uuid.UUID) (*dto.RecalculationResult, error) {
	args := m.Called(ctx, adminID, id)
	resp, _ := args.Get(0).(*dto.RecalculationResult)
	return resp, args.Error(1)
}

type mockMedia struct {
	mock.Mock
}

func (m *mockMedia) UploadMedia(ctx context.Context, actorID, campaignID uuid.UUID, upload usecase.MediaUpload) (*dto.MediaResponse, error) {
	args := m.Called(ctx, actorID, campaignID, upload)
	resp, _ := args.Get(0).(*dto.MediaResponse)
	return resp, args.Error(1)
}

func (m *mockMedia) ListMedia(ctx context.Context, campaignID uuid.UUID) ([]*dto.MediaResponse, error) {
	args := m.Called(ctx, campaignID)
	resp, _ := args.Get(0).([]*dto.MediaResponse)
	return resp, args.Error(1)
}

type mockProfiles struct {
	mock.Mock
}

func (m *mockProfiles) EnsureProfile(ctx context.Context, id uuid.UUID, email, name string) (*model.Profile, error) {
	args := m.Called(ctx, id, email, name)
	resp, _ := args.Get(0).(*model.Profile)
	return resp, args.Error(1)
}

type mockCards struct {
	mock.Mock
}

func (m *mockCards) CreatePayment(ctx context.Context, req *provider.CreatePaymentRequest) (*provider.CreatePaymentResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*provider.CreatePaymentResponse)
	return resp, args.Error(1)
}

func (m *mockCards) ParseWebhook(payload []byte, signature string) (*provider.WebhookEvent, error) {
	args := m.Called(payload, signature)
	resp, _ := args.Get(0).(*provider.WebhookEvent)
	return resp, args.Error(1)
}

func (m *mockCards) GetProviderName() string { return "mock" }

// newContext builds an echo context for a request, with path params and an
// optional authenticated user
func newContext(method, target string, body io.Reader, user *auth.AuthUser, params map[string]string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewRequestValidator()

	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if user != nil {
		req = req.WithContext(auth.WithUser(req.Context(), user))
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for k, v := range params {
		names = append(names, k)
		values = append(values, v)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)
	return c, rec
}

func jsonBody(s string) io.Reader {
	return strings.NewReader(s)
}

func testUser() *auth.AuthUser {
	return &auth.AuthUser{UserID: uuid.New(), Email: "ana@example.com", Name: "Ana"}
}
