package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/domain/dto"
	"github.com/boring-ventures/minka-sub001/internal/middleware/auth"
	"github.com/boring-ventures/minka-sub001/internal/usecase"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

type DonationHandler struct {
	donations DonationUsecase
	logger    *zap.Logger
}

func NewDonationHandler(donations DonationUsecase, logger *zap.Logger) *DonationHandler {
	return &DonationHandler{
		donations: donations,
		logger:    logger,
	}
}

// CreateDonation handles POST /api/v1/donations. Authentication is optional
// for anonymous donations.
func (h *DonationHandler) CreateDonation(c echo.Context) error {
	var req dto.CreateDonationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return apperrors.WriteJSON(c, err)
	}

	var donor *usecase.Donor
	if user, err := auth.GetUserFromContext(c); err == nil {
		donor = &usecase.Donor{ID: user.UserID, Email: user.Email}
	}

	resp, err := h.donations.CreateDonation(c.Request().Context(), donor, req)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusCreated, resp)
}

// GetDonation handles GET /api/v1/donations/:id
func (h *DonationHandler) GetDonation(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if user == nil {
		return err // RequireAuth already returns the JSON error response
	}

	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	donation, err := h.donations.GetDonation(c.Request().Context(), user.UserID, id)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, donation)
}

// UpdateDonationStatus handles PATCH /api/v1/donations/:id/status
func (h *DonationHandler) UpdateDonationStatus(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if user == nil {
		return err
	}

	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	var req dto.UpdateDonationStatusRequest
	if err := bindAndValidate(c, &req); err != nil {
		return apperrors.WriteJSON(c, err)
	}

	result, err := h.donations.UpdateDonationStatus(c.Request().Context(), user.UserID, id, req.Status)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	h.logger.Info("Donation status updated",
		zap.String("donation_id", id.String()),
		zap.String("actor_id", user.UserID.String()),
		zap.String("status", req.Status),
		zap.Bool("changed", result.Changed))

	return c.JSON(http.StatusOK, result)
}

// ListCampaignDonations handles GET /api/v1/campaigns/:id/donations
func (h *DonationHandler) ListCampaignDonations(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}
	page, err := paginationParams(c)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	result, err := h.donations.ListCampaignDonations(c.Request().Context(), id, page)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// ListMyDonations handles GET /api/v1/me/donations
func (h *DonationHandler) ListMyDonations(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if user == nil {
		return err
	}

	page, err := paginationParams(c)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	result, err := h.donations.ListMyDonations(c.Request().Context(), user.UserID, page)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, result)
}
