package http

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/domain/dto"
	"github.com/boring-ventures/minka-sub001/internal/middleware/auth"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

type CampaignHandler struct {
	campaigns CampaignUsecase
	logger    *zap.Logger
}

func NewCampaignHandler(campaigns CampaignUsecase, logger *zap.Logger) *CampaignHandler {
	return &CampaignHandler{
		campaigns: campaigns,
		logger:    logger,
	}
}

// ListCampaigns handles GET /api/v1/campaigns
func (h *CampaignHandler) ListCampaigns(c echo.Context) error {
	page, err := paginationParams(c)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	req := dto.ListCampaignsRequest{
		PaginationParams: page,
		Status:           c.QueryParam("status"),
		Category:         c.QueryParam("category"),
	}
	if raw := c.QueryParam("verified"); raw != "" {
		verified, err := strconv.ParseBool(raw)
		if err != nil {
			return apperrors.WriteJSON(c, apperrors.InvalidArgument("invalid verified parameter", err))
		}
		req.Verified = &verified
	}
	if c.Echo().Validator != nil {
		if err := c.Validate(&req); err != nil {
			return apperrors.WriteJSON(c, err)
		}
	}

	result, err := h.campaigns.ListCampaigns(c.Request().Context(), req)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// GetCampaign handles GET /api/v1/campaigns/:id
func (h *CampaignHandler) GetCampaign(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	campaign, err := h.campaigns.GetCampaign(c.Request().Context(), id)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, campaign)
}

// GetCampaignStats handles GET /api/v1/campaigns/:id/stats
func (h *CampaignHandler) GetCampaignStats(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	stats, err := h.campaigns.GetCampaignStats(c.Request().Context(), id)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, stats)
}

// CreateCampaign handles POST /api/v1/campaigns
func (h *CampaignHandler) CreateCampaign(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if user == nil {
		return err
	}

	var req dto.CreateCampaignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return apperrors.WriteJSON(c, err)
	}

	campaign, err := h.campaigns.CreateCampaign(c.Request().Context(), user.UserID, req)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	h.logger.Info("Campaign created",
		zap.String("campaign_id", campaign.ID.String()),
		zap.String("organizer_id", user.UserID.String()))

	return c.JSON(http.StatusCreated, campaign)
}

// UpdateCampaign handles PUT /api/v1/campaigns/:id
func (h *CampaignHandler) UpdateCampaign(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if user == nil {
		return err
	}

	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	var req dto.UpdateCampaignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return apperrors.WriteJSON(c, err)
	}

	campaign, err := h.campaigns.UpdateCampaign(c.Request().Context(), user.UserID, id, req)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, campaign)
}

// PublishCampaign handles POST /api/v1/campaigns/:id/publish
func (h *CampaignHandler) PublishCampaign(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if user == nil {
		return err
	}

	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	campaign, err := h.campaigns.PublishCampaign(c.Request().Context(), user.UserID, id)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, campaign)
}

// CloseCampaign handles POST /api/v1/campaigns/:id/close
func (h *CampaignHandler) CloseCampaign(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if user == nil {
		return err
	}

	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	var req dto.CloseCampaignRequest
	if err := bindAndValidate(c, &req); err != nil {
		return apperrors.WriteJSON(c, err)
	}

	campaign, err := h.campaigns.CloseCampaign(c.Request().Context(), user.UserID, id, req.Status)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, campaign)
}
