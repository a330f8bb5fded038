package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/middleware/auth"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

// AdminHandler serves the admin-only campaign operations. The admin role
// is checked by the use case against the stored profile.
type AdminHandler struct {
	campaigns CampaignUsecase
	logger    *zap.Logger
}

func NewAdminHandler(campaigns CampaignUsecase, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		campaigns: campaigns,
		logger:    logger,
	}
}

// VerifyCampaign handles POST /api/v1/admin/campaigns/:id/verify
func (h *AdminHandler) VerifyCampaign(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if user == nil {
		return err
	}

	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	campaign, err := h.campaigns.VerifyCampaign(c.Request().Context(), user.UserID, id)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, campaign)
}

// RecalculateCampaignTotals handles POST /api/v1/admin/campaigns/:id/recalculate
func (h *AdminHandler) RecalculateCampaignTotals(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if user == nil {
		return err
	}

	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	result, err := h.campaigns.RecalculateCampaignTotals(c.Request().Context(), user.UserID, id)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	if result.Changed {
		h.logger.Warn("Campaign totals corrected",
			zap.String("campaign_id", id.String()),
			zap.String("admin_id", user.UserID.String()),
			zap.String("collected_before", result.Before.CollectedAmount.String()),
			zap.String("collected_after", result.After.CollectedAmount.String()),
			zap.Int("donors_before", result.Before.DonorCount),
			zap.Int("donors_after", result.After.DonorCount))
	}

	return c.JSON(http.StatusOK, result)
}
