package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/middleware/auth"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

type ProfileHandler struct {
	profiles ProfileUsecase
	logger   *zap.Logger
}

func NewProfileHandler(profiles ProfileUsecase, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		profiles: profiles,
		logger:   logger,
	}
}

// GetMe handles GET /api/v1/me
func (h *ProfileHandler) GetMe(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if user == nil {
		return err
	}

	profile, err := h.profiles.EnsureProfile(c.Request().Context(), user.UserID, user.Email, user.Name)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, profile)
}

// EnsureProfileMiddleware creates the caller's profile on their first
// authenticated request. Requests without a user pass through.
func (h *ProfileHandler) EnsureProfileMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, err := auth.GetUserFromContext(c)
			if err != nil {
				return next(c)
			}
			if _, err := h.profiles.EnsureProfile(c.Request().Context(), user.UserID, user.Email, user.Name); err != nil {
				apperrors.LogError(h.logger, err, "Failed to ensure profile",
					zap.String("user_id", user.UserID.String()))
				return apperrors.WriteJSON(c, err)
			}
			return next(c)
		}
	}
}
