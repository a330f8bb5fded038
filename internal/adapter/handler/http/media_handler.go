package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/middleware/auth"
	"github.com/boring-ventures/minka-sub001/internal/usecase"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

const mediaFormField = "file"

type MediaHandler struct {
	media  MediaUsecase
	logger *zap.Logger
}

func NewMediaHandler(media MediaUsecase, logger *zap.Logger) *MediaHandler {
	return &MediaHandler{
		media:  media,
		logger: logger,
	}
}

// UploadMedia handles multipart POST /api/v1/campaigns/:id/media
func (h *MediaHandler) UploadMedia(c echo.Context) error {
	user, err := auth.RequireAuth(c)
	if user == nil {
		return err
	}

	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	header, err := c.FormFile(mediaFormField)
	if err != nil {
		return apperrors.WriteJSON(c, apperrors.InvalidArgument("multipart field \"file\" is required", err))
	}
	file, err := header.Open()
	if err != nil {
		return apperrors.WriteJSON(c, apperrors.InvalidArgument("failed to read uploaded file", err))
	}
	defer file.Close()

	media, err := h.media.UploadMedia(c.Request().Context(), user.UserID, id, usecase.MediaUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	h.logger.Info("Campaign media uploaded",
		zap.String("campaign_id", id.String()),
		zap.String("media_id", media.ID.String()),
		zap.Int64("size", header.Size))

	return c.JSON(http.StatusCreated, media)
}

// ListMedia handles GET /api/v1/campaigns/:id/media
func (h *MediaHandler) ListMedia(c echo.Context) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	media, err := h.media.ListMedia(c.Request().Context(), id)
	if err != nil {
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"data": media})
}
