package http

import (
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/domain/dto"
	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
	"github.com/boring-ventures/minka-sub001/internal/middleware/auth"
	apperrors "github.com/boring-ventures/minka-sub001/pkg/errors"
)

// EventIDHeader identifies a gateway delivery so replays can be detected
const EventIDHeader = "X-Minka-Event-Id"

const maxStripePayloadBytes = 64 << 10

type WebhookHandler struct {
	donations DonationUsecase
	cards     provider.CardPaymentProvider
	logger    *zap.Logger
}

// NewWebhookHandler creates a new WebhookHandler. cards may be nil when
// Stripe is not configured.
func NewWebhookHandler(donations DonationUsecase, cards provider.CardPaymentProvider, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		donations: donations,
		cards:     cards,
		logger:    logger,
	}
}

// HandlePaymentWebhook handles POST /webhooks/payments. The signature is
// checked by auth.SignatureMiddleware before this runs.
func (h *WebhookHandler) HandlePaymentWebhook(c echo.Context) error {
	var req dto.PaymentWebhookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return apperrors.WriteJSON(c, err)
	}

	eventID := c.Request().Header.Get(EventIDHeader)
	if eventID == "" {
		eventID = uuid.NewString()
	}

	result, err := h.donations.ApplyPaymentWebhook(c.Request().Context(), eventID, req, auth.RawBody(c))
	if err != nil {
		apperrors.LogError(h.logger, err, "Payment webhook failed",
			zap.String("event_id", eventID),
			zap.String("donation_id", req.DonationID.String()))
		return apperrors.WriteJSON(c, err)
	}

	return c.JSON(http.StatusOK, result)
}

// HandleStripeWebhook handles POST /webhooks/stripe. Only internal failures
// are reported as errors so that Stripe retries them; everything else is
// acknowledged.
func (h *WebhookHandler) HandleStripeWebhook(c echo.Context) error {
	if h.cards == nil {
		return apperrors.WriteJSON(c, apperrors.NotFound("card payments are not enabled", nil))
	}

	body, err := io.ReadAll(io.LimitReader(c.Request().Body, maxStripePayloadBytes))
	if err != nil {
		h.logger.Error("Error reading request body", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Error reading request body"})
	}

	pe, err := h.cards.ParseWebhook(body, c.Request().Header.Get("Stripe-Signature"))
	if err != nil {
		h.logger.Warn("Stripe webhook rejected", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Webhook signature verification failed"})
	}
	if pe == nil {
		return c.JSON(http.StatusOK, echo.Map{"received": true})
	}

	result, err := h.donations.HandleCardPaymentEvent(c.Request().Context(), pe)
	if err != nil {
		apperrors.LogError(h.logger, err, "Stripe webhook failed",
			zap.String("event_id", pe.ID),
			zap.String("event_type", pe.Type),
			zap.String("payment_id", pe.PaymentID))
		if apperrors.CodeOf(err) == apperrors.ErrInternal {
			return apperrors.WriteJSON(c, err)
		}
		return c.JSON(http.StatusOK, echo.Map{"received": true, "ignored": apperrors.CodeOf(err)})
	}

	return c.JSON(http.StatusOK, echo.Map{"received": true, "result": result})
}
