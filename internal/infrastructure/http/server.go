package http

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/boring-ventures/minka-sub001/internal/adapter/handler/http"
	"github.com/boring-ventures/minka-sub001/internal/config"
	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
	"github.com/boring-ventures/minka-sub001/internal/middleware/auth"
	"github.com/boring-ventures/minka-sub001/pkg/logger"
)

const defaultBodyLimit = "12M"

// Dependencies are the use cases the HTTP API serves
type Dependencies struct {
	Donations handlers.DonationUsecase
	Campaigns handlers.CampaignUsecase
	Media     handlers.MediaUsecase
	Profiles  handlers.ProfileUsecase
	// Cards is nil when Stripe is not configured
	Cards provider.CardPaymentProvider
}

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	deps   Dependencies
}

func NewServer(cfg *config.Config, log *zap.Logger, deps Dependencies) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	logger.WithEchoLogger(e, log)
	e.Validator = handlers.NewRequestValidator()

	bodyLimit := cfg.Server.HTTP.BodyLimit
	if bodyLimit == "" {
		bodyLimit = defaultBodyLimit
	}

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(logger.NewEchoRequestLogger(log))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.Server.HTTP.AllowOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(middleware.BodyLimit(bodyLimit))

	s := &Server{
		config: cfg,
		logger: log,
		echo:   e,
		deps:   deps,
	}
	s.setupRoutes()
	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.echo
}

func (s *Server) Start() error {
	addr := s.config.Server.HTTP.Address()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	if err := s.echo.Start(addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
			"version": s.config.Service.Version,
		})
	})

	donationHandler := handlers.NewDonationHandler(s.deps.Donations, s.logger)
	campaignHandler := handlers.NewCampaignHandler(s.deps.Campaigns, s.logger)
	mediaHandler := handlers.NewMediaHandler(s.deps.Media, s.logger)
	profileHandler := handlers.NewProfileHandler(s.deps.Profiles, s.logger)
	adminHandler := handlers.NewAdminHandler(s.deps.Campaigns, s.logger)
	webhookHandler := handlers.NewWebhookHandler(s.deps.Donations, s.deps.Cards, s.logger)

	jwtConfig := auth.JWTConfig{
		Secret: s.config.Supabase.JWTSecret,
		Logger: s.logger,
	}
	optionalJWT := jwtConfig
	optionalJWT.Optional = true

	ensureProfile := profileHandler.EnsureProfileMiddleware()

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Public routes (no authentication required)
	v1.GET("/campaigns", campaignHandler.ListCampaigns)
	v1.GET("/campaigns/:id", campaignHandler.GetCampaign)
	v1.GET("/campaigns/:id/stats", campaignHandler.GetCampaignStats)
	v1.GET("/campaigns/:id/donations", donationHandler.ListCampaignDonations)
	v1.GET("/campaigns/:id/media", mediaHandler.ListMedia)

	// Anonymous donations are allowed; a signed-in donor is linked
	v1.POST("/donations", donationHandler.CreateDonation, auth.JWTMiddleware(optionalJWT), ensureProfile)

	// Protected routes (require JWT authentication)
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig), ensureProfile)

	protected.GET("/me", profileHandler.GetMe)
	protected.GET("/me/donations", donationHandler.ListMyDonations)

	protected.POST("/campaigns", campaignHandler.CreateCampaign)
	protected.PUT("/campaigns/:id", campaignHandler.UpdateCampaign)
	protected.POST("/campaigns/:id/publish", campaignHandler.PublishCampaign)
	protected.POST("/campaigns/:id/close", campaignHandler.CloseCampaign)
	protected.POST("/campaigns/:id/media", mediaHandler.UploadMedia)

	protected.GET("/donations/:id", donationHandler.GetDonation)
	protected.PATCH("/donations/:id/status", donationHandler.UpdateDonationStatus)

	admin := protected.Group("/admin")
	admin.POST("/campaigns/:id/verify", adminHandler.VerifyCampaign)
	admin.POST("/campaigns/:id/recalculate", adminHandler.RecalculateCampaignTotals)

	// Webhook routes (outside API versioning)
	webhooks := s.echo.Group("/webhooks")
	webhooks.POST("/payments", webhookHandler.HandlePaymentWebhook, auth.SignatureMiddleware(auth.SignatureConfig{
		Secret: s.config.Webhook.Secret,
		Logger: s.logger,
	}))
	webhooks.POST("/stripe", webhookHandler.HandleStripeWebhook)
}
