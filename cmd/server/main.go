package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/adapter/publisher"
	"github.com/boring-ventures/minka-sub001/internal/adapter/repository"
	"github.com/boring-ventures/minka-sub001/internal/config"
	"github.com/boring-ventures/minka-sub001/internal/domain/event"
	"github.com/boring-ventures/minka-sub001/internal/domain/provider"
	"github.com/boring-ventures/minka-sub001/internal/infrastructure/database"
	grpcServer "github.com/boring-ventures/minka-sub001/internal/infrastructure/grpc"
	httpServer "github.com/boring-ventures/minka-sub001/internal/infrastructure/http"
	stripeProvider "github.com/boring-ventures/minka-sub001/internal/infrastructure/provider/stripe"
	"github.com/boring-ventures/minka-sub001/internal/infrastructure/storage"
	"github.com/boring-ventures/minka-sub001/internal/usecase"
	"github.com/boring-ventures/minka-sub001/pkg/logger"
	"github.com/boring-ventures/minka-sub001/pkg/messaging"
)

const shutdownTimeout = 15 * time.Second

func main() {
	migrate := flag.Bool("migrate", true, "run database migrations on startup")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting Minka API",
		zap.String("environment", cfg.Service.Environment),
		zap.String("version", cfg.Service.Version))

	// Initialize database connection
	db, err := database.NewConnection(&cfg.Database, cfg.Log.Development, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if *migrate {
		if err := database.Migrate(db, zapLogger); err != nil {
			zapLogger.Fatal("Failed to run database migrations", zap.Error(err))
		}
	}

	store := repository.NewStore(db, zapLogger)

	// Donation events are best effort; without Redis they are dropped
	var events event.Publisher = event.NopPublisher{}
	if cfg.Redis.Enabled() {
		redisClient, err := messaging.NewRedisClient(messaging.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			zapLogger.Warn("Redis unavailable, donation events disabled", zap.Error(err))
		} else {
			defer redisClient.Close()
			events = publisher.NewRedisPublisher(redisClient, cfg.Redis.Channel, zapLogger)
		}
	}

	var cards provider.CardPaymentProvider
	if cfg.Stripe.Enabled() {
		cards = stripeProvider.NewStripeProvider(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, zapLogger)
	} else {
		zapLogger.Info("Stripe not configured, card payments are confirmed by the gateway")
	}

	var objects provider.ObjectStorage
	if cfg.S3.Enabled() {
		s3Storage, err := storage.NewS3Storage(context.Background(), cfg.S3, zapLogger)
		if err != nil {
			zapLogger.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
		objects = s3Storage
	}

	deps := httpServer.Dependencies{
		Donations: usecase.NewDonationService(store, cards, events, zapLogger, cfg.Service.DefaultCurrency),
		Campaigns: usecase.NewCampaignService(store, zapLogger),
		Media:     usecase.NewMediaService(store, objects, cfg.S3.PresignTTL, zapLogger),
		Profiles:  usecase.NewProfileService(store, zapLogger),
		Cards:     cards,
	}

	// Initialize servers
	grpcSrv := grpcServer.NewServer(cfg, zapLogger)
	httpSrv := httpServer.NewServer(cfg, zapLogger, deps)

	// Start servers
	if grpcSrv.Enabled() {
		go func() {
			if err := grpcSrv.Start(); err != nil {
				zapLogger.Fatal("Failed to start gRPC server", zap.Error(err))
			}
		}()
	}

	go func() {
		if err := httpSrv.Start(); err != nil {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	zapLogger.Info("Shutting down servers...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if grpcSrv.Enabled() {
		if err := grpcSrv.Shutdown(ctx); err != nil {
			zapLogger.Error("Failed to shutdown gRPC server", zap.Error(err))
		}
	}

	if err := httpSrv.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown HTTP server", zap.Error(err))
	}

	zapLogger.Info("Servers shut down successfully")
}
