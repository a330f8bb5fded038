package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/boring-ventures/minka-sub001/internal/adapter/repository"
	"github.com/boring-ventures/minka-sub001/internal/config"
	"github.com/boring-ventures/minka-sub001/internal/infrastructure/database"
	"github.com/boring-ventures/minka-sub001/internal/infrastructure/mailer"
	"github.com/boring-ventures/minka-sub001/internal/notification"
	"github.com/boring-ventures/minka-sub001/pkg/logger"
	"github.com/boring-ventures/minka-sub001/pkg/messaging"
)

const locale = "es-BO"

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zapLogger.Sync()

	if !cfg.Redis.Enabled() {
		zapLogger.Fatal("Notifier requires redis.addr")
	}

	db, err := database.NewConnection(&cfg.Database, cfg.Log.Development, zapLogger)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(db, zapLogger); err != nil {
			zapLogger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	redisClient, err := messaging.NewRedisClient(messaging.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		zapLogger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	defer redisClient.Close()

	notifier := notification.NewNotifier(
		repository.NewProfileRepository(db, zapLogger),
		mailer.NewSMTPMailer(cfg.SMTP, zapLogger),
		notification.NewAmountFormatter(locale),
		cfg.Service.ClientURL,
		zapLogger,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zapLogger.Info("Starting Minka notifier", zap.String("channel", cfg.Redis.Channel))
	if err := notifier.Run(ctx, redisClient, cfg.Redis.Channel); err != nil && !errors.Is(err, context.Canceled) {
		zapLogger.Error("Notifier stopped", zap.Error(err))
	}
	zapLogger.Info("Notifier shut down")
}
