package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/Dosada05/court-finder/config"
	"github.com/Dosada05/court-finder/events"
	"github.com/Dosada05/court-finder/handlers"
	"github.com/Dosada05/court-finder/middleware"
	"github.com/Dosada05/court-finder/realtime"
	"github.com/Dosada05/court-finder/repositories"
	api "github.com/Dosada05/court-finder/routes"
	"github.com/Dosada05/court-finder/services"
	"github.com/Dosada05/court-finder/storage"
)

const shutdownTimeout = 15 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default command)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func newImageHost(ctx context.Context, cfg *config.Config) (storage.ImageHost, error) {
	switch cfg.ImageHost {
	case config.ImageHostImgBB:
		client, err := storage.NewImgBBClient(cfg.ImgBBAPIKey)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ImageHostS3:
		host, err := storage.NewS3ImageHost(ctx, storage.S3Config{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3Bucket,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			return nil, err
		}
		return host, nil
	default:
		return nil, nil
	}
}

func runServe(ctx context.Context) error {
	logger := newLogger()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		return err
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort), slog.String("image_host", cfg.ImageHost))

	dbConn, dialect, caps, err := openDatabase(ctx, cfg, logger, false)
	if err != nil {
		logger.Error("database setup failed", slog.Any("error", err))
		return err
	}
	defer closeDatabase(dbConn, logger)

	imageHost, err := newImageHost(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize image host", slog.Any("error", err))
		return err
	}

	// Инициализация WebSocket Hub
	hubCtx, stopHub := context.WithCancel(context.Background())
	wsHub := realtime.NewHub(logger)
	go wsHub.Run(hubCtx)
	defer func() {
		stopHub()
		<-wsHub.Done()
		logger.Info("WebSocket Hub stopped")
	}()

	rdb, err := config.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		logger.Warn("redis unavailable, caching and rate limiting disabled", slog.Any("error", err))
		rdb = nil
	}
	if rdb != nil {
		defer rdb.Close()
	}
	cache := middleware.NewResponseCache(rdb, cfg.CacheTTL, logger)

	// Кэш сбрасывается раньше, чем клиенты получат событие и перечитают данные.
	publishers := services.FanoutPublisher{cache, wsHub}
	if cfg.AMQPURL != "" {
		amqpPublisher, err := events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			logger.Warn("rabbitmq unavailable, change events are not exported", slog.Any("error", err))
		} else {
			defer amqpPublisher.Close()
			publishers = append(publishers, amqpPublisher)
			logger.Info("publishing change events", slog.String("exchange", cfg.AMQPExchange))
		}
	}

	// Инициализация репозиториев
	venueRepo := repositories.NewVenueRepository(dbConn, dialect, caps)
	sportRepo := repositories.NewSportRepository(dbConn, dialect, caps)

	// Инициализация сервисов
	venueService := services.NewVenueService(dbConn, venueRepo, services.NewImageProcessor(imageHost, logger), publishers, logger)
	sportService := services.NewSportService(dbConn, sportRepo, publishers, logger)
	authService := services.NewAuthService(venueRepo, cfg.SuperAdminSecret, logger)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		api.Options{
			AllowedOrigins:   cfg.CORSAllowedOrigins,
			EnforceAdminAuth: cfg.EnforceAdminAuth,
			JWTSecret:        []byte(cfg.JWTSecretKey),
			Secrets:          authService,
			Cache:            cache,
			Redis:            rdb,
			LoginRateLimit:   cfg.LoginRateLimit,
			Logger:           logger,
		},
		handlers.NewAuthHandler(authService, cfg.JWTSecretKey),
		handlers.NewVenueHandler(venueService),
		handlers.NewSportHandler(sportService),
		handlers.NewWebSocketHandler(wsHub),
		handlers.NewHealthHandler(dbConn, wsHub),
	)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			return err
		}
		logger.Info("server shutdown complete")
	}
	return nil
}
