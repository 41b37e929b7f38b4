package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"eventcatalog/config"
	_ "eventcatalog/docs"
	"eventcatalog/internal/adapters/auth"
	"eventcatalog/internal/adapters/cache"
	"eventcatalog/internal/adapters/email"
	"eventcatalog/internal/adapters/storage"
	deliveryhttp "eventcatalog/internal/delivery/http"
	"eventcatalog/internal/delivery/http/controllers"
	"eventcatalog/internal/delivery/http/middleware"
	"eventcatalog/internal/domain"
	"eventcatalog/internal/repository/postgres"
	"eventcatalog/internal/services"
)

// @title Event Catalog API
// @version 1.0
// @description Public event catalog with organizer-managed events and email bookings.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := config.NewLogger(os.Stdout, cfg.Environment, cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(ctx, cfg.Database.URL, postgres.ConnectOptions{
		Retries: cfg.Database.ConnectRetries,
		Delay:   cfg.Database.ConnectDelay,
	}, logger)
	if err != nil {
		logger.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		logger.Error("failed to migrate database", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Repositories
	eventRepo := postgres.NewEventRepository(db)
	bookingRepo := postgres.NewBookingRepository(db)

	// Event cache is optional; without Redis every read goes to Postgres.
	var eventCache domain.EventCache
	if cfg.Redis.Addr != "" {
		rdb, err := cache.NewClient(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Warn("event cache disabled", "err", err)
		} else {
			defer rdb.Close()
			eventCache = cache.NewEventCache(rdb, cfg.Redis.TTL)
		}
	}

	var images domain.ImageStore
	if cfg.AWS.ImagesBucket != "" {
		store, err := storage.NewS3ImageStore(ctx, storage.S3Config{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Bucket:          cfg.AWS.ImagesBucket,
		}, logger)
		if err != nil {
			logger.Warn("image uploads disabled", "err", err)
		} else {
			images = store
		}
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:          cfg.AWS.Region,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
		},
	}, logger)
	if err != nil {
		logger.Error("failed to create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer(), logger)

	// Services
	eventService := services.NewEventService(eventRepo, eventCache, logger, cfg.RequestTimeout)
	guard := services.NewBookingGuard(eventRepo, bookingRepo)
	bookingService := services.NewBookingService(bookingRepo, eventRepo, guard, emailService, logger, cfg.RequestTimeout)
	if cfg.Auth.OrganizerEmail == "" || cfg.Auth.OrganizerPasswordHash == "" {
		logger.Warn("organizer account not configured; login is disabled")
	}
	authService := services.NewAuthService(
		cfg.Auth.OrganizerEmail,
		cfg.Auth.OrganizerPasswordHash,
		auth.NewBcryptHasher(auth.DefaultCost),
		auth.NewJWTIssuer(cfg.Auth.JWTSecret),
		cfg.Auth.JWTExpiry,
	)

	// Controllers
	handlers := deliveryhttp.Controllers{
		Events:   controllers.NewEventController(logger, eventService, images),
		Bookings: controllers.NewBookingController(logger, bookingService),
		Auth:     controllers.NewAuthController(logger, authService),
		Health:   controllers.NewHealthController(logger, db),
	}

	limiter := middleware.NewIPRateLimiter(cfg.RateLimit.BookingRPS, cfg.RateLimit.BookingBurst)
	go limiter.Run(ctx, time.Minute)

	requireAuth := middleware.RequireAuth(auth.NewJWTVerifier(cfg.Auth.JWTSecret), logger)
	mux := deliveryhttp.NewRouter(handlers, requireAuth, limiter)
	handler := middleware.CORS(cfg.CORSAllowedOrigins, middleware.LoggingMiddleware(logger, mux))

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "err", err)
	}
	logger.Info("server stopped")
}
