package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/streetpulse/api/internal/handlers"
	"github.com/streetpulse/api/internal/repository"
	"github.com/streetpulse/api/internal/service"
	"github.com/streetpulse/api/pkg/config"
	"github.com/streetpulse/api/pkg/database"
	"github.com/streetpulse/api/pkg/events"
	"github.com/streetpulse/api/pkg/logger"
	mw "github.com/streetpulse/api/pkg/middleware"
)

func main() {
	godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := database.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := database.Migrate(cfg.Database.URL); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	redisOpts, err := redis.ParseURL(cfg.Redis.URL)
	if err != nil {
		logger.Error("Invalid Redis URL", "error", err)
		os.Exit(1)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Event publishing is optional in development. Without a NATS URL the
	// API runs with a no-op publisher.
	var publisher events.Publisher
	if cfg.NATS.URL != "" {
		natsPub, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			logger.Error("Failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		publisher = natsPub
	} else {
		logger.Warn("NATS_URL not set, activity events disabled")
		publisher = events.NoopPublisher{}
	}
	defer publisher.Close()

	// Repositories
	userRepo := repository.NewUserRepository(pool)
	businessRepo := repository.NewBusinessRepository(pool)
	reviewRepo := repository.NewReviewRepository(pool)
	dealRepo := repository.NewDealRepository(pool)
	bookmarkRepo := repository.NewBookmarkRepository(pool)
	challengeRepo := repository.NewChallengeRepository(pool)
	reportRepo := repository.NewReportRepository(pool)
	rateLimitRepo := repository.NewRateLimitRepository(redisClient)

	// Services
	verifyService := service.NewVerifyService(challengeRepo, cfg.Verify.ChallengeTTL)
	authService := service.NewAuthService(userRepo, verifyService, publisher, cfg)
	directoryService := service.NewDirectoryService(businessRepo)
	reviewService := service.NewReviewService(reviewRepo, businessRepo, verifyService, publisher)
	bookmarkService := service.NewBookmarkService(bookmarkRepo, businessRepo, publisher)
	dealService := service.NewDealService(dealRepo, businessRepo, publisher)
	reportService := service.NewReportService(reportRepo)

	h := handlers.New(
		authService,
		directoryService,
		reviewService,
		bookmarkService,
		dealService,
		verifyService,
		reportService,
		rateLimitRepo,
		cfg,
	)

	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.Logging)
	r.Use(mw.Health)
	r.Use(mw.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Mount("/api", h.Routes())

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down API server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	logger.Info("StreetPulse API listening", "port", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
