package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/biftracker/backend/internal/config"
	"github.com/biftracker/backend/internal/handler"
	"github.com/biftracker/backend/internal/logger"
	"github.com/biftracker/backend/internal/mailer"
	"github.com/biftracker/backend/internal/repository"
	"github.com/biftracker/backend/internal/scheduler"
	"github.com/biftracker/backend/internal/scraper"
	"github.com/biftracker/backend/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Structured logger, JSON in production
	appLogger := logger.Logger()

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	itemRepo := repository.NewItemRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	updateRepo := repository.NewPriceUpdateRepository(db)

	// Initialize services
	emailSender := mailer.NewSMTPMailer(cfg.SMTP)
	notificationService := service.NewNotificationService(alertRepo, userRepo, updateRepo, emailSender, cfg.FrontendURL, appLogger)
	fetcher := scraper.NewFetcher(cfg.FetchTimeout)
	extractor := scraper.NewExtractor()
	trackerService := service.NewPriceTrackerService(itemRepo, updateRepo, fetcher, extractor, notificationService, appLogger)
	itemService := service.NewItemService(itemRepo, updateRepo)
	alertService := service.NewAlertService(alertRepo, itemRepo)
	userService := service.NewUserService(userRepo)

	// Initialize scheduler for periodic price checks
	var checkScheduler *scheduler.Scheduler
	var nextRun func() time.Time
	if cfg.TrackerEnabled {
		schedCfg := scheduler.Config{
			Schedule: cfg.TrackerSchedule,
			Timeout:  cfg.TrackerTimeout,
			Enabled:  cfg.TrackerEnabled,
		}
		checkScheduler = scheduler.New(schedCfg, trackerService, appLogger)
		if err := checkScheduler.Start(); err != nil {
			logger.Error("Failed to start price check scheduler", slog.String("error", err.Error()))
		} else {
			nextRun = checkScheduler.GetNextRunTime
			logger.Info("Price check scheduler started",
				slog.String("schedule", cfg.TrackerSchedule),
				slog.Duration("timeout", cfg.TrackerTimeout),
			)
		}
	}

	// Initialize handlers
	itemHandler := handler.NewItemHandler(itemService)
	alertHandler := handler.NewAlertHandler(alertService)
	priceHandler := handler.NewPriceHandler(trackerService, nextRun)
	userHandler := handler.NewUserHandler(userService)

	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	// Items (public - no auth required)
	r.Get("/api/items", itemHandler.List)
	r.Get("/api/items/{id}", itemHandler.Get)
	r.Get("/api/items/{id}/price-history", itemHandler.GetPriceHistory)
	r.Get("/api/items/{id}/price-updates", itemHandler.GetPriceUpdates)
	r.Get("/api/price-updates", itemHandler.ListRecentPriceUpdates)

	// Price tracker (public)
	r.Get("/api/prices/health", priceHandler.Health)
	r.Post("/api/prices/check", priceHandler.Check) // Admin: trigger a full check now

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(handler.AuthMiddleware)

		// Profile
		r.Post("/api/users/me", userHandler.Register)
		r.Get("/api/users/me", userHandler.Me)

		// Catalog management
		r.Post("/api/items", itemHandler.Create)
		r.Post("/api/items/{id}/links", itemHandler.AddLink)

		// Alerts
		r.Get("/api/alerts", alertHandler.List)
		r.Put("/api/alerts/{id}", alertHandler.Update)
		r.Post("/api/items/{id}/subscribe", alertHandler.Subscribe)
		r.Delete("/api/items/{id}/subscribe", alertHandler.Unsubscribe)
	})

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	// Create server
	server := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// Handle graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		logger.Info("Shutting down server...")

		// Stop scheduler first
		if checkScheduler != nil {
			ctx := checkScheduler.Stop()
			<-ctx.Done()
			logger.Info("Scheduler stopped")
		}

		// Shutdown HTTP server
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("Server shutdown error", slog.String("error", err.Error()))
		}
	}()

	log.Printf("Server starting on port %s", port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("Server failed: %v", err)
	}
}
