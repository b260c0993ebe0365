package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "camrental-backend/internal/api/http"
	"camrental-backend/internal/config"
	"camrental-backend/internal/integrations/contracts"
	"camrental-backend/internal/integrations/payments"
	"camrental-backend/internal/logger"
	"camrental-backend/internal/notify"
	"camrental-backend/internal/repository/postgres"
	"camrental-backend/internal/security"
	"camrental-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Camera Rental Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)

	// Initialize external collaborators
	paymentClient := payments.NewClient(cfg.Payments.BaseURL, time.Duration(cfg.Payments.TimeoutSeconds)*time.Second)
	contractClient := contracts.NewClient(cfg.Contracts.BaseURL, time.Duration(cfg.Contracts.TimeoutSeconds)*time.Second)
	dispatcher := notify.NewEmailDispatcher(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	// Initialize Services
	pricingSvc := service.NewPricingService(store.PricingTierRepository)
	availabilitySvc := service.NewAvailabilityService(store.RentalRepository, store.CameraRepository)
	cameraSvc := service.NewCameraService(store.CameraRepository)
	rentalSvc := service.NewRentalService(
		store.RentalRepository,
		store.CameraRepository,
		store.CustomerRepository,
		store.PaymentRepository,
		pricingSvc,
		paymentClient,
		contractClient,
		dispatcher,
	)

	// Initialize HTTP handlers and router
	rentalHandler := httpapi.NewRentalHandler(rentalSvc)
	cameraHandler := httpapi.NewCameraHandler(cameraSvc, pricingSvc, availabilitySvc, rentalSvc)
	router := httpapi.NewRouter(rentalHandler, cameraHandler, tokenManager, cfg.Metrics.Enabled)

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}
	logger.Info("Server stopped")
}
