package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"globaltrade/internal/auth"
	"globaltrade/internal/config"
	"globaltrade/internal/database"
	"globaltrade/internal/handler"
	"globaltrade/internal/repository"
	"globaltrade/internal/router"
	"globaltrade/internal/service"
	"globaltrade/internal/tariff"

	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present; real environment variables take precedence
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting globaltrade API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply pending schema migrations
	if err := database.Migrate(cfg.Database.ConnectionString(), logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	userRepo := repository.NewUserRepository(pool, logger)
	profileRepo := repository.NewProfileRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	inquiryRepo := repository.NewInquiryRepository(pool, logger)
	tariffRepo := repository.NewTariffRepository(pool, logger)

	// Initialize tariff schedule loader with S3 and local fallback
	fileLoader := tariff.NewFileLoader(logger)
	var scheduleLoader tariff.Loader

	if cfg.S3.Enabled {
		// Create S3 loader
		s3Loader, err := tariff.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			scheduleLoader = fileLoader
		} else {
			scheduleLoader = tariff.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, true, logger)
		}
	} else {
		// S3 disabled, use local file system only
		scheduleLoader = fileLoader
		logger.Info().Msg("using local file system for tariff schedule files (S3 disabled)")
	}

	// Initialize session tokens
	tokens := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)

	// Initialize services
	productService := service.NewProductService(productRepo, categoryRepo, logger)
	accountService := service.NewAccountService(userRepo, profileRepo, tokens, logger)
	inquiryService := service.NewInquiryService(inquiryRepo, productRepo, logger)
	tariffService := service.NewTariffService(tariffRepo, scheduleLoader, logger)
	dashboardService := service.NewDashboardService(profileRepo, productRepo, inquiryRepo, logger)

	// Import configured tariff schedules. A failed import is logged but does
	// not prevent the server from starting; existing rows remain usable.
	if len(cfg.Tariff.ScheduleFiles) > 0 {
		if err := tariffService.ImportSchedules(ctx, cfg.Tariff.ScheduleFiles); err != nil {
			logger.Error().Err(err).Msg("tariff schedule import failed")
		}
	}

	// Initialize HTTP handlers
	authHandler := handler.NewAuthHandler(accountService, logger)
	productHandler := handler.NewProductHandler(productService, logger)
	inquiryHandler := handler.NewInquiryHandler(inquiryService, logger)
	tariffHandler := handler.NewTariffHandler(tariffService, logger)
	dashboardHandler := handler.NewDashboardHandler(dashboardService, logger)

	// Initialize router
	mux := router.New(authHandler, productHandler, inquiryHandler, tariffHandler, dashboardHandler, tokens, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
