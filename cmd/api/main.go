package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"roastery/internal/auth"
	"roastery/internal/config"
	"roastery/internal/database"
	"roastery/internal/handler"
	"roastery/internal/payment"
	"roastery/internal/repository"
	"roastery/internal/router"
	"roastery/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting roastery API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Apply schema and seed the catalogue and admin account
	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := database.Seed(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	orderRepo := repository.NewOrderRepository(pool, logger)
	adminRepo := repository.NewAdminUserRepository(pool, logger)
	contactRepo := repository.NewContactRepository(pool, logger)

	// Initialize payment client and token issuer
	payments := payment.NewClient(cfg.Stripe, logger)
	issuer := auth.NewTokenIssuer(cfg.JWT)

	// Initialize services
	productService := service.NewProductService(productRepo, logger)
	checkoutService := service.NewCheckoutService(productRepo, payments, cfg.Frontend, logger)
	orderService := service.NewOrderService(orderRepo, payments, logger)
	authService := service.NewAuthService(adminRepo, issuer, logger)
	contactService := service.NewContactService(contactRepo, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, logger)
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, logger)
	webhookHandler := handler.NewWebhookHandler(orderService, payments, logger)
	contactHandler := handler.NewContactHandler(contactService, logger)
	adminHandler := handler.NewAdminHandler(authService, productService, orderService, contactService, logger)

	// Initialize router
	mux := router.New(
		productHandler,
		checkoutHandler,
		webhookHandler,
		contactHandler,
		adminHandler,
		issuer,
		cfg.Frontend.BaseURL,
		logger,
	)

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
