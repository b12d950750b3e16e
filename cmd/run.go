package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"redblack/config"
	"redblack/database"
	"redblack/events"
	"redblack/repository"
	"redblack/service"
	"redblack/web"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Info("Starting redblack server...")

	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.Info("Database connection established")

	eventBus := events.NewBus()
	events.RegisterAuditLogger(eventBus)

	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	authService := service.NewAuthService(uowFactory, cfg.AdminCode, cfg.StartingBalance)
	walletService := service.NewWalletService(uowFactory)
	subscriptionService := service.NewSubscriptionService(uowFactory, cfg.AccessFee)
	gameService := service.NewGameService(uowFactory)
	vaultService := service.NewVaultService(uowFactory)

	templates, err := web.NewTemplates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}

	sessions := web.NewSessionManager([]byte(cfg.SessionKey))
	handler := web.NewHandler(
		authService, walletService, subscriptionService, gameService, vaultService,
		sessions, templates,
	)
	server := web.NewServer(cfg.ListenAddr, web.NewRouter(handler))

	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.ListenAddr).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("HTTP server shutdown error")
	}

	log.Info("Shutdown completed")
	return nil
}
