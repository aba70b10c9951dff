// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/time/rate"

	"github.com/maplegrovecc/communityhub/internal/auth"
	"github.com/maplegrovecc/communityhub/internal/config"
	"github.com/maplegrovecc/communityhub/internal/database"
	"github.com/maplegrovecc/communityhub/internal/handler"
	"github.com/maplegrovecc/communityhub/internal/notify"
	"github.com/maplegrovecc/communityhub/internal/repository"
	"github.com/maplegrovecc/communityhub/internal/service"
	"github.com/maplegrovecc/communityhub/internal/tracing"
)

func main() {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config", "error", err)
		os.Exit(1)
	}

	shutdownTracing, err := tracing.Setup(cfg.Tracing.Enabled)
	if err != nil {
		logger.Error("tracing", "error", err)
		os.Exit(1)
	}

	pool, err := database.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to postgres", "host", cfg.Database.Host)

	if err := database.Migrate(pool); err != nil {
		logger.Error("migrations", "error", err)
		os.Exit(1)
	}

	authSvc, err := auth.NewService(cfg.Auth.AdminPassword, cfg.Auth.Secret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Error("auth", "error", err)
		os.Exit(1)
	}

	listingRepo := repository.NewListingRepository(pool)
	registrationRepo := repository.NewRegistrationRepository(pool)
	dispatcher := notify.NewLogDispatcher(logger)

	listingSvc := service.NewListingService(listingRepo)
	registrationSvc := service.NewRegistrationService(
		listingRepo, registrationRepo, dispatcher, logger, cfg.Intake.RequireActive,
	)

	router := handler.NewRouter(handler.Config{
		Listings:      listingSvc,
		Registrations: registrationSvc,
		Auth:          authSvc,
		Logger:        logger,
		IntakeLimiter: rate.NewLimiter(rate.Limit(cfg.Intake.Rate), cfg.Intake.Burst),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in a background goroutine so we can listen for the shutdown signal.
	go func() {
		logger.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server", "error", err)
			os.Exit(1)
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracing shutdown failed", "error", err)
	}
	logger.Info("server stopped")
}
