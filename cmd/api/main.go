package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gangulr/finace/internal/config"
	"github.com/Gangulr/finace/internal/database"
	"github.com/Gangulr/finace/internal/logger"
	"github.com/Gangulr/finace/internal/middleware"
	"github.com/Gangulr/finace/internal/router"
	"github.com/Gangulr/finace/internal/validator"

	_ "github.com/Gangulr/finace/internal/docs" // Import swagger docs
)

// @title           Finace API
// @version         1.0
// @description     Finace tracks budgets, expenses and incomes per user.

// @host      localhost:3000
// @BasePath  /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

const shutdownTimeout = 10 * time.Second

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logger.SetLevel(cfg.LogLevel); err != nil {
		return err
	}
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open the record store
	backend, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open %s store: %w", cfg.StoreDriver, err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := backend.Close(closeCtx); err != nil {
			log.Errorw("failed to close store", "error", err)
		}
	}()
	log.Infow("Store ready", "driver", cfg.StoreDriver)

	validator.Register()

	loc := cfg.Location
	handler := router.New(router.Options{
		Stores:          backend.Stores,
		Health:          backend,
		Tokens:          middleware.NewTokenManager(cfg.JWTSecret, cfg.JWTExpirationDur),
		Clock:           func() time.Time { return time.Now().In(loc) },
		RequireAuth:     cfg.RequireAuth,
		SecureCookie:    cfg.Env == "production",
		CORSOrigin:      cfg.CORSOrigin,
		AuthRateLimit:   cfg.AuthRateLimit,
		MetricsAPIKey:   cfg.MetricsAPIKey,
		SummaryCacheTTL: cfg.SummaryCacheTTL,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infof("Starting Finace backend server on port %s", cfg.Port)
		log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
