package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"passportx/internal/config"
	"passportx/internal/extractor/openrouter"
	"passportx/internal/handler"
	"passportx/internal/logging"
	"passportx/internal/router"
	"passportx/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Setup(cfg.Log)
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if cfg.Provider.APIKey == "" {
		slog.Warn("provider API key not set; extraction requests will fail")
	}
	if cfg.Auth.AppKey == "" && cfg.Auth.AppKeyHash == "" {
		slog.Warn("app key not set; /api/v1/extract will reject every caller")
	}

	// Initialize the vision model client
	model := openrouter.NewClient(&cfg.Provider)

	// Initialize services
	extractionSvc := service.NewExtractionService(model)
	authSvc := service.NewAuthService(cfg.Auth)

	// Initialize handlers
	extractH := handler.NewExtractionHandler(extractionSvc)
	uiH := handler.NewUIHandler()
	healthH := handler.NewHealthHandler(cfg.Provider.APIKey != "")

	// Setup router
	r := router.Setup(authSvc, extractH, uiH, healthH, cfg.CORS.AllowedOrigins)

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "addr", cfg.Server.Port, "model", model.Model())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown failed: %w", err)
		}
		return nil
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}
}
