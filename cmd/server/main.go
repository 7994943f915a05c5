package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	httpapi "toolrental-charges/internal/api/http"
	"toolrental-charges/internal/app"
	"toolrental-charges/internal/config"
	"toolrental-charges/internal/logger"
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
	logger.Info("Starting tool rental charges server...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Catalog configuration", "source", cfg.Catalog.Source, "cache", cfg.Cache.Type)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog and cache are built once, before any request is served
	svc, closeCache, err := app.NewAgreementService(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize agreement service", "error", err)
		log.Fatalf("Failed to initialize agreement service: %v", err)
	}
	defer closeCache()

	srv := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           httpapi.NewRouter(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to stop HTTP server", "error", err)
		}
	}()

	logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Failed to serve HTTP", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
	logger.Info("Server stopped gracefully")
}
