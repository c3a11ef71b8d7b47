// Package main initializes and starts the workshop API server, setting
// up configuration, logging, the storage backend, seed data, handlers
// and routing.
package main

import (
	"context"
	"fmt"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/afigueiredo/werkstatt/internal/config"
	"github.com/afigueiredo/werkstatt/internal/db"
	"github.com/afigueiredo/werkstatt/internal/logger"
	"github.com/afigueiredo/werkstatt/internal/repository"
	"github.com/afigueiredo/werkstatt/internal/server/handler/http"
	"github.com/afigueiredo/werkstatt/internal/service"
	"github.com/afigueiredo/werkstatt/internal/uploads"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	if version == "" {
		version = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	fmt.Printf("Build version: %s\n", version)
	fmt.Printf("Build date: %s\n", buildDate)

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init("Info"); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	if options.JWTSecret == "" {
		zapLogger.Fatal("JWT secret is not configured")
	}

	// Select the storage backend: PostgreSQL when a DSN is configured,
	// the in-memory store otherwise.
	var store repository.Storage
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			zapLogger.Fatal("cannot init database", zap.Error(err))
		}
		store = repository.NewPostgresStorage(postgresDB)
		zapLogger.Info("using postgres storage")
	} else {
		store = repository.NewMemStorage()
		zapLogger.Info("using in-memory storage")
	}

	// Seed demo data on first boot.
	ctx := context.Background()
	if err := repository.Seed(ctx, store, zapLogger); err != nil {
		zapLogger.Fatal("failed to seed store", zap.Error(err))
	}

	// Remove uploaded images no service references anymore.
	uploads.StartCleaner(ctx, store, options.UploadDir,
		time.Hour,    // interval
		24*time.Hour, // retention
		zapLogger,
	)

	// Authentication service and endpoint handlers.
	authService := service.NewAuthService(store, []byte(options.JWTSecret))
	handlers := http.Handlers{
		Auth:      &http.AuthHandler{Auth: authService},
		Clients:   &http.ClientHandler{Store: store},
		Vehicles:  &http.VehicleHandler{Store: store},
		Services:  &http.ServiceHandler{Store: store},
		Budgets:   &http.BudgetHandler{Store: store},
		Dashboard: &http.DashboardHandler{Store: store},
		Upload:    &http.UploadHandler{Dir: options.UploadDir},
	}

	// Build the router with middleware and routes.
	router := http.NewRouter(handlers, authService, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Address,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Address))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}
