package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jobsift/jobsift/app/api"
	"github.com/jobsift/jobsift/app/cfg"
	"github.com/jobsift/jobsift/app/database"
	"github.com/jobsift/jobsift/app/ingest"
	"github.com/jobsift/jobsift/app/normalize"
	"github.com/jobsift/jobsift/app/pipeline"
	"github.com/jobsift/jobsift/app/sources"
	"github.com/jobsift/jobsift/app/tasks"
)

func main() {
	// Load configuration from environment variables and command-line flags
	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	setupLogger(appConfig.Debug)

	slog.Info("Starting JobSift server...", "version", appConfig.Version)

	// Database connection
	slog.Info("Connecting to database...")
	db, err := database.NewConnection(
		appConfig.DBHost, appConfig.DBPort, appConfig.DBUser,
		appConfig.DBPassword, appConfig.DBName)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()
	slog.Info("Connected to database successfully")

	// Apply pending schema migrations
	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		log.Fatal("Failed to run migrations:", err)
	}
	slog.Info("Database migrations applied", "version", version, "dirty", dirty)

	// Load per-source configuration overlays
	slog.Info("Loading source configurations...", "dir", appConfig.SourcesDir)
	loader := sources.NewLoader(appConfig.SourcesDir)
	overlays, err := loader.LoadAll()
	if err != nil {
		log.Fatal("Failed to load source configurations:", err)
	}
	slog.Info("Loaded source configurations", "count", len(overlays))

	// Initialize core components
	jobRepo := database.NewJobRepository(db)
	normalizer := normalize.NewNormalizer()
	gateway := pipeline.NewGateway(normalizer, jobRepo)
	provider := ingest.NewInboxProvider(appConfig.InboxDir)

	// Initialize and start scheduler
	slog.Info("Starting background scheduler", "workers", appConfig.WorkerCount,
		"interval", appConfig.SchedulerInterval)
	batchScheduler := tasks.NewScheduler(provider, gateway, overlays)
	batchScheduler.Start()
	defer batchScheduler.Stop()

	// Initialize HTTP server
	apiHandler := api.NewHandler(jobRepo, overlays, batchScheduler)
	server := api.NewServer(apiHandler, appConfig.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appConfig.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	slog.Info("JobSift server started successfully")

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	// Graceful shutdown
	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	// Scheduler is stopped via defer
	slog.Info("JobSift server shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
