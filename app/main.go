package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/leshawn-rice/grabaphone/app/api"
	"github.com/leshawn-rice/grabaphone/app/catalog"
	"github.com/leshawn-rice/grabaphone/app/cfg"
	"github.com/leshawn-rice/grabaphone/app/database"
	"github.com/leshawn-rice/grabaphone/app/device"
	"github.com/leshawn-rice/grabaphone/app/scraper"
	"github.com/leshawn-rice/grabaphone/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was requested
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting Grabaphone server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	configCache := catalog.NewConfigCache(appCfg.SourcesDir)
	if err := configCache.Run(); err != nil {
		slog.Error("Failed to load catalog sources", "dir", appCfg.SourcesDir, "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog sources loaded", "count", configCache.GetSourceCount())

	manufacturerRepo := database.NewManufacturerRepository(db)
	deviceRepo := database.NewDeviceRepository(db)
	specRepo := database.NewSpecRepository(db)
	apiKeyRepo := database.NewAPIKeyRepository(db)

	fetcher := scraper.NewFetcher(&http.Client{}, appCfg.UserAgent)
	catalogScraper := scraper.NewScraper()
	normalizer := device.NewNormalizer(device.NormalizerOptions{
		HorizonYears: appCfg.UnreleasedHorizonYears,
	})
	sanitizer := device.NewSanitizer()
	ranker := device.NewRanker()

	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount)
	scheduler := tasks.NewScheduler(configCache, fetcher, catalogScraper, normalizer,
		manufacturerRepo, deviceRepo, specRepo)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(configCache, manufacturerRepo, deviceRepo, specRepo,
		apiKeyRepo, sanitizer, ranker, normalizer)
	server := api.NewServer(apiHandler, appCfg.MasterKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
