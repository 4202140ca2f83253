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

	"github.com/joho/godotenv"

	"github.com/fholst/issue-digest/app/api"
	"github.com/fholst/issue-digest/app/cfg"
	"github.com/fholst/issue-digest/app/config"
	"github.com/fholst/issue-digest/app/database"
	"github.com/fholst/issue-digest/app/github"
	"github.com/fholst/issue-digest/app/tasks"
)

func main() {
	// Optional .env file for local development
	_ = godotenv.Load()

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
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting issue digest", "version", appCfg.Version)

	watch, err := config.Load(appCfg.WatchConfigPath)
	if err != nil {
		slog.Error("Failed to load watch configuration", "path", appCfg.WatchConfigPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Watching repository", "repository", watch.Repository, "home", watch.Home())

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open state database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run database migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	settingsRepo := database.NewSettingsStore(db)
	runRepo := database.NewRunStore(db)

	if len(watch.IgnoreIssues) > 0 {
		if err := settingsRepo.SeedIgnoredIssues(watch.IgnoreIssues); err != nil {
			slog.Error("Failed to seed ignored issues", "error", err)
			os.Exit(1)
		}
	}

	httpClient := &http.Client{Timeout: 60 * time.Second}
	client := github.NewClient(httpClient, appCfg.APIEndpoint, appCfg.Token, appCfg.UserAgent)

	if appCfg.Once {
		runOnce(watch, client, settingsRepo, runRepo)
		return
	}

	scheduler := tasks.NewScheduler(watch, client, settingsRepo, runRepo)
	slog.Info("Starting background scheduler", "workers", appCfg.WorkerCount, "interval", appCfg.SchedulerInterval)
	scheduler.Start()
	defer scheduler.Stop()

	apiHandler := api.NewHandler(watch, client, settingsRepo, runRepo, scheduler)
	server := api.NewServer(apiHandler, appCfg.APIAccessKey)

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

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}

// runOnce executes a single digest cycle in the foreground. Used by cron
// style deployments where no resident server is wanted.
func runOnce(watch *config.WatchConfig, client *github.Client,
	settingsRepo database.SettingsRepository, runRepo database.RunRepository) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	task := tasks.NewDigestTask(watch, client, settingsRepo, runRepo)
	if err := task.Execute(ctx); err != nil {
		slog.Error("Digest run failed", "error", err)
		os.Exit(1)
	}
}
