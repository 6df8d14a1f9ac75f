package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/prescrito/prescrito-api/config"
	"github.com/prescrito/prescrito-api/controller"
	"github.com/prescrito/prescrito-api/domain"
	"github.com/prescrito/prescrito-api/gemini"
	"github.com/prescrito/prescrito-api/health"
	"github.com/prescrito/prescrito-api/logging"
	"github.com/prescrito/prescrito-api/registry"
	"github.com/prescrito/prescrito-api/scheduler"
	"github.com/prescrito/prescrito-api/server"
	"github.com/prescrito/prescrito-api/store"
	"github.com/prescrito/prescrito-api/suggestions"
)

func main() {
	// Read the env variables; a missing .env is fine, the environment
	// may already carry everything.
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file loaded", "error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := logging.InitLogger(cfg.LogDir, cfg.LogLevel, cfg.LogRetentionWeeks); err != nil {
		logging.Error("Failed to initialize logger", "error", err)
		os.Exit(1)
	}

	st, err := store.Open(cfg.DataDir)
	if err != nil {
		logging.Error("Failed to open persistence store", "error", err)
		os.Exit(1)
	}

	ids := domain.UUIDGenerator{}
	generator := gemini.NewClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, ids)
	registryClient := registry.NewClient(cfg.CnesBaseURL, cfg.IbgeBaseURL)
	suggester := suggestions.NewDefaultIndex()

	ctrl, err := controller.New(st, generator, suggester, registryClient, ids)
	if err != nil {
		logging.Error("Failed to initialize controller", "error", err)
		os.Exit(1)
	}

	checker := health.NewChecker(ctrl, generator.BreakerState)
	srv := server.NewServer(cfg, ctrl, checker)

	sched := scheduler.NewScheduler(cfg.DataDir, cfg.BackupDir)
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	logging.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Server close error", "error", err)
	} else {
		logging.Info("Server exited gracefully")
	}
}
