// Package bootstrap handles application initialization and lifecycle for the
// content-manager service.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ustaweb/content-manager/internal/config"
	"github.com/ustaweb/content-manager/internal/logger"
	"github.com/ustaweb/content-manager/internal/profiling"
)

const shutdownTimeout = 10 * time.Second

// Start initializes every subsystem and serves until a shutdown signal.
func Start() error {
	// Phase 0: optional profiling
	profiling.StartPprofServer()
	profiler, err := profiling.Start("content-manager")
	if err != nil {
		return fmt.Errorf("failed to start profiler: %w", err)
	}
	defer func() { _ = profiler.Stop() }()

	// Phase 1: config and logger
	cfg, err := config.Load(config.GetConfigPath("config.yml"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Phase 2: document store
	contentStore, err := SetupStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to set up store: %w", err)
	}

	// Phase 3: optional event publisher
	publisher := SetupEventPublisher(cfg, log)

	// Phase 4: HTTP server
	server := SetupHTTPServer(cfg, contentStore, publisher, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error("Server error", logger.Error(err))
			return err
		}
	case <-ctx.Done():
		log.Info("Shutdown signal received")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		if err := <-errCh; err != nil {
			return err
		}
	}

	log.Info("Server exited")
	return nil
}
