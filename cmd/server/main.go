package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/demobank/ledger/infra/initializer"
	"github.com/demobank/ledger/pkg/app"
	"github.com/demobank/ledger/pkg/config"
	"github.com/demobank/ledger/webapi"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	// Initialize all dependencies
	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			deps.Logger.Error("failed to close dependencies", "error", err)
		}
	}()
	logger := deps.Logger

	// Setup Fiber app with all routes and middleware
	fiberApp := webapi.SetupApp(app.New(deps, cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("server shutdown failed", "error", err)
		}
	}()

	// Start the server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		slog.String("env", cfg.Env),
		slog.String("address", addr),
		slog.String("scheme", cfg.Server.Scheme),
	)
	return fiberApp.Listen(addr)
}
