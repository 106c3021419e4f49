package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/marmos91/upcalld/internal/logger"
	"github.com/marmos91/upcalld/internal/telemetry"
	"github.com/marmos91/upcalld/pkg/api"
	"github.com/marmos91/upcalld/pkg/config"
	"github.com/marmos91/upcalld/pkg/fridge"
	"github.com/marmos91/upcalld/pkg/upcall"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the upcall dispatch service",
	Long: `Start the worker pool and the management HTTP server, then serve
until interrupted. Backends submit upcall tasks through the pool; the
management server exposes health probes, pool counters and Prometheus
metrics.`,
	RunE: runStart,
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Init(cfg.Logging); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	logger.Info("Starting upcalld",
		"version", Version,
		"commit", Commit,
		"workers", cfg.Fridge.Workers,
		"queue_size", cfg.Fridge.QueueSize)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// ===== Telemetry =====

	telemetryShutdown, err := telemetry.Init(ctx, cfg.Telemetry)
	if err != nil {
		logger.Warn("Failed to initialize telemetry, continuing without tracing", "error", err)
	} else {
		defer func() {
			if err := telemetryShutdown(context.Background()); err != nil {
				logger.Warn("Failed to shut down telemetry", "error", err)
			}
		}()
	}

	profilingShutdown, err := telemetry.InitProfiling(cfg.Profiling)
	if err != nil {
		logger.Warn("Failed to initialize profiling, continuing without it", "error", err)
	} else {
		defer func() {
			if err := profilingShutdown(); err != nil {
				logger.Warn("Failed to shut down profiling", "error", err)
			}
		}()
	}

	// ===== Metrics =====

	var gatherer prometheus.Gatherer
	if cfg.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		upcall.SetMetrics(upcall.NewMetrics(registry))
		gatherer = registry
	}

	// ===== Worker pool =====

	fr := fridge.New(cfg.Fridge)
	fr.Start(ctx)

	// ===== Management server =====

	serverErr := make(chan error, 1)
	if cfg.API.Enabled {
		server := api.NewServer(cfg.API, fr, gatherer)
		go func() {
			serverErr <- server.Start(ctx)
		}()
	}

	// ===== Signal handling =====

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Received signal, shutting down", "signal", sig.String())
	case err := <-serverErr:
		if err != nil {
			logger.Error("Management server failed", "error", err)
		}
	case <-ctx.Done():
	}

	cancel()

	fr.Stop(cfg.ShutdownTimeout)

	logger.Info("Shutdown complete", "tasks_completed", fr.Completed())
	return nil
}
