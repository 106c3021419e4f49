// Package api provides the management HTTP server: health probes, pool
// counters and the Prometheus metrics endpoint.
package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/marmos91/upcalld/internal/logger"
	"github.com/marmos91/upcalld/pkg/fridge"
)

// Server is the management HTTP server. It is created stopped; Start blocks
// until the context is cancelled, then shuts down gracefully.
type Server struct {
	server       *http.Server
	config       Config
	shutdownOnce sync.Once
}

// NewServer creates a management server exposing health probes for the
// given fridge and metrics from the given gatherer (nil disables /metrics).
func NewServer(config Config, fr *fridge.Fridge, gatherer prometheus.Gatherer) *Server {
	config.applyDefaults()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      NewRouter(fr, gatherer),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
		IdleTimeout:  config.IdleTimeout,
	}

	return &Server{
		server: server,
		config: config,
	}
}

// Start serves until ctx is cancelled. Returns nil on graceful shutdown.
func (s *Server) Start(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("Management server listening", "port", s.config.Port)

		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
			}
		}
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown()
	case err := <-errChan:
		return fmt.Errorf("management server failed: %w", err)
	}
}

// Shutdown gracefully stops the server. Safe to call more than once.
func (s *Server) Shutdown() error {
	var err error
	s.shutdownOnce.Do(func() {
		logger.Info("Shutting down management server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err = s.server.Shutdown(shutdownCtx)
	})
	return err
}
