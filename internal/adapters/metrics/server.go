package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/cozyhearth-go/internal/domain/shared"
	"github.com/andrescamacho/cozyhearth-go/internal/infrastructure/config"
)

// Server exposes a registry over HTTP for Prometheus to scrape
type Server struct {
	server *http.Server
	logger shared.Logger
}

// NewServer creates a metrics server for the configured host, port and path
func NewServer(cfg config.MetricsConfig, gatherer prometheus.Gatherer, logger shared.Logger) *Server {
	path := cfg.Path
	if path == "" {
		path = "/metrics"
	}

	mux := http.NewServeMux()
	mux.Handle(path, promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	return &Server{
		server: &http.Server{
			Addr:              cfg.Address(),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: shared.LoggerOrNoOp(logger),
	}
}

// Addr returns the listen address
func (s *Server) Addr() string {
	return s.server.Addr
}

// Start binds the listener and serves in the background
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.server.Addr, err)
	}
	s.server.Addr = listener.Addr().String()

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Log(shared.LevelError, "Metrics server stopped", map[string]interface{}{
				"addr":  s.server.Addr,
				"error": err.Error(),
			})
		}
	}()

	s.logger.Log(shared.LevelInfo, "Metrics server listening", map[string]interface{}{
		"addr": s.server.Addr,
	})
	return nil
}

// Shutdown stops the server, waiting for in-flight scrapes up to the context deadline
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
