// Package httpapi exposes the founder search over HTTP.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kitbuilder587/founder-finder/internal/agent"
	"github.com/kitbuilder587/founder-finder/internal/metrics"
	"github.com/kitbuilder587/founder-finder/internal/service"
)

const maxBodyBytes = 1 << 20

type Config struct {
	Port            int
	ShutdownTimeout time.Duration
}

type Deps struct {
	Finder    service.FinderService
	Assistant *agent.Assistant
	Logger    *zap.Logger
	Metrics   *metrics.Metrics
	// Gatherer для /metrics, nil - глобальный registry
	Gatherer prometheus.Gatherer
}

type Server struct {
	cfg       Config
	finder    service.FinderService
	assistant *agent.Assistant
	logger    *zap.Logger
	metrics   *metrics.Metrics
	gatherer  prometheus.Gatherer
	handler   http.Handler
}

func NewServer(cfg Config, deps Deps) *Server {
	if cfg.Port == 0 {
		cfg.Port = 8000
	}
	if cfg.ShutdownTimeout == 0 {
		cfg.ShutdownTimeout = 10 * time.Second
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	s := &Server{
		cfg:       cfg,
		finder:    deps.Finder,
		assistant: deps.Assistant,
		logger:    deps.Logger,
		metrics:   deps.Metrics,
		gatherer:  deps.Gatherer,
	}
	s.handler = s.recoverMiddleware(s.requestIDMiddleware(s.loggingMiddleware(corsMiddleware(s.routes()))))
	return s
}

// Handler returns the full middleware chain with all routes.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /api/find-founders", s.handleFindFounders)
	mux.HandleFunc("POST /search", s.handleLegacySearch)
	mux.HandleFunc("POST /api/agent", s.handleAgent)
	mux.Handle("GET /metrics", metrics.Handler(s.gatherer))

	return mux
}

// Run serves until ctx is cancelled, then shuts down within ShutdownTimeout.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.cfg.Port))
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server started", zap.String("addr", ln.Addr().String()))
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
