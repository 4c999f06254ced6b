// Package server is the HTTP surface of staticd.
//
// The request-accepting layer never touches the disk: every file read and
// every gzip pass is dispatched to a fixed worker pool and awaited through
// a future, so acceptance stays responsive while loads are in flight.
// Responses for distinct requests complete in whatever order their loads
// finish.
package server

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/marmos91/staticd/internal/logger"
	"github.com/marmos91/staticd/internal/ratelimit"
	"github.com/marmos91/staticd/pkg/config"
	"github.com/marmos91/staticd/pkg/loader"
	"github.com/marmos91/staticd/pkg/metrics"
	"github.com/marmos91/staticd/pkg/pool"
)

// Server serves files beneath a fixed root directory.
//
// Construct with New, then call Serve. The worker pool is shared state
// constructed at startup and passed in explicitly; Server never creates or
// closes it.
type Server struct {
	cfg     *config.Config
	root    string
	pool    *pool.Pool[*loader.File]
	loader  *loader.Loader
	limiter *ratelimit.Limiter
	metrics metrics.HTTPMetrics

	router     *chi.Mux
	httpServer *http.Server
}

// New creates a Server from configuration and an already-running worker
// pool. The serve root is made absolute once here and is immutable for the
// server's lifetime.
func New(cfg *config.Config, p *pool.Pool[*loader.File], m metrics.HTTPMetrics) (*Server, error) {
	root, err := filepath.Abs(cfg.Serve.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root %q: %w", cfg.Serve.Root, err)
	}

	if m == nil {
		m = metrics.NewNoopHTTPMetrics()
	}

	s := &Server{
		cfg:     cfg,
		root:    root,
		pool:    p,
		loader:  loader.New(cfg.Compression.MinSize),
		metrics: m,
	}

	s.router = chi.NewRouter()
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(requestID)
	s.router.Use(s.instrument)
	if cfg.RateLimit.RequestsPerSecond > 0 {
		s.limiter = ratelimit.New(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		s.router.Use(s.rateLimit)
	}

	s.router.MethodNotAllowed(s.handleMethodNotAllowed)
	s.router.Get("/*", s.handleGet)

	s.httpServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	return s, nil
}

// Root returns the absolute directory being served.
func (s *Server) Root() string {
	return s.root
}

// Handler returns the router, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Serve listens on the configured address and serves until the context is
// cancelled, then shuts down gracefully within the configured timeout.
func (s *Server) Serve(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("Serving %s at http://%s", s.root, s.cfg.Address())

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			select {
			case errChan <- err:
			default:
			}
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("Server shutdown signal received")
		// The cancelled ctx would abort Shutdown immediately; drain on a
		// fresh deadline instead.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown error: %w", err)
		}
		logger.Info("Server stopped gracefully")
		return nil
	case err := <-errChan:
		return fmt.Errorf("server failed: %w", err)
	}
}
