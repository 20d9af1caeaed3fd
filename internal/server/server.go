// Package server assembles the HTTP server: global middleware, operational
// endpoints and the JSON API.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/metrics"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options configures New.
type Options struct {
	Addr      string
	API       http.Handler
	DB        Pinger
	Logger    logger.Logger
	StartTime time.Time
}

// Server wraps the HTTP server and its dependencies.
type Server struct {
	http    *http.Server
	handler http.Handler
	logger  logger.Logger
}

// New builds the HTTP server (router, middlewares, route registration).
func New(opts Options) *Server {
	if opts.StartTime.IsZero() {
		opts.StartTime = time.Now()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog(opts.Logger))
	r.Use(middleware.Recoverer)
	r.Use(metrics.Instrument)

	r.Get("/healthz", healthz(opts.StartTime))
	r.Get("/readyz", readyz(opts.DB, opts.Logger))
	r.Handle("/metrics", promhttp.Handler())

	r.Mount("/", opts.API)

	s := &http.Server{
		Addr:              opts.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	return &Server{http: s, handler: r, logger: opts.Logger}
}

// Handler returns the fully assembled router.
func (s *Server) Handler() http.Handler { return s.handler }

// Start runs the HTTP server (blocks until error or shutdown).
func (s *Server) Start() error {
	s.logger.Infof("HTTP server listening on %s", s.http.Addr)
	err := s.http.ListenAndServe()
	// http.ErrServerClosed is expected on graceful shutdown.
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Stop gracefully shuts down the server with the provided context deadline.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("HTTP server shutting down...")
	return s.http.Shutdown(ctx)
}
