// Package ioweb provides the HTTP API of NutriGrade: product analysis by
// barcode or ingredients text, additive lookups, health and metrics.
// This is an impure I/O package.
package ioweb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nutrigrade/nutrigrade/pkg/engine"
	"github.com/nutrigrade/nutrigrade/pkg/product"
	"github.com/nutrigrade/nutrigrade/pkg/reftable"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// requestTimeout limits handling of one request, product lookups
	// included.
	requestTimeout = 30 * time.Second
	// shutdownTimeout is the time given to active requests on shutdown.
	shutdownTimeout = 10 * time.Second
)

// Server is the HTTP API.
type Server struct {
	port    int
	table   *reftable.Table
	engine  *engine.Engine
	fetcher product.Fetcher
	metrics *Metrics
	handler http.Handler
}

// New creates a server on the port. Fetcher can be nil, then analysis by
// barcode answers 502.
func New(port int, tbl *reftable.Table, fetcher product.Fetcher) *Server {
	res := &Server{
		port:    port,
		table:   tbl,
		engine:  engine.New(tbl),
		fetcher: fetcher,
		metrics: NewMetrics(),
	}
	res.handler = res.routes()
	return res
}

// Handler returns the root handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/health", s.handleHealth)
	r.Post("/analyze", s.handleAnalyze)
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/additives", s.handleAdditives)
		r.Get("/additives/{code}", s.handleAdditive)
	})
	r.Handle("/metrics", promhttp.HandlerFor(
		s.metrics.Registry(), promhttp.HandlerOpts{},
	))
	return r
}

// Serve listens on the port until the context is cancelled, then shuts
// down gracefully.
func (s *Server) Serve(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.port),
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting web service", "port", s.port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return ServerError(s.port, err)
	case <-ctx.Done():
	}

	slog.Info("Shutting down web service", "port", s.port)
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return ServerError(s.port, err)
	}
	return nil
}
