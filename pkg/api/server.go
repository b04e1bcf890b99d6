// Package api serves a results file over HTTP.
//
// All routes except /metrics live under /api/v1 and require the X-API-Key
// header when a key is configured.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/ssargent/swmmout/pkg/output"
)

// Server holds the API server state. A Reader is not safe for concurrent use
// so every request takes mu before touching it.
type Server struct {
	mu        sync.Mutex
	reader    Reader
	snapshots SnapshotStore
	config    ServerConfig
	metrics   *Metrics
	logger    zerolog.Logger
}

// NewServer creates a new API server. snapshots and metrics may be nil.
func NewServer(reader Reader, snapshots SnapshotStore, config ServerConfig, metrics *Metrics, logger zerolog.Logger) *Server {
	s := &Server{
		reader:    reader,
		snapshots: snapshots,
		config:    config,
		metrics:   metrics,
		logger:    logger,
	}
	s.publishFileShape()
	return s
}

func (s *Server) publishFileShape() {
	if s.metrics == nil {
		return
	}
	_ = s.read("info", func(rd Reader) error {
		size, err := rd.ProjectSize()
		if err != nil {
			return err
		}
		periods, err := rd.Times(output.NumPeriods)
		if err != nil {
			return err
		}
		counts := make(map[string]int, len(size))
		for i, n := range size {
			counts[output.ElementType(i).String()] = n
		}
		s.metrics.SetFileShape(periods, counts)
		return nil
	})
}

// Routes builds the router
func (s *Server) Routes() http.Handler {
	origins := s.config.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Prometheus metrics endpoint (unprotected for scraping)
	r.Handle("/metrics", s.metrics.Handler())

	m := s.metrics
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(m.InstrumentAuthMiddleware(apiKeyMiddleware(s.config.APIKey)))

		r.Get("/health", m.InstrumentHandler("GET", "/api/v1/health", s.handleHealth))
		r.Get("/info", m.InstrumentHandler("GET", "/api/v1/info", s.handleInfo))

		// Results
		r.Get("/elements/{type}/{index}", m.InstrumentHandler("GET", "/api/v1/elements/{type}/{index}", s.handleElement))
		r.Get("/series/{type}/{index}", m.InstrumentHandler("GET", "/api/v1/series/{type}/{index}", s.handleSeries))
		r.Get("/attribute/{type}", m.InstrumentHandler("GET", "/api/v1/attribute/{type}", s.handleAttribute))
		r.Get("/result/{type}/{index}", m.InstrumentHandler("GET", "/api/v1/result/{type}/{index}", s.handleResult))

		// Snapshots
		r.Post("/snapshots", m.InstrumentHandler("POST", "/api/v1/snapshots", s.handleCreateSnapshot))
		r.Get("/snapshots", m.InstrumentHandler("GET", "/api/v1/snapshots", s.handleListSnapshots))
		r.Get("/snapshots/{id}", m.InstrumentHandler("GET", "/api/v1/snapshots/{id}", s.handleGetSnapshot))
		r.Get("/snapshots/{id}/{element}", m.InstrumentHandler("GET", "/api/v1/snapshots/{id}/{element}", s.handleGetSnapshotSeries))
	})

	return r
}

// StartServer serves the reader until ctx is cancelled, then shuts down
func StartServer(ctx context.Context, reader Reader, snapshots SnapshotStore, config ServerConfig, logger zerolog.Logger) error {
	server := NewServer(reader, snapshots, config, NewMetrics(), logger)

	addr := net.JoinHostPort(config.Bind, strconv.Itoa(config.Port))
	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Str("results", reader.Path()).Msg("starting swmmout API server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}
