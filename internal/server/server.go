// Package server exposes chat export parsing and statistics over HTTP.
// Uploaded exports are parsed once and kept in an in-memory Registry.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/ccollicutt/chatlens/internal/pipeline"
)

// Server serves the upload API.
type Server struct {
	router         *chi.Mux
	pipeline       *pipeline.Pipeline
	registry       *Registry
	logger         *zap.Logger
	addr           string
	maxUploadBytes int64

	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a server for the pipeline's configuration.
func NewServer(p *pipeline.Pipeline, registry *Registry, logger *zap.Logger) *Server {
	cfg := p.Config().Server

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(requestLogger(logger))
	router.Use(middleware.Recoverer)

	s := &Server{
		router:         router,
		pipeline:       p,
		registry:       registry,
		logger:         logger,
		addr:           cfg.Addr,
		maxUploadBytes: cfg.MaxUploadBytes,
	}

	router.Get("/health", s.health)
	router.Route("/api/v1/uploads", func(r chi.Router) {
		r.Post("/", s.createUpload)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getUpload)
			r.Delete("/", s.deleteUpload)
			r.Get("/report", s.getReport)
			r.Get("/records", s.getRecords)
		})
	})

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen binds the configured address.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	s.listener = ln
	return nil
}

// Addr returns the bound address, or the configured one before Listen.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Start serves requests on the bound listener. Blocks until stopped.
func (s *Server) Start() error {
	if s.listener == nil {
		if err := s.Listen(); err != nil {
			return err
		}
	}
	s.logger.Info("API server starting", zap.String("addr", s.Addr()))
	if err := s.httpServer.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("API server stopping")
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs one line per request with zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}
