// Package server exposes inventory queries over HTTP as JSON message chunks.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sklad/ostatki"
	"github.com/sklad/ostatki/domain/model"
)

// Inventory is the query surface the server needs.
type Inventory interface {
	Ask(ctx context.Context, q model.Query) ([]string, error)
	Producers(ctx context.Context) ([]string, model.Outcome, error)
	RenderOptions() ostatki.RenderOptions
}

// Server is the HTTP front end of an Inventory.
type Server struct {
	inventory Inventory
	router    *chi.Mux
	server    *http.Server
	timeout   time.Duration
}

// NewServer creates a new Server instance. A zero timeout means 30 seconds per request.
func NewServer(inv Inventory, timeout time.Duration) *Server {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	s := &Server{
		inventory: inv,
		router:    chi.NewRouter(),
		timeout:   timeout,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.timeout))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/stock", s.handleStock)
		r.Get("/producers", s.handleProducers)
	})
}

// Start begins listening for HTTP requests.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      s.timeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	slog.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}
