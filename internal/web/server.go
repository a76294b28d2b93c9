// Package web provides the HTTP server and JSON handlers for the
// StockSmart import and dashboard API.
package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/adyajasola/stocksmart/internal/analytics"
	"github.com/adyajasola/stocksmart/internal/config"
	"github.com/adyajasola/stocksmart/internal/core"
	"github.com/adyajasola/stocksmart/internal/report"
)

// Server is the HTTP server for the import and dashboard API.
type Server struct {
	store   core.Store
	reports *report.Sink
	engine  *analytics.Engine
	cfg     *config.Config
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a Server wired to the given collaborators.
func NewServer(store core.Store, reports *report.Sink, engine *analytics.Engine, cfg *config.Config) *Server {
	s := &Server{
		store:   store,
		reports: reports,
		engine:  engine,
		cfg:     cfg,
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.cfg.Server.RequestTimeout))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/", s.handleRoot)

	s.router.Route("/import", func(r chi.Router) {
		r.Post("/validate", s.handleValidate)
		r.Post("/commit", s.handleCommit)
		r.Get("/error-report/{reportID}", s.handleErrorReport)
	})

	s.router.Route("/dashboard", func(r chi.Router) {
		r.Get("/kpis", s.handleKPIs)
		r.Get("/alerts", s.handleAlerts)
	})
}

// Start begins listening for HTTP requests on the configured address.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         s.cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}
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
