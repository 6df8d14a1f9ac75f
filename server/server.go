// Package server provides HTTP server management and lifecycle handling
// for the prescription API: setup, middleware configuration, route
// management and graceful shutdown.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prescrito/prescrito-api/config"
	"github.com/prescrito/prescrito-api/controller"
	"github.com/prescrito/prescrito-api/handlers"
	"github.com/prescrito/prescrito-api/health"
	"github.com/prescrito/prescrito-api/logging"
	"github.com/prescrito/prescrito-api/metrics"
)

// Server represents the HTTP server
type Server struct {
	server  *http.Server
	router  chi.Router
	ctrl    *controller.Controller
	checker *health.Checker
	config  *config.Config
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config, ctrl *controller.Controller, checker *health.Checker) *Server {
	router := chi.NewRouter()

	s := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 60 * time.Second, // generative calls are slow
			IdleTimeout:  60 * time.Second,
		},
		router:  router,
		ctrl:    ctrl,
		checker: checker,
		config:  cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures all middleware
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(RealIPMiddleware)
	s.router.Use(logging.LoggingMiddleware(logging.DefaultLoggingService.Logger))
	s.router.Use(middleware.RedirectSlashes)
	s.router.Use(middleware.Recoverer)
	s.router.Use(RequestSizeMiddleware(s.config))
	s.router.Use(RateLimitHandler)
	s.router.Use(metrics.Metrics)
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/suggestions/{query}", handlers.Suggest(s.ctrl))
	s.router.Get("/drug/{name}", handlers.SearchDrug(s.ctrl))
	s.router.Post("/interactions", handlers.CheckInteractions(s.ctrl))

	s.router.Get("/prescriptions", handlers.ListPrescriptions(s.ctrl))
	s.router.Post("/prescriptions", handlers.SavePrescription(s.ctrl))
	s.router.Post("/prescriptions/generate", handlers.GeneratePrescription(s.ctrl))
	s.router.Delete("/prescriptions/{id}", handlers.DeletePrescription(s.ctrl))
	s.router.Put("/prescriptions/{id}/folder", handlers.MovePrescription(s.ctrl))
	s.router.Get("/prescriptions/{id}/share", handlers.SharePrescription(s.ctrl))

	s.router.Get("/folders", handlers.ListFolders(s.ctrl))
	s.router.Post("/folders", handlers.CreateFolder(s.ctrl))
	s.router.Delete("/folders/{id}", handlers.DeleteFolder(s.ctrl))

	s.router.Get("/profile", handlers.GetProfile(s.ctrl))
	s.router.Put("/profile", handlers.SaveProfile(s.ctrl))
	s.router.Get("/registry/cnes/{code}", handlers.LookupCnes(s.ctrl))

	s.router.Get("/landing", handlers.GetLanding(s.ctrl))
	s.router.Post("/landing", handlers.MarkLanding(s.ctrl))

	s.router.Get("/health", s.checker.Handler())
	s.router.Handle("/metrics", promhttp.Handler())
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() chi.Router {
	return s.router
}

// Start begins listening. It blocks until the server stops.
func (s *Server) Start() error {
	logging.Info("Starting server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown attempts a graceful shutdown, force-closing on failure.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		logging.Error("Server forced to shutdown", "error", err)
		return s.server.Close()
	}
	return nil
}
