package router

import (
	"net/http"

	"github.com/clinicavoz/voice-scheduler/internal/http/handlers"
	httpmiddleware "github.com/clinicavoz/voice-scheduler/internal/http/middleware"
	"github.com/clinicavoz/voice-scheduler/pkg/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	TurnHandler    *handlers.TurnHandler
	DoctorsHandler *handlers.DoctorsHandler
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", cfg.TurnHandler.HealthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/v1", func(v1 chi.Router) {
		v1.Post("/turns", cfg.TurnHandler.HandleTurn)
		v1.Get("/doctors", cfg.DoctorsHandler.ListDoctors)
	})

	return r
}
