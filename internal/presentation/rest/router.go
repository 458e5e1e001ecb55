package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kasicash/kasi/internal/auth"
)

// RouterConfig carries everything the router needs besides the handlers.
type RouterConfig struct {
	JWT            *auth.JWTService
	Health         *HealthHandler
	MetricsHandler http.Handler
	// Extra middleware applied to every request (request metrics).
	Instrument func(http.Handler) http.Handler
	RateLimit  *RateLimiter
	Logger     *slog.Logger
}

// NewRouter creates the chi router with all API routes mounted.
func NewRouter(h *Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggingMiddleware(cfg.Logger))
	r.Use(middleware.Recoverer)
	if cfg.Instrument != nil {
		r.Use(cfg.Instrument)
	}
	if cfg.RateLimit != nil {
		r.Use(RateLimitMiddleware(cfg.RateLimit))
	}

	cfg.Health.RegisterRoutes(r)
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/income/analyze", h.AnalyzeIncome)
		r.Post("/credit/check", h.CreditCheck)

		// Authenticated routes.
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(cfg.JWT))

			r.Post("/verification/score", h.ScoreVerification)
			r.Post("/applications", h.SubmitApplication)
			r.Get("/applications/{id}", h.GetApplication)
			r.Post("/applications/{id}/documents", h.UploadDocument)
			r.Post("/selfie/verify", h.VerifySelfie)

			// Back-office routes.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RoleAdmin, auth.RoleOfficer))

				r.Get("/applications", h.ListApplications)
				r.Post("/admin/applications/{id}/approve", h.ApproveApplication)
				r.Post("/admin/applications/{id}/reject", h.RejectApplication)
			})
		})
	})

	return r
}
