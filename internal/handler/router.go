package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	"github.com/maplegrovecc/communityhub/internal/auth"
	"github.com/maplegrovecc/communityhub/internal/model"
	"github.com/maplegrovecc/communityhub/internal/service"
)

// Config wires the router's dependencies.
type Config struct {
	Listings      *service.ListingService
	Registrations *service.RegistrationService
	Auth          *auth.Service
	Logger        *slog.Logger
	IntakeLimiter *rate.Limiter
}

// NewRouter builds the full API router: public listing reads and intake,
// admin-only mutation endpoints behind bearer auth.
func NewRouter(cfg Config) http.Handler {
	listings := NewListingHandler(cfg.Listings)
	registrations := NewRegistrationHandler(cfg.Registrations)
	login := NewAuthHandler(cfg.Auth)

	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer) // recover from panics, return 500
	r.Use(chimiddleware.RequestID) // attach request IDs
	r.Use(chimiddleware.RealIP)    // trust X-Forwarded-For
	r.Use(AccessLog(cfg.Logger))   // structured access log
	r.Use(CORS)                    // permissive CORS for the site and SPA

	r.Get("/health", HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", login.Login)

		for _, kind := range model.Kinds() {
			r.Route("/"+kind.Path(), func(r chi.Router) {
				r.Get("/", listings.List(kind))
				r.Get("/{id}", listings.Get(kind))

				r.Group(func(r chi.Router) {
					r.Use(cfg.Auth.RequireAdmin)
					r.Post("/", listings.Create(kind))
					r.Patch("/{id}", listings.Update(kind))
					r.Delete("/{id}", listings.Delete(kind))
				})
			})
		}

		r.Route("/registrations", func(r chi.Router) {
			r.With(Throttle(cfg.IntakeLimiter)).Post("/", registrations.Create)

			r.Group(func(r chi.Router) {
				r.Use(cfg.Auth.RequireAdmin)
				r.Get("/", registrations.List)
				r.Get("/{id}", registrations.Get)
				r.Patch("/{id}", registrations.Update)
				r.Delete("/{id}", registrations.Delete)
				r.Post("/{id}/archive", registrations.Archive)
				r.Post("/{id}/unarchive", registrations.Unarchive)
			})
		})
	})

	return r
}
