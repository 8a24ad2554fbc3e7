// Package api wires the chi router, middleware stack and handlers.
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/fastbreakhq/fastbreak/internal/api/handler"
	"github.com/fastbreakhq/fastbreak/internal/config"
)

// NewRouter creates and configures the chi router with all middleware and
// routes.
func NewRouter(h *handler.Handler, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip; SSE responses negotiate their own encoding

	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	r.Get("/", h.Root)

	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/stats", func(r chi.Router) {
			r.Get("/", h.GetStats)
			r.Get("/teams", h.GetTeams)
			r.Get("/positions", h.GetPositions)
			r.Patch("/{id}/draft", h.SetDrafted)
		})

		r.Route("/news", func(r chi.Router) {
			r.Get("/", h.GetNews)
			r.Get("/status", h.GetNewsStatus)
		})

		r.Post("/chat", h.Chat)
	})

	return r
}
