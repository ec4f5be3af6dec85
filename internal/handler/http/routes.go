package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics)
	if len(h.allowedOrigins) > 0 {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.allowedOrigins,
			AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders:   []string{"Accept", "Content-Type", traceIDHeader},
			ExposedHeaders:   []string{traceIDHeader},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// prometheus handles its own compression
	router.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	router.Group(func(r chi.Router) {
		r.Use(withGZip)

		// public routes
		r.Get("/api/identity/status", h.status)
		r.Post("/api/uploads/presign", h.presignUpload)
		r.Get("/api/env-check", h.envCheck)
		r.Get("/api/version", h.getServerVersion)

		r.With(h.registerLimiter.Limit).Post("/api/identity/register", h.register)

		// admin session routes
		r.Group(func(r chi.Router) {
			r.Use(noCache)

			r.Post("/api/admin/login", h.adminLogin)
			r.Post("/api/admin/logout", h.adminLogout)

			r.Group(func(r chi.Router) {
				r.Use(h.adminOnly)

				r.Get("/api/identity/admin/list", h.adminList)
				r.Post("/api/identity/admin/update", h.adminUpdate)
				r.Post("/api/uploads/test", h.testUpload)
			})
		})
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
