package http

import (
	"golang.org/x/time/rate"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/metrics"
	"github.com/MKhiriev/go-identity-portal/internal/service"
	"github.com/MKhiriev/go-identity-portal/internal/workers"
)

type Handler struct {
	services *service.Services
	metrics  *metrics.Metrics

	registerLimiter *RateLimiter
	allowedOrigins  []string
	secureCookies   bool

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, m *metrics.Metrics, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:        services,
		metrics:         m,
		registerLimiter: NewRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst),
		allowedOrigins:  cfg.Server.AllowedOrigins,
		secureCookies:   cfg.App.IsProduction(),
		logger:          logger,
	}
}

// Workers returns the background jobs the handler needs running.
func (h *Handler) Workers() []workers.Worker {
	return []workers.Worker{h.registerLimiter}
}
