package handler

import (
	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/handler/http"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/metrics"
	"github.com/MKhiriev/go-identity-portal/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, cfg *config.StructuredConfig, m *metrics.Metrics, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.Server.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, m, logger)
	}

	if handlers.HTTP == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
