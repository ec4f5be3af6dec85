package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/metrics"
	"github.com/MKhiriev/go-identity-portal/internal/validators"
	"github.com/MKhiriev/go-identity-portal/models"
)

// IdentityValidationService rejects registration payloads that fail the
// portal input rules before they reach the wrapped service.
type IdentityValidationService struct {
	inner     IdentityService
	validator validators.Validator
	metrics   *metrics.Metrics
}

func NewIdentityValidationService(m *metrics.Metrics) IdentityServiceWrapper {
	return &IdentityValidationService{
		validator: validators.NewRegistrationValidator(),
		metrics:   m,
	}
}

func (v *IdentityValidationService) Register(ctx context.Context, payload models.RegistrationPayload) (models.RegistrationResponse, error) {
	if err := v.validator.Validate(ctx, payload); err != nil {
		v.metrics.IncrementRegistration(metrics.OutcomeInvalid)
		logger.FromContext(ctx).Debug().Msg("registration payload rejected")
		return models.RegistrationResponse{}, fmt.Errorf("error during registration validation: %w", err)
	}

	return v.inner.Register(ctx, payload)
}

func (v *IdentityValidationService) Status(ctx context.Context, requestID string) (models.StatusResponse, error) {
	return v.inner.Status(ctx, requestID)
}

func (v *IdentityValidationService) Wrap(wrapper IdentityService) IdentityService {
	v.inner = wrapper
	return v
}
