// Package verifier holds the client of the external identity verification
// service. The current implementation is a stub that answers PENDING so
// staff review every request by hand.
package verifier

import (
	"context"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/models"
)

//go:generate mockgen -source=verifier.go -destination=../mock/verifier_mock.go -package=mock

// Verifier decides the automated status of a new identity request.
type Verifier interface {
	Verify(ctx context.Context, requestID string) (models.IdentityStatus, error)
}

type stubVerifier struct {
	baseURL string
	logger  *logger.Logger
}

// NewVerifier returns the stub verifier. baseURL is kept for the real
// client and is not called.
func NewVerifier(cfg config.Verification, log *logger.Logger) Verifier {
	return &stubVerifier{
		baseURL: cfg.BaseURL,
		logger:  log,
	}
}

func (v *stubVerifier) Verify(ctx context.Context, requestID string) (models.IdentityStatus, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	logger.FromContext(ctx).Debug().
		Str("requestId", requestID).
		Bool("configured", v.baseURL != "").
		Msg("verification stub answered PENDING")

	return models.StatusPending, nil
}
