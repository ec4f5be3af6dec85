package store

import (
	"context"

	"github.com/MKhiriev/go-identity-portal/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/identity_store_mock.go -package=mock

// IdentityStore persists identity requests. Implementations are safe for
// concurrent use and give read-after-write visibility within one process.
type IdentityStore interface {
	// Save inserts or replaces the record with the same RequestID.
	Save(ctx context.Context, req models.IdentityRequest) error

	// Get returns ErrIdentityRequestNotFound when no record has requestID.
	Get(ctx context.Context, requestID string) (models.IdentityRequest, error)

	// List returns every record ordered by CreatedAt, then RequestID.
	List(ctx context.Context) ([]models.IdentityRequest, error)

	// UpdateStatus sets the status and refreshes UpdatedAt. Unknown ids are
	// ignored.
	UpdateStatus(ctx context.Context, requestID string, status models.IdentityStatus) error

	// SetInfoRequired sets the info-required flag and refreshes UpdatedAt.
	// Unknown ids are ignored.
	SetInfoRequired(ctx context.Context, requestID string, value bool) error

	Close() error
}

// ErrorClassificator decides whether a failed database operation may be
// retried.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
