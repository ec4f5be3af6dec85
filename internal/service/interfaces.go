package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-identity-portal/models"
)

// IdentityService runs the applicant side of the request lifecycle.
type IdentityService interface {
	// Register validates and stores a new request, then asks the verifier
	// for its first status.
	Register(ctx context.Context, payload models.RegistrationPayload) (models.RegistrationResponse, error)

	// Status returns the applicant-facing view of a request.
	Status(ctx context.Context, requestID string) (models.StatusResponse, error)
}

// AdminService runs the staff side of the request lifecycle.
type AdminService interface {
	List(ctx context.Context, query models.AdminListQuery) (models.AdminListResponse, error)
	Update(ctx context.Context, payload models.AdminUpdatePayload) (models.AdminUpdateResponse, error)
}

// AdminAuthService issues and checks admin session tokens.
type AdminAuthService interface {
	Login(ctx context.Context, key string) (models.AdminToken, error)
	ParseToken(ctx context.Context, tokenString string) (models.AdminToken, error)
	SessionDuration() time.Duration
}

// UploadService presigns ID image uploads and checks object storage.
type UploadService interface {
	Presign(ctx context.Context, req models.PresignRequest) (models.PresignResponse, error)
	HealthCheck(ctx context.Context) error
	EnvCheck(ctx context.Context) models.EnvCheckResponse
}

type AppInfoService interface {
	GetBuildInfo(ctx context.Context) models.AppBuildInfo
}

// IdentityServiceWrapper defines middleware composition for IdentityService.
// Implementations wrap an existing IdentityService to add behavior such as
// logging or validating.
type IdentityServiceWrapper interface {
	Wrap(IdentityService) IdentityService // returns a decorated IdentityService applying additional behavior
}
