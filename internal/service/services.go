package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/crypto"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/metrics"
	"github.com/MKhiriev/go-identity-portal/internal/store"
	"github.com/MKhiriev/go-identity-portal/internal/verifier"
	"github.com/MKhiriev/go-identity-portal/models"
)

type Services struct {
	IdentityService  IdentityService
	AdminService     AdminService
	AdminAuthService AdminAuthService
	UploadService    UploadService
	AppInfoService   AppInfoService
}

// Dependencies are the collaborators shared by the services.
type Dependencies struct {
	IdentityStore store.IdentityStore
	Cipher        crypto.FieldCipher
	Verifier      verifier.Verifier
	Metrics       *metrics.Metrics
	BuildInfo     models.AppBuildInfo
}

func NewServices(ctx context.Context, deps Dependencies, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	uploadService, err := NewUploadService(ctx, cfg.Uploads, logger)
	if err != nil {
		return nil, fmt.Errorf("error creating upload service: %w", err)
	}

	return &Services{
		IdentityService:  NewIdentityService(deps.IdentityStore, deps.Cipher, deps.Verifier, cfg.Verification, deps.Metrics, logger),
		AdminService:     NewAdminService(deps.IdentityStore, deps.Cipher, deps.Metrics, logger),
		AdminAuthService: NewAdminAuthService(cfg.App, logger),
		UploadService:    uploadService,
		AppInfoService:   NewAppInfoService(deps.BuildInfo, logger),
	}, nil
}
