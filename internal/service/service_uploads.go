package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/objectstore"
	"github.com/MKhiriev/go-identity-portal/models"
)

// PresignTTL is the lifetime of a presigned upload URL.
const PresignTTL = 300 * time.Second

const healthCheckBody = "healthcheck"

type uploadService struct {
	// objects is nil when object storage is not configured.
	objects       objectstore.ObjectStore
	cfg           config.Uploads
	publicBaseURL string

	logger *logger.Logger
}

// NewUploadService connects to R2 when cfg is complete. An incomplete cfg
// is not an error: the service answers ErrUploadsNotConfigured instead.
func NewUploadService(ctx context.Context, cfg config.Uploads, logger *logger.Logger) (UploadService, error) {
	var objects objectstore.ObjectStore
	if cfg.IsConfigured() {
		var err error
		objects, err = objectstore.NewR2Store(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("error creating object store: %w", err)
		}
	} else {
		logger.Warn().Strs("missing", cfg.Missing()).Msg("object storage is not configured, uploads are disabled")
	}

	return newUploadService(objects, cfg, logger), nil
}

func newUploadService(objects objectstore.ObjectStore, cfg config.Uploads, logger *logger.Logger) *uploadService {
	return &uploadService{
		objects:       objects,
		cfg:           cfg,
		publicBaseURL: strings.TrimRight(cfg.PublicBaseURL, "/"),
		logger:        logger,
	}
}

// Presign returns a PUT URL for a new object under identity-uploads/.
func (s *uploadService) Presign(ctx context.Context, req models.PresignRequest) (models.PresignResponse, error) {
	if s.objects == nil {
		return models.PresignResponse{}, ErrUploadsNotConfigured
	}
	if req.Filename == "" || req.ContentType == "" {
		return models.PresignResponse{}, ErrMissingUploadMetadata
	}

	key := objectstore.NewObjectKey(req.Filename)
	url, err := s.objects.PresignPut(ctx, key, req.ContentType, PresignTTL)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("upload could not be presigned")
		return models.PresignResponse{}, fmt.Errorf("presign upload: %w", err)
	}

	resp := models.PresignResponse{URL: url, Key: key}
	if s.publicBaseURL != "" {
		publicURL := s.publicBaseURL + "/" + key
		resp.PublicURL = &publicURL
	}
	return resp, nil
}

// HealthCheck writes and removes a small object to prove the credentials
// and bucket work.
func (s *uploadService) HealthCheck(ctx context.Context) error {
	if s.objects == nil {
		return ErrUploadsNotConfigured
	}

	key := objectstore.HealthCheckKey()
	if err := s.objects.Put(ctx, key, strings.NewReader(healthCheckBody), "text/plain"); err != nil {
		return fmt.Errorf("%w: %w", ErrUploadCheckFailed, err)
	}
	if err := s.objects.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: %w", ErrUploadCheckFailed, err)
	}

	logger.FromContext(ctx).Info().Msg("object storage check passed")
	return nil
}

func (s *uploadService) EnvCheck(_ context.Context) models.EnvCheckResponse {
	missing := s.cfg.Missing()
	return models.EnvCheckResponse{
		Missing: missing,
		OK:      len(missing) == 0,
	}
}
