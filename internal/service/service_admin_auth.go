package service

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-identity-portal/internal/config"
	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/utils"
	"github.com/MKhiriev/go-identity-portal/models"
)

const (
	// AdminTokenIssuer is the "iss" claim of admin session tokens.
	AdminTokenIssuer = "identity-portal"
	// AdminTokenSubject is the "sub" claim. Staff share one portal key, so
	// there is a single admin identity.
	AdminTokenSubject = "admin"
)

// adminAuthService is the concrete implementation of AdminAuthService.
// Tokens are HS256 JWTs signed with a key derived from the admin portal
// key, so rotating ADMIN_PORTAL_KEY invalidates every session.
type adminAuthService struct {
	// portalKey is the shared staff key. An empty key closes the admin area.
	portalKey string

	// signKey is SHA-256(portalKey).
	signKey []byte

	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAdminAuthService(cfg config.App, logger *logger.Logger) AdminAuthService {
	s := &adminAuthService{
		portalKey:     cfg.AdminPortalKey,
		tokenDuration: cfg.AdminSessionDuration,
		logger:        logger,
	}
	if s.portalKey != "" {
		s.signKey = utils.DeriveSigningKey(s.portalKey)
	}
	return s
}

// Login checks key against the portal key in constant time and issues a
// session token.
//
// Returns ErrUnauthorized when the key is wrong or no portal key is set.
func (s *adminAuthService) Login(ctx context.Context, key string) (models.AdminToken, error) {
	if s.portalKey == "" || !utils.ConstantTimeEqual(key, s.portalKey) {
		logger.FromContext(ctx).Warn().Msg("admin login rejected")
		return models.AdminToken{}, ErrUnauthorized
	}

	token, err := utils.GenerateJWTToken(AdminTokenIssuer, AdminTokenSubject, s.tokenDuration, s.signKey)
	if err != nil {
		return models.AdminToken{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a session token and returns its claims.
//
// Returns ErrUnauthorized for any invalid, expired or foreign token, and
// when no portal key is set.
func (s *adminAuthService) ParseToken(ctx context.Context, tokenString string) (models.AdminToken, error) {
	if s.portalKey == "" || tokenString == "" {
		return models.AdminToken{}, ErrUnauthorized
	}

	token, err := utils.ValidateAndParseJWTToken(tokenString, s.signKey, AdminTokenIssuer)
	if err != nil {
		logger.FromContext(ctx).Debug().Err(err).Msg("admin token rejected")
		return models.AdminToken{}, fmt.Errorf("%w: %w", ErrUnauthorized, err)
	}

	return token, nil
}

func (s *adminAuthService) SessionDuration() time.Duration {
	return s.tokenDuration
}
