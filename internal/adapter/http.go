package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/go-identity-portal/internal/logger"
	"github.com/MKhiriev/go-identity-portal/internal/utils"
	"github.com/MKhiriev/go-identity-portal/models"
)

type httpPortalClient struct {
	client *utils.HTTPClient
	logger *logger.Logger
}

// NewHTTPPortalClient constructs an HTTP/REST implementation of
// [PortalClient]. It normalises and validates address and configures the
// underlying client with the resolved base URL and request timeout.
//
// Returns an error if address is empty or cannot be parsed as a valid URL.
func NewHTTPPortalClient(address string, timeout time.Duration, logger *logger.Logger) (PortalClient, error) {
	baseURL, err := normalizeBaseURL(address)
	if err != nil {
		return nil, fmt.Errorf("invalid portal address: %w", err)
	}

	return &httpPortalClient{
		client: utils.NewHTTPClient(baseURL, timeout),
		logger: logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Status implements [PortalClient]. GET /api/identity/status?requestId=...
func (h *httpPortalClient) Status(ctx context.Context, requestID string) (models.StatusResponse, error) {
	var status models.StatusResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetQueryParam("requestId", requestID).
		SetResult(&status).
		Get("/api/identity/status")
	if err != nil {
		return models.StatusResponse{}, fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StatusResponse{}, err
	}

	return status, nil
}

// Login implements [PortalClient]. The session cookie set by
// POST /api/admin/login stays in the client's cookie jar.
func (h *httpPortalClient) Login(ctx context.Context, key string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(models.AdminLoginPayload{Key: key}).
		Post("/api/admin/login")
	if err != nil {
		return fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.logger.Debug().Msg("admin session established")
	return nil
}

// Logout implements [PortalClient].
func (h *httpPortalClient) Logout(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Post("/api/admin/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	return mapHTTPError(resp)
}

// List implements [PortalClient]. Zero-valued filters are not sent, so the
// server applies its defaults.
func (h *httpPortalClient) List(ctx context.Context, query models.AdminListQuery) (models.AdminListResponse, error) {
	var page models.AdminListResponse

	req := h.client.R().
		SetContext(ctx).
		SetResult(&page)
	if query.Status != "" {
		req.SetQueryParam("status", string(query.Status))
	}
	if query.Query != "" {
		req.SetQueryParam("q", query.Query)
	}
	if query.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		req.SetQueryParam("pageSize", strconv.Itoa(query.PageSize))
	}

	resp, err := req.Get("/api/identity/admin/list")
	if err != nil {
		return models.AdminListResponse{}, fmt.Errorf("list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AdminListResponse{}, err
	}

	return page, nil
}

// Update implements [PortalClient].
func (h *httpPortalClient) Update(ctx context.Context, payload models.AdminUpdatePayload) (models.AdminUpdateResponse, error) {
	var updated models.AdminUpdateResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&updated).
		Post("/api/identity/admin/update")
	if err != nil {
		return models.AdminUpdateResponse{}, fmt.Errorf("update request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AdminUpdateResponse{}, err
	}

	return updated, nil
}

// Version implements [PortalClient].
func (h *httpPortalClient) Version(ctx context.Context) (ServerVersion, error) {
	var version ServerVersion

	resp, err := h.client.R().
		SetContext(ctx).
		SetResult(&version).
		Get("/api/version")
	if err != nil {
		return ServerVersion{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return ServerVersion{}, err
	}

	return version, nil
}
