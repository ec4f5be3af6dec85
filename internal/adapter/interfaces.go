// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the API client used by portalctl to talk to a
// running identity portal.
//
// The primary abstraction is [PortalClient]. The package ships an HTTP/REST
// implementation ([NewHTTPPortalClient]) built on resty. Admin calls reuse the
// session cookie set by [PortalClient.Login].
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrNotFound] for
// 404, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-identity-portal/models"
)

// PortalClient defines the operations portalctl performs against the portal.
type PortalClient interface {
	// Status returns the applicant-facing view of a request.
	Status(ctx context.Context, requestID string) (models.StatusResponse, error)

	// Login exchanges the admin portal key for a session cookie kept by the
	// client.
	Login(ctx context.Context, key string) error

	// Logout clears the admin session.
	Logout(ctx context.Context) error

	// List returns one page of masked records. Requires Login.
	List(ctx context.Context, query models.AdminListQuery) (models.AdminListResponse, error)

	// Update changes status and, optionally, infoRequired. Requires Login.
	Update(ctx context.Context, payload models.AdminUpdatePayload) (models.AdminUpdateResponse, error)

	// Version returns the server build info.
	Version(ctx context.Context) (ServerVersion, error)
}

// ServerVersion is the body of GET /api/version.
type ServerVersion struct {
	Version string `json:"version"`
	Date    string `json:"date"`
	Commit  string `json:"commit"`
}
