// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Sentinel errors used by the admin session middleware. Callers can match
// against them with [errors.Is].
var (
	// ErrMissingAdminCookie is returned when the request carries no
	// admin_access cookie.
	ErrMissingAdminCookie = errors.New("missing `admin_access` cookie")

	// ErrTooManyRequests is returned when a client exceeds its rate limit.
	ErrTooManyRequests = errors.New("too many requests")
)
