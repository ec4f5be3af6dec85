// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators holds the input rules of the intake portal.
//
// The package exposes pure predicates (email, phone, SSN, DOB) and a
// [Validator] for whole registration payloads that reports every failing
// field at once.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {
	// Validate validates the provided input and optionally restricts the
	// reported failures to the named fields.
	Validate(context.Context, any, ...string) error
}
