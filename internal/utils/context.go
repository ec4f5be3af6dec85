// Package utils provides general-purpose helper utilities
// used across different parts of the application.
// Includes tools for working with context, type-safe keys, secret
// comparison, HTTP request and response bodies, HTTP client initialization,
// admin JWT generation and validation, and request id generation.
package utils

import (
	"context"
)

// contextKey is a private type for context keys.
// Using a dedicated type instead of a plain string prevents key collisions
// with other packages that may use string-based keys in the context.
type contextKey string

// String returns the string representation of the context key.
// Implements the fmt.Stringer interface.
func (c contextKey) String() string {
	return string(c)
}

// AdminSubjectCtxKey is the key used to store the subject of a validated
// admin session in the context. The admin middleware sets it after the
// session cookie has been verified.
//
// Example of writing a value to the context:
//
//	ctx := context.WithValue(ctx, utils.AdminSubjectCtxKey, "admin")
var AdminSubjectCtxKey = contextKey("adminSubject")

// GetAdminSubjectFromContext retrieves the admin session subject from the
// context.
//
// Returns the subject and an ok flag:
//   - ok == true:  value is found, is a string and is not empty
//   - ok == false: value is missing or has an unexpected type
func GetAdminSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(AdminSubjectCtxKey).(string)
	return subject, ok && subject != ""
}
