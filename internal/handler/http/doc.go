// Package http implements the HTTP transport layer of the identity portal.
//
// It exposes route wiring, request handlers, and middleware used by the JSON
// API. Cross-cutting concerns such as admin sessions, request tracing,
// access logging, rate limiting, metrics and response compression are
// handled in this package before requests are delegated to the service
// layer.
//
// Handlers log only request ids, timestamps and status transitions.
// Payload contents never reach the log.
package http
