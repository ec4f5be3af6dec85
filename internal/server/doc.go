// Package server wires and runs the portal's HTTP server.
//
// It owns the listener lifecycle: startup, background workers, signal
// handling and graceful shutdown bounded by the configured timeout.
package server
