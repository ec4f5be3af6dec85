package utils

import "github.com/google/uuid"

// RequestIDPrefix starts every identity request id.
const RequestIDPrefix = "SCF-"

type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a time-ordered UUIDv7, or a random UUIDv4 if the clock
// source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}

// NewRequestID returns a fresh identity request id of the form
// "SCF-<uuid>".
func (g *UUIDGenerator) NewRequestID() string {
	return RequestIDPrefix + g.Generate()
}
