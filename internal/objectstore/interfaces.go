// Package objectstore presigns and checks uploads of ID images to an
// S3-compatible bucket (Cloudflare R2).
package objectstore

import (
	"context"
	"io"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/object_store_mock.go -package=mock

// ObjectStore is the subset of bucket operations the portal needs.
type ObjectStore interface {
	// PresignPut returns a URL that accepts one PUT of key with the given
	// content type until ttl elapses.
	PresignPut(ctx context.Context, key, contentType string, ttl time.Duration) (string, error)

	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Delete(ctx context.Context, key string) error
}
