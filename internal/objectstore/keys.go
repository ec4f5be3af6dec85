package objectstore

import (
	"crypto/rand"
	"regexp"

	"github.com/oklog/ulid/v2"
)

// KeyPrefix is the folder of every uploaded ID image.
const KeyPrefix = "identity-uploads/"

const maxFilenameLength = 120

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// SanitizeFilename replaces every character outside [a-zA-Z0-9._-] with an
// underscore and truncates the result to 120 characters.
func SanitizeFilename(name string) string {
	safe := unsafeFilenameChars.ReplaceAllString(name, "_")
	if len(safe) > maxFilenameLength {
		safe = safe[:maxFilenameLength]
	}
	return safe
}

// NewObjectKey returns "identity-uploads/<ulid>-<sanitized filename>".
func NewObjectKey(filename string) string {
	return KeyPrefix + newID() + "-" + SanitizeFilename(filename)
}

// HealthCheckKey returns the key of a throwaway health check object.
func HealthCheckKey() string {
	return KeyPrefix + "healthcheck-" + newID() + ".txt"
}

func newID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}
