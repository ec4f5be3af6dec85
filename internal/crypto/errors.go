package crypto

import "errors"

var (
	// ErrConfiguration is returned when the cipher was built without a passphrase.
	ErrConfiguration = errors.New("encryption key is missing")

	// ErrDecoding is returned when a blob is not valid base64 or is too short
	// to contain a nonce and a tag.
	ErrDecoding = errors.New("malformed encrypted blob")

	// ErrIntegrity is returned when GCM authentication fails: the blob was
	// tampered with or was sealed under a different key.
	ErrIntegrity = errors.New("encrypted blob failed integrity check")
)
