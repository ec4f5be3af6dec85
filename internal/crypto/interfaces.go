// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto protects the sensitive fields of identity requests at rest.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/field_cipher_mock.go -package=mock

// FieldCipher encrypts and decrypts single string fields (SSN, DOB).
//
// Blobs are base64(nonce || tag || ciphertext) produced by AES-256-GCM with a
// 96-bit random nonce per call. Implementations are safe for concurrent use.
type FieldCipher interface {
	// Encrypt seals plaintext into a new blob. Two calls with the same input
	// return different blobs.
	Encrypt(plaintext string) (string, error)

	// Decrypt opens a blob produced by Encrypt with the same passphrase.
	// It returns ErrDecoding for malformed blobs and ErrIntegrity when the
	// authentication tag does not match.
	Decrypt(blob string) (string, error)
}
