// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/crypto/scrypt"
)

const (
	keySalt   = "identity-portal-salt"
	keyLength = 32
	nonceSize = 12
	tagSize   = 16

	// scrypt cost parameters. Blobs written by older deployments were sealed
	// with N=16384, r=8, p=1, so these must not change.
	scryptN = 16384
	scryptR = 8
	scryptP = 1
)

// aesFieldCipher is the AES-256-GCM implementation of [FieldCipher].
type aesFieldCipher struct {
	aead cipher.AEAD
	err  error
}

// NewFieldCipher derives the field key from passphrase with scrypt and
// returns a ready [FieldCipher].
//
// An empty passphrase does not fail here: the returned cipher reports
// [ErrConfiguration] on every call, so development setups without a key can
// still start and serve read-only endpoints. Production startup rejects an
// empty key earlier, in config validation.
func NewFieldCipher(passphrase string) (FieldCipher, error) {
	if passphrase == "" {
		return &aesFieldCipher{err: ErrConfiguration}, nil
	}

	key, err := scrypt.Key([]byte(passphrase), []byte(keySalt), scryptN, scryptR, scryptP, keyLength)
	if err != nil {
		return nil, fmt.Errorf("derive key: %w", err)
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &aesFieldCipher{aead: aead}, nil
}

// Encrypt implements [FieldCipher].
func (c *aesFieldCipher) Encrypt(plaintext string) (string, error) {
	if c.err != nil {
		return "", c.err
	}

	nonce := make([]byte, nonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// Seal returns ciphertext || tag; the stored layout puts the tag first.
	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ct, tag := sealed[:len(sealed)-tagSize], sealed[len(sealed)-tagSize:]

	blob := make([]byte, 0, nonceSize+tagSize+len(ct))
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, ct...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Decrypt implements [FieldCipher].
func (c *aesFieldCipher) Decrypt(blob string) (string, error) {
	if c.err != nil {
		return "", c.err
	}

	raw, err := base64.StdEncoding.DecodeString(blob)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrDecoding, err)
	}
	if len(raw) < nonceSize+tagSize {
		return "", fmt.Errorf("%w: blob too short", ErrDecoding)
	}

	nonce := raw[:nonceSize]
	tag := raw[nonceSize : nonceSize+tagSize]
	ct := raw[nonceSize+tagSize:]

	sealed := make([]byte, 0, len(ct)+tagSize)
	sealed = append(sealed, ct...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrIntegrity
	}

	return string(plaintext), nil
}
