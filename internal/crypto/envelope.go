// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
)

const (
	// NonceSize is the AES-GCM nonce length in bytes (96 bits).
	NonceSize = 12

	// TagSize is the GCM authentication tag length in bytes (128 bits).
	TagSize = 16

	// minEnvelopeSize is the decoded length of an envelope wrapping an
	// empty plaintext: nonce plus tag, with zero ciphertext bytes.
	minEnvelopeSize = NonceSize + TagSize
)

// EnvelopeCipher performs authenticated encryption of secret values with a
// single 256-bit master key.
//
// Envelope layout (before base64): nonce (12 bytes) || tag (16 bytes) ||
// ciphertext. The external representation is a standard-base64 string, which
// is what the repository stores.
//
// Seal draws a fresh random nonce from the OS CSPRNG on every call. Nonce
// reuse under the same key breaks GCM confidentiality entirely; this is a
// hard invariant of the type, not an implementation detail.
type EnvelopeCipher struct {
	aead cipher.AEAD
}

// NewEnvelopeCipher constructs an [EnvelopeCipher] from a resolved master
// key. Returns [ErrInvalidMasterKey] if the key is not exactly 32 bytes.
func NewEnvelopeCipher(key []byte) (*EnvelopeCipher, error) {
	if len(key) != MasterKeySize {
		return nil, ErrInvalidMasterKey
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}

	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}

	return &EnvelopeCipher{aead: aead}, nil
}

// Seal encrypts plaintext and returns the base64 envelope string.
//
// An empty plaintext is valid and produces a 28-byte envelope that opens
// back to empty. Returns an error only if the random nonce read fails.
func (c *EnvelopeCipher) Seal(plaintext []byte) (string, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	// gcm.Seal appends the tag after the ciphertext; the envelope layout
	// wants it between nonce and ciphertext, so split and reorder.
	sealed := c.aead.Seal(nil, nonce, plaintext, nil)
	ciphertext, tag := sealed[:len(sealed)-TagSize], sealed[len(sealed)-TagSize:]

	blob := make([]byte, 0, NonceSize+len(sealed))
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// Open decodes and decrypts an envelope produced by [EnvelopeCipher.Seal].
//
// Envelopes that do not base64-decode or decode to fewer than 28 bytes are
// rejected with [ErrMalformedEnvelope] before any decryption is attempted.
// Authentication failure — wrong key, corrupted data, truncation — yields
// [ErrDecryptionFailed] with no partial plaintext.
func (c *EnvelopeCipher) Open(envelope string) ([]byte, error) {
	blob, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, ErrMalformedEnvelope
	}

	if len(blob) < minEnvelopeSize {
		return nil, ErrMalformedEnvelope
	}

	nonce := blob[:NonceSize]
	tag := blob[NonceSize:minEnvelopeSize]
	ciphertext := blob[minEnvelopeSize:]

	// Rebuild the ciphertext||tag ordering gcm.Open expects.
	sealed := make([]byte, 0, len(ciphertext)+TagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, ErrDecryptionFailed
	}

	return plaintext, nil
}
