// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

package crypto

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testKey(t *testing.T) []byte {
	t.Helper()
	return bytes.Repeat([]byte{0xA7}, MasterKeySize)
}

func newTestCipher(t *testing.T) *EnvelopeCipher {
	t.Helper()
	c, err := NewEnvelopeCipher(testKey(t))
	require.NoError(t, err)
	return c
}

func TestNewEnvelopeCipher_RejectsWrongKeySize(t *testing.T) {
	for _, size := range []int{0, 16, 31, 33, 64} {
		_, err := NewEnvelopeCipher(make([]byte, size))
		assert.ErrorIs(t, err, ErrInvalidMasterKey, "key size %d", size)
	}
}

func TestSealOpen_RoundTrip(t *testing.T) {
	c := newTestCipher(t)

	tests := []struct {
		name      string
		plaintext []byte
	}{
		{name: "empty", plaintext: []byte{}},
		{name: "short", plaintext: []byte("Sup3r$ecret")},
		{name: "binary", plaintext: []byte{0x00, 0xFF, 0x10, 0x00, 0x7F}},
		{name: "long", plaintext: bytes.Repeat([]byte("credential "), 512)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			envelope, err := c.Seal(tt.plaintext)
			require.NoError(t, err)

			opened, err := c.Open(envelope)
			require.NoError(t, err)
			assert.Equal(t, tt.plaintext, opened)
		})
	}
}

func TestSeal_EmptyPlaintextProducesMinimalEnvelope(t *testing.T) {
	c := newTestCipher(t)

	envelope, err := c.Seal(nil)
	require.NoError(t, err)

	blob, err := base64.StdEncoding.DecodeString(envelope)
	require.NoError(t, err)
	assert.Len(t, blob, minEnvelopeSize)
}

func TestSeal_NonceIsNeverRepeated(t *testing.T) {
	c := newTestCipher(t)
	plaintext := []byte("same plaintext every time")

	seen := make(map[string]struct{}, 4096)
	for i := 0; i < 4096; i++ {
		envelope, err := c.Seal(plaintext)
		require.NoError(t, err)

		blob, err := base64.StdEncoding.DecodeString(envelope)
		require.NoError(t, err)

		nonce := string(blob[:NonceSize])
		if _, dup := seen[nonce]; dup {
			t.Fatalf("nonce repeated after %d seals", i)
		}
		seen[nonce] = struct{}{}
	}
}

func TestOpen_DetectsEverySingleBitFlip(t *testing.T) {
	c := newTestCipher(t)

	envelope, err := c.Seal([]byte("tamper-evident"))
	require.NoError(t, err)

	blob, err := base64.StdEncoding.DecodeString(envelope)
	require.NoError(t, err)

	for i := range blob {
		for bit := 0; bit < 8; bit++ {
			tampered := make([]byte, len(blob))
			copy(tampered, blob)
			tampered[i] ^= 1 << bit

			_, err := c.Open(base64.StdEncoding.EncodeToString(tampered))
			if !errors.Is(err, ErrDecryptionFailed) {
				t.Fatalf("byte %d bit %d: expected ErrDecryptionFailed, got %v", i, bit, err)
			}
		}
	}
}

func TestOpen_WrongKeyFailsClosed(t *testing.T) {
	c := newTestCipher(t)

	envelope, err := c.Seal([]byte("owner-only"))
	require.NoError(t, err)

	otherKey := bytes.Repeat([]byte{0x5C}, MasterKeySize)
	other, err := NewEnvelopeCipher(otherKey)
	require.NoError(t, err)

	plaintext, err := other.Open(envelope)
	assert.ErrorIs(t, err, ErrDecryptionFailed)
	assert.Nil(t, plaintext)
}

func TestOpen_RejectsMalformedEnvelopes(t *testing.T) {
	c := newTestCipher(t)

	tests := []struct {
		name     string
		envelope string
	}{
		{name: "not base64", envelope: "%%% definitely not base64 %%%"},
		{name: "empty", envelope: ""},
		{name: "too short", envelope: base64.StdEncoding.EncodeToString(make([]byte, minEnvelopeSize-1))},
		{name: "single byte", envelope: base64.StdEncoding.EncodeToString([]byte{0x01})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.Open(tt.envelope)
			assert.ErrorIs(t, err, ErrMalformedEnvelope)
		})
	}
}

func TestOpen_TruncatedCiphertextFailsAuthentication(t *testing.T) {
	c := newTestCipher(t)

	envelope, err := c.Seal([]byte("some longer plaintext value"))
	require.NoError(t, err)

	blob, err := base64.StdEncoding.DecodeString(envelope)
	require.NoError(t, err)

	// Still >= 28 bytes, so it parses, but the tag no longer matches.
	truncated := blob[:len(blob)-3]
	_, err = c.Open(base64.StdEncoding.EncodeToString(truncated))
	assert.ErrorIs(t, err, ErrDecryptionFailed)
}
