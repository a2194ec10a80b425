// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rodrigo Lozano

// Package crypto implements the vault's envelope encryption: resolution of
// the process-wide master key and authenticated sealing/opening of secret
// values with AES-256-GCM.
//
// The master key is resolved once at startup and held only in memory for the
// process lifetime. Nothing in this package writes plaintext, key bytes, or
// envelope bytes to logs or error messages.
package crypto

import (
	"encoding/base64"
)

// MasterKeySize is the required master key length in bytes (AES-256).
const MasterKeySize = 32

// ResolveMasterKey interprets the configured master key secret.
//
// Decoding order: the value is first tried as standard base64; if the decoded
// result is not exactly 32 bytes, the raw string itself is interpreted as
// UTF-8 bytes. If neither interpretation yields exactly 32 bytes,
// [ErrInvalidMasterKey] is returned.
//
// Callers must treat a failure here as fatal at process start rather than
// deferring it to first use — a vault must never come up half-operational
// with an invalid key.
func ResolveMasterKey(configured string) ([]byte, error) {
	if decoded, err := base64.StdEncoding.DecodeString(configured); err == nil && len(decoded) == MasterKeySize {
		return decoded, nil
	}

	if raw := []byte(configured); len(raw) == MasterKeySize {
		return raw, nil
	}

	return nil, ErrInvalidMasterKey
}
