package crypto

import "errors"

// Sentinel errors returned by the crypto package. Callers should match them
// with [errors.Is]; none of them ever carries plaintext, key material, or
// envelope bytes.
var (
	// ErrInvalidMasterKey is returned when the configured master key is
	// neither a base64-encoded 32-byte value nor a raw 32-byte string.
	// This error is fatal: the process must refuse to serve with a bad key.
	ErrInvalidMasterKey = errors.New("master key must be 32 bytes (base64 or raw)")

	// ErrMalformedEnvelope is returned when an envelope cannot even be
	// parsed into nonce, tag, and ciphertext (bad base64 or fewer than 28
	// bytes). No decryption is attempted in this case.
	ErrMalformedEnvelope = errors.New("malformed envelope")

	// ErrDecryptionFailed is returned when the authentication tag does not
	// verify. Wrong key, corrupted data, and truncation are deliberately not
	// distinguished to avoid giving callers an oracle.
	ErrDecryptionFailed = errors.New("envelope decryption failed")
)
