package crypto

import (
	"bytes"
	"encoding/base64"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveMasterKey_Base64Encoded32Bytes(t *testing.T) {
	raw := bytes.Repeat([]byte{0x42}, MasterKeySize)
	configured := base64.StdEncoding.EncodeToString(raw)

	key, err := ResolveMasterKey(configured)
	require.NoError(t, err)
	assert.Equal(t, raw, key)
}

func TestResolveMasterKey_Raw32ByteString(t *testing.T) {
	configured := strings.Repeat("k", MasterKeySize)

	key, err := ResolveMasterKey(configured)
	require.NoError(t, err)
	assert.Equal(t, []byte(configured), key)
}

func TestResolveMasterKey_ValidBase64OfWrongLengthFallsBackToRaw(t *testing.T) {
	// 32 base64 characters decode to 24 bytes, so the base64 reading is
	// rejected and the raw 32-byte string wins — matching the documented
	// decoding order.
	configured := "AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"
	require.Len(t, configured, MasterKeySize)

	key, err := ResolveMasterKey(configured)
	require.NoError(t, err)
	assert.Equal(t, []byte(configured), key)
}

func TestResolveMasterKey_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		configured string
	}{
		{name: "empty", configured: ""},
		{name: "too short raw", configured: "short"},
		{name: "too long raw", configured: strings.Repeat("x", 45)},
		{name: "base64 of 16 bytes", configured: base64.StdEncoding.EncodeToString(make([]byte, 16))},
		{name: "base64 of 64 bytes", configured: base64.StdEncoding.EncodeToString(make([]byte, 64))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, err := ResolveMasterKey(tt.configured)
			assert.ErrorIs(t, err, ErrInvalidMasterKey)
			assert.Nil(t, key)
		})
	}
}
