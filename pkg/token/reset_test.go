package token

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResetToken(t *testing.T) {
	raw, digest, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, raw, 64)
	assert.Len(t, digest, 64)
	assert.NotEqual(t, raw, digest)

	_, err = hex.DecodeString(raw)
	assert.NoError(t, err)

	assert.Equal(t, HashResetToken(raw), digest)
}

func TestNewResetToken_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		raw, _, err := NewResetToken()
		require.NoError(t, err)

		_, dup := seen[raw]
		require.False(t, dup, "reset tokens must not repeat")
		seen[raw] = struct{}{}
	}
}

func TestHashResetToken(t *testing.T) {
	sum := sha256.Sum256([]byte("some-raw-token"))
	assert.Equal(t, hex.EncodeToString(sum[:]), HashResetToken("some-raw-token"))

	assert.NotEqual(t, HashResetToken("token-a"), HashResetToken("token-b"))
}
