package store

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKey(t *testing.T) {
	key, err := GenerateKey()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(key, "am_"))
	// 24 random bytes encode to 32 base64 characters.
	assert.Len(t, key, len("am_")+32)

	for _, r := range key[len("am_"):] {
		ok := r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		assert.True(t, ok, "key must be URL-safe, got %q", r)
	}
}

func TestGenerateKeyNeverRepeats(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		key, err := GenerateKey()
		require.NoError(t, err)
		require.False(t, seen[key], "generated key collided")
		seen[key] = true
	}
}
