package store

import (
	"crypto/rand"
	"encoding/base64"
)

// GenerateKey returns a new API key value: 24 bytes from the CSPRNG,
// URL-safe base64 without padding, with a recognizable prefix.
func GenerateKey() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return "am_" + base64.RawURLEncoding.EncodeToString(b), nil
}
