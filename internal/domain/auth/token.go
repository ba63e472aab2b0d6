package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// SessionTokenBytes is the entropy of a session token.
const SessionTokenBytes = 32

// GenerateSessionToken returns a random token and the hash to persist.
func GenerateSessionToken() (token, hash string, err error) {
	token, err = RandomString(SessionTokenBytes)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return token, HashToken(token), nil
}

// HashToken computes the hex SHA-256 of a token.
func HashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// RandomString returns n random bytes encoded as unpadded base64url.
func RandomString(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
