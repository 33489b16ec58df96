package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"
)

// NewHandle returns a fresh session handle.
func NewHandle() string {
	return uuid.NewString()
}

// NewAntiCSRFToken returns a random hex token bound to a session at creation.
func NewAntiCSRFToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("auth: generate anti-csrf token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// NewSessionToken returns a random session token and its SHA-256 hex hash.
// The raw token goes to the client; only the hash is persisted.
func NewSessionToken() (token, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("auth: generate session token: %w", err)
	}
	token = hex.EncodeToString(buf)
	return token, HashSessionToken(token), nil
}

// HashSessionToken returns a SHA-256 hash of the session token string, hex-encoded.
// Used for storing and comparing session tokens without storing the raw token.
func HashSessionToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// SessionTokenHashEqual performs constant-time comparison of the provided token's hash
// with the stored hash. Returns true only if they match.
func SessionTokenHashEqual(providedToken, storedHash string) bool {
	providedHash := HashSessionToken(providedToken)
	return subtle.ConstantTimeCompare([]byte(providedHash), []byte(storedHash)) == 1
}
