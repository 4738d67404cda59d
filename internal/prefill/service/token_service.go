// Package service provides token generation for prefill handoff records.
package service

import (
	"crypto/rand"
	"encoding/base64"

	apperrors "github.com/allisson/replydesk/internal/errors"
)

// tokenBytes is the entropy of a handoff token. 18 bytes encode to a
// 24-character URL-safe string; collisions are negligible at this size.
const tokenBytes = 18

// TokenService generates opaque handoff tokens.
type TokenService interface {
	// GenerateToken creates a new cryptographically secure random token.
	GenerateToken() (string, error)
}

// tokenService implements TokenService using crypto/rand.
type tokenService struct{}

// GenerateToken creates a new URL-safe random token without padding, so it
// can be embedded in links and query strings unescaped.
func (t *tokenService) GenerateToken() (string, error) {
	randomBytes := make([]byte, tokenBytes)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", apperrors.Wrap(err, "failed to generate random token")
	}
	return base64.RawURLEncoding.EncodeToString(randomBytes), nil
}

// NewTokenService creates a new TokenService instance.
func NewTokenService() TokenService {
	return &tokenService{}
}
