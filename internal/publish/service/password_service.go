// Package service provides supporting services for the publish flow.
// Implements Argon2id password verification for the optional basic-auth gate.
package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/replydesk/internal/errors"
)

// PasswordService hashes and verifies publish basic-auth passwords. The
// configuration stores only the Argon2id hash, never the plain password.
type PasswordService interface {
	// Hash hashes a plain password for storage in configuration.
	Hash(plainPassword string) (string, error)

	// Verify performs a constant-time comparison between a plain password and
	// its stored hash.
	Verify(plainPassword string, hashedPassword string) bool
}

// passwordService implements PasswordService using Argon2id.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// Hash hashes a plain password using Argon2id.
func (s *passwordService) Hash(plainPassword string) (string, error) {
	hashedPassword, err := s.hasher.Hash([]byte(plainPassword))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hashedPassword, nil
}

// Verify performs a constant-time comparison between a plain password and its hash.
func (s *passwordService) Verify(plainPassword string, hashedPassword string) bool {
	ok, err := s.hasher.Verify([]byte(plainPassword), hashedPassword)
	if err != nil {
		return false
	}
	return ok
}

// NewPasswordService creates a new PasswordService instance using Argon2id
// hashing. Uses the Interactive policy since verification runs per request.
func NewPasswordService() PasswordService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyInteractive),
	)
	if err != nil {
		// This should never happen with valid policy
		panic(err)
	}

	return &passwordService{
		hasher: hasher,
	}
}
