package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest password bcrypt hashes in full.
const maxPasswordBytes = 72

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrMissingPassword    = errors.New("a password or password hash must be configured")
)

// Ensure StaticVerifier implements Verifier
var _ Verifier = (*StaticVerifier)(nil)

// StaticVerifier accepts exactly one configured username/password pair.
// The password is held only as a bcrypt hash.
type StaticVerifier struct {
	username string
	hash     []byte
}

// NewStaticVerifier creates a verifier for the given plain-text password.
func NewStaticVerifier(username, password string) (*StaticVerifier, error) {
	if password == "" {
		return nil, ErrMissingPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return &StaticVerifier{username: username, hash: hash}, nil
}

// NewStaticVerifierFromHash creates a verifier from a precomputed bcrypt hash.
func NewStaticVerifierFromHash(username, hash string) (*StaticVerifier, error) {
	if hash == "" {
		return nil, ErrMissingPassword
	}
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, fmt.Errorf("invalid password hash: %w", err)
	}

	return &StaticVerifier{username: username, hash: []byte(hash)}, nil
}

// Verify compares the pair for exact equality with the configured one.
func (v *StaticVerifier) Verify(ctx context.Context, username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.username)) == 1

	// Always run the hash comparison so a wrong username costs the same.
	passErr := bcrypt.CompareHashAndPassword(v.hash, []byte(password))

	// bcrypt only reads the first 72 bytes, so a longer input could match a
	// hash of its prefix. No configured password can be that long.
	tooLong := len(password) > maxPasswordBytes

	if !userOK || passErr != nil || tooLong {
		return ErrInvalidCredentials
	}
	return nil
}
