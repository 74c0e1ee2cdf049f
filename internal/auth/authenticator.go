package auth

import (
	"context"
)

// Verifier defines the interface for credential verification.
// This abstraction allows swapping the check (a fixed single-user pair today,
// a user table or an external identity provider later) without changing the
// service or web layers.
type Verifier interface {
	// Verify checks a username and password pair.
	// Returns ErrInvalidCredentials if they do not match.
	Verify(ctx context.Context, username, password string) error
}
