package service

import (
	"context"
	"log/slog"

	"github.com/ravison1985/advamolsanap/internal/auth"
)

// AuthService gates the application behind a credential check and turns a
// successful login into a signed session token.
type AuthService struct {
	verifier auth.Verifier
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(verifier auth.Verifier, sessions *auth.SessionManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		verifier: verifier,
		sessions: sessions,
		logger:   logger,
	}
}

// Login verifies the credentials and starts a session.
// Any mismatch returns auth.ErrInvalidCredentials without detail.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *auth.Session, error) {
	s.logger.Info("Login request", "username", username)

	if username == "" || password == "" {
		return "", nil, auth.ErrInvalidCredentials
	}

	if err := s.verifier.Verify(ctx, username, password); err != nil {
		s.logger.Warn("Login failed", "username", username, "error", err)
		return "", nil, auth.ErrInvalidCredentials
	}

	token, session, err := s.sessions.Issue(username)
	if err != nil {
		s.logger.Error("Failed to issue session", "username", username, "error", err)
		return "", nil, err
	}

	s.logger.Info("User logged in", "username", username, "session_id", session.ID)
	return token, session, nil
}

// Authenticate resolves a session token into the session it represents.
func (s *AuthService) Authenticate(token string) (*auth.Session, error) {
	if token == "" {
		return nil, auth.ErrInvalidSession
	}
	return s.sessions.Validate(token)
}

// Logout ends the session carried by token.
func (s *AuthService) Logout(token string) {
	s.sessions.Revoke(token)
	s.logger.Info("Logout request")
}
