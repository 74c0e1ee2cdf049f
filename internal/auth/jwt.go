package auth

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidSession = errors.New("invalid or ended session")

// Session is the authenticated state of one browser session.
// It lives only for the request it was decoded for.
type Session struct {
	ID       string
	Username string
	IssuedAt time.Time
}

// Claims represents the claims carried in the session cookie.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// SessionManager signs and validates session cookies.
//
// Sessions do not expire; they end on logout. Logged-out session IDs are
// remembered so a copied cookie stops working too.
type SessionManager struct {
	secretKey []byte

	mu      sync.Mutex
	revoked map[string]struct{}
}

// NewSessionManager creates a session manager signing with secretKey.
// secretKey should be a strong random string (e.g., 32 bytes).
func NewSessionManager(secretKey string) *SessionManager {
	return &SessionManager{
		secretKey: []byte(secretKey),
		revoked:   make(map[string]struct{}),
	}
}

// Issue starts a new session for username and returns its signed token.
func (m *SessionManager) Issue(username string) (string, *Session, error) {
	session := &Session{
		ID:       uuid.New().String(),
		Username: username,
		IssuedAt: time.Now().Truncate(time.Second),
	}

	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       session.ID,
			Subject:  username,
			IssuedAt: jwt.NewNumericDate(session.IssuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign session: %w", err)
	}

	return tokenString, session, nil
}

// Validate parses a session token and returns the session if it is
// correctly signed and has not been ended.
func (m *SessionManager) Validate(tokenString string) (*Session, error) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	_, ended := m.revoked[claims.ID]
	m.mu.Unlock()
	if ended {
		return nil, ErrInvalidSession
	}

	session := &Session{ID: claims.ID, Username: claims.Username}
	if claims.IssuedAt != nil {
		session.IssuedAt = claims.IssuedAt.Time
	}
	return session, nil
}

// Revoke ends the session carried by tokenString. Invalid tokens are ignored.
func (m *SessionManager) Revoke(tokenString string) {
	claims, err := m.parse(tokenString)
	if err != nil {
		return
	}

	m.mu.Lock()
	m.revoked[claims.ID] = struct{}{}
	m.mu.Unlock()
}

func (m *SessionManager) parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			// Verify the signing method
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidSession
	}

	return claims, nil
}
