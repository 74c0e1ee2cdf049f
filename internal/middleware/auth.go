package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ravison1985/advamolsanap/internal/auth"
)

const (
	// SessionCookie is the name of the cookie carrying the session token.
	SessionCookie = "session"

	sessionKey = "session"
	loginPath  = "/login"
)

// SessionAuthenticator resolves a session token into a session.
type SessionAuthenticator interface {
	Authenticate(token string) (*auth.Session, error)
}

// SessionFrom returns the session placed on the request by RequireSession,
// or nil before authentication.
func SessionFrom(c echo.Context) *auth.Session {
	s, _ := c.Get(sessionKey).(*auth.Session)
	return s
}

// RequireSession returns a middleware that only lets requests with a valid
// session cookie through. Anything else is sent to the login page.
func RequireSession(authenticator SessionAuthenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			session, err := authenticator.Authenticate(cookie.Value)
			if err != nil {
				ClearSessionCookie(c)
				return c.Redirect(http.StatusSeeOther, loginPath)
			}

			c.Set(sessionKey, session)
			return next(c)
		}
	}
}

// SetSessionCookie stores a session token in the browser. The cookie has no
// expiry; the session ends on logout or when the browser is closed.
func SetSessionCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
