package web

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ravison1985/advamolsanap/internal/auth"
	"github.com/ravison1985/advamolsanap/internal/middleware"
)

func (s *Server) loginPage(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		if _, err := s.auth.Authenticate(cookie.Value); err == nil {
			return c.Redirect(http.StatusSeeOther, "/")
		}
	}
	return c.Render(http.StatusOK, "login.html", loginPage{Title: "Sign in"})
}

func (s *Server) login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	token, _, err := s.auth.Login(c.Request().Context(), username, password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return c.Render(http.StatusUnauthorized, "login.html", loginPage{
			Title:    "Sign in",
			Username: username,
			Error:    auth.ErrInvalidCredentials.Error(),
		})
	}
	if err != nil {
		return err
	}

	middleware.SetSessionCookie(c, token)
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) logout(c echo.Context) error {
	if cookie, err := c.Cookie(middleware.SessionCookie); err == nil {
		s.auth.Logout(cookie.Value)
	}
	middleware.ClearSessionCookie(c)
	return c.Redirect(http.StatusSeeOther, "/login")
}
