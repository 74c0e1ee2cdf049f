package web

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/ravison1985/advamolsanap/internal/middleware"
	"github.com/ravison1985/advamolsanap/internal/models"
	"github.com/ravison1985/advamolsanap/internal/service"
)

const flashCookie = "flash"

// layout is the data every page based on the layout needs.
type layout struct {
	Title    string
	Active   string
	Username string
	Flash    string
}

type loginPage struct {
	Title    string
	Username string
	Error    string
}

type dashboardPage struct {
	layout
	Snapshot *service.Snapshot
	Today    string
}

type clientFormPage struct {
	layout
	Action   string
	IsEdit   bool
	ClientID int64
	Input    service.ClientInput
	Error    string
	Statuses []models.PaymentStatus
}

type hearingFormPage struct {
	layout
	Clients []models.Client
	Input   service.HearingInput
	Error   string
}

type paymentFormPage struct {
	layout
	Clients []models.Client
	Modes   []models.PaymentMode
	Input   service.PaymentInput
	Error   string
}

type feesPage struct {
	layout
	Position *service.FeePosition
}

type errorPage struct {
	layout
	Code    int
	Message string
}

func (s *Server) layout(c echo.Context, title, active string) layout {
	l := layout{Title: title, Active: active}
	if session := middleware.SessionFrom(c); session != nil {
		l.Username = session.Username
	}
	return l
}

// setFlash leaves a one-time message for the next page load.
func setFlash(c echo.Context, message string) {
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    url.QueryEscape(message),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// takeFlash reads and clears the pending message, if any.
func takeFlash(c echo.Context) string {
	cookie, err := c.Cookie(flashCookie)
	if err != nil || cookie.Value == "" {
		return ""
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	message, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return message
}
