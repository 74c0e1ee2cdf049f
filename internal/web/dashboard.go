package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ravison1985/advamolsanap/internal/models"
)

// dashboard reloads everything from the store on every visit.
func (s *Server) dashboard(c echo.Context) error {
	snapshot, err := s.records.Snapshot(c.Request().Context())
	if err != nil {
		return s.loadError(c, err)
	}

	page := dashboardPage{
		layout:   s.layout(c, "Dashboard", "dashboard"),
		Snapshot: snapshot,
		Today:    models.FormatDate(snapshot.Today),
	}
	page.Flash = takeFlash(c)
	return c.Render(http.StatusOK, "dashboard.html", page)
}
