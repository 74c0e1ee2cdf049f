package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ravison1985/advamolsanap/internal/middleware"
	"github.com/ravison1985/advamolsanap/internal/service"
	"github.com/ravison1985/advamolsanap/internal/storage"
)

// saveFailed is all the user is told about a failed store write; the detail
// goes to the log.
const saveFailed = "The record could not be saved. Please check the values and try again."

// formError turns an error from a form submission into the status and
// message the form is re-rendered with. Missing records become a 404.
func (s *Server) formError(c echo.Context, err error) (int, string, error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity, verr.Error(), nil
	case errors.Is(err, storage.ErrNotFound):
		return 0, "", echo.NewHTTPError(http.StatusNotFound, "That client no longer exists.")
	default:
		s.logger.Error("Store write failed",
			"path", c.Path(),
			"request_id", middleware.RequestID(c),
			"error", err,
		)
		return http.StatusInternalServerError, saveFailed, nil
	}
}

// loadError maps a failed read to an HTTP error for the error page.
func (s *Server) loadError(c echo.Context, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, "That client does not exist.")
	}
	s.logger.Error("Store read failed", "path", c.Path(), "error", err)
	return echo.NewHTTPError(http.StatusInternalServerError)
}

func clientIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound, "That client does not exist.")
	}
	return id, nil
}

// handleError renders echo errors as an HTML page.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := ""
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		if msg, ok := he.Message.(string); ok {
			message = msg
		}
	}

	title := http.StatusText(code)
	if message == "" || message == title {
		switch code {
		case http.StatusNotFound:
			message = "The page you're looking for doesn't exist."
		case http.StatusBadRequest:
			message = "The request could not be processed."
		default:
			message = "Something went wrong. Please try again later."
		}
	}

	if code >= http.StatusInternalServerError {
		s.logger.Error("Unhandled error", "path", c.Request().URL.Path, "error", err)
	}

	if c.Request().Method == http.MethodHead {
		c.NoContent(code)
		return
	}

	page := errorPage{
		layout:  s.layout(c, title, ""),
		Code:    code,
		Message: message,
	}
	if renderErr := c.Render(code, "error.html", page); renderErr != nil {
		s.logger.Error("Failed to render error page", "error", renderErr)
		c.String(code, message)
	}
}
