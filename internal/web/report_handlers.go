package web

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ravison1985/advamolsanap/internal/report"
)

// downloadReport builds the report from the store as it is now and sends it
// as an attachment.
func (s *Server) downloadReport(c echo.Context) error {
	format, err := report.ParseFormat(c.QueryParam("format"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown report format.")
	}

	now := s.now()
	var buf bytes.Buffer
	if err := s.reports.Render(c.Request().Context(), &buf, format, now); err != nil {
		s.logger.Error("Report generation failed", "format", format, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "The report could not be generated.")
	}
	s.metrics.ReportGenerated(string(format))

	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", format.FileName(now)))
	return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
