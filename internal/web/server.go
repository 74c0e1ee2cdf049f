// Package web serves the form-driven interface: login, the dashboard, the
// client, hearing and payment forms, the fee view and report downloads.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/ravison1985/advamolsanap/internal/middleware"
	"github.com/ravison1985/advamolsanap/internal/report"
	"github.com/ravison1985/advamolsanap/internal/service"
)

// Server wires the HTTP routes to the services.
type Server struct {
	echo    *echo.Echo
	records *service.RecordService
	auth    *service.AuthService
	reports *report.Generator
	metrics *middleware.Metrics
	logger  *slog.Logger
	now     func() time.Time
}

// NewServer builds the echo instance with all routes registered.
func NewServer(
	records *service.RecordService,
	authService *service.AuthService,
	reports *report.Generator,
	metrics *middleware.Metrics,
	currencySymbol string,
	logger *slog.Logger,
) (*Server, error) {
	renderer, err := NewTemplateRenderer(currencySymbol)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer

	s := &Server{
		echo:    e,
		records: records,
		auth:    authService,
		reports: reports,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
	e.HTTPErrorHandler = s.handleError

	// Recover sits inside the logger and hands the panic back as an error,
	// so a panicking request is logged with its 500 and the cause.
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.RecoverWithConfig(echomw.RecoverConfig{DisableErrorHandler: true}))
	e.Use(metrics.Middleware())

	s.routes()
	return s, nil
}

func (s *Server) routes() {
	e := s.echo

	e.GET("/metrics", echo.WrapHandler(s.metrics.Handler()))

	e.GET("/login", s.loginPage)
	e.POST("/login", s.login)
	e.POST("/logout", s.logout)

	app := e.Group("", middleware.RequireSession(s.auth))
	app.GET("/", s.dashboard)

	app.GET("/clients/new", s.newClientPage)
	app.POST("/clients", s.createClient)
	app.GET("/clients/:id/edit", s.editClientPage)
	app.POST("/clients/:id", s.updateClient)
	app.POST("/clients/:id/delete", s.deleteClient)
	app.GET("/clients/:id/fees", s.clientFees)

	app.GET("/hearings/new", s.newHearingPage)
	app.POST("/hearings", s.createHearing)

	app.GET("/payments/new", s.newPaymentPage)
	app.POST("/payments", s.createPayment)

	app.GET("/report", s.downloadReport)
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}
