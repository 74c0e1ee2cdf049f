package web

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ravison1985/advamolsanap/internal/models"
	"github.com/ravison1985/advamolsanap/internal/report"
	"github.com/ravison1985/advamolsanap/internal/service"
)

func (s *Server) hearingForm(c echo.Context, in service.HearingInput) (hearingFormPage, error) {
	clients, err := s.records.ListClients(c.Request().Context())
	if err != nil {
		return hearingFormPage{}, s.loadError(c, err)
	}
	return hearingFormPage{
		layout:  s.layout(c, "Add hearing", "hearings"),
		Clients: clients,
		Input:   in,
	}, nil
}

func (s *Server) newHearingPage(c echo.Context) error {
	page, err := s.hearingForm(c, service.HearingInput{
		ClientID: c.QueryParam("client_id"),
		Date:     models.FormatDate(s.now()),
	})
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "hearing_form.html", page)
}

func (s *Server) createHearing(c echo.Context) error {
	var in service.HearingInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	hearing, err := s.records.AddHearing(c.Request().Context(), in)
	if err != nil {
		code, message, herr := s.formError(c, err)
		if herr != nil {
			return herr
		}
		page, lerr := s.hearingForm(c, in)
		if lerr != nil {
			return lerr
		}
		page.Error = message
		return c.Render(code, "hearing_form.html", page)
	}

	setFlash(c, fmt.Sprintf("Hearing on %s added.", hearing.Date))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) paymentForm(c echo.Context, in service.PaymentInput) (paymentFormPage, error) {
	clients, err := s.records.ListClients(c.Request().Context())
	if err != nil {
		return paymentFormPage{}, s.loadError(c, err)
	}
	return paymentFormPage{
		layout:  s.layout(c, "Add payment", "payments"),
		Clients: clients,
		Modes:   models.PaymentModes,
		Input:   in,
	}, nil
}

func (s *Server) newPaymentPage(c echo.Context) error {
	page, err := s.paymentForm(c, service.PaymentInput{
		ClientID: c.QueryParam("client_id"),
		Date:     models.FormatDate(s.now()),
		Mode:     string(models.ModeCash),
	})
	if err != nil {
		return err
	}
	return c.Render(http.StatusOK, "payment_form.html", page)
}

func (s *Server) createPayment(c echo.Context) error {
	var in service.PaymentInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	position, err := s.records.AddPayment(c.Request().Context(), in)
	if errors.Is(err, service.ErrSavedNotReloaded) {
		setFlash(c, "Payment recorded. The fee totals could not be refreshed; reload the dashboard to see them.")
		return c.Redirect(http.StatusSeeOther, "/")
	}
	if err != nil {
		code, message, herr := s.formError(c, err)
		if herr != nil {
			return herr
		}
		page, lerr := s.paymentForm(c, in)
		if lerr != nil {
			return lerr
		}
		page.Error = message
		return c.Render(code, "payment_form.html", page)
	}

	setFlash(c, fmt.Sprintf("Payment recorded. %s has paid %s; %s pending.",
		position.Client.Name,
		report.FormatMoney(s.reports.Currency(), position.Paid),
		report.FormatMoney(s.reports.Currency(), position.Pending),
	))
	return c.Redirect(http.StatusSeeOther, "/")
}
