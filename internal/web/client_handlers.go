package web

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ravison1985/advamolsanap/internal/models"
	"github.com/ravison1985/advamolsanap/internal/service"
)

func (s *Server) clientForm(c echo.Context, id int64, in service.ClientInput) clientFormPage {
	page := clientFormPage{
		Action:   "/clients",
		ClientID: id,
		Input:    in,
		Statuses: models.PaymentStatuses,
	}
	if id > 0 {
		page.layout = s.layout(c, "Modify client", "clients")
		page.IsEdit = true
		page.Action = fmt.Sprintf("/clients/%d", id)
	} else {
		page.layout = s.layout(c, "Add client", "clients")
	}
	return page
}

func (s *Server) newClientPage(c echo.Context) error {
	in := service.ClientInput{PaymentStatus: string(models.StatusUnpaid)}
	return c.Render(http.StatusOK, "client_form.html", s.clientForm(c, 0, in))
}

func (s *Server) createClient(c echo.Context) error {
	var in service.ClientInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	client, err := s.records.AddClient(c.Request().Context(), in)
	if err != nil {
		return s.rerenderClientForm(c, 0, in, err)
	}

	setFlash(c, fmt.Sprintf("Client %s added.", client.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) editClientPage(c echo.Context) error {
	id, err := clientIDParam(c)
	if err != nil {
		return err
	}

	client, err := s.records.GetClient(c.Request().Context(), id)
	if err != nil {
		return s.loadError(c, err)
	}

	return c.Render(http.StatusOK, "client_form.html", s.clientForm(c, id, service.ClientInputFrom(client)))
}

func (s *Server) updateClient(c echo.Context) error {
	id, err := clientIDParam(c)
	if err != nil {
		return err
	}

	var in service.ClientInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest)
	}

	client, err := s.records.UpdateClient(c.Request().Context(), id, in)
	if err != nil {
		return s.rerenderClientForm(c, id, in, err)
	}

	setFlash(c, fmt.Sprintf("Client %s updated.", client.Name))
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) rerenderClientForm(c echo.Context, id int64, in service.ClientInput, cause error) error {
	code, message, err := s.formError(c, cause)
	if err != nil {
		return err
	}
	page := s.clientForm(c, id, in)
	page.Error = message
	return c.Render(code, "client_form.html", page)
}

func (s *Server) deleteClient(c echo.Context) error {
	id, err := clientIDParam(c)
	if err != nil {
		return err
	}

	if err := s.records.DeleteClient(c.Request().Context(), id); err != nil {
		return s.loadError(c, err)
	}

	setFlash(c, "Client deleted along with their hearings and payments.")
	return c.Redirect(http.StatusSeeOther, "/")
}

// clientFees is the per-client fee view.
func (s *Server) clientFees(c echo.Context) error {
	id, err := clientIDParam(c)
	if err != nil {
		return err
	}

	position, err := s.records.ClientFees(c.Request().Context(), id)
	if err != nil {
		return s.loadError(c, err)
	}

	return c.Render(http.StatusOK, "fees.html", feesPage{
		layout:   s.layout(c, "Fees: "+position.Client.Name, "clients"),
		Position: position,
	})
}
