package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ravison1985/advamolsanap/internal/calculator"
	"github.com/ravison1985/advamolsanap/internal/models"
	"github.com/ravison1985/advamolsanap/internal/storage"
)

// ErrSavedNotReloaded reports a write that committed but whose follow-up
// read failed. The record exists; submitting it again would duplicate it.
var ErrSavedNotReloaded = errors.New("saved but could not be reloaded")

// ClientInput is the raw content of the add/modify client form.
type ClientInput struct {
	Name           string `form:"name"`
	CaseDetails    string `form:"case_details"`
	Contact        string `form:"contact"`
	Court          string `form:"court"`
	CaseNumber     string `form:"case_no"`
	Stage          string `form:"stage"`
	FileNumber     string `form:"file_no"`
	PartyRole      string `form:"party_role"`
	AgreedFee      string `form:"agreed_fee"`
	PaymentStatus  string `form:"payment_status"`
	CommitmentDate string `form:"commitment_date"`
	FirstVisitDate string `form:"first_visit_date"`
}

// HearingInput is the raw content of the add hearing form.
type HearingInput struct {
	ClientID string `form:"client_id"`
	Date     string `form:"hearing_date"`
	Note     string `form:"note"`
}

// PaymentInput is the raw content of the add payment form.
type PaymentInput struct {
	ClientID string `form:"client_id"`
	Date     string `form:"pay_date"`
	Amount   string `form:"amount"`
	Mode     string `form:"mode"`
	Note     string `form:"note"`
}

// Snapshot is everything the dashboard shows, loaded fresh from the store.
type Snapshot struct {
	Today    time.Time
	Clients  []calculator.ClientFees
	Fees     calculator.FeeSummary
	Hearings []models.Hearing
	Payments []models.Payment
	Alerts   []calculator.HearingAlert
	Courts   []calculator.CourtCount
}

// FeePosition is a client's fee state re-read from the store after a write.
type FeePosition struct {
	Client   *models.Client
	Paid     decimal.Decimal
	Pending  decimal.Decimal
	Payments []models.Payment
}

// RecordService validates form input and applies it to the store.
// Every read goes to the store; nothing derived is cached between calls.
type RecordService struct {
	store       storage.Store
	horizonDays int
	now         func() time.Time
}

// NewRecordService creates a RecordService. horizonDays limits how far ahead
// hearing alerts look; zero means no limit.
func NewRecordService(store storage.Store, horizonDays int) *RecordService {
	return &RecordService{
		store:       store,
		horizonDays: horizonDays,
		now:         time.Now,
	}
}

// AddClient validates and stores a new client.
func (s *RecordService) AddClient(ctx context.Context, in ClientInput) (*models.Client, error) {
	client, err := in.toClient()
	if err != nil {
		return nil, err
	}

	if err := s.store.AddClient(ctx, client); err != nil {
		slog.Error("AddClient failed", "name", client.Name, "error", err)
		return nil, err
	}

	slog.Info("Client added", "client_id", client.ID)
	return client, nil
}

// UpdateClient validates and overwrites an existing client, then returns the
// stored row.
func (s *RecordService) UpdateClient(ctx context.Context, clientID int64, in ClientInput) (*models.Client, error) {
	client, err := in.toClient()
	if err != nil {
		return nil, err
	}
	client.ID = clientID

	if err := s.store.UpdateClient(ctx, client); err != nil {
		slog.Error("UpdateClient failed", "client_id", clientID, "error", err)
		return nil, err
	}

	slog.Info("Client updated", "client_id", clientID)
	return s.store.GetClient(ctx, clientID)
}

// DeleteClient removes a client along with its hearings and payments.
func (s *RecordService) DeleteClient(ctx context.Context, clientID int64) error {
	if err := s.store.DeleteClient(ctx, clientID); err != nil {
		slog.Error("DeleteClient failed", "client_id", clientID, "error", err)
		return err
	}

	slog.Info("Client deleted", "client_id", clientID)
	return nil
}

// GetClient loads a single client.
func (s *RecordService) GetClient(ctx context.Context, clientID int64) (*models.Client, error) {
	return s.store.GetClient(ctx, clientID)
}

// ListClients loads all clients in name order, for selectors.
func (s *RecordService) ListClients(ctx context.Context) ([]models.Client, error) {
	return s.store.ListClients(ctx)
}

// AddHearing validates and stores a new hearing.
func (s *RecordService) AddHearing(ctx context.Context, in HearingInput) (*models.Hearing, error) {
	clientID, err := parseID("client", in.ClientID)
	if err != nil {
		return nil, err
	}
	date, err := requireDate("hearing date", in.Date)
	if err != nil {
		return nil, err
	}

	hearing := &models.Hearing{
		ClientID: clientID,
		Date:     date,
		Note:     strings.TrimSpace(in.Note),
	}
	if err := s.store.AddHearing(ctx, hearing); err != nil {
		slog.Error("AddHearing failed", "client_id", clientID, "error", err)
		return nil, err
	}

	slog.Info("Hearing added", "hearing_id", hearing.ID, "client_id", clientID, "date", date)
	return hearing, nil
}

// AddPayment validates and stores a new payment and returns the client's
// fee position as it stands after the write.
func (s *RecordService) AddPayment(ctx context.Context, in PaymentInput) (*FeePosition, error) {
	clientID, err := parseID("client", in.ClientID)
	if err != nil {
		return nil, err
	}
	date, err := requireDate("payment date", in.Date)
	if err != nil {
		return nil, err
	}
	amount, err := parseMoney("amount", in.Amount)
	if err != nil {
		return nil, err
	}
	if !amount.IsPositive() {
		return nil, invalid("amount", "must be greater than zero")
	}
	mode := models.PaymentMode(strings.TrimSpace(in.Mode))
	if !mode.Valid() {
		return nil, invalid("mode", "must be one of Cash, UPI, Bank, Cheque or Other")
	}

	payment := &models.Payment{
		ClientID: clientID,
		Date:     date,
		Amount:   amount,
		Mode:     mode,
		Note:     strings.TrimSpace(in.Note),
	}
	if err := s.store.AddPayment(ctx, payment); err != nil {
		slog.Error("AddPayment failed", "client_id", clientID, "error", err)
		return nil, err
	}

	slog.Info("Payment added", "payment_id", payment.ID, "client_id", clientID, "amount", amount.String())

	position, err := s.ClientFees(ctx, clientID)
	if err != nil {
		slog.Error("Reload after AddPayment failed", "payment_id", payment.ID, "client_id", clientID, "error", err)
		return nil, fmt.Errorf("payment %d: %w: %w", payment.ID, ErrSavedNotReloaded, err)
	}
	return position, nil
}

// ClientFees re-reads a client's fee position from the store.
func (s *RecordService) ClientFees(ctx context.Context, clientID int64) (*FeePosition, error) {
	client, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	paid, err := s.store.TotalPaid(ctx, clientID)
	if err != nil {
		return nil, err
	}

	all, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, err
	}
	var payments []models.Payment
	for _, p := range all {
		if p.ClientID == clientID {
			payments = append(payments, p)
		}
	}

	return &FeePosition{
		Client:   client,
		Paid:     paid,
		Pending:  calculator.Pending(client.AgreedFee, paid),
		Payments: payments,
	}, nil
}

// Snapshot loads all three tables and derives alerts, fee totals and court
// counts from them.
func (s *RecordService) Snapshot(ctx context.Context) (*Snapshot, error) {
	clients, err := s.store.ListClients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load clients: %w", err)
	}
	hearings, err := s.store.ListHearings(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load hearings: %w", err)
	}
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load payments: %w", err)
	}

	today := s.now()
	fees := calculator.CalculateClientFees(clients, payments)

	return &Snapshot{
		Today:    today,
		Clients:  fees,
		Fees:     calculator.SummarizeFees(fees),
		Hearings: hearings,
		Payments: payments,
		Alerts:   calculator.UpcomingHearings(today, hearings, s.horizonDays),
		Courts:   calculator.CasesByCourt(clients),
	}, nil
}

func (in ClientInput) toClient() (*models.Client, error) {
	name, err := requireText("name", in.Name)
	if err != nil {
		return nil, err
	}
	caseDetails, err := requireText("case details", in.CaseDetails)
	if err != nil {
		return nil, err
	}
	contact, err := requireText("contact", in.Contact)
	if err != nil {
		return nil, err
	}
	fee, err := parseMoney("agreed fee", in.AgreedFee)
	if err != nil {
		return nil, err
	}
	if fee.IsNegative() {
		return nil, invalid("agreed fee", "cannot be negative")
	}

	status := models.PaymentStatus(strings.TrimSpace(in.PaymentStatus))
	if status == "" {
		status = models.StatusUnpaid
	}
	if !status.Valid() {
		return nil, invalid("payment status", "must be Unpaid or Paid")
	}

	commitment, err := optionalDate("commitment date", in.CommitmentDate)
	if err != nil {
		return nil, err
	}
	firstVisit, err := optionalDate("first visit date", in.FirstVisitDate)
	if err != nil {
		return nil, err
	}

	return &models.Client{
		Name:           name,
		CaseDetails:    caseDetails,
		Contact:        contact,
		Court:          strings.TrimSpace(in.Court),
		CaseNumber:     strings.TrimSpace(in.CaseNumber),
		Stage:          strings.TrimSpace(in.Stage),
		FileNumber:     strings.TrimSpace(in.FileNumber),
		PartyRole:      strings.TrimSpace(in.PartyRole),
		AgreedFee:      fee,
		PaymentStatus:  status,
		CommitmentDate: commitment,
		FirstVisitDate: firstVisit,
	}, nil
}

// ClientInputFrom fills a form from a stored client, for the modify form.
func ClientInputFrom(c *models.Client) ClientInput {
	return ClientInput{
		Name:           c.Name,
		CaseDetails:    c.CaseDetails,
		Contact:        c.Contact,
		Court:          c.Court,
		CaseNumber:     c.CaseNumber,
		Stage:          c.Stage,
		FileNumber:     c.FileNumber,
		PartyRole:      c.PartyRole,
		AgreedFee:      c.AgreedFee.StringFixed(2),
		PaymentStatus:  string(c.PaymentStatus),
		CommitmentDate: c.CommitmentDate,
		FirstVisitDate: models.DateOnly(c.FirstVisitDate),
	}
}
