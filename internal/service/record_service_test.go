package service

import (
	"context"
	"errors"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ravison1985/advamolsanap/internal/calculator"
	"github.com/ravison1985/advamolsanap/internal/models"
	"github.com/ravison1985/advamolsanap/internal/storage"
	"github.com/ravison1985/advamolsanap/internal/storage/sqlite"
)

// setupRecordService creates a RecordService over a temporary database with
// the clock fixed at now.
func setupRecordService(t *testing.T, now time.Time) *RecordService {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc := NewRecordService(store, 0)
	svc.now = func() time.Time { return now }
	return svc
}

func validClient(name string) ClientInput {
	return ClientInput{
		Name:           name,
		CaseDetails:    "X",
		Contact:        "9999999999",
		AgreedFee:      "10000",
		PaymentStatus:  "Unpaid",
		CommitmentDate: "2024-06-30",
		FirstVisitDate: "2024-01-15",
	}
}

func TestAddClientRoundTrip(t *testing.T) {
	svc := setupRecordService(t, time.Now())
	ctx := context.Background()

	added, err := svc.AddClient(ctx, validClient("Test"))
	if err != nil {
		t.Fatalf("AddClient failed: %v", err)
	}

	clients, err := svc.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients failed: %v", err)
	}
	if len(clients) != 1 {
		t.Fatalf("expected exactly 1 client, got %d", len(clients))
	}

	got := clients[0]
	if got.ID != added.ID {
		t.Errorf("id: expected %d, got %d", added.ID, got.ID)
	}
	if got.Name != "Test" || got.CaseDetails != "X" || got.Contact != "9999999999" {
		t.Errorf("text fields: got %+v", got)
	}
	if !got.AgreedFee.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("fee: expected 10000, got %s", got.AgreedFee)
	}
	if got.PaymentStatus != models.StatusUnpaid {
		t.Errorf("status: expected Unpaid, got %s", got.PaymentStatus)
	}
	if got.CommitmentDate != "2024-06-30" || got.FirstVisitDate != "2024-01-15" {
		t.Errorf("dates: got commit=%s first=%s", got.CommitmentDate, got.FirstVisitDate)
	}
}

func TestAddClientValidation(t *testing.T) {
	svc := setupRecordService(t, time.Now())
	ctx := context.Background()

	tests := []struct {
		name   string
		mutate func(in *ClientInput)
		field  string
	}{
		{"missing name", func(in *ClientInput) { in.Name = "   " }, "name"},
		{"missing case details", func(in *ClientInput) { in.CaseDetails = "" }, "case details"},
		{"missing contact", func(in *ClientInput) { in.Contact = "" }, "contact"},
		{"missing fee", func(in *ClientInput) { in.AgreedFee = "" }, "agreed fee"},
		{"negative fee", func(in *ClientInput) { in.AgreedFee = "-1" }, "agreed fee"},
		{"non-numeric fee", func(in *ClientInput) { in.AgreedFee = "ten" }, "agreed fee"},
		{"three decimals", func(in *ClientInput) { in.AgreedFee = "10.005" }, "agreed fee"},
		{"unknown status", func(in *ClientInput) { in.PaymentStatus = "Partial" }, "payment status"},
		{"bad commitment date", func(in *ClientInput) { in.CommitmentDate = "30/06/2024" }, "commitment date"},
		{"bad first visit", func(in *ClientInput) { in.FirstVisitDate = "soon" }, "first visit date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validClient("Invalid")
			tt.mutate(&in)

			_, err := svc.AddClient(ctx, in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field: expected %q, got %q", tt.field, verr.Field)
			}
		})
	}

	clients, err := svc.ListClients(ctx)
	if err != nil {
		t.Fatalf("ListClients failed: %v", err)
	}
	if len(clients) != 0 {
		t.Errorf("expected no clients after validation failures, got %d", len(clients))
	}

	t.Run("zero fee and optional fields are accepted", func(t *testing.T) {
		in := validClient("Pro Bono")
		in.AgreedFee = "0"
		in.PaymentStatus = ""
		in.CommitmentDate = ""
		in.FirstVisitDate = ""

		client, err := svc.AddClient(ctx, in)
		if err != nil {
			t.Fatalf("AddClient failed: %v", err)
		}
		if client.PaymentStatus != models.StatusUnpaid {
			t.Errorf("status: expected default Unpaid, got %s", client.PaymentStatus)
		}
	})
}

func TestUpdateClient(t *testing.T) {
	svc := setupRecordService(t, time.Now())
	ctx := context.Background()

	client, err := svc.AddClient(ctx, validClient("Meera"))
	if err != nil {
		t.Fatalf("AddClient failed: %v", err)
	}

	in := ClientInputFrom(client)
	in.PaymentStatus = "Paid"
	in.Stage = "Final arguments"
	in.FileNumber = " F-9 "
	in.PartyRole = "Plaintiff"

	updated, err := svc.UpdateClient(ctx, client.ID, in)
	if err != nil {
		t.Fatalf("UpdateClient failed: %v", err)
	}
	if updated.PaymentStatus != models.StatusPaid || updated.Stage != "Final arguments" ||
		updated.FileNumber != "F-9" || updated.PartyRole != "Plaintiff" {
		t.Errorf("update not applied: %+v", updated)
	}
	if !updated.AgreedFee.Equal(client.AgreedFee) {
		t.Errorf("fee changed: %s -> %s", client.AgreedFee, updated.AgreedFee)
	}

	// Status is manual: marking Paid does not require any payment.
	fees, err := svc.ClientFees(ctx, client.ID)
	if err != nil {
		t.Fatalf("ClientFees failed: %v", err)
	}
	if !fees.Pending.Equal(decimal.NewFromInt(10000)) {
		t.Errorf("pending: expected 10000 despite Paid status, got %s", fees.Pending)
	}

	if _, err := svc.UpdateClient(ctx, 4242, in); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown client, got %v", err)
	}
}

func TestAddPaymentFeePosition(t *testing.T) {
	svc := setupRecordService(t, time.Now())
	ctx := context.Background()

	client, err := svc.AddClient(ctx, validClient("Ravi"))
	if err != nil {
		t.Fatalf("AddClient failed: %v", err)
	}
	id := strconv.FormatInt(client.ID, 10)

	pos, err := svc.AddPayment(ctx, PaymentInput{ClientID: id, Date: "2024-02-01", Amount: "5000", Mode: "UPI"})
	if err != nil {
		t.Fatalf("first AddPayment failed: %v", err)
	}
	if !pos.Paid.Equal(decimal.NewFromInt(5000)) || !pos.Pending.Equal(decimal.NewFromInt(5000)) {
		t.Errorf("after 5000: paid=%s pending=%s, want 5000/5000", pos.Paid, pos.Pending)
	}

	pos, err = svc.AddPayment(ctx, PaymentInput{ClientID: id, Date: "2024-03-01", Amount: "6000", Mode: "Cash"})
	if err != nil {
		t.Fatalf("second AddPayment failed: %v", err)
	}
	if !pos.Paid.Equal(decimal.NewFromInt(11000)) {
		t.Errorf("after 6000: paid=%s, want 11000", pos.Paid)
	}
	if !pos.Pending.IsZero() {
		t.Errorf("after 6000: pending=%s, want 0", pos.Pending)
	}
	if len(pos.Payments) != 2 {
		t.Errorf("expected 2 payments in position, got %d", len(pos.Payments))
	}
}

func TestAddPaymentValidation(t *testing.T) {
	svc := setupRecordService(t, time.Now())
	ctx := context.Background()

	client, err := svc.AddClient(ctx, validClient("Sana"))
	if err != nil {
		t.Fatalf("AddClient failed: %v", err)
	}
	id := strconv.FormatInt(client.ID, 10)

	tests := []struct {
		name  string
		in    PaymentInput
		field string
	}{
		{"zero amount", PaymentInput{ClientID: id, Date: "2024-02-01", Amount: "0", Mode: "Cash"}, "amount"},
		{"negative amount", PaymentInput{ClientID: id, Date: "2024-02-01", Amount: "-50", Mode: "Cash"}, "amount"},
		{"missing amount", PaymentInput{ClientID: id, Date: "2024-02-01", Mode: "Cash"}, "amount"},
		{"missing date", PaymentInput{ClientID: id, Amount: "50", Mode: "Cash"}, "payment date"},
		{"missing client", PaymentInput{Date: "2024-02-01", Amount: "50", Mode: "Cash"}, "client"},
		{"bad client", PaymentInput{ClientID: "abc", Date: "2024-02-01", Amount: "50", Mode: "Cash"}, "client"},
		{"unknown mode", PaymentInput{ClientID: id, Date: "2024-02-01", Amount: "50", Mode: "Barter"}, "mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddPayment(ctx, tt.in)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field: expected %q, got %q", tt.field, verr.Field)
			}
		})
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if len(snap.Payments) != 0 {
		t.Errorf("expected no payments after validation failures, got %d", len(snap.Payments))
	}

	t.Run("payment for deleted client is a store error", func(t *testing.T) {
		_, err := svc.AddPayment(ctx, PaymentInput{ClientID: "4242", Date: "2024-02-01", Amount: "50", Mode: "Cash"})
		var verr *ValidationError
		if err == nil || errors.As(err, &verr) {
			t.Errorf("expected store error, got %v", err)
		}
	})
}

// unreadableTotals is a store whose writes succeed but whose paid totals
// cannot be read back.
type unreadableTotals struct {
	storage.Store
}

func (unreadableTotals) TotalPaid(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	return decimal.Zero, errors.New("disk I/O error")
}

func TestAddPaymentReloadFailureIsNotASaveFailure(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	ctx := context.Background()

	client, err := NewRecordService(store, 0).AddClient(ctx, validClient("Kiran"))
	if err != nil {
		t.Fatalf("AddClient failed: %v", err)
	}

	svc := NewRecordService(unreadableTotals{store}, 0)
	pos, err := svc.AddPayment(ctx, PaymentInput{
		ClientID: strconv.FormatInt(client.ID, 10),
		Date:     "2024-02-01",
		Amount:   "750",
		Mode:     "Cash",
	})
	if pos != nil {
		t.Errorf("expected no fee position, got %+v", pos)
	}
	if !errors.Is(err, ErrSavedNotReloaded) {
		t.Fatalf("expected ErrSavedNotReloaded, got %v", err)
	}

	payments, err := store.ListPayments(ctx)
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if len(payments) != 1 || !payments[0].Amount.Equal(decimal.NewFromInt(750)) {
		t.Errorf("expected the payment to be stored once, got %+v", payments)
	}
}

func TestSnapshot(t *testing.T) {
	now := time.Date(2024, time.May, 10, 11, 0, 0, 0, time.Local)
	svc := setupRecordService(t, now)
	ctx := context.Background()

	asha, err := svc.AddClient(ctx, validClient("Asha"))
	if err != nil {
		t.Fatalf("AddClient failed: %v", err)
	}
	in := validClient("bala")
	in.AgreedFee = "3000"
	in.Court = "High Court"
	bala, err := svc.AddClient(ctx, in)
	if err != nil {
		t.Fatalf("AddClient failed: %v", err)
	}

	for _, h := range []HearingInput{
		{ClientID: strconv.FormatInt(asha.ID, 10), Date: "2024-05-10", Note: "framing of issues"},
		{ClientID: strconv.FormatInt(bala.ID, 10), Date: "2024-05-11"},
		{ClientID: strconv.FormatInt(bala.ID, 10), Date: "2024-05-09", Note: "adjourned"},
		{ClientID: strconv.FormatInt(asha.ID, 10), Date: "2024-06-01"},
	} {
		if _, err := svc.AddHearing(ctx, h); err != nil {
			t.Fatalf("AddHearing failed: %v", err)
		}
	}
	if _, err := svc.AddPayment(ctx, PaymentInput{ClientID: strconv.FormatInt(bala.ID, 10), Date: "2024-05-01", Amount: "4000", Mode: "Bank"}); err != nil {
		t.Fatalf("AddPayment failed: %v", err)
	}

	snap, err := svc.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}

	if len(snap.Alerts) != 3 {
		t.Fatalf("expected 3 alerts, got %d", len(snap.Alerts))
	}
	wantLabels := []string{"Today", "Tomorrow", "2024-06-01"}
	for i, a := range snap.Alerts {
		if a.Label() != wantLabels[i] {
			t.Errorf("alert %d: expected %s, got %s", i, wantLabels[i], a.Label())
		}
	}

	if len(snap.Hearings) != 4 {
		t.Errorf("expected all 4 hearings in the table, got %d", len(snap.Hearings))
	}

	// bala paid 4000 on a 3000 fee: pending floors at zero for the client,
	// while the aggregate still nets the overpayment.
	var balaRow calculator.ClientFees
	for _, r := range snap.Clients {
		if r.Client.ID == bala.ID {
			balaRow = r
		}
	}
	if !balaRow.Pending.IsZero() {
		t.Errorf("bala pending: expected 0, got %s", balaRow.Pending)
	}
	if !snap.Fees.TotalFee.Equal(decimal.NewFromInt(13000)) || !snap.Fees.TotalPaid.Equal(decimal.NewFromInt(4000)) {
		t.Errorf("totals: fee=%s paid=%s", snap.Fees.TotalFee, snap.Fees.TotalPaid)
	}
	if !snap.Fees.Pending.Equal(decimal.NewFromInt(9000)) {
		t.Errorf("aggregate pending: expected 9000, got %s", snap.Fees.Pending)
	}

	if len(snap.Courts) != 2 {
		t.Errorf("expected 2 court groups, got %+v", snap.Courts)
	}

	t.Run("delete cascades out of every view", func(t *testing.T) {
		if err := svc.DeleteClient(ctx, bala.ID); err != nil {
			t.Fatalf("DeleteClient failed: %v", err)
		}

		snap, err := svc.Snapshot(ctx)
		if err != nil {
			t.Fatalf("Snapshot failed: %v", err)
		}
		for _, h := range snap.Hearings {
			if h.ClientID == bala.ID {
				t.Errorf("hearing %d still references deleted client", h.ID)
			}
		}
		for _, p := range snap.Payments {
			if p.ClientID == bala.ID {
				t.Errorf("payment %d still references deleted client", p.ID)
			}
		}
		if !snap.Fees.TotalPaid.IsZero() {
			t.Errorf("total paid after delete: expected 0, got %s", snap.Fees.TotalPaid)
		}

		if err := svc.DeleteClient(ctx, bala.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("second delete: expected ErrNotFound, got %v", err)
		}
	})
}

func TestAddHearingValidation(t *testing.T) {
	svc := setupRecordService(t, time.Now())
	ctx := context.Background()

	if _, err := svc.AddHearing(ctx, HearingInput{ClientID: "1"}); err == nil {
		t.Error("expected error for missing date")
	}
	var verr *ValidationError
	if _, err := svc.AddHearing(ctx, HearingInput{ClientID: "1", Date: "2024-13-01"}); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for impossible date, got %v", err)
	}
	if _, err := svc.AddHearing(ctx, HearingInput{Date: "2024-05-01"}); !errors.As(err, &verr) {
		t.Errorf("expected ValidationError for missing client, got %v", err)
	}
}
