package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ravison1985/advamolsanap/internal/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPending(t *testing.T) {
	tests := []struct {
		name string
		fee  string
		paid string
		want string
	}{
		{"nothing paid", "10000", "0", "10000"},
		{"partly paid", "10000", "5000", "5000"},
		{"fully paid", "10000", "10000", "0"},
		{"overpaid floors at zero", "10000", "11000", "0"},
		{"zero fee", "0", "250", "0"},
		{"fractional", "1000.50", "0.25", "1000.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pending(d(tt.fee), d(tt.paid))
			if !got.Equal(d(tt.want)) {
				t.Errorf("Pending(%s, %s) = %s, want %s", tt.fee, tt.paid, got, tt.want)
			}
			if got.IsNegative() {
				t.Errorf("Pending(%s, %s) is negative", tt.fee, tt.paid)
			}
		})
	}
}

func TestCalculateClientFees(t *testing.T) {
	clients := []models.Client{
		{ID: 1, Name: "Asha", AgreedFee: d("10000")},
		{ID: 2, Name: "Bala", AgreedFee: d("4000")},
		{ID: 3, Name: "Chitra", AgreedFee: d("0")},
	}

	t.Run("partial then overpaid", func(t *testing.T) {
		payments := []models.Payment{{ClientID: 1, Amount: d("5000")}}

		rows := CalculateClientFees(clients, payments)
		if !rows[0].Paid.Equal(d("5000")) || !rows[0].Pending.Equal(d("5000")) {
			t.Errorf("after first payment: paid=%s pending=%s, want 5000/5000", rows[0].Paid, rows[0].Pending)
		}

		payments = append(payments, models.Payment{ClientID: 1, Amount: d("6000")})
		rows = CalculateClientFees(clients, payments)
		if !rows[0].Paid.Equal(d("11000")) {
			t.Errorf("after second payment: paid=%s, want 11000", rows[0].Paid)
		}
		if !rows[0].Pending.IsZero() {
			t.Errorf("after second payment: pending=%s, want 0", rows[0].Pending)
		}
	})

	t.Run("clients without payments and unknown payers", func(t *testing.T) {
		payments := []models.Payment{{ClientID: 99, Amount: d("700")}}

		rows := CalculateClientFees(clients, payments)
		if len(rows) != len(clients) {
			t.Fatalf("expected %d rows, got %d", len(clients), len(rows))
		}
		for i, r := range rows {
			if r.Client.ID != clients[i].ID {
				t.Errorf("row %d is client %d, want %d", i, r.Client.ID, clients[i].ID)
			}
			if !r.Paid.IsZero() {
				t.Errorf("client %d paid = %s, want 0", r.Client.ID, r.Paid)
			}
			if !r.Pending.Equal(r.Client.AgreedFee) {
				t.Errorf("client %d pending = %s, want %s", r.Client.ID, r.Pending, r.Client.AgreedFee)
			}
		}
	})
}

func TestSummarizeFees(t *testing.T) {
	rows := CalculateClientFees(
		[]models.Client{
			{ID: 1, AgreedFee: d("10000")},
			{ID: 2, AgreedFee: d("4000")},
		},
		[]models.Payment{
			{ClientID: 1, Amount: d("12000")},
			{ClientID: 2, Amount: d("1000")},
		},
	)

	summary := SummarizeFees(rows)
	if !summary.TotalFee.Equal(d("14000")) {
		t.Errorf("TotalFee = %s, want 14000", summary.TotalFee)
	}
	if !summary.TotalPaid.Equal(d("13000")) {
		t.Errorf("TotalPaid = %s, want 13000", summary.TotalPaid)
	}
	if !summary.Pending.Equal(d("1000")) {
		t.Errorf("Pending = %s, want 1000", summary.Pending)
	}

	empty := SummarizeFees(nil)
	if !empty.TotalFee.IsZero() || !empty.TotalPaid.IsZero() || !empty.Pending.IsZero() {
		t.Errorf("empty summary = %+v, want zeros", empty)
	}
}
