// Package calculator derives fee totals, hearing alerts and case counts
// from loaded records. Nothing here touches the store.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/ravison1985/advamolsanap/internal/models"
)

// ClientFees is one client's fee position.
type ClientFees struct {
	Client  models.Client
	Paid    decimal.Decimal
	Pending decimal.Decimal
}

// FeeSummary aggregates fee positions over a set of clients.
type FeeSummary struct {
	TotalFee  decimal.Decimal
	TotalPaid decimal.Decimal
	Pending   decimal.Decimal
}

// Pending returns what is still owed on a fee: fee - paid, floored at zero.
// Overpayment never shows as a negative balance.
func Pending(fee, paid decimal.Decimal) decimal.Decimal {
	pending := fee.Sub(paid)
	if pending.IsNegative() {
		return decimal.Zero
	}
	return pending
}

// CalculateClientFees computes paid and pending amounts for each client from
// the full payment table. Payments for clients not in the list are ignored.
// The result keeps the order of clients.
func CalculateClientFees(clients []models.Client, payments []models.Payment) []ClientFees {
	paid := make(map[int64]decimal.Decimal, len(clients))
	for _, p := range payments {
		paid[p.ClientID] = paid[p.ClientID].Add(p.Amount)
	}

	rows := make([]ClientFees, len(clients))
	for i, c := range clients {
		total := paid[c.ID]
		rows[i] = ClientFees{
			Client:  c,
			Paid:    total,
			Pending: Pending(c.AgreedFee, total),
		}
	}
	return rows
}

// SummarizeFees totals a set of client fee positions. Pending is computed on
// the totals, so one client's overpayment offsets another's balance.
func SummarizeFees(rows []ClientFees) FeeSummary {
	var summary FeeSummary
	for _, r := range rows {
		summary.TotalFee = summary.TotalFee.Add(r.Client.AgreedFee)
		summary.TotalPaid = summary.TotalPaid.Add(r.Paid)
	}
	summary.Pending = Pending(summary.TotalFee, summary.TotalPaid)
	return summary
}
