package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ravison1985/advamolsanap/internal/models"
)

// AddPayment inserts a payment for an existing client.
func (s *SQLiteStore) AddPayment(ctx context.Context, payment *models.Payment) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO payments (client_id, pay_date, amount, mode, note) VALUES (?, ?, ?, ?, ?)",
		payment.ClientID, payment.Date, payment.Amount,
		nullString(string(payment.Mode)), nullString(payment.Note),
	)
	if err != nil {
		return fmt.Errorf("failed to insert payment: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read payment id: %w", err)
	}
	payment.ID = id

	return nil
}

// ListPayments returns all payments joined with their client's name,
// most recent first.
func (s *SQLiteStore) ListPayments(ctx context.Context) ([]models.Payment, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.id, p.client_id, c.name, p.pay_date, p.amount, p.mode, p.note
		 FROM payments p
		 JOIN clients c ON c.id = p.client_id
		 ORDER BY p.pay_date DESC, p.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		var mode, note sql.NullString

		if err := rows.Scan(&p.ID, &p.ClientID, &p.ClientName, &p.Date, &p.Amount, &mode, &note); err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}

		p.Mode = models.PaymentMode(mode.String)
		p.Note = note.String

		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payments: %w", err)
	}

	return payments, nil
}

// TotalPaid sums a client's payments. Clients without payments total zero.
func (s *SQLiteStore) TotalPaid(ctx context.Context, clientID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := s.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(amount), 0) FROM payments WHERE client_id = ?",
		clientID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum payments: %w", err)
	}

	// amounts are stored as REAL; drop float noise from the sum
	return total.Round(2), nil
}
