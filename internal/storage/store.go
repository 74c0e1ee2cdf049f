// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ravison1985/advamolsanap/internal/models"
)

// ErrNotFound is returned when a client referenced by ID does not exist.
var ErrNotFound = errors.New("record not found")

// Store defines the interface for record storage operations.
// This abstraction keeps the service layer and the report generator
// independent of the SQL backend.
type Store interface {
	// AddClient persists a new client. The client.ID field will be populated by the store.
	AddClient(ctx context.Context, client *models.Client) error

	// UpdateClient overwrites every editable field of an existing client.
	// Returns ErrNotFound if the client does not exist.
	UpdateClient(ctx context.Context, client *models.Client) error

	// DeleteClient removes a client together with its hearings and payments.
	// Returns ErrNotFound if the client does not exist.
	DeleteClient(ctx context.Context, clientID int64) error

	// GetClient retrieves a client by ID.
	// Returns ErrNotFound if the client does not exist.
	GetClient(ctx context.Context, clientID int64) (*models.Client, error)

	// ListClients returns all clients sorted case-insensitively by name.
	ListClients(ctx context.Context) ([]models.Client, error)

	// AddHearing persists a new hearing. The hearing.ID field will be populated by the store.
	AddHearing(ctx context.Context, hearing *models.Hearing) error

	// ListHearings returns all hearings with their client names,
	// sorted by date ascending then client name.
	ListHearings(ctx context.Context) ([]models.Hearing, error)

	// AddPayment persists a new payment. The payment.ID field will be populated by the store.
	AddPayment(ctx context.Context, payment *models.Payment) error

	// ListPayments returns all payments with their client names,
	// sorted by date descending.
	ListPayments(ctx context.Context) ([]models.Payment, error)

	// TotalPaid returns the sum of all payments for a client, zero if none.
	TotalPaid(ctx context.Context, clientID int64) (decimal.Decimal, error)

	// Close releases any resources held by the store.
	Close() error
}
