package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ravison1985/advamolsanap/internal/models"
	"github.com/ravison1985/advamolsanap/internal/storage"
)

const clientColumns = `id, name, case_details, contact, court, case_no, stage,
	file_no, party_role, agreed_fee, payment_status, commitment_date, first_visit_date`

// AddClient inserts a new client and sets its store-assigned ID.
func (s *SQLiteStore) AddClient(ctx context.Context, client *models.Client) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO clients (name, case_details, contact, court, case_no, stage,
			file_no, party_role, agreed_fee, payment_status, commitment_date, first_visit_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		client.Name, client.CaseDetails, client.Contact,
		nullString(client.Court), nullString(client.CaseNumber), nullString(client.Stage),
		nullString(client.FileNumber), nullString(client.PartyRole),
		client.AgreedFee, string(client.PaymentStatus),
		nullString(client.CommitmentDate), nullString(client.FirstVisitDate),
	)
	if err != nil {
		return fmt.Errorf("failed to insert client: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read client id: %w", err)
	}
	client.ID = id

	return nil
}

// UpdateClient overwrites the editable fields of an existing client.
func (s *SQLiteStore) UpdateClient(ctx context.Context, client *models.Client) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE clients SET name = ?, case_details = ?, contact = ?, court = ?, case_no = ?,
			stage = ?, file_no = ?, party_role = ?, agreed_fee = ?, payment_status = ?, commitment_date = ?, first_visit_date = ?
		 WHERE id = ?`,
		client.Name, client.CaseDetails, client.Contact,
		nullString(client.Court), nullString(client.CaseNumber), nullString(client.Stage),
		nullString(client.FileNumber), nullString(client.PartyRole),
		client.AgreedFee, string(client.PaymentStatus),
		nullString(client.CommitmentDate), nullString(client.FirstVisitDate),
		client.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update client: %w", err)
	}

	return expectOneRow(res, client.ID)
}

// DeleteClient removes a client. Hearings and payments go with it through
// ON DELETE CASCADE.
func (s *SQLiteStore) DeleteClient(ctx context.Context, clientID int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM clients WHERE id = ?", clientID)
	if err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	return expectOneRow(res, clientID)
}

// GetClient retrieves a client by ID.
func (s *SQLiteStore) GetClient(ctx context.Context, clientID int64) (*models.Client, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+clientColumns+" FROM clients WHERE id = ?",
		clientID,
	)

	client, err := scanClient(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("client %d: %w", clientID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return client, nil
}

// ListClients returns every client ordered by name, ignoring case.
func (s *SQLiteStore) ListClients(ctx context.Context) ([]models.Client, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+clientColumns+" FROM clients ORDER BY name COLLATE NOCASE ASC, id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []models.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}

	return clients, nil
}

func scanClient(row rowScanner) (*models.Client, error) {
	client := &models.Client{}
	var court, caseNo, stage, fileNo, role sql.NullString
	var commitmentDate, firstVisit sql.NullString
	var status string

	err := row.Scan(
		&client.ID,
		&client.Name,
		&client.CaseDetails,
		&client.Contact,
		&court,
		&caseNo,
		&stage,
		&fileNo,
		&role,
		&client.AgreedFee,
		&status,
		&commitmentDate,
		&firstVisit,
	)
	if err != nil {
		return nil, err
	}

	client.Court = court.String
	client.CaseNumber = caseNo.String
	client.Stage = stage.String
	client.FileNumber = fileNo.String
	client.PartyRole = role.String
	client.PaymentStatus = models.PaymentStatus(status)
	client.CommitmentDate = commitmentDate.String
	client.FirstVisitDate = firstVisit.String

	return client, nil
}

// expectOneRow turns "no rows affected" into storage.ErrNotFound.
func expectOneRow(res sql.Result, clientID int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("client %d: %w", clientID, storage.ErrNotFound)
	}
	return nil
}
