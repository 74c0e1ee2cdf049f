package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ravison1985/advamolsanap/internal/models"
)

// AddHearing inserts a hearing for an existing client.
// A missing client surfaces as a foreign key error from the store.
func (s *SQLiteStore) AddHearing(ctx context.Context, hearing *models.Hearing) error {
	res, err := s.db.ExecContext(ctx,
		"INSERT INTO hearings (client_id, hearing_date, note) VALUES (?, ?, ?)",
		hearing.ClientID, hearing.Date, nullString(hearing.Note),
	)
	if err != nil {
		return fmt.Errorf("failed to insert hearing: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read hearing id: %w", err)
	}
	hearing.ID = id

	return nil
}

// ListHearings returns all hearings joined with their client's name,
// earliest first and by client name within a day.
func (s *SQLiteStore) ListHearings(ctx context.Context) ([]models.Hearing, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT h.id, h.client_id, c.name, h.hearing_date, h.note
		 FROM hearings h
		 JOIN clients c ON c.id = h.client_id
		 ORDER BY h.hearing_date ASC, c.name COLLATE NOCASE ASC, h.id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list hearings: %w", err)
	}
	defer rows.Close()

	var hearings []models.Hearing
	for rows.Next() {
		var h models.Hearing
		var note sql.NullString

		if err := rows.Scan(&h.ID, &h.ClientID, &h.ClientName, &h.Date, &note); err != nil {
			return nil, fmt.Errorf("failed to scan hearing: %w", err)
		}

		if note.Valid {
			h.Note = note.String
		}

		hearings = append(hearings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate hearings: %w", err)
	}

	return hearings, nil
}
