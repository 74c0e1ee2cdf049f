package sqlite

import (
	"database/sql"
	"fmt"
)

// column is a column that older databases may be missing. def must be
// acceptable to ALTER TABLE ADD COLUMN, so NOT NULL columns carry a default.
type column struct {
	name string
	def  string
}

type table struct {
	name    string
	create  string
	columns []column
}

// Tables are listed parent first: hearings and payments reference clients.
// create holds keys and required columns only; everything in columns is
// added by the same path on fresh and on older databases.
var tables = []table{
	{
		name: "clients",
		create: `CREATE TABLE IF NOT EXISTS clients (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    name TEXT NOT NULL DEFAULT ''
)`,
		columns: []column{
			{"name", "TEXT NOT NULL DEFAULT ''"},
			{"case_details", "TEXT NOT NULL DEFAULT ''"},
			{"contact", "TEXT NOT NULL DEFAULT ''"},
			{"court", "TEXT"},
			{"case_no", "TEXT"},
			{"stage", "TEXT"},
			{"file_no", "TEXT"},
			{"party_role", "TEXT"},
			{"agreed_fee", "REAL NOT NULL DEFAULT 0"},
			{"payment_status", "TEXT NOT NULL DEFAULT 'Unpaid'"},
			{"commitment_date", "TEXT"},
			{"first_visit_date", "TEXT"},
		},
	},
	{
		name: "hearings",
		create: `CREATE TABLE IF NOT EXISTS hearings (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    client_id INTEGER NOT NULL,
    hearing_date TEXT NOT NULL,
    FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
)`,
		columns: []column{
			{"note", "TEXT"},
		},
	},
	{
		name: "payments",
		create: `CREATE TABLE IF NOT EXISTS payments (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    client_id INTEGER NOT NULL,
    pay_date TEXT NOT NULL,
    amount REAL NOT NULL CHECK (amount > 0),
    FOREIGN KEY (client_id) REFERENCES clients(id) ON DELETE CASCADE
)`,
		columns: []column{
			{"mode", "TEXT"},
			{"note", "TEXT"},
		},
	},
}

// indexes run after columns are in place, since some index added columns.
const indexes = `
CREATE UNIQUE INDEX IF NOT EXISTS idx_clients_case_no ON clients(case_no) WHERE case_no IS NOT NULL AND case_no <> '';
CREATE INDEX IF NOT EXISTS idx_hearings_client_id ON hearings(client_id);
CREATE INDEX IF NOT EXISTS idx_hearings_date ON hearings(hearing_date);
CREATE INDEX IF NOT EXISTS idx_payments_client_id ON payments(client_id);
`

// runMigrations creates missing tables, adds missing columns and creates
// indexes. It never drops or rewrites existing data, so it is safe to run
// on every startup.
func runMigrations(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin migration: %w", err)
	}
	defer tx.Rollback()

	for _, t := range tables {
		if _, err := tx.Exec(t.create); err != nil {
			return fmt.Errorf("failed to create table %s: %w", t.name, err)
		}

		existing, err := tableColumns(tx, t.name)
		if err != nil {
			return err
		}

		for _, c := range t.columns {
			if existing[c.name] {
				continue
			}
			stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", t.name, c.name, c.def)
			if _, err := tx.Exec(stmt); err != nil {
				return fmt.Errorf("failed to add column %s.%s: %w", t.name, c.name, err)
			}
		}
	}

	if _, err := tx.Exec(indexes); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration: %w", err)
	}
	return nil
}

// tableColumns returns the set of column names currently defined on a table.
func tableColumns(tx *sql.Tx, name string) (map[string]bool, error) {
	rows, err := tx.Query(fmt.Sprintf("PRAGMA table_info(%s)", name))
	if err != nil {
		return nil, fmt.Errorf("failed to inspect table %s: %w", name, err)
	}
	defer rows.Close()

	columns := make(map[string]bool)
	for rows.Next() {
		var (
			cid       int
			colName   string
			colType   string
			notNull   int
			dfltValue sql.NullString
			pk        int
		)
		if err := rows.Scan(&cid, &colName, &colType, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", name, err)
		}
		columns[colName] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate columns of %s: %w", name, err)
	}
	return columns, nil
}
