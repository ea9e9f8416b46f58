package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"manufacturing_analytics/internal/models"
)

// SQLite TIMESTAMP format.
const timestampFormat = "2006-01-02 15:04:05"

type ExportSQLite struct {
	db *sql.DB
}

func NewExportSQLite(db *sql.DB) *ExportSQLite { return &ExportSQLite{db: db} }

// Append inserts a new export entry. If ID or CreatedAt are empty,
// they're set.
func (r *ExportSQLite) Append(ctx context.Context, e models.ExportEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	} else {
		e.CreatedAt = e.CreatedAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO export_history (id, name, format, rows, created_at)
		VALUES (?, ?, ?, ?, ?)
	`,
		e.ID,
		e.Name,
		e.Format,
		e.Rows,
		e.CreatedAt.Format(timestampFormat),
	)
	return err
}

// List returns all recorded exports, most recent first.
func (r *ExportSQLite) List(ctx context.Context) ([]models.ExportEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, format, rows, created_at
		FROM export_history
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.ExportEntry, 0, 16)
	for rows.Next() {
		var e models.ExportEntry
		if err := rows.Scan(&e.ID, &e.Name, &e.Format, &e.Rows, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.CreatedAt = e.CreatedAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
