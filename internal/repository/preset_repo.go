package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"manufacturing_analytics/internal/models"
)

type PresetSQLite struct {
	db *sql.DB
}

func NewPresetSQLite(db *sql.DB) *PresetSQLite { return &PresetSQLite{db: db} }

// Save inserts a new preset. Criteria are stored as JSON text.
func (r *PresetSQLite) Save(ctx context.Context, p models.FilterPreset) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	} else {
		p.CreatedAt = p.CreatedAt.UTC()
	}

	criteria, err := json.Marshal(p.Criteria)
	if err != nil {
		return fmt.Errorf("marshal criteria: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO filter_presets (id, name, criteria, created_at)
		VALUES (?, ?, ?, ?)
	`,
		p.ID,
		p.Name,
		string(criteria),
		p.CreatedAt.Format(timestampFormat),
	)
	return err
}

// List returns all presets ordered by name.
func (r *PresetSQLite) List(ctx context.Context) ([]models.FilterPreset, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, criteria, created_at
		FROM filter_presets
		ORDER BY name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.FilterPreset, 0, 16)
	for rows.Next() {
		p, err := scanPreset(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get returns one preset by ID. Returns sql.ErrNoRows when absent.
func (r *PresetSQLite) Get(ctx context.Context, id string) (models.FilterPreset, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, criteria, created_at
		FROM filter_presets
		WHERE id = ?
	`, id)
	return scanPreset(row.Scan)
}

// Delete removes one preset by ID. Returns sql.ErrNoRows when absent.
func (r *PresetSQLite) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM filter_presets WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func scanPreset(scan func(dest ...any) error) (models.FilterPreset, error) {
	var (
		p           models.FilterPreset
		criteriaStr string
	)
	if err := scan(&p.ID, &p.Name, &criteriaStr, &p.CreatedAt); err != nil {
		return models.FilterPreset{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	if err := json.Unmarshal([]byte(criteriaStr), &p.Criteria); err != nil {
		return models.FilterPreset{}, fmt.Errorf("unmarshal criteria: %w", err)
	}
	return p, nil
}
