package repository

import (
	"context"
	"database/sql"

	"manufacturing_analytics/internal/models"
)

// ExportRepo records every export of a filtered view.
type ExportRepo interface {
	Append(ctx context.Context, e models.ExportEntry) error
	List(ctx context.Context) ([]models.ExportEntry, error)
}

// PresetRepo persists named filter criteria.
type PresetRepo interface {
	Save(ctx context.Context, p models.FilterPreset) error
	List(ctx context.Context) ([]models.FilterPreset, error)
	Get(ctx context.Context, id string) (models.FilterPreset, error)
	Delete(ctx context.Context, id string) error
}

type Repository struct {
	Exports ExportRepo
	Presets PresetRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Exports: NewExportSQLite(db),
		Presets: NewPresetSQLite(db),
	}
}
