package service

import (
	"context"
	"errors"

	"manufacturing_analytics/internal/dataset"
	"manufacturing_analytics/internal/models"
	"manufacturing_analytics/internal/repository"
)

// ErrNotFound marks lookups of machines or presets that don't exist.
var ErrNotFound = errors.New("not found")

// Analytics exposes all read-only derived views over the dataset.
// Every operation filters the immutable dataset by the given criteria
// first; results are pure functions of (dataset, criteria).
type Analytics interface {
	DatasetInfo(ctx context.Context) models.DatasetInfo
	Records(ctx context.Context, c models.Criteria) []models.Record
	Overview(ctx context.Context, c models.Criteria) models.OverviewMetrics
	Aggregate(ctx context.Context, c models.Criteria, groupKey, metric, op string) (models.Summary, error)
	Anomalies(ctx context.Context, c models.Criteria, tempThreshold, vibThreshold float64) []models.Record
	Correlation(ctx context.Context, c models.Criteria, metrics []string) (models.Matrix, error)
	FailureDistribution(ctx context.Context, c models.Criteria) (models.Summary, error)
	MaintenanceByMachine(ctx context.Context, c models.Criteria) (models.Summary, error)
	MachineDetail(ctx context.Context, c models.Criteria, machine string) (models.MachineDetail, error)
	TimeSeries(ctx context.Context, c models.Criteria, machine string, metrics []string) (models.TimeSeries, error)
	DailyPattern(ctx context.Context, c models.Criteria, machine, metric string) (models.Summary, error)
}

// Exporter serializes filtered views and keeps an export history.
type Exporter interface {
	Export(ctx context.Context, c models.Criteria, name, format string) (models.ExportEntry, []byte, error)
	History(ctx context.Context) ([]models.ExportEntry, error)
}

// Presets persists named filter criteria.
type Presets interface {
	Save(ctx context.Context, name string, c models.Criteria) (models.FilterPreset, error)
	List(ctx context.Context) ([]models.FilterPreset, error)
	Get(ctx context.Context, id string) (models.FilterPreset, error)
	Delete(ctx context.Context, id string) error
}

// Service aggregates all sub-services.
type Service struct {
	Analytics
	Exporter
	Presets
}

// NewService wires the loaded dataset and the repository layer into
// concrete services.
func NewService(ds *dataset.Dataset, repos *repository.Repository) *Service {
	analytics := NewAnalyticsService(ds)
	return &Service{
		Analytics: analytics,
		Exporter:  NewExportService(analytics, repos.Exports),
		Presets:   NewPresetService(repos.Presets),
	}
}
