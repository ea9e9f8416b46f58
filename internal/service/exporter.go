package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"manufacturing_analytics/internal/export"
	"manufacturing_analytics/internal/models"
	"manufacturing_analytics/internal/repository"
)

// ExportService serializes filtered views to CSV or JSON and records
// every export in the history repository.
type ExportService struct {
	analytics  *AnalyticsService
	exportRepo repository.ExportRepo
}

func NewExportService(analytics *AnalyticsService, exportRepo repository.ExportRepo) *ExportService {
	return &ExportService{analytics: analytics, exportRepo: exportRepo}
}

// Export filters the dataset, serializes the view in the requested
// format and appends an entry to the export history. An empty name gets
// a timestamped default, like the dashboard's download tab.
func (s *ExportService) Export(ctx context.Context, c models.Criteria, name, format string) (models.ExportEntry, []byte, error) {
	format = strings.ToLower(strings.TrimSpace(format))

	view := s.analytics.filteredView(c)

	var (
		data []byte
		err  error
	)
	switch format {
	case models.FormatCSV:
		data, err = export.WriteCSV(view)
	case models.FormatJSON:
		data, err = export.WriteJSON(view)
	default:
		return models.ExportEntry{}, nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return models.ExportEntry{}, nil, err
	}

	if name = strings.TrimSpace(name); name == "" {
		name = "manufacturing_data_" + time.Now().UTC().Format("20060102_150405")
	}

	entry := models.ExportEntry{
		ID:        uuid.NewString(),
		Name:      export.Filename(name, format),
		Format:    format,
		Rows:      view.Len(),
		CreatedAt: time.Now().UTC(),
	}
	if err := s.exportRepo.Append(ctx, entry); err != nil {
		return models.ExportEntry{}, nil, fmt.Errorf("record export: %w", err)
	}
	return entry, data, nil
}

// History lists past exports, most recent first.
func (s *ExportService) History(ctx context.Context) ([]models.ExportEntry, error) {
	return s.exportRepo.List(ctx)
}
