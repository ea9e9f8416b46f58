package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"manufacturing_analytics/internal/dataset"
	"manufacturing_analytics/internal/models"
)

const analyticsFixture = `machine,timestamp,machine_status,temperature,vibration,humidity,pressure,energy_consumption,failure_type,maintenance_required,predicted_remaining_life
M1,2024-01-01 02:00:00,Running,95,10,40,1010,120,Normal,No,500
M2,2024-01-01 08:30:00,Idle,50,80,42,1005,80,Normal,Yes,300
M3,2024-01-01 20:15:00,Failure,40,20,45,1000,60,Overheat,Yes,10
M1,2024-01-02 14:00:00,Running,60,30,41,1008,100,Normal,No,480
M2,2024-01-03 23:45:00,Failure,70,90,43,1002,90,Bearing,No,50
`

func loadTestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	if err := os.WriteFile(path, []byte(analyticsFixture), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	ds, err := dataset.NewLoader().Load(path)
	if err != nil {
		t.Fatalf("load fixture: %v", err)
	}
	return ds
}

func TestAnalyticsService_Overview(t *testing.T) {
	t.Parallel()

	s := NewAnalyticsService(loadTestDataset(t))
	ctx := context.Background()

	got := s.Overview(ctx, models.Criteria{})
	if got.Machines != 3 || got.Records != 5 || got.Failures != 2 {
		t.Fatalf("unexpected overview: %+v", got)
	}
	if math.Abs(got.FailureRatePercent-40) > 1e-9 {
		t.Errorf("failure rate: want 40%%, got %v", got.FailureRatePercent)
	}

	var statusTotal float64
	for _, row := range got.StatusDistribution {
		statusTotal += row.Value
	}
	if statusTotal != 5 {
		t.Errorf("status distribution should cover all records, got total %v", statusTotal)
	}
}

func TestAnalyticsService_OverviewEmptyView(t *testing.T) {
	t.Parallel()

	s := NewAnalyticsService(loadTestDataset(t))

	got := s.Overview(context.Background(), models.Criteria{Machines: []string{}})
	if got.Records != 0 || got.Failures != 0 || got.FailureRatePercent != 0 {
		t.Fatalf("empty view overview must be all zeros, got %+v", got)
	}
}

func TestAnalyticsService_FailureDistributionExcludesNormal(t *testing.T) {
	t.Parallel()

	s := NewAnalyticsService(loadTestDataset(t))

	got, err := s.FailureDistribution(context.Background(), models.Criteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, row := range got.Rows {
		if row.Key == models.FailureNormal {
			t.Fatalf("Normal must be excluded from the failure distribution: %+v", got.Rows)
		}
	}
	if len(got.Rows) != 2 {
		t.Fatalf("want 2 failure types, got %d", len(got.Rows))
	}
}

func TestAnalyticsService_MaintenanceByMachine(t *testing.T) {
	t.Parallel()

	s := NewAnalyticsService(loadTestDataset(t))

	got, err := s.MaintenanceByMachine(context.Background(), models.Criteria{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := map[string]float64{"M2": 1, "M3": 1}
	if len(got.Rows) != len(want) {
		t.Fatalf("want %d machines, got %d: %+v", len(want), len(got.Rows), got.Rows)
	}
	for _, row := range got.Rows {
		if want[row.Key] != row.Value {
			t.Errorf("machine %q: want %v, got %v", row.Key, want[row.Key], row.Value)
		}
	}
}

func TestAnalyticsService_MachineDetail(t *testing.T) {
	t.Parallel()

	s := NewAnalyticsService(loadTestDataset(t))
	ctx := context.Background()

	got, err := s.MachineDetail(ctx, models.Criteria{}, "M2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Last M2 record in dataset order is the 2024-01-03 failure.
	if got.Records != 2 || got.LastStatus != models.StatusFailure || got.LastTemp != 70 {
		t.Fatalf("unexpected detail: %+v", got)
	}

	if _, err := s.MachineDetail(ctx, models.Criteria{}, "M9"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for unknown machine, got %v", err)
	}

	// A machine filtered out of the view is also not found.
	crit := models.Criteria{Statuses: []string{models.StatusRunning}}
	if _, err := s.MachineDetail(ctx, crit, "M3"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("want ErrNotFound for filtered-out machine, got %v", err)
	}
}

func TestAnalyticsService_TimeSeriesAndDailyPattern(t *testing.T) {
	t.Parallel()

	s := NewAnalyticsService(loadTestDataset(t))
	ctx := context.Background()

	series, err := s.TimeSeries(ctx, models.Criteria{}, "M1", []string{"temperature", "vibration"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Points) != 2 {
		t.Fatalf("want 2 points, got %d", len(series.Points))
	}
	if series.Points[0].Values["temperature"] != 95 || series.Points[1].Values["temperature"] != 60 {
		t.Errorf("time series values wrong: %+v", series.Points)
	}
	if !series.Points[0].Timestamp.Before(series.Points[1].Timestamp) {
		t.Error("time series must preserve view order")
	}

	if _, err := s.TimeSeries(ctx, models.Criteria{}, "M1", []string{"voltage"}); err == nil {
		t.Fatal("expected error for unknown metric")
	}

	daily, err := s.DailyPattern(ctx, models.Criteria{}, "M1", "temperature")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// M1 has records at hours 2 and 14.
	if len(daily.Rows) != 2 || daily.Rows[0].Key != "2" || daily.Rows[1].Key != "14" {
		t.Fatalf("unexpected daily pattern: %+v", daily.Rows)
	}
}

func TestAnalyticsService_RecordsFilterSubset(t *testing.T) {
	t.Parallel()

	s := NewAnalyticsService(loadTestDataset(t))

	got := s.Records(context.Background(), models.Criteria{
		Machines:    []string{"M2"},
		Maintenance: models.MaintenanceRequired,
	})
	if len(got) != 1 || got[0].Machine != "M2" || !got[0].MaintenanceRequired {
		t.Fatalf("unexpected records: %+v", got)
	}
}
