package service

import (
	"context"
	"fmt"

	"manufacturing_analytics/internal/dataset"
	"manufacturing_analytics/internal/engine"
	"manufacturing_analytics/internal/models"
)

// AnalyticsService answers dashboard queries over the immutable dataset.
// All methods are pure functions of (dataset, criteria) and are safe for
// concurrent use: the dataset is never mutated after load.
type AnalyticsService struct {
	ds *dataset.Dataset
}

func NewAnalyticsService(ds *dataset.Dataset) *AnalyticsService {
	return &AnalyticsService{ds: ds}
}

// filteredView applies the criteria to the full dataset.
func (s *AnalyticsService) filteredView(c models.Criteria) engine.View {
	return engine.Filter(engine.NewView(s.ds.Records()), c)
}

func (s *AnalyticsService) DatasetInfo(_ context.Context) models.DatasetInfo {
	return s.ds.Info()
}

func (s *AnalyticsService) Records(_ context.Context, c models.Criteria) []models.Record {
	return s.filteredView(c).Records()
}

// Overview computes the headline metrics: machine count, record count,
// failure count and failure rate, plus the status distribution.
func (s *AnalyticsService) Overview(_ context.Context, c models.Criteria) models.OverviewMetrics {
	view := s.filteredView(c)

	machines := make(map[string]bool)
	failures := 0
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		machines[r.Machine] = true
		if r.MachineStatus == models.StatusFailure {
			failures++
		}
	}

	rate := 0.0
	if view.Len() > 0 {
		rate = float64(failures) / float64(view.Len()) * 100
	}

	// Count aggregation over a valid key cannot fail.
	statusDist, _ := engine.Aggregate(view, "machine_status", "", models.OpCount)

	return models.OverviewMetrics{
		Machines:           len(machines),
		Records:            view.Len(),
		Failures:           failures,
		FailureRatePercent: rate,
		StatusDistribution: statusDist.Rows,
	}
}

func (s *AnalyticsService) Aggregate(_ context.Context, c models.Criteria, groupKey, metric, op string) (models.Summary, error) {
	return engine.Aggregate(s.filteredView(c), groupKey, metric, op)
}

func (s *AnalyticsService) Anomalies(_ context.Context, c models.Criteria, tempThreshold, vibThreshold float64) []models.Record {
	return engine.DetectAnomalies(s.filteredView(c), tempThreshold, vibThreshold).Records()
}

func (s *AnalyticsService) Correlation(_ context.Context, c models.Criteria, metrics []string) (models.Matrix, error) {
	return engine.CorrelationMatrix(s.filteredView(c), metrics)
}

// FailureDistribution counts records per failure type, excluding normal
// readings.
func (s *AnalyticsService) FailureDistribution(_ context.Context, c models.Criteria) (models.Summary, error) {
	view := s.filteredView(c)
	summary, err := engine.Aggregate(view, "failure_type", "", models.OpCount)
	if err != nil {
		return models.Summary{}, err
	}
	rows := summary.Rows[:0]
	for _, row := range summary.Rows {
		if row.Key != models.FailureNormal {
			rows = append(rows, row)
		}
	}
	summary.Rows = rows
	return summary, nil
}

// MaintenanceByMachine counts records flagged maintenance_required per
// machine.
func (s *AnalyticsService) MaintenanceByMachine(_ context.Context, c models.Criteria) (models.Summary, error) {
	needing := c
	needing.Maintenance = models.MaintenanceRequired
	return engine.Aggregate(s.filteredView(needing), "machine", "", models.OpCount)
}

// MachineDetail returns the latest readings of one machine within the
// filtered view. Latest means the final row in view order.
func (s *AnalyticsService) MachineDetail(_ context.Context, c models.Criteria, machine string) (models.MachineDetail, error) {
	view := s.machineView(c, machine)
	if view.Len() == 0 {
		return models.MachineDetail{}, fmt.Errorf("machine %q: %w", machine, ErrNotFound)
	}
	last := view.At(view.Len() - 1)
	return models.MachineDetail{
		Machine:       machine,
		Records:       view.Len(),
		LastStatus:    last.MachineStatus,
		LastTemp:      last.Temperature,
		LastVibration: last.Vibration,
		RemainingLife: last.PredictedRemainingLife,
		LastSeen:      last.Timestamp,
	}, nil
}

// TimeSeries returns timestamped values of the selected metrics for one
// machine, in view order.
func (s *AnalyticsService) TimeSeries(_ context.Context, c models.Criteria, machine string, metrics []string) (models.TimeSeries, error) {
	for _, m := range metrics {
		if _, ok := (models.Record{}).Measure(m); !ok {
			return models.TimeSeries{}, fmt.Errorf("unknown metric %q", m)
		}
	}

	view := s.machineView(c, machine)
	points := make([]models.TimeSeriesPoint, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		values := make(map[string]float64, len(metrics))
		for _, m := range metrics {
			v, _ := r.Measure(m)
			values[m] = v
		}
		points = append(points, models.TimeSeriesPoint{Timestamp: r.Timestamp, Values: values})
	}

	return models.TimeSeries{Machine: machine, Metrics: metrics, Points: points}, nil
}

// DailyPattern computes the mean of a metric per hour of day for one
// machine.
func (s *AnalyticsService) DailyPattern(_ context.Context, c models.Criteria, machine, metric string) (models.Summary, error) {
	return engine.Aggregate(s.machineView(c, machine), "hour", metric, models.OpMean)
}

// machineView narrows the filtered view to a single machine.
func (s *AnalyticsService) machineView(c models.Criteria, machine string) engine.View {
	narrowed := c
	narrowed.Machines = []string{machine}
	return s.filteredView(narrowed)
}
