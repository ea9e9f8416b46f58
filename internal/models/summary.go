package models

import (
	"encoding/json"
	"math"
	"time"
)

// Aggregation operations supported by the engine.
const (
	OpMean  = "mean"
	OpCount = "count"
	OpSum   = "sum"
)

// SummaryRow is one group in an aggregation result.
type SummaryRow struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count"`
}

// Summary is a grouped/aggregated derivative of a filtered view.
// Rows are sorted ascending by group key.
type Summary struct {
	GroupKey string       `json:"group_key"`
	Metric   string       `json:"metric,omitempty"`
	Op       string       `json:"op"`
	Rows     []SummaryRow `json:"rows"`
}

// Matrix is a symmetric Pearson correlation matrix over a set of measures.
// Values may contain NaN where a column has zero variance in the view.
type Matrix struct {
	Metrics []string
	Values  [][]float64
}

// MarshalJSON renders NaN cells as null, which encoding/json cannot
// represent as float64.
func (m Matrix) MarshalJSON() ([]byte, error) {
	cells := make([][]*float64, len(m.Values))
	for i, row := range m.Values {
		cells[i] = make([]*float64, len(row))
		for j := range row {
			if !math.IsNaN(row[j]) {
				v := row[j]
				cells[i][j] = &v
			}
		}
	}
	return json.Marshal(struct {
		Metrics []string     `json:"metrics"`
		Values  [][]*float64 `json:"values"`
	}{Metrics: m.Metrics, Values: cells})
}

// DatasetInfo describes the loaded dataset and its available facet values.
type DatasetInfo struct {
	Rows         int       `json:"rows"`
	Machines     []string  `json:"machines"`
	Statuses     []string  `json:"statuses"`
	FailureTypes []string  `json:"failure_types"`
	DateFrom     time.Time `json:"date_from"`
	DateTo       time.Time `json:"date_to"`
}

// OverviewMetrics are the headline numbers of the dashboard's first tab.
type OverviewMetrics struct {
	Machines           int          `json:"machines"`
	Records            int          `json:"records"`
	Failures           int          `json:"failures"`
	FailureRatePercent float64      `json:"failure_rate_percent"`
	StatusDistribution []SummaryRow `json:"status_distribution"`
}

// MachineDetail summarizes the latest readings of one machine within a view.
// "Latest" is the final record in view order.
type MachineDetail struct {
	Machine       string    `json:"machine"`
	Records       int       `json:"records"`
	LastStatus    string    `json:"last_status"`
	LastTemp      float64   `json:"last_temperature"`
	LastVibration float64   `json:"last_vibration"`
	RemainingLife float64   `json:"predicted_remaining_life"`
	LastSeen      time.Time `json:"last_seen"`
}

// TimeSeriesPoint is one timestamped set of sensor values.
type TimeSeriesPoint struct {
	Timestamp time.Time          `json:"timestamp"`
	Values    map[string]float64 `json:"values"`
}

// TimeSeries carries sensor readings of one machine in view order.
type TimeSeries struct {
	Machine string            `json:"machine"`
	Metrics []string          `json:"metrics"`
	Points  []TimeSeriesPoint `json:"points"`
}
