package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"manufacturing_analytics/internal/models"
	"manufacturing_analytics/internal/service"
)

// Test doubles for the service interfaces, shared by the handler tests.

type mockAnalytics struct {
	info     models.DatasetInfo
	records  []models.Record
	overview models.OverviewMetrics

	aggregateResp models.Summary
	aggregateErr  error

	anomalyRecords []models.Record

	corrResp models.Matrix
	corrErr  error

	failureResp models.Summary
	failureErr  error

	maintenanceResp models.Summary
	maintenanceErr  error

	detailResp models.MachineDetail
	detailErr  error

	seriesResp models.TimeSeries
	seriesErr  error

	dailyResp models.Summary
	dailyErr  error

	// captured call arguments
	lastCriteria models.Criteria
	lastGroupKey string
	lastMetric   string
	lastOp       string
	lastTempT    float64
	lastVibT     float64
	lastMachine  string
	lastMetrics  []string
}

func (m *mockAnalytics) DatasetInfo(context.Context) models.DatasetInfo { return m.info }

func (m *mockAnalytics) Records(_ context.Context, c models.Criteria) []models.Record {
	m.lastCriteria = c
	return m.records
}

func (m *mockAnalytics) Overview(_ context.Context, c models.Criteria) models.OverviewMetrics {
	m.lastCriteria = c
	return m.overview
}

func (m *mockAnalytics) Aggregate(_ context.Context, c models.Criteria, groupKey, metric, op string) (models.Summary, error) {
	m.lastCriteria, m.lastGroupKey, m.lastMetric, m.lastOp = c, groupKey, metric, op
	return m.aggregateResp, m.aggregateErr
}

func (m *mockAnalytics) Anomalies(_ context.Context, c models.Criteria, tempThreshold, vibThreshold float64) []models.Record {
	m.lastCriteria, m.lastTempT, m.lastVibT = c, tempThreshold, vibThreshold
	return m.anomalyRecords
}

func (m *mockAnalytics) Correlation(_ context.Context, c models.Criteria, metrics []string) (models.Matrix, error) {
	m.lastCriteria, m.lastMetrics = c, metrics
	return m.corrResp, m.corrErr
}

func (m *mockAnalytics) FailureDistribution(_ context.Context, c models.Criteria) (models.Summary, error) {
	m.lastCriteria = c
	return m.failureResp, m.failureErr
}

func (m *mockAnalytics) MaintenanceByMachine(_ context.Context, c models.Criteria) (models.Summary, error) {
	m.lastCriteria = c
	return m.maintenanceResp, m.maintenanceErr
}

func (m *mockAnalytics) MachineDetail(_ context.Context, c models.Criteria, machine string) (models.MachineDetail, error) {
	m.lastCriteria, m.lastMachine = c, machine
	return m.detailResp, m.detailErr
}

func (m *mockAnalytics) TimeSeries(_ context.Context, c models.Criteria, machine string, metrics []string) (models.TimeSeries, error) {
	m.lastCriteria, m.lastMachine, m.lastMetrics = c, machine, metrics
	return m.seriesResp, m.seriesErr
}

func (m *mockAnalytics) DailyPattern(_ context.Context, c models.Criteria, machine, metric string) (models.Summary, error) {
	m.lastCriteria, m.lastMachine, m.lastMetric = c, machine, metric
	return m.dailyResp, m.dailyErr
}

type mockExporter struct {
	entry models.ExportEntry
	data  []byte
	err   error

	history    []models.ExportEntry
	historyErr error

	lastCriteria models.Criteria
	lastName     string
	lastFormat   string
	exportCalls  int
}

func (m *mockExporter) Export(_ context.Context, c models.Criteria, name, format string) (models.ExportEntry, []byte, error) {
	m.exportCalls++
	m.lastCriteria, m.lastName, m.lastFormat = c, name, format
	return m.entry, m.data, m.err
}

func (m *mockExporter) History(context.Context) ([]models.ExportEntry, error) {
	return m.history, m.historyErr
}

type mockPresets struct {
	saveResp models.FilterPreset
	saveErr  error
	listResp []models.FilterPreset
	listErr  error
	getResp  models.FilterPreset
	getErr   error
	delErr   error

	lastName     string
	lastCriteria models.Criteria
	lastID       string
}

func (m *mockPresets) Save(_ context.Context, name string, c models.Criteria) (models.FilterPreset, error) {
	m.lastName, m.lastCriteria = name, c
	return m.saveResp, m.saveErr
}

func (m *mockPresets) List(context.Context) ([]models.FilterPreset, error) {
	return m.listResp, m.listErr
}

func (m *mockPresets) Get(_ context.Context, id string) (models.FilterPreset, error) {
	m.lastID = id
	return m.getResp, m.getErr
}

func (m *mockPresets) Delete(_ context.Context, id string) error {
	m.lastID = id
	return m.delErr
}

// newTestRouter builds the real router over mocked services.
func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, AnomalyDefaults{Temperature: 90, Vibration: 70})
	return h.InitRoutes()
}
