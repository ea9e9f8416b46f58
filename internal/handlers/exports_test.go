package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"manufacturing_analytics/internal/models"
	"manufacturing_analytics/internal/service"
)

func TestExportHandlers_PostAndHistory(t *testing.T) {
	ex := &mockExporter{
		entry: models.ExportEntry{
			ID:     "exp-1",
			Name:   "night_shift.csv",
			Format: models.FormatCSV,
			Rows:   2,
		},
		data: []byte("machine,timestamp\nM1,2024-01-01 02:00:00\nM1,2024-01-01 14:00:00\n"),
		history: []models.ExportEntry{
			{ID: "exp-1", Name: "night_shift.csv", Format: models.FormatCSV, Rows: 2, CreatedAt: time.Now().UTC()},
		},
	}
	s := &service.Service{Analytics: &mockAnalytics{}, Exporter: ex}
	r := newTestRouter(s)

	// POST /exports returns the serialized file as an attachment.
	body := bytes.NewBufferString(`{"name":"night_shift","format":"csv","criteria":{"machines":["M1"]}}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("export status=%d, body=%s", w.Code, w.Body.String())
	}
	if ex.exportCalls != 1 {
		t.Fatalf("expected Export to be called once, got %d", ex.exportCalls)
	}
	if ex.lastName != "night_shift" || ex.lastFormat != "csv" {
		t.Fatalf("wrong export args: name=%q format=%q", ex.lastName, ex.lastFormat)
	}
	if len(ex.lastCriteria.Machines) != 1 || ex.lastCriteria.Machines[0] != "M1" {
		t.Fatalf("criteria not forwarded: %+v", ex.lastCriteria)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Fatalf("content type=%q", ct)
	}
	if cd := w.Header().Get(contentDisposition); cd != `attachment; filename="night_shift.csv"` {
		t.Fatalf("content disposition=%q", cd)
	}
	if !bytes.Equal(w.Body.Bytes(), ex.data) {
		t.Fatalf("body does not match serialized data: %q", w.Body.String())
	}

	// GET /exports returns the history with a count.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/exports", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("history status=%d, body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Count   int                  `json:"count"`
		Exports []models.ExportEntry `json:"exports"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal history: %v", err)
	}
	if resp.Count != 1 || len(resp.Exports) != 1 || resp.Exports[0].ID != "exp-1" {
		t.Fatalf("unexpected history: %+v", resp)
	}
}

func TestExportHandlers_JSONContentType(t *testing.T) {
	ex := &mockExporter{
		entry: models.ExportEntry{ID: "exp-2", Name: "dump.json", Format: models.FormatJSON, Rows: 0},
		data:  []byte("[]"),
	}
	r := newTestRouter(&service.Service{Analytics: &mockAnalytics{}, Exporter: ex})

	body := bytes.NewBufferString(`{"format":"json"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("export status=%d, body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type=%q", ct)
	}
}

func TestExportHandlers_Errors(t *testing.T) {
	ex := &mockExporter{err: errors.New(`unsupported export format "xml"`)}
	r := newTestRouter(&service.Service{Analytics: &mockAnalytics{}, Exporter: ex})

	// Missing required format field → 400 without touching the service.
	body := bytes.NewBufferString(`{"name":"no-format"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/exports", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing format, got %d", w.Code)
	}
	if ex.exportCalls != 0 {
		t.Fatalf("Export called %d times for invalid body", ex.exportCalls)
	}

	// Service rejection surfaces as 400 with the error message.
	body = bytes.NewBufferString(`{"format":"xml"}`)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/v1/exports", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unsupported format, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal error body: %v", err)
	}
	if resp["error"] != `unsupported export format "xml"` {
		t.Fatalf("error message=%q", resp["error"])
	}
}
