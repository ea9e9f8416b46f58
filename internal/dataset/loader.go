package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"manufacturing_analytics/internal/models"
)

// Error kinds surfaced by the loader. A failed load never produces a
// partial Dataset.
var (
	ErrLoad       = errors.New("dataset load failed")
	ErrParse      = errors.New("timestamp parse failed")
	ErrValidation = errors.New("derived field validation failed")
)

// Columns that must be present in the source header.
var requiredColumns = []string{
	"machine",
	"timestamp",
	"machine_status",
	"temperature",
	"vibration",
	"humidity",
	"pressure",
	"energy_consumption",
	"failure_type",
	"maintenance_required",
	"predicted_remaining_life",
}

// Accepted timestamp layouts, tried in order.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// Dataset is the full in-memory record collection, immutable after load.
type Dataset struct {
	path    string
	records []models.Record

	machines     []string
	statuses     []string
	failureTypes []string
	dateFrom     time.Time
	dateTo       time.Time
}

// Records gives read-only access to the rows in source order.
// Callers must not mutate the returned slice.
func (d *Dataset) Records() []models.Record { return d.records }

// Len returns the number of rows.
func (d *Dataset) Len() int { return len(d.records) }

// Info describes the dataset and the facet values available for filtering.
func (d *Dataset) Info() models.DatasetInfo {
	return models.DatasetInfo{
		Rows:         len(d.records),
		Machines:     d.machines,
		Statuses:     d.statuses,
		FailureTypes: d.failureTypes,
		DateFrom:     d.dateFrom,
		DateTo:       d.dateTo,
	}
}

// Loader loads CSV datasets and memoizes them per path for the life of
// the process. The cache replaces a hidden global with an owned handle.
type Loader struct {
	mu    sync.Mutex
	cache map[string]*Dataset
}

// NewLoader constructs an empty Loader.
func NewLoader() *Loader {
	return &Loader{cache: make(map[string]*Dataset)}
}

// Load parses the CSV at path into a Dataset. Repeated calls with the
// same path return the already-loaded Dataset; field derivation runs
// exactly once per path.
func (l *Loader) Load(path string) (*Dataset, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if ds, ok := l.cache[path]; ok {
		return ds, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %q: %v", ErrLoad, path, err)
	}
	defer func() { _ = f.Close() }()

	ds, err := parse(f)
	if err != nil {
		return nil, err
	}
	ds.path = path

	l.cache[path] = ds
	return ds, nil
}

// parse reads the header, validates required columns and converts every
// row. Any malformed row or timestamp rejects the whole load.
func parse(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: read header: %v", ErrLoad, err)
	}

	cols := make(map[string]int, len(headers))
	for i, h := range headers {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, fmt.Errorf("%w: missing required column %q", ErrLoad, c)
		}
	}

	var records []models.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrLoad, line, err)
		}
		rec, err := parseRow(row, cols, line)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	ds := &Dataset{records: records}
	ds.buildFacets()
	return ds, nil
}

func parseRow(row []string, cols map[string]int, line int) (models.Record, error) {
	field := func(name string) string {
		i := cols[name]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var rec models.Record
	rec.Machine = field("machine")
	rec.MachineStatus = field("machine_status")
	rec.FailureType = field("failure_type")

	ts, err := parseTimestamp(field("timestamp"))
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: line %d: %v", ErrParse, line, err)
	}
	rec.Timestamp = ts

	for _, m := range []struct {
		name string
		dst  *float64
	}{
		{"temperature", &rec.Temperature},
		{"vibration", &rec.Vibration},
		{"humidity", &rec.Humidity},
		{"pressure", &rec.Pressure},
		{"energy_consumption", &rec.EnergyConsumption},
		{"predicted_remaining_life", &rec.PredictedRemainingLife},
	} {
		v, err := strconv.ParseFloat(field(m.name), 64)
		if err != nil {
			return models.Record{}, fmt.Errorf("%w: line %d: column %q: %v", ErrLoad, line, m.name, err)
		}
		*m.dst = v
	}

	maint, err := parseMaintenance(field("maintenance_required"))
	if err != nil {
		return models.Record{}, fmt.Errorf("%w: line %d: %v", ErrLoad, line, err)
	}
	rec.MaintenanceRequired = maint

	if err := derive(&rec); err != nil {
		return models.Record{}, fmt.Errorf("line %d: %w", line, err)
	}
	return rec, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}

// parseMaintenance accepts the source's Yes/No values plus true/false.
func parseMaintenance(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid maintenance_required value %q", s)
}

// derive fills Date, Hour and DayPart from the parsed timestamp.
func derive(rec *models.Record) error {
	rec.Date = time.Date(
		rec.Timestamp.Year(), rec.Timestamp.Month(), rec.Timestamp.Day(),
		0, 0, 0, 0, time.UTC,
	)
	rec.Hour = rec.Timestamp.Hour()

	part, err := DayPartForHour(rec.Hour)
	if err != nil {
		return err
	}
	rec.DayPart = part
	return nil
}

// DayPartForHour buckets an hour into the four right-open intervals
// [0,6), [6,12), [12,18), [18,24). Hours outside [0,24) are invalid input.
func DayPartForHour(hour int) (string, error) {
	switch {
	case hour < 0 || hour >= 24:
		return "", fmt.Errorf("%w: hour %d outside [0,24)", ErrValidation, hour)
	case hour < 6:
		return models.DayPartMadrugada, nil
	case hour < 12:
		return models.DayPartManha, nil
	case hour < 18:
		return models.DayPartTarde, nil
	}
	return models.DayPartNoite, nil
}

// buildFacets computes the distinct facet values and the date span once,
// so the presentation layer can populate its selectors.
func (d *Dataset) buildFacets() {
	machines := make(map[string]bool)
	statuses := make(map[string]bool)
	failures := make(map[string]bool)

	for i, r := range d.records {
		machines[r.Machine] = true
		statuses[r.MachineStatus] = true
		failures[r.FailureType] = true
		if i == 0 || r.Date.Before(d.dateFrom) {
			d.dateFrom = r.Date
		}
		if i == 0 || r.Date.After(d.dateTo) {
			d.dateTo = r.Date
		}
	}

	d.machines = sortedKeys(machines)
	d.statuses = sortedKeys(statuses)
	d.failureTypes = sortedKeys(failures)
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
