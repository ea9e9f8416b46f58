package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"manufacturing_analytics/internal/engine"
)

// Column order of the delimited serialization. Derived fields are
// included, matching the dashboard's downloadable table.
var columns = []string{
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
	"date",
	"hour",
	"day_part",
}

const (
	timestampLayout = "2006-01-02 15:04:05"
	dateLayout      = "2006-01-02"
)

// WriteCSV serializes the view as delimited text: a header row followed
// by one row per record in view order.
func WriteCSV(view engine.View) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(columns); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		maint := "No"
		if r.MaintenanceRequired {
			maint = "Yes"
		}
		row := []string{
			r.Machine,
			r.Timestamp.Format(timestampLayout),
			r.MachineStatus,
			formatFloat(r.Temperature),
			formatFloat(r.Vibration),
			formatFloat(r.Humidity),
			formatFloat(r.Pressure),
			formatFloat(r.EnergyConsumption),
			r.FailureType,
			maint,
			formatFloat(r.PredictedRemainingLife),
			r.Date.Format(dateLayout),
			strconv.Itoa(r.Hour),
			r.DayPart,
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON serializes the view as an indented array of record objects,
// one per record, in view order.
func WriteJSON(view engine.View) ([]byte, error) {
	data, err := json.MarshalIndent(view.Records(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal records: %w", err)
	}
	return data, nil
}

// Filename joins a caller-supplied base name with the extension of the
// chosen format.
func Filename(base, format string) string {
	return base + "." + format
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
