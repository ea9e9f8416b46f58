package models

import (
	"strconv"
	"time"
)

// Machine status values as they appear in the source data.
const (
	StatusRunning = "Running"
	StatusIdle    = "Idle"
	StatusFailure = "Failure"
)

// FailureNormal marks a record with no failure.
const FailureNormal = "Normal"

// Day parts bucket the hour of day into four right-open intervals:
// [0,6) Madrugada, [6,12) Manhã, [12,18) Tarde, [18,24) Noite.
const (
	DayPartMadrugada = "Madrugada"
	DayPartManha     = "Manhã"
	DayPartTarde     = "Tarde"
	DayPartNoite     = "Noite"
)

// Record is a single sensor observation for one machine at one timestamp.
// Date, Hour and DayPart are derived from Timestamp once at load.
type Record struct {
	Machine                string    `json:"machine"`
	Timestamp              time.Time `json:"timestamp"`
	MachineStatus          string    `json:"machine_status"`
	Temperature            float64   `json:"temperature"`
	Vibration              float64   `json:"vibration"`
	Humidity               float64   `json:"humidity"`
	Pressure               float64   `json:"pressure"`
	EnergyConsumption      float64   `json:"energy_consumption"`
	FailureType            string    `json:"failure_type"`
	MaintenanceRequired    bool      `json:"maintenance_required"`
	PredictedRemainingLife float64   `json:"predicted_remaining_life"`

	Date    time.Time `json:"date"`
	Hour    int       `json:"hour"`
	DayPart string    `json:"day_part"`
}

// MeasureKeys lists the numeric columns that can be aggregated or correlated.
var MeasureKeys = []string{
	"temperature",
	"vibration",
	"humidity",
	"pressure",
	"energy_consumption",
	"predicted_remaining_life",
}

// DimensionKeys lists the categorical/derived columns usable as group keys.
var DimensionKeys = []string{
	"machine",
	"machine_status",
	"failure_type",
	"day_part",
	"hour",
	"date",
}

// Measure returns the numeric value for a measure key.
func (r Record) Measure(key string) (float64, bool) {
	switch key {
	case "temperature":
		return r.Temperature, true
	case "vibration":
		return r.Vibration, true
	case "humidity":
		return r.Humidity, true
	case "pressure":
		return r.Pressure, true
	case "energy_consumption":
		return r.EnergyConsumption, true
	case "predicted_remaining_life":
		return r.PredictedRemainingLife, true
	}
	return 0, false
}

// Dimension returns the string value for a dimension key.
func (r Record) Dimension(key string) (string, bool) {
	switch key {
	case "machine":
		return r.Machine, true
	case "machine_status":
		return r.MachineStatus, true
	case "failure_type":
		return r.FailureType, true
	case "day_part":
		return r.DayPart, true
	case "hour":
		return strconv.Itoa(r.Hour), true
	case "date":
		return r.Date.Format("2006-01-02"), true
	}
	return "", false
}
