package models

import "time"

// Export formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ExportEntry is one recorded export of a filtered view.
type ExportEntry struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"` // filename including extension
	Format    string    `json:"format"`
	Rows      int       `json:"rows"`
	CreatedAt time.Time `json:"created_at"`
}

// FilterPreset is a named, persisted set of filter criteria.
type FilterPreset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Criteria  Criteria  `json:"criteria"`
	CreatedAt time.Time `json:"created_at"`
}
