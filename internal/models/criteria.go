package models

import "time"

// Maintenance filter states. Empty means "any".
const (
	MaintenanceAny         = ""
	MaintenanceRequired    = "yes"
	MaintenanceNotRequired = "no"
)

// Criteria is a conjunction of facet predicates applied to the dataset.
//
// A nil slice means the facet is inactive (no constraint). An empty,
// non-nil slice is an empty selection and matches no record, the same
// behavior a cleared multiselect has in the dashboard.
type Criteria struct {
	Machines []string `json:"machines,omitempty"`
	// Zero time means the bound is inactive. encoding/json never omits
	// a zero time.Time, so the wire form carries it explicitly and it
	// parses back to zero.
	From         time.Time `json:"from"`
	To           time.Time `json:"to"`
	Statuses     []string  `json:"statuses,omitempty"`
	FailureTypes []string  `json:"failure_types,omitempty"`
	Maintenance  string    `json:"maintenance,omitempty"` // "", "yes", "no"
}

// IsZero reports whether no facet is active.
func (c Criteria) IsZero() bool {
	return c.Machines == nil &&
		c.From.IsZero() && c.To.IsZero() &&
		c.Statuses == nil &&
		c.FailureTypes == nil &&
		c.Maintenance == MaintenanceAny
}
