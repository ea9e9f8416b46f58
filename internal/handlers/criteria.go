package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"manufacturing_analytics/internal/models"
)

const layoutDate = "2006-01-02"

// bindCriteria reads the filter facets from query parameters.
//
// An absent facet parameter leaves the facet unconstrained (nil). A
// present but empty parameter is an explicit empty selection and
// matches no rows.
func bindCriteria(c *gin.Context) (models.Criteria, error) {
	var crit models.Criteria

	crit.Machines = querySelection(c, "machines")
	crit.Statuses = querySelection(c, "statuses")
	crit.FailureTypes = querySelection(c, "failures")

	if qs := c.Query("from"); qs != "" {
		t, err := parseQueryDate(qs)
		if err != nil {
			return models.Criteria{}, fmt.Errorf("invalid 'from' date: %w", err)
		}
		crit.From = t
	}
	if qs := c.Query("to"); qs != "" {
		t, err := parseQueryDate(qs)
		if err != nil {
			return models.Criteria{}, fmt.Errorf("invalid 'to' date: %w", err)
		}
		crit.To = t
	}
	if !crit.From.IsZero() && !crit.To.IsZero() && crit.From.After(crit.To) {
		return models.Criteria{}, fmt.Errorf("'from' must be <= 'to'")
	}

	switch m := strings.ToLower(strings.TrimSpace(c.Query("maintenance"))); m {
	case "", "any":
		crit.Maintenance = models.MaintenanceAny
	case models.MaintenanceRequired, models.MaintenanceNotRequired:
		crit.Maintenance = m
	default:
		return models.Criteria{}, fmt.Errorf("invalid 'maintenance' value %q, expected yes|no|any", m)
	}

	return crit, nil
}

// querySelection splits a comma-separated facet parameter. Returns nil
// when the parameter is absent, an empty slice when present but empty.
func querySelection(c *gin.Context, name string) []string {
	raw, ok := c.GetQuery(name)
	if !ok {
		return nil
	}
	out := make([]string, 0, 4)
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func parseQueryDate(s string) (time.Time, error) {
	t, err := time.Parse(layoutDate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t.UTC(), nil
}
