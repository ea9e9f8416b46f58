package engine

import "manufacturing_analytics/internal/models"

// Filter applies all active criteria as a conjunction in a single pass
// and returns the matching subset of the view. A record passes only if it
// satisfies every active facet. An empty result is a valid empty view,
// never an error.
//
// A nil selection leaves its facet unconstrained. An empty, non-nil
// selection matches nothing: membership in an empty set is simply false,
// no special case needed.
func Filter(view View, c models.Criteria) View {
	if c.IsZero() {
		return view
	}

	machines := toSet(c.Machines)
	statuses := toSet(c.Statuses)
	failures := toSet(c.FailureTypes)

	indices := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		if machines != nil && !machines[r.Machine] {
			continue
		}
		if statuses != nil && !statuses[r.MachineStatus] {
			continue
		}
		if failures != nil && !failures[r.FailureType] {
			continue
		}
		// Date range is inclusive on both ends, compared on the
		// derived calendar date.
		if !c.From.IsZero() && r.Date.Before(c.From) {
			continue
		}
		if !c.To.IsZero() && r.Date.After(c.To) {
			continue
		}
		switch c.Maintenance {
		case models.MaintenanceRequired:
			if !r.MaintenanceRequired {
				continue
			}
		case models.MaintenanceNotRequired:
			if r.MaintenanceRequired {
				continue
			}
		}
		indices = append(indices, view.index(i))
	}

	return view.subView(indices)
}

// toSet converts a selection to a lookup set, preserving the nil
// (inactive) vs. empty (match nothing) distinction.
func toSet(items []string) map[string]bool {
	if items == nil {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[item] = true
	}
	return set
}
