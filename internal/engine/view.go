package engine

import "manufacturing_analytics/internal/models"

// View is a non-owning, order-preserving subset of a dataset. It holds
// indices into the base slice rather than copying records, so filtered
// views stay cheap and the base data is never duplicated or mutated.
//
// A View with nil indices is the identity view over its base.
type View struct {
	base    []models.Record
	indices []int
}

// NewView wraps a record slice as the identity view.
func NewView(records []models.Record) View {
	return View{base: records}
}

// Len returns the number of records in the view.
func (v View) Len() int {
	if v.indices == nil {
		return len(v.base)
	}
	return len(v.indices)
}

// At returns the i-th record in view order.
func (v View) At(i int) models.Record {
	if v.indices == nil {
		return v.base[i]
	}
	return v.base[v.indices[i]]
}

// Records materializes the view into a new slice, preserving order.
func (v View) Records() []models.Record {
	out := make([]models.Record, v.Len())
	for i := range out {
		out[i] = v.At(i)
	}
	return out
}

// subView builds a view over the same base from absolute base indices.
func (v View) subView(indices []int) View {
	return View{base: v.base, indices: indices}
}

// index returns the absolute base index of the i-th view element.
func (v View) index(i int) int {
	if v.indices == nil {
		return i
	}
	return v.indices[i]
}
