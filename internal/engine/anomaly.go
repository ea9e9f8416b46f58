package engine

// DetectAnomalies returns the records whose temperature or vibration
// strictly exceeds its threshold. A reading equal to the threshold is
// not anomalous.
func DetectAnomalies(view View, tempThreshold, vibThreshold float64) View {
	indices := make([]int, 0, view.Len())
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		if r.Temperature > tempThreshold || r.Vibration > vibThreshold {
			indices = append(indices, view.index(i))
		}
	}
	return view.subView(indices)
}
