package engine

import (
	"errors"
	"fmt"
	"math"

	"manufacturing_analytics/internal/models"
)

// ErrInsufficientInput is returned when a correlation matrix is requested
// over fewer than two metrics.
var ErrInsufficientInput = errors.New("correlation requires at least two metrics")

// CorrelationMatrix computes the symmetric Pearson correlation matrix of
// the given metrics restricted to the view. Entries involving a column
// with zero variance (including an empty view) are NaN; diagonal entries
// of columns with variance are exactly 1.
func CorrelationMatrix(view View, metrics []string) (models.Matrix, error) {
	if len(metrics) < 2 {
		return models.Matrix{}, ErrInsufficientInput
	}
	for _, m := range metrics {
		if !isMeasure(m) {
			return models.Matrix{}, fmt.Errorf("unknown metric %q", m)
		}
	}

	n := view.Len()
	series := make([][]float64, len(metrics))
	for mi, m := range metrics {
		series[mi] = make([]float64, n)
		for i := 0; i < n; i++ {
			v, _ := view.At(i).Measure(m)
			series[mi][i] = v
		}
	}

	means := make([]float64, len(metrics))
	variances := make([]float64, len(metrics))
	for mi := range series {
		means[mi] = mean(series[mi])
		variances[mi] = centeredDot(series[mi], series[mi], means[mi], means[mi])
	}

	values := make([][]float64, len(metrics))
	for i := range metrics {
		values[i] = make([]float64, len(metrics))
		for j := range metrics {
			switch {
			case variances[i] == 0 || variances[j] == 0 || n == 0:
				values[i][j] = math.NaN()
			case i == j:
				values[i][j] = 1
			default:
				cov := centeredDot(series[i], series[j], means[i], means[j])
				values[i][j] = cov / math.Sqrt(variances[i]*variances[j])
			}
		}
	}

	return models.Matrix{Metrics: metrics, Values: values}, nil
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// centeredDot is the sum of element-wise products of two mean-centered
// series. With a==b it is the (unnormalized) variance.
func centeredDot(a, b []float64, meanA, meanB float64) float64 {
	var sum float64
	for i := range a {
		sum += (a[i] - meanA) * (b[i] - meanB)
	}
	return sum
}
