package engine

import (
	"fmt"
	"sort"
	"strconv"

	"manufacturing_analytics/internal/models"
)

// Aggregate groups the view by groupKey and computes op over metric
// within each group. One row is returned per distinct group key present
// in the view, sorted ascending by key (numeric keys such as hour
// compare numerically). An empty view yields an empty Summary.
//
// For op=count the metric is ignored and may be empty; the row count of
// each group is returned.
func Aggregate(view View, groupKey, metric, op string) (models.Summary, error) {
	if !isDimension(groupKey) {
		return models.Summary{}, fmt.Errorf("unknown group key %q", groupKey)
	}
	switch op {
	case models.OpCount:
	case models.OpMean, models.OpSum:
		if !isMeasure(metric) {
			return models.Summary{}, fmt.Errorf("unknown metric %q", metric)
		}
	default:
		return models.Summary{}, fmt.Errorf("unknown aggregation op %q", op)
	}

	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i := 0; i < view.Len(); i++ {
		r := view.At(i)
		key, _ := r.Dimension(groupKey)
		counts[key]++
		if op != models.OpCount {
			v, _ := r.Measure(metric)
			sums[key] += v
		}
	}

	rows := make([]models.SummaryRow, 0, len(counts))
	for key, n := range counts {
		row := models.SummaryRow{Key: key, Count: n}
		switch op {
		case models.OpMean:
			row.Value = sums[key] / float64(n)
		case models.OpSum:
			row.Value = sums[key]
		case models.OpCount:
			row.Value = float64(n)
		}
		rows = append(rows, row)
	}
	sortRows(rows)

	return models.Summary{
		GroupKey: groupKey,
		Metric:   metric,
		Op:       op,
		Rows:     rows,
	}, nil
}

// sortRows orders rows ascending by key. When every key parses as an
// integer (hour groups), keys compare numerically so "2" sorts before "10".
func sortRows(rows []models.SummaryRow) {
	numeric := len(rows) > 0
	nums := make(map[string]int, len(rows))
	for _, row := range rows {
		n, err := strconv.Atoi(row.Key)
		if err != nil {
			numeric = false
			break
		}
		nums[row.Key] = n
	}

	sort.Slice(rows, func(i, j int) bool {
		if numeric {
			return nums[rows[i].Key] < nums[rows[j].Key]
		}
		return rows[i].Key < rows[j].Key
	})
}

func isDimension(key string) bool {
	for _, k := range models.DimensionKeys {
		if k == key {
			return true
		}
	}
	return false
}

func isMeasure(key string) bool {
	for _, k := range models.MeasureKeys {
		if k == key {
			return true
		}
	}
	return false
}
