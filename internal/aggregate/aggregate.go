// Package aggregate reduces filtered and joined records into chart series.
package aggregate

import (
	"math"

	"github.com/spf13/cast"

	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/taxonomy"
)

// Point is one labelled value of a series.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is an ordered list of points. The order comes from configuration,
// never from the data.
type Series []Point

// Value returns the value of a label.
func (s Series) Value(label string) (float64, bool) {
	for _, p := range s {
		if p.Label == label {
			return p.Value, true
		}
	}
	return 0, false
}

// Labels returns the point labels in order.
func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Label
	}
	return out
}

// Total sums the series values.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// Round rounds v to places decimals, halves away from zero.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Sum adds accessor(item) over items. Missing or non-numeric values count
// as 0. The total is rounded to two decimals once, after summing.
func Sum[T any](items []T, accessor func(T) any) float64 {
	var total float64
	for _, item := range items {
		total += numeric(accessor(item))
	}
	return Round(total, 2)
}

func numeric(v any) float64 {
	if v == nil {
		return 0
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// SumJoined sums one ESG metric over joined records.
func SumJoined(joined []model.JoinedRecord, metric string) float64 {
	return Sum(joined, func(j model.JoinedRecord) any {
		v, ok := j.ESG.Metric(metric)
		if !ok {
			return nil
		}
		return v
	})
}

// SumMetrics builds one point per metric, labelled by the metric key.
func SumMetrics(joined []model.JoinedRecord, metrics []string) Series {
	out := make(Series, 0, len(metrics))
	for _, m := range metrics {
		out = append(out, Point{Label: m, Value: SumJoined(joined, m)})
	}
	return out
}

// SumPath sums the value found at a record path, such as
// "supplierAssignmentSubmission.supplierMSIScore".
func SumPath(records []model.AssessmentRecord, path string) float64 {
	return Sum(records, func(r model.AssessmentRecord) any {
		v, _ := r.Lookup(path)
		return v
	})
}

// PathValue is what one record contributes to SumPath.
func PathValue(r model.AssessmentRecord, path string) float64 {
	v, _ := r.Lookup(path)
	return numeric(v)
}

// FromBuckets counts bucket entries per label in definition order.
func FromBuckets(b *taxonomy.Buckets) Series {
	if b == nil {
		return Series{}
	}
	labels := b.Labels()
	out := make(Series, 0, len(labels))
	for _, label := range labels {
		out = append(out, Point{Label: label, Value: float64(b.Count(label))})
	}
	return out
}

// FromMonths converts a monthly count series, labelled by month key.
func FromMonths(months taxonomy.MonthlyCounts) Series {
	out := make(Series, 0, len(months))
	for _, m := range months {
		out = append(out, Point{Label: m.Key, Value: float64(m.Value)})
	}
	return out
}

// Ratio returns part as a percentage of whole, rounded to one decimal.
// A zero whole yields 0.
func Ratio(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return Round(part/whole*100, 1)
}
