// Package trend computes month-over-month change for time-bucketed views.
package trend

import (
	"time"

	"github.com/Veraticus/supplier-drilldown/internal/aggregate"
	"github.com/Veraticus/supplier-drilldown/internal/taxonomy"
)

// Direction is the arrow a trend is drawn with.
type Direction string

// Trend directions.
const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

// Percent returns the change between the two most recent months up to and
// including the month of asOf, as a percentage rounded to one decimal.
// Months after asOf are ignored. With fewer than two such months, or when
// the earlier month is zero, the trend is 0.
func Percent(counts taxonomy.MonthlyCounts, asOf time.Time) float64 {
	current := taxonomy.MonthKey(asOf.UTC())

	var values []int
	for i := len(counts) - 1; i >= 0 && len(values) < 2; i-- {
		if counts[i].Key > current {
			continue
		}
		values = append(values, counts[i].Value)
	}
	if len(values) < 2 {
		return 0
	}

	last, prev := float64(values[0]), float64(values[1])
	if prev == 0 {
		return 0
	}
	return aggregate.Round((last-prev)/prev*100, 1)
}

// Of classifies a percentage.
func Of(percent float64) Direction {
	switch {
	case percent > 0:
		return Up
	case percent < 0:
		return Down
	default:
		return Flat
	}
}
