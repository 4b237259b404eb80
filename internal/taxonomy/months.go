package taxonomy

import (
	"fmt"
	"time"

	"github.com/Veraticus/supplier-drilldown/internal/filter"
	"github.com/Veraticus/supplier-drilldown/internal/model"
)

// MonthCount is one month of a time-bucketed count series.
type MonthCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// MonthlyCounts is a chronologically ordered count series keyed YYYY-MM.
type MonthlyCounts []MonthCount

// MonthKey formats t as the series key of its month.
func MonthKey(t time.Time) string {
	return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
}

// Value returns the count of a month key.
func (m MonthlyCounts) Value(key string) (int, bool) {
	for _, c := range m {
		if c.Key == key {
			return c.Value, true
		}
	}
	return 0, false
}

// Total sums the series.
func (m MonthlyCounts) Total() int {
	total := 0
	for _, c := range m {
		total += c.Value
	}
	return total
}

// GroupByMonth counts records per calendar month of year using the date at
// dateField. The series is dense: all twelve months are present, in order,
// with zero for months without records. Records from other years or with
// missing or unparseable dates are not counted.
func GroupByMonth(records []model.AssessmentRecord, dateField string, year int) MonthlyCounts {
	counts := make(MonthlyCounts, 12)
	for m := time.January; m <= time.December; m++ {
		first := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		counts[m-1] = MonthCount{
			Key:   MonthKey(first),
			Label: first.Format("Jan 06"),
		}
	}

	for _, r := range records {
		t, ok := filter.RecordDate(r, dateField)
		if !ok {
			continue
		}
		if t.Year() != year {
			continue
		}
		counts[t.Month()-1].Value++
	}
	return counts
}
