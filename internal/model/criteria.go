package model

import "time"

// DateRange is an inclusive calendar-date range.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t's calendar date lies within the range, ignoring
// the time of day. Every time is read as the date on its own clock: a
// timestamp written with an offset keeps the date it was written with, so
// 2024-01-31T23:30:00-05:00 is January 31 even though it is February in UTC.
func (r DateRange) Contains(t time.Time) bool {
	d := civilDate(t)
	return !d.Before(civilDate(r.Start)) && !d.After(civilDate(r.End))
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FilterCriteria is the facet selection held by the view layer. Empty sets
// mean no constraint.
type FilterCriteria struct {
	DateRange  *DateRange
	Categories []string
	Locations  []string
	Suppliers  []string
}

// IsEmpty reports whether no facet is selected.
func (c FilterCriteria) IsEmpty() bool {
	return len(c.Categories) == 0 &&
		len(c.Locations) == 0 &&
		len(c.Suppliers) == 0 &&
		c.DateRange == nil
}
