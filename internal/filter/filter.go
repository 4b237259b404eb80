// Package filter applies facet criteria to assessment records.
package filter

import (
	"time"

	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/spf13/cast"
)

// FieldPaths configures where each facet reads its value on a record.
type FieldPaths struct {
	Category string `json:"category" yaml:"category" mapstructure:"category"`
	Location string `json:"location" yaml:"location" mapstructure:"location"`
	Supplier string `json:"supplier" yaml:"supplier" mapstructure:"supplier"`
	Date     string `json:"date" yaml:"date" mapstructure:"date"`
}

// DefaultFieldPaths returns the vendor-based facet paths used by every stock view.
func DefaultFieldPaths() FieldPaths {
	return FieldPaths{
		Category: "vendor.supplierCategory",
		Location: "vendor.supplierLocation",
		Supplier: "vendor.supplierName",
		Date:     model.FieldModifiedOn,
	}
}

// WithDefaults fills empty paths from DefaultFieldPaths.
func (p FieldPaths) WithDefaults() FieldPaths {
	def := DefaultFieldPaths()
	if p.Category == "" {
		p.Category = def.Category
	}
	if p.Location == "" {
		p.Location = def.Location
	}
	if p.Supplier == "" {
		p.Supplier = def.Supplier
	}
	if p.Date == "" {
		p.Date = def.Date
	}
	return p
}

// facet is one compiled membership constraint.
type facet struct {
	allowed map[string]struct{}
	path    string
}

func (f facet) matches(r model.AssessmentRecord) bool {
	v, ok := r.Lookup(f.path)
	if !ok {
		return false
	}
	key, ok := model.CanonicalKey(v)
	if !ok {
		return false
	}
	_, ok = f.allowed[key]
	return ok
}

// Apply returns the records that satisfy every selected facet. Facets are
// AND-combined; values within a facet are OR-combined. With nothing
// selected the result is a new slice holding every record in input order.
// Records are never modified.
func Apply(records []model.AssessmentRecord, criteria model.FilterCriteria, paths FieldPaths) []model.AssessmentRecord {
	paths = paths.WithDefaults()

	var facets []facet
	add := func(values []string, path string) {
		if len(values) == 0 {
			return
		}
		facets = append(facets, facet{path: path, allowed: model.KeySet(values)})
	}
	add(criteria.Categories, paths.Category)
	add(criteria.Locations, paths.Location)
	add(criteria.Suppliers, paths.Supplier)

	out := make([]model.AssessmentRecord, 0, len(records))
	for _, r := range records {
		if !matchesAll(r, facets) {
			continue
		}
		if criteria.DateRange != nil && !InRange(r, paths.Date, *criteria.DateRange) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesAll(r model.AssessmentRecord, facets []facet) bool {
	for _, f := range facets {
		if !f.matches(r) {
			return false
		}
	}
	return true
}

// InRange reports whether the record's date at field parses and falls in rng.
// Missing or unparseable dates are out of range.
func InRange(r model.AssessmentRecord, field string, rng model.DateRange) bool {
	t, ok := RecordDate(r, field)
	if !ok {
		return false
	}
	return rng.Contains(t)
}

// RecordDate parses the record's date at field.
func RecordDate(r model.AssessmentRecord, field string) (time.Time, bool) {
	raw, ok := r.Date(field)
	if !ok {
		return time.Time{}, false
	}
	return ParseDate(raw)
}

// ParseDate parses a calendar date or timestamp in any layout cast accepts.
func ParseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	t, err := cast.ToTimeE(s)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t, true
}

// Prefilter is a declarative equality predicate applied before the facets,
// e.g. restricting the observation view to released audits.
type Prefilter struct {
	Path   string `json:"path" yaml:"path" mapstructure:"path"`
	Equals string `json:"equals" yaml:"equals" mapstructure:"equals"`
}

// IsZero reports whether the prefilter is unset.
func (p Prefilter) IsZero() bool {
	return p.Path == ""
}

// Keep returns the records whose value at Path canonically equals Equals.
func (p Prefilter) Keep(records []model.AssessmentRecord) []model.AssessmentRecord {
	if p.IsZero() {
		out := make([]model.AssessmentRecord, len(records))
		copy(out, records)
		return out
	}
	want, wantOK := model.CanonicalKey(p.Equals)
	out := make([]model.AssessmentRecord, 0, len(records))
	for _, r := range records {
		v, ok := r.Lookup(p.Path)
		if !ok || !wantOK {
			continue
		}
		if got, ok := model.CanonicalKey(v); ok && got == want {
			out = append(out, r)
		}
	}
	return out
}
