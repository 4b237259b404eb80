package filter

import (
	"fmt"

	"github.com/Veraticus/supplier-drilldown/internal/model"
)

// Options holds the distinct selectable values of each facet.
type Options struct {
	Categories []string `json:"categories"`
	Locations  []string `json:"locations"`
	Suppliers  []string `json:"suppliers"`
}

// FacetOptions collects the distinct facet values present in records, in
// first-seen order.
func FacetOptions(records []model.AssessmentRecord, paths FieldPaths) Options {
	paths = paths.WithDefaults()
	return Options{
		Categories: distinct(records, paths.Category),
		Locations:  distinct(records, paths.Location),
		Suppliers:  distinct(records, paths.Supplier),
	}
}

func distinct(records []model.AssessmentRecord, path string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		v, ok := r.Lookup(path)
		if !ok {
			continue
		}
		s := fmt.Sprint(v)
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// Diagnose returns the configured paths that resolve on none of the records.
// An empty record set reports nothing.
func Diagnose(records []model.AssessmentRecord, paths FieldPaths) []string {
	if len(records) == 0 {
		return nil
	}
	paths = paths.WithDefaults()

	var unresolved []string
	for _, path := range []string{paths.Category, paths.Location, paths.Supplier, paths.Date} {
		if !resolvesAnywhere(records, path) {
			unresolved = append(unresolved, path)
		}
	}
	return unresolved
}

func resolvesAnywhere(records []model.AssessmentRecord, path string) bool {
	for _, r := range records {
		if _, ok := r.Lookup(path); ok {
			return true
		}
	}
	return false
}
