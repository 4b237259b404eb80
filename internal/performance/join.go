// Package performance joins external per-vendor metrics onto assessment records.
package performance

import (
	"log/slog"

	"github.com/Veraticus/supplier-drilldown/internal/model"
)

// Index looks up performance metrics by canonical vendor code.
type Index struct {
	byCode map[string]model.ESG
}

// NewIndex builds a lookup over rows. Rows without a usable vendor code are
// skipped; when a code repeats, the first row wins.
func NewIndex(rows []model.PerformanceRecord) *Index {
	idx := &Index{byCode: make(map[string]model.ESG, len(rows))}
	for _, row := range rows {
		code, ok := model.CanonicalKey(row.VendorCode)
		if !ok {
			slog.Debug("Skipping performance row without vendor code")
			continue
		}
		if _, exists := idx.byCode[code]; exists {
			slog.Debug("Ignoring duplicate performance row", "vendor_code", code)
			continue
		}
		idx.byCode[code] = row.ESG
	}
	return idx
}

// Len returns the number of indexed vendors.
func (i *Index) Len() int {
	if i == nil {
		return 0
	}
	return len(i.byCode)
}

// Lookup returns the metrics of a vendor code in any representation.
func (i *Index) Lookup(code any) (model.ESG, bool) {
	if i == nil {
		return model.ESG{}, false
	}
	key, ok := model.CanonicalKey(code)
	if !ok {
		return model.ESG{}, false
	}
	esg, ok := i.byCode[key]
	return esg, ok
}

// ESGFor returns the metrics for a record, or DefaultESG when the vendor
// code is missing or unknown.
func (i *Index) ESGFor(r model.AssessmentRecord) model.ESG {
	code, ok := r.VendorKey()
	if !ok {
		return model.DefaultESG()
	}
	if esg, ok := i.Lookup(code); ok {
		return esg
	}
	return model.DefaultESG()
}

// Join attaches each record's performance view. Inputs are not modified.
func Join(records []model.AssessmentRecord, idx *Index) []model.JoinedRecord {
	out := make([]model.JoinedRecord, len(records))
	for n, r := range records {
		out[n] = model.JoinedRecord{AssessmentRecord: r, ESG: idx.ESGFor(r)}
	}
	return out
}

// Coverage reports how many records found performance data, so callers can
// warn about join misses.
func Coverage(records []model.AssessmentRecord, idx *Index) (matched, total int) {
	for _, r := range records {
		code, ok := r.VendorKey()
		if !ok {
			continue
		}
		if _, ok := idx.Lookup(code); ok {
			matched++
		}
	}
	return matched, len(records)
}
