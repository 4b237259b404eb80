// Package drilldown recovers the records behind a clicked aggregate, pruned
// so that everything shown is attributable to that aggregate.
package drilldown

import (
	"reflect"

	"github.com/Veraticus/supplier-drilldown/internal/aggregate"
	"github.com/Veraticus/supplier-drilldown/internal/filter"
	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/taxonomy"
)

// Select narrows bucket records to what def explains.
//
// Action-list submissions are pruned to their matching entries and the
// record is dropped when none remain. Single submissions pass through when
// their type matches. A record that a bucket holds several times, once per
// matching entry, is returned once. The returned records never share action
// slices with the input.
func Select(records []model.AssessmentRecord, def model.BucketDefinition, submissionField string) []model.AssessmentRecord {
	out := make([]model.AssessmentRecord, 0, len(records))
	var prev model.AssessmentRecord
	for i, r := range records {
		if i > 0 && sameSource(prev, r) {
			continue
		}
		prev = r

		sub, ok := r.Submission(submissionField)
		if !ok {
			continue
		}
		if sub.IsActions() {
			matching := def.MatchingActions(sub.Actions)
			if len(matching) == 0 {
				continue
			}
			out = append(out, r.WithSubmission(submissionField, model.NewActions(matching...)))
			continue
		}
		if sub.HasType() && def.MatchesType(*sub.Type) {
			out = append(out, r.WithSubmission(submissionField, sub))
		}
	}
	return out
}

// SelectBucket resolves a label on classified buckets and selects its records.
func SelectBucket(b *taxonomy.Buckets, label, submissionField string) ([]model.AssessmentRecord, bool) {
	def, ok := b.Definition(label)
	if !ok {
		return nil, false
	}
	records, _ := b.Get(label)
	return Select(records, def, submissionField), true
}

// sameSource reports whether two bucket entries are copies of one input
// record. Repeated entries of a record are adjacent and share its
// submission map.
func sameSource(a, b model.AssessmentRecord) bool {
	if a.ID != b.ID || a.Submissions == nil || b.Submissions == nil {
		return false
	}
	return reflect.ValueOf(a.Submissions).UnsafePointer() == reflect.ValueOf(b.Submissions).UnsafePointer()
}

// SelectCell returns the joined records counted in one cross-tab cell.
func SelectCell(joined []model.JoinedRecord, rating model.MSIRating, status model.AssessmentStatus) []model.JoinedRecord {
	out := make([]model.JoinedRecord, 0)
	for _, j := range joined {
		if j.ESG.MSIRating == rating && j.ESG.Status == status {
			out = append(out, j)
		}
	}
	return out
}

// SelectMonth returns the records whose date falls in the month key
// (YYYY-MM). Dates are read on their own clock, as DateRange does.
func SelectMonth(records []model.AssessmentRecord, dateField, month string) []model.AssessmentRecord {
	out := make([]model.AssessmentRecord, 0)
	for _, r := range records {
		t, ok := filter.RecordDate(r, dateField)
		if !ok {
			continue
		}
		if taxonomy.MonthKey(t) == month {
			out = append(out, r)
		}
	}
	return out
}

// SelectScored returns the records that contribute a non-zero value to the
// metric summed at path.
func SelectScored(records []model.AssessmentRecord, path string) []model.AssessmentRecord {
	out := make([]model.AssessmentRecord, 0)
	for _, r := range records {
		if aggregate.PathValue(r, path) != 0 {
			out = append(out, r)
		}
	}
	return out
}

// SelectWithVendor returns the joined records that carry a vendor code,
// which are the records an ESG total is drawn from.
func SelectWithVendor(joined []model.JoinedRecord) []model.JoinedRecord {
	out := make([]model.JoinedRecord, 0, len(joined))
	for _, j := range joined {
		if _, ok := j.VendorKey(); ok {
			out = append(out, j)
		}
	}
	return out
}
