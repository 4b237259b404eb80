package taxonomy

import (
	"github.com/Veraticus/supplier-drilldown/internal/model"
)

type options struct {
	multiplicity Multiplicity
}

// Option configures Classify.
type Option func(*options)

// WithMultiplicity selects how repeated matches of one record are counted.
func WithMultiplicity(m Multiplicity) Option {
	return func(o *options) {
		if m != "" {
			o.multiplicity = m
		}
	}
}

// Classify sorts records into buckets by reading the submission field.
//
// An action list adds the whole record to a bucket for every entry the
// bucket's rule matches; a single submission adds the record to the first
// bucket whose type matches, ignoring subtypes. Records without the
// submission field land in no bucket. Every defined bucket is present in
// the result, even when empty.
func Classify(records []model.AssessmentRecord, defs []model.BucketDefinition, submissionField string, opts ...Option) *Buckets {
	o := options{multiplicity: PerEntry}
	for _, opt := range opts {
		opt(&o)
	}

	b := newBuckets(defs)
	rules := make([]model.BucketDefinition, 0, len(b.labels))
	for _, label := range b.labels {
		rules = append(rules, b.defs[label])
	}

	for _, r := range records {
		sub, ok := r.Submission(submissionField)
		if !ok {
			continue
		}
		if sub.IsActions() {
			classifyActions(b, r, sub.Actions, rules, o.multiplicity)
			continue
		}
		if !sub.HasType() {
			continue
		}
		for _, d := range rules {
			if d.MatchesType(*sub.Type) {
				b.add(d.Label, r)
				break
			}
		}
	}
	return b
}

func classifyActions(b *Buckets, r model.AssessmentRecord, actions []model.Action, rules []model.BucketDefinition, m Multiplicity) {
	var added map[string]bool
	if m == PerRecord {
		added = make(map[string]bool, len(rules))
	}
	for _, a := range actions {
		for _, d := range rules {
			if !d.Matches(a) {
				continue
			}
			if added != nil {
				if added[d.Label] {
					continue
				}
				added[d.Label] = true
			}
			b.add(d.Label, r)
		}
	}
}

// HasFinding returns the records whose action list contains at least one
// entry with the given category of finding.
func HasFinding(records []model.AssessmentRecord, submissionField string, categoryOfFinding int) []model.AssessmentRecord {
	out := make([]model.AssessmentRecord, 0)
	for _, r := range records {
		sub, ok := r.Submission(submissionField)
		if !ok || !sub.IsActions() {
			continue
		}
		for _, a := range sub.Actions {
			if a.CategoryOfFinding == categoryOfFinding {
				out = append(out, r)
				break
			}
		}
	}
	return out
}
