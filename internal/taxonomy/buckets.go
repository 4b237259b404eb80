// Package taxonomy classifies assessment records into named buckets.
package taxonomy

import (
	"github.com/Veraticus/supplier-drilldown/internal/model"
)

// Multiplicity controls how often one record may appear in a single bucket.
type Multiplicity string

const (
	// PerEntry appends a record once per matching action entry, so a record
	// with two matching findings counts twice.
	PerEntry Multiplicity = "per_entry"
	// PerRecord appends a record at most once per bucket.
	PerRecord Multiplicity = "per_record"
)

// Valid reports whether m is a known policy. The empty value means PerEntry.
func (m Multiplicity) Valid() bool {
	return m == "" || m == PerEntry || m == PerRecord
}

// Buckets maps labels to records, keeping the order in which the bucket
// definitions were given.
type Buckets struct {
	contents map[string][]model.AssessmentRecord
	defs     map[string]model.BucketDefinition
	labels   []string
}

func newBuckets(defs []model.BucketDefinition) *Buckets {
	b := &Buckets{
		contents: make(map[string][]model.AssessmentRecord, len(defs)),
		defs:     make(map[string]model.BucketDefinition, len(defs)),
		labels:   make([]string, 0, len(defs)),
	}
	for _, d := range defs {
		if _, exists := b.contents[d.Label]; exists {
			continue
		}
		b.labels = append(b.labels, d.Label)
		b.contents[d.Label] = []model.AssessmentRecord{}
		b.defs[d.Label] = d
	}
	return b
}

// Labels returns the bucket labels in definition order.
func (b *Buckets) Labels() []string {
	out := make([]string, len(b.labels))
	copy(out, b.labels)
	return out
}

// Get returns the records of a bucket. Unknown labels report false.
func (b *Buckets) Get(label string) ([]model.AssessmentRecord, bool) {
	records, ok := b.contents[label]
	return records, ok
}

// Count returns the number of entries in a bucket, duplicates included.
func (b *Buckets) Count(label string) int {
	return len(b.contents[label])
}

// Definition returns the rule behind a bucket.
func (b *Buckets) Definition(label string) (model.BucketDefinition, bool) {
	d, ok := b.defs[label]
	return d, ok
}

// Total returns the number of entries across all buckets.
func (b *Buckets) Total() int {
	total := 0
	for _, records := range b.contents {
		total += len(records)
	}
	return total
}

func (b *Buckets) add(label string, r model.AssessmentRecord) {
	b.contents[label] = append(b.contents[label], r)
}
