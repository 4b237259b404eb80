// Package testutil provides fixture builders shared by package tests.
package testutil

import (
	"github.com/Veraticus/supplier-drilldown/internal/model"
)

// RecordBuilder assembles an assessment record fluently.
//
// Example:
//
//	r := testutil.NewRecord("a1").
//		WithVendor("101", "Acme", "Dhaka", "1").
//		WithAudit(2).
//		WithFindings(testutil.Finding(1), testutil.NonCompliance(1)).
//		Build()
type RecordBuilder struct {
	record model.AssessmentRecord
}

// NewRecord starts a record with the given id.
func NewRecord(id string) *RecordBuilder {
	return &RecordBuilder{record: model.AssessmentRecord{
		ID:          id,
		Submissions: make(map[string]model.Submission),
	}}
}

// WithVendor sets the embedded vendor and the top-level vendor code. An
// empty code leaves the record without one.
func (b *RecordBuilder) WithVendor(code, name, location, category string) *RecordBuilder {
	b.record.VendorCode = code
	b.record.Vendor = &model.Vendor{Name: name, Location: location, Category: category}
	return b
}

// WithDate sets one of the known date fields.
func (b *RecordBuilder) WithDate(field, date string) *RecordBuilder {
	switch field {
	case model.FieldAuditStartDate:
		b.record.AuditStartDate = date
	case model.FieldAuditEndDate:
		b.record.AuditEndDate = date
	case model.FieldAssessmentStartDate:
		b.record.AssessmentStartDate = date
	case model.FieldAssessmentEndDate:
		b.record.AssessmentEndDate = date
	case model.FieldModifiedOn:
		b.record.ModifiedOn = date
	}
	return b
}

// WithModifiedOn sets the modification date.
func (b *RecordBuilder) WithModifiedOn(date string) *RecordBuilder {
	return b.WithDate(model.FieldModifiedOn, date)
}

// WithAudit sets the auditor submission type.
func (b *RecordBuilder) WithAudit(typ int) *RecordBuilder {
	b.record.Submissions[model.FieldAuditorSubmission] = model.NewSingle(typ)
	return b
}

// WithAuditScore sets the auditor submission type and calibration score.
func (b *RecordBuilder) WithAuditScore(typ int, score float64) *RecordBuilder {
	b.record.Submissions[model.FieldAuditorSubmission] = model.NewSingle(typ).WithScore("auditorMSIScore", score)
	return b
}

// WithSelfAssessment sets the supplier submission type.
func (b *RecordBuilder) WithSelfAssessment(typ int) *RecordBuilder {
	b.record.Submissions[model.FieldSupplierSubmission] = model.NewSingle(typ)
	return b
}

// WithSelfAssessmentScore sets the supplier submission type and score.
func (b *RecordBuilder) WithSelfAssessmentScore(typ int, score float64) *RecordBuilder {
	b.record.Submissions[model.FieldSupplierSubmission] = model.NewSingle(typ).WithScore("supplierMSIScore", score)
	return b
}

// WithFindings sets the supplier action list.
func (b *RecordBuilder) WithFindings(actions ...model.Action) *RecordBuilder {
	b.record.Submissions[model.FieldSupplierActions] = model.NewActions(actions...)
	return b
}

// Build returns the record. An empty submission map is dropped.
func (b *RecordBuilder) Build() model.AssessmentRecord {
	r := b.record
	if len(r.Submissions) == 0 {
		r.Submissions = nil
	}
	return r
}

// Finding builds an action entry of a category without a subtype.
func Finding(category int) model.Action {
	return model.Action{CategoryOfFinding: category}
}

// NonCompliance builds a regulatory finding of the given subtype.
func NonCompliance(subtype int) model.Action {
	return model.Action{CategoryOfFinding: 3, NonComplianceType: &subtype}
}
