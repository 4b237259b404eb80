package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleRecord = `{
	"id": "a-1",
	"vendorCode": 1042,
	"vendor": {"supplierName": "Acme Textiles", "supplierLocation": "Dhaka", "supplierCategory": 3},
	"auditStartDate": "2024-01-15",
	"modified_on": "2024-02-01T09:30:00Z",
	"auditorAssignmentSubmission": {"type": 2, "auditorMSIScore": 71.5},
	"supplierAssignmentSubmission": {"type": null},
	"supplierActions": [
		{"categoryOfFinding": 3, "nonComplianceType": 1, "description": "fire exit blocked"},
		{"categoryOfFinding": 1}
	],
	"notes": {"tags": ["priority"]}
}`

func TestAssessmentRecord_UnmarshalJSON(t *testing.T) {
	var r AssessmentRecord
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &r))

	assert.Equal(t, "a-1", r.ID)
	assert.Equal(t, "1042", r.VendorCode)
	require.NotNil(t, r.Vendor)
	assert.Equal(t, "Acme Textiles", r.Vendor.Name)
	assert.Equal(t, "3", r.Vendor.Category)
	assert.Equal(t, "2024-01-15", r.AuditStartDate)
	assert.Equal(t, "2024-02-01T09:30:00Z", r.ModifiedOn)

	auditor, ok := r.Submission(FieldAuditorSubmission)
	require.True(t, ok)
	assert.True(t, auditor.HasType())
	assert.Equal(t, 2, *auditor.Type)
	assert.InDelta(t, 71.5, auditor.ScoreValue(), 0.0001)

	supplier, ok := r.Submission(FieldSupplierSubmission)
	require.True(t, ok)
	assert.False(t, supplier.HasType())

	actions, ok := r.Submission(FieldSupplierActions)
	require.True(t, ok)
	require.True(t, actions.IsActions())
	require.Len(t, actions.Actions, 2)
	assert.Equal(t, 3, actions.Actions[0].CategoryOfFinding)
	require.NotNil(t, actions.Actions[0].NonComplianceType)
	assert.Equal(t, 1, *actions.Actions[0].NonComplianceType)
	assert.Nil(t, actions.Actions[1].NonComplianceType)
	assert.Equal(t, "fire exit blocked", actions.Actions[0].Attributes["description"])

	_, isSubmission := r.Submissions["notes"]
	assert.False(t, isSubmission)
	assert.Contains(t, r.Attributes, "notes")
}

func TestAssessmentRecord_Lookup(t *testing.T) {
	var r AssessmentRecord
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &r))

	tests := []struct {
		want  any
		name  string
		path  string
		found bool
	}{
		{name: "vendor location", path: "vendor.supplierLocation", want: "Dhaka", found: true},
		{name: "vendor category", path: "vendor.supplierCategory", want: "3", found: true},
		{name: "date field", path: "auditStartDate", want: "2024-01-15", found: true},
		{name: "absent date", path: "auditEndDate", found: false},
		{name: "submission type", path: "auditorAssignmentSubmission.type", want: 2, found: true},
		{name: "null submission type", path: "supplierAssignmentSubmission.type", found: false},
		{name: "attribute array index", path: "notes.tags.0", want: "priority", found: true},
		{name: "unknown path", path: "vendor.nope", found: false},
		{name: "empty path", path: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.Lookup(tt.path)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAssessmentRecord_LookupWithoutVendor(t *testing.T) {
	r := AssessmentRecord{ID: "x"}
	_, ok := r.Lookup("vendor.supplierName")
	assert.False(t, ok)
}

func TestAssessmentRecord_WithSubmissionDoesNotMutate(t *testing.T) {
	original := AssessmentRecord{
		ID: "r1",
		Submissions: map[string]Submission{
			FieldSupplierActions: NewActions(Action{CategoryOfFinding: 1}, Action{CategoryOfFinding: 3}),
		},
	}

	pruned := original.WithSubmission(FieldSupplierActions, NewActions(Action{CategoryOfFinding: 3}))

	assert.Len(t, original.Submissions[FieldSupplierActions].Actions, 2)
	assert.Len(t, pruned.Submissions[FieldSupplierActions].Actions, 1)
	assert.Equal(t, original.ID, pruned.ID)
}

func TestAssessmentRecord_VendorKey(t *testing.T) {
	withVendorCode := AssessmentRecord{Vendor: &Vendor{Code: "77"}, VendorCode: "12"}
	key, ok := withVendorCode.VendorKey()
	assert.True(t, ok)
	assert.Equal(t, "77", key)

	topLevel := AssessmentRecord{Vendor: &Vendor{Name: "n"}, VendorCode: "12"}
	key, ok = topLevel.VendorKey()
	assert.True(t, ok)
	assert.Equal(t, "12", key)

	_, ok = AssessmentRecord{}.VendorKey()
	assert.False(t, ok)
}

func TestAssessmentRecord_MarshalRoundTripKeepsShape(t *testing.T) {
	var r AssessmentRecord
	require.NoError(t, json.Unmarshal([]byte(sampleRecord), &r))

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var again AssessmentRecord
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, r.Vendor.Name, again.Vendor.Name)
	assert.Len(t, again.Submissions[FieldSupplierActions].Actions, 2)
	assert.Equal(t, 2, *again.Submissions[FieldAuditorSubmission].Type)
}

func TestDecodeRecords_RejectsNonArray(t *testing.T) {
	_, err := DecodeRecords([]byte(`{"id": 1}`))
	assert.Error(t, err)
}
