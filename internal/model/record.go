// Package model defines the domain types shared by the analytics packages.
package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Date field names as they appear in the source data.
const (
	FieldAuditStartDate      = "auditStartDate"
	FieldAuditEndDate        = "auditEndDate"
	FieldAssessmentStartDate = "assessmentStartDate"
	FieldAssessmentEndDate   = "assessmentEndDate"
	FieldModifiedOn          = "modified_on"
)

// Submission field names used by the stock dashboard views.
const (
	FieldAuditorSubmission  = "auditorAssignmentSubmission"
	FieldSupplierSubmission = "supplierAssignmentSubmission"
	FieldSupplierActions    = "supplierActions"
)

// AssessmentRecord is one supplier assessment cycle. Records are read-only
// snapshots; derived views are built with the With* copy helpers.
type AssessmentRecord struct {
	Vendor              *Vendor
	Submissions         map[string]Submission
	Attributes          map[string]any
	ID                  string
	VendorCode          string
	AuditStartDate      string
	AuditEndDate        string
	AssessmentStartDate string
	AssessmentEndDate   string
	ModifiedOn          string
}

// Submission returns the named submission field.
func (r AssessmentRecord) Submission(name string) (Submission, bool) {
	s, ok := r.Submissions[name]
	return s, ok
}

// WithSubmission returns a shallow copy of r whose named submission is
// replaced by s. The receiver's map is not modified.
func (r AssessmentRecord) WithSubmission(name string, s Submission) AssessmentRecord {
	subs := make(map[string]Submission, len(r.Submissions)+1)
	for k, v := range r.Submissions {
		subs[k] = v
	}
	subs[name] = s
	r.Submissions = subs
	return r
}

// VendorKey is the canonical vendor code used to join performance data:
// vendor.code when present, the top-level vendorCode otherwise.
func (r AssessmentRecord) VendorKey() (string, bool) {
	if r.Vendor != nil && r.Vendor.Code != "" {
		return r.Vendor.Code, true
	}
	return CanonicalKey(r.VendorCode)
}

// Date returns the raw value of a named date field.
func (r AssessmentRecord) Date(field string) (string, bool) {
	var s string
	switch field {
	case FieldAuditStartDate:
		s = r.AuditStartDate
	case FieldAuditEndDate:
		s = r.AuditEndDate
	case FieldAssessmentStartDate:
		s = r.AssessmentStartDate
	case FieldAssessmentEndDate:
		s = r.AssessmentEndDate
	case FieldModifiedOn, "modifiedOn":
		s = r.ModifiedOn
	default:
		v, ok := r.Lookup(field)
		if !ok {
			return "", false
		}
		str, ok := v.(string)
		return str, ok && str != ""
	}
	return s, s != ""
}

// Lookup resolves a dotted field path such as "vendor.supplierLocation" or
// "auditorAssignmentSubmission.type". Missing, null and empty values report false.
func (r AssessmentRecord) Lookup(path string) (any, bool) {
	if path == "" {
		return nil, false
	}
	head, rest, _ := strings.Cut(path, ".")

	switch head {
	case "id", "_id":
		return r.ID, rest == "" && r.ID != ""
	case "vendorCode":
		return r.VendorCode, rest == "" && r.VendorCode != ""
	case "vendor":
		if rest == "" {
			return r.Vendor, r.Vendor != nil
		}
		return r.Vendor.Lookup(rest)
	case FieldAuditStartDate, FieldAuditEndDate, FieldAssessmentStartDate,
		FieldAssessmentEndDate, FieldModifiedOn, "modifiedOn":
		if rest != "" {
			return nil, false
		}
		return r.Date(head)
	}

	if s, ok := r.Submissions[head]; ok {
		return s.Lookup(rest)
	}
	return lookupAttribute(r.Attributes, path)
}

// UnmarshalJSON decodes a record. Known fields are typed; any other key that
// has a submission shape becomes a submission, the rest are attributes.
func (r *AssessmentRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode assessment record: %w", err)
	}

	*r = AssessmentRecord{}
	for key, val := range raw {
		switch key {
		case "id", "_id":
			r.ID = decodeKey(val)
		case "vendorCode":
			r.VendorCode = decodeKey(val)
		case "vendor":
			if isNull(val) {
				continue
			}
			var v Vendor
			if err := json.Unmarshal(val, &v); err != nil {
				return fmt.Errorf("record vendor: %w", err)
			}
			r.Vendor = &v
		case FieldAuditStartDate:
			r.AuditStartDate = decodeText(val)
		case FieldAuditEndDate:
			r.AuditEndDate = decodeText(val)
		case FieldAssessmentStartDate:
			r.AssessmentStartDate = decodeText(val)
		case FieldAssessmentEndDate:
			r.AssessmentEndDate = decodeText(val)
		case FieldModifiedOn, "modifiedOn":
			r.ModifiedOn = decodeText(val)
		default:
			if r.decodeSubmission(key, val) {
				continue
			}
			var attr any
			if err := json.Unmarshal(val, &attr); err != nil {
				return fmt.Errorf("record attribute %q: %w", key, err)
			}
			if r.Attributes == nil {
				r.Attributes = make(map[string]any)
			}
			r.Attributes[key] = attr
		}
	}
	return nil
}

func (r *AssessmentRecord) decodeSubmission(key string, val json.RawMessage) bool {
	if isNull(val) {
		return false
	}
	var s Submission
	if err := json.Unmarshal(val, &s); err != nil {
		return false
	}
	if r.Submissions == nil {
		r.Submissions = make(map[string]Submission)
	}
	r.Submissions[key] = s
	return true
}

// MarshalJSON writes the record back in its source shape.
func (r AssessmentRecord) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Attributes)+len(r.Submissions)+8)
	for k, v := range r.Attributes {
		out[k] = v
	}
	for k, s := range r.Submissions {
		out[k] = s
	}
	setIf := func(key, val string) {
		if val != "" {
			out[key] = val
		}
	}
	setIf("id", r.ID)
	setIf("vendorCode", r.VendorCode)
	setIf(FieldAuditStartDate, r.AuditStartDate)
	setIf(FieldAuditEndDate, r.AuditEndDate)
	setIf(FieldAssessmentStartDate, r.AssessmentStartDate)
	setIf(FieldAssessmentEndDate, r.AssessmentEndDate)
	setIf(FieldModifiedOn, r.ModifiedOn)
	if r.Vendor != nil {
		out["vendor"] = r.Vendor
	}
	return json.Marshal(out)
}

// DecodeRecords decodes a JSON array of records.
func DecodeRecords(data []byte) ([]AssessmentRecord, error) {
	var records []AssessmentRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode assessment records: %w", err)
	}
	return records, nil
}

var errPathNotFound = errors.New("path not found")

func lookupAttribute(attrs map[string]any, path string) (any, bool) {
	v, err := walk(attrs, path)
	if err != nil || v == nil {
		return nil, false
	}
	if s, ok := v.(string); ok && s == "" {
		return nil, false
	}
	return v, true
}

func walk(attrs map[string]any, path string) (any, error) {
	if attrs == nil || path == "" {
		return nil, errPathNotFound
	}
	var cur any = attrs
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, errPathNotFound
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, errPathNotFound
			}
			cur = node[i]
		default:
			return nil, errPathNotFound
		}
	}
	return cur, nil
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}

func decodeText(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func decodeKey(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	return MustKey(v)
}
