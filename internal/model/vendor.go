package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Vendor is the supplier embedded in an assessment record.
type Vendor struct {
	Attributes map[string]any
	Code       string
	Name       string
	Location   string
	Category   string
}

var vendorKeys = map[string][]string{
	"code":     {"code", "supplierCode", "vendorCode", "vendor_code"},
	"name":     {"supplierName", "name"},
	"location": {"supplierLocation", "location"},
	"category": {"supplierCategory", "category"},
}

// UnmarshalJSON decodes the vendor object. Codes are canonicalized so numeric
// and textual representations compare equal.
func (v *Vendor) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode vendor: %w", err)
	}

	*v = Vendor{}
	consumed := make(map[string]bool)
	pick := func(field string) string {
		for _, key := range vendorKeys[field] {
			if val, ok := raw[key]; ok {
				consumed[key] = true
				if k, ok := CanonicalKey(val); ok {
					return k
				}
			}
		}
		return ""
	}

	v.Code = pick("code")
	v.Category = pick("category")
	// Names and locations are display strings; keep them verbatim.
	v.Name = pickString(raw, consumed, vendorKeys["name"])
	v.Location = pickString(raw, consumed, vendorKeys["location"])

	for key, val := range raw {
		if consumed[key] {
			continue
		}
		if v.Attributes == nil {
			v.Attributes = make(map[string]any)
		}
		v.Attributes[key] = val
	}
	return nil
}

// MarshalJSON writes the vendor using the source field names.
func (v Vendor) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(v.Attributes)+4)
	for k, val := range v.Attributes {
		out[k] = val
	}
	if v.Code != "" {
		out["code"] = v.Code
	}
	out["supplierName"] = v.Name
	out["supplierLocation"] = v.Location
	out["supplierCategory"] = v.Category
	return json.Marshal(out)
}

// Lookup resolves a field path relative to the vendor.
func (v *Vendor) Lookup(path string) (any, bool) {
	if v == nil {
		return nil, false
	}
	head, rest, _ := strings.Cut(path, ".")
	for field, keys := range vendorKeys {
		for _, key := range keys {
			if key != head || rest != "" {
				continue
			}
			var s string
			switch field {
			case "code":
				s = v.Code
			case "name":
				s = v.Name
			case "location":
				s = v.Location
			case "category":
				s = v.Category
			}
			return s, s != ""
		}
	}
	return lookupAttribute(v.Attributes, path)
}

func pickString(raw map[string]any, consumed map[string]bool, keys []string) string {
	for _, key := range keys {
		val, ok := raw[key]
		if !ok {
			continue
		}
		consumed[key] = true
		if s, ok := val.(string); ok {
			return s
		}
		if val != nil {
			return fmt.Sprint(val)
		}
	}
	return ""
}
