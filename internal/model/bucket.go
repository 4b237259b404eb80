package model

import "fmt"

// BucketDefinition is one declarative classification rule. A nil Subtype
// matches any non-compliance type.
type BucketDefinition struct {
	Subtype *int   `json:"subtype,omitempty" yaml:"subtype,omitempty" mapstructure:"subtype"`
	Label   string `json:"label" yaml:"label" mapstructure:"label"`
	Type    int    `json:"type" yaml:"type" mapstructure:"type"`
}

// Bucket builds a type-only definition.
func Bucket(label string, typ int) BucketDefinition {
	return BucketDefinition{Label: label, Type: typ}
}

// BucketWithSubtype builds a definition that also pins the non-compliance type.
func BucketWithSubtype(label string, typ, subtype int) BucketDefinition {
	return BucketDefinition{Label: label, Type: typ, Subtype: &subtype}
}

// Matches reports whether an action entry satisfies the rule.
func (d BucketDefinition) Matches(a Action) bool {
	if a.CategoryOfFinding != d.Type {
		return false
	}
	if d.Subtype == nil {
		return true
	}
	return a.NonComplianceType != nil && *a.NonComplianceType == *d.Subtype
}

// MatchesType reports whether a single submission of the given type
// satisfies the rule. Subtypes do not apply to single submissions.
func (d BucketDefinition) MatchesType(typ int) bool {
	return d.Type == typ
}

// MatchingActions returns the entries of actions that satisfy the rule, in order.
func (d BucketDefinition) MatchingActions(actions []Action) []Action {
	var out []Action
	for _, a := range actions {
		if d.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// Validate ensures the definition can be used as a series label.
func (d BucketDefinition) Validate() error {
	if d.Label == "" {
		return fmt.Errorf("bucket label is required")
	}
	return nil
}

func (d BucketDefinition) String() string {
	if d.Subtype == nil {
		return fmt.Sprintf("%s(type=%d)", d.Label, d.Type)
	}
	return fmt.Sprintf("%s(type=%d,subtype=%d)", d.Label, d.Type, *d.Subtype)
}
