package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// ErrNotSubmission reports JSON that has neither the single nor the action-list shape.
var ErrNotSubmission = errors.New("value is not a submission")

// SubmissionKind distinguishes the two submission shapes.
type SubmissionKind int

const (
	// SubmissionSingle is one object carrying a type and optionally a score.
	SubmissionSingle SubmissionKind = iota
	// SubmissionActions is an ordered list of action entries.
	SubmissionActions
)

// scoreKeys lists the attributes recognised as the numeric score of a single submission.
var scoreKeys = []string{"score", "supplierMSIScore", "auditorMSIScore", "msiScore"}

// Action is one finding inside an action-list submission.
type Action struct {
	NonComplianceType *int
	Attributes        map[string]any
	CategoryOfFinding int
}

// UnmarshalJSON requires categoryOfFinding; anything else is kept as an attribute.
func (a *Action) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrNotSubmission, err)
	}
	cat, ok := raw["categoryOfFinding"]
	if !ok || cat == nil {
		return fmt.Errorf("%w: action without categoryOfFinding", ErrNotSubmission)
	}
	code, err := cast.ToIntE(cat)
	if err != nil {
		return fmt.Errorf("%w: categoryOfFinding: %v", ErrNotSubmission, err)
	}

	*a = Action{CategoryOfFinding: code}
	if nc, ok := raw["nonComplianceType"]; ok && nc != nil {
		if sub, err := cast.ToIntE(nc); err == nil {
			a.NonComplianceType = &sub
		}
	}
	delete(raw, "categoryOfFinding")
	delete(raw, "nonComplianceType")
	if len(raw) > 0 {
		a.Attributes = raw
	}
	return nil
}

// MarshalJSON writes the action using the source field names.
func (a Action) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Attributes)+2)
	for k, v := range a.Attributes {
		out[k] = v
	}
	out["categoryOfFinding"] = a.CategoryOfFinding
	if a.NonComplianceType != nil {
		out["nonComplianceType"] = *a.NonComplianceType
	}
	return json.Marshal(out)
}

// Submission is an embedded audit, self-assessment or observation event.
type Submission struct {
	Type       *int
	Score      *float64
	Attributes map[string]any
	ScoreKey   string
	Actions    []Action
	Kind       SubmissionKind
}

// NewSingle builds a single-object submission of the given type.
func NewSingle(typ int) Submission {
	return Submission{Kind: SubmissionSingle, Type: &typ}
}

// NewActions builds an action-list submission.
func NewActions(actions ...Action) Submission {
	return Submission{Kind: SubmissionActions, Actions: actions}
}

// WithScore returns a copy of a single submission carrying a score under key.
func (s Submission) WithScore(key string, score float64) Submission {
	s.ScoreKey = key
	s.Score = &score
	return s
}

// IsActions reports whether the submission is an action list.
func (s Submission) IsActions() bool {
	return s.Kind == SubmissionActions
}

// HasType reports whether a single submission carries a non-null type.
func (s Submission) HasType() bool {
	return s.Kind == SubmissionSingle && s.Type != nil
}

// ScoreValue returns the score, or 0 when absent.
func (s Submission) ScoreValue() float64 {
	if s.Score == nil {
		return 0
	}
	return *s.Score
}

// CloneActions returns a copy of the action slice so callers can prune it
// without touching the original record.
func (s Submission) CloneActions() []Action {
	if s.Actions == nil {
		return nil
	}
	out := make([]Action, len(s.Actions))
	copy(out, s.Actions)
	return out
}

// UnmarshalJSON accepts an object with a "type" key or an array of actions.
func (s *Submission) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return ErrNotSubmission
	}

	switch trimmed[0] {
	case '[':
		var actions []Action
		if err := json.Unmarshal(trimmed, &actions); err != nil {
			return err
		}
		*s = NewActions(actions...)
		return nil
	case '{':
		var raw map[string]any
		if err := json.Unmarshal(trimmed, &raw); err != nil {
			return fmt.Errorf("%w: %v", ErrNotSubmission, err)
		}
		typ, ok := raw["type"]
		if !ok {
			return fmt.Errorf("%w: object without type", ErrNotSubmission)
		}
		*s = Submission{Kind: SubmissionSingle}
		if typ != nil {
			if code, err := cast.ToIntE(typ); err == nil {
				s.Type = &code
			}
		}
		delete(raw, "type")
		for _, key := range scoreKeys {
			val, ok := raw[key]
			if !ok {
				continue
			}
			delete(raw, key)
			s.ScoreKey = key
			if f, err := cast.ToFloat64E(val); err == nil && val != nil {
				s.Score = &f
			}
			break
		}
		if len(raw) > 0 {
			s.Attributes = raw
		}
		return nil
	default:
		return ErrNotSubmission
	}
}

// MarshalJSON writes the submission in its source shape.
func (s Submission) MarshalJSON() ([]byte, error) {
	if s.IsActions() {
		if s.Actions == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(s.Actions)
	}
	out := make(map[string]any, len(s.Attributes)+2)
	for k, v := range s.Attributes {
		out[k] = v
	}
	if s.Type != nil {
		out["type"] = *s.Type
	} else {
		out["type"] = nil
	}
	if s.Score != nil {
		key := s.ScoreKey
		if key == "" {
			key = "score"
		}
		out[key] = *s.Score
	}
	return json.Marshal(out)
}

// Lookup resolves a path relative to the submission. An empty path resolves
// to the submission itself.
func (s Submission) Lookup(path string) (any, bool) {
	if path == "" {
		return s, true
	}
	if s.IsActions() {
		return nil, false
	}
	switch {
	case path == "type":
		if s.Type == nil {
			return nil, false
		}
		return *s.Type, true
	case path == "score" || (s.ScoreKey != "" && path == s.ScoreKey):
		if s.Score == nil {
			return nil, false
		}
		return *s.Score, true
	}
	return lookupAttribute(s.Attributes, path)
}
