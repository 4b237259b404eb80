package model

import "encoding/json"

// JoinedRecord is an assessment record with its vendor's performance metrics attached.
type JoinedRecord struct {
	ESG ESG `json:"esg"`
	AssessmentRecord
}

// MarshalJSON writes the record fields with an additional "esg" key.
func (j JoinedRecord) MarshalJSON() ([]byte, error) {
	base, err := j.AssessmentRecord.MarshalJSON()
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(base, &out); err != nil {
		return nil, err
	}
	out["esg"] = j.ESG
	return json.Marshal(out)
}

// Records strips the performance view from joined records.
func Records(joined []JoinedRecord) []AssessmentRecord {
	out := make([]AssessmentRecord, len(joined))
	for i, j := range joined {
		out[i] = j.AssessmentRecord
	}
	return out
}
