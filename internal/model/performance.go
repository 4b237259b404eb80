package model

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cast"
)

// MSIRating is a supplier rating tier.
type MSIRating string

// Rating tiers, best first.
const (
	RatingPlatinum         MSIRating = "Platinum"
	RatingGold             MSIRating = "Gold"
	RatingSilver           MSIRating = "Silver"
	RatingBronze           MSIRating = "Bronze"
	RatingNeedsImprovement MSIRating = "Needs Improvement"
)

// Ratings returns the rating tiers in display order.
func Ratings() []MSIRating {
	return []MSIRating{RatingPlatinum, RatingGold, RatingSilver, RatingBronze, RatingNeedsImprovement}
}

// AssessmentStatus is the re-assessment state attached to performance data.
type AssessmentStatus string

// Performance statuses.
const (
	StatusCompleted AssessmentStatus = "Completed"
	StatusPending   AssessmentStatus = "Pending"
)

// Statuses returns the statuses in display order.
func Statuses() []AssessmentStatus {
	return []AssessmentStatus{StatusCompleted, StatusPending}
}

// ESG metric keys as they appear in performance data.
const (
	MetricEnvironment                = "environment"
	MetricSocial                     = "social"
	MetricGovernance                 = "governance"
	MetricLegalCompliances           = "legal_compliances"
	MetricHealthSafety               = "health_safety"
	MetricSocialStewardshipFramework = "social_stewardship_framework"
	MetricAmbassadorshipFramework    = "ambassadorship_framework"
	MetricGovernanceFramework        = "governance_framework"
	MetricMSIScore                   = "msi_score"
)

// ESG holds the performance metrics attached to a record by the joiner.
type ESG struct {
	MSIRating                  MSIRating        `json:"msi_rating"`
	Status                     AssessmentStatus `json:"status"`
	Environment                float64          `json:"environment"`
	Social                     float64          `json:"social"`
	Governance                 float64          `json:"governance"`
	LegalCompliances           float64          `json:"legal_compliances"`
	HealthSafety               float64          `json:"health_safety"`
	SocialStewardshipFramework float64          `json:"social_stewardship_framework"`
	AmbassadorshipFramework    float64          `json:"ambassadorship_framework"`
	GovernanceFramework        float64          `json:"governance_framework"`
	MSIScore                   float64          `json:"msi_score"`
}

// DefaultESG is attached to records whose vendor has no performance data.
func DefaultESG() ESG {
	return ESG{
		MSIRating: RatingNeedsImprovement,
		Status:    StatusPending,
	}
}

// Metric returns a sub-score by its data key.
func (e ESG) Metric(name string) (float64, bool) {
	switch name {
	case MetricEnvironment:
		return e.Environment, true
	case MetricSocial:
		return e.Social, true
	case MetricGovernance:
		return e.Governance, true
	case MetricLegalCompliances:
		return e.LegalCompliances, true
	case MetricHealthSafety:
		return e.HealthSafety, true
	case MetricSocialStewardshipFramework:
		return e.SocialStewardshipFramework, true
	case MetricAmbassadorshipFramework, "supplier_sustainability_ambassadorship_framework":
		return e.AmbassadorshipFramework, true
	case MetricGovernanceFramework:
		return e.GovernanceFramework, true
	case MetricMSIScore:
		return e.MSIScore, true
	}
	return 0, false
}

// PerformanceRecord is the external per-vendor metric row.
type PerformanceRecord struct {
	VendorCode string
	ESG
}

// UnmarshalJSON decodes a performance row leniently: scores may be numbers
// or numeric strings, non-numeric scores become 0, and the vendor code is
// canonicalized.
func (p *PerformanceRecord) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode performance record: %w", err)
	}

	*p = PerformanceRecord{}
	for _, key := range []string{"vendor_code", "vendorCode", "code"} {
		if v, ok := raw[key]; ok {
			p.VendorCode = MustKey(v)
			break
		}
	}

	num := func(keys ...string) float64 {
		for _, key := range keys {
			if v, ok := raw[key]; ok && v != nil {
				return cast.ToFloat64(v)
			}
		}
		return 0
	}
	p.Environment = num(MetricEnvironment)
	p.Social = num(MetricSocial)
	p.Governance = num(MetricGovernance)
	p.LegalCompliances = num(MetricLegalCompliances)
	p.HealthSafety = num(MetricHealthSafety)
	p.SocialStewardshipFramework = num(MetricSocialStewardshipFramework)
	p.AmbassadorshipFramework = num(MetricAmbassadorshipFramework, "supplier_sustainability_ambassadorship_framework")
	p.GovernanceFramework = num(MetricGovernanceFramework)
	p.MSIScore = num(MetricMSIScore)

	p.MSIRating = MSIRating(cast.ToString(raw["msi_rating"]))
	p.Status = AssessmentStatus(cast.ToString(raw["status"]))
	return nil
}

// MarshalJSON writes the row with its vendor_code key.
func (p PerformanceRecord) MarshalJSON() ([]byte, error) {
	type row struct {
		VendorCode string `json:"vendor_code"`
		ESG
	}
	return json.Marshal(row{VendorCode: p.VendorCode, ESG: p.ESG})
}

// DecodePerformance decodes a JSON array of performance rows.
func DecodePerformance(data []byte) ([]PerformanceRecord, error) {
	var rows []PerformanceRecord
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode performance data: %w", err)
	}
	return rows, nil
}
