package view

import (
	"github.com/Veraticus/supplier-drilldown/internal/filter"
	"github.com/Veraticus/supplier-drilldown/internal/model"
)

const nonComplianceFinding = 3

// Stock view names.
const (
	ViewAudits         = "audits"
	ViewSelfAssessment = "self-assessment"
	ViewObservations   = "observations"
	ViewActionPlan     = "action-plan"
	ViewCalibration    = "sa-vs-calibration"
	ViewESG            = "esg"
	ViewFramework      = "framework"
	ViewMSI            = "msi-rating"
	ViewOpenNC         = "open-non-compliance"
)

// DefaultConfigs returns the stock dashboard.
func DefaultConfigs() []Config {
	return []Config{
		{
			Name:            ViewAudits,
			Title:           "Audits",
			Kind:            KindBuckets,
			DateField:       model.FieldAuditStartDate,
			SubmissionField: model.FieldAuditorSubmission,
			Buckets: []model.BucketDefinition{
				model.Bucket("Audits Scheduled", 0),
				model.Bucket("Audits Completed", 1),
				model.Bucket("Audits Released", 2),
			},
		},
		{
			Name:            ViewSelfAssessment,
			Title:           "Self Assessment",
			Kind:            KindBuckets,
			DateField:       model.FieldAssessmentStartDate,
			SubmissionField: model.FieldSupplierSubmission,
			Buckets: []model.BucketDefinition{
				model.Bucket("SA Scheduled", 0),
				model.Bucket("SA Completed", 1),
			},
		},
		{
			Name:            ViewObservations,
			Title:           "Observations",
			Kind:            KindBuckets,
			DateField:       model.FieldAuditEndDate,
			SubmissionField: model.FieldSupplierActions,
			Prefilter:       filter.Prefilter{Path: model.FieldAuditorSubmission + ".type", Equals: "2"},
			Buckets: []model.BucketDefinition{
				model.Bucket("Good Practices", 1),
				model.Bucket("Opportunity for Improvement", 2),
				model.BucketWithSubtype("Regulatory Major NC", 3, 1),
				model.BucketWithSubtype("Regulatory Minor NC", 3, 2),
				model.BucketWithSubtype("Minor NC", 3, 3),
			},
		},
		{
			Name:            ViewActionPlan,
			Title:           "Action Plan",
			Kind:            KindBuckets,
			DateField:       model.FieldAuditStartDate,
			SubmissionField: model.FieldAuditorSubmission,
			Buckets: []model.BucketDefinition{
				model.Bucket("Suppliers Completed Action-plan", 1),
				model.Bucket("Suppliers re-assessed for Action-plan", 0),
				model.Bucket("Suppliers report released", 2),
			},
		},
		{
			Name:  ViewCalibration,
			Title: "Self Assessment vs Calibration",
			Kind:  KindScores,
			Metrics: []Metric{
				{Label: "Self Assessment Score", Path: model.FieldSupplierSubmission + ".supplierMSIScore"},
				{Label: "Calibration Score", Path: model.FieldAuditorSubmission + ".auditorMSIScore"},
			},
		},
		{
			Name:  ViewESG,
			Title: "ESG Score",
			Kind:  KindESG,
			Metrics: []Metric{
				{Label: "Environmental", Path: model.MetricEnvironment},
				{Label: "Social", Path: model.MetricSocial},
				{Label: "Governance", Path: model.MetricGovernance},
			},
		},
		{
			Name:  ViewFramework,
			Title: "Sustainability Framework",
			Kind:  KindFramework,
			Metrics: []Metric{
				{Label: "Environment", Path: model.MetricEnvironment},
				{Label: "Legal Compliances", Path: model.MetricLegalCompliances},
				{Label: "Governance Framework", Path: model.MetricGovernanceFramework},
				{Label: "Health & Safety", Path: model.MetricHealthSafety},
				{Label: "Social Stewardship", Path: model.MetricSocialStewardshipFramework},
				{Label: "Ambassadorship", Path: model.MetricAmbassadorshipFramework},
			},
		},
		{
			Name:     ViewMSI,
			Title:    "MSI Rating",
			Kind:     KindMSI,
			Ratings:  model.Ratings(),
			Statuses: model.Statuses(),
		},
		{
			Name:            ViewOpenNC,
			Title:           "Total No. of open Regulatory Non-compliances",
			Kind:            KindTrend,
			DateField:       model.FieldModifiedOn,
			SubmissionField: model.FieldSupplierActions,
			FindingCategory: nonComplianceFinding,
		},
	}
}
