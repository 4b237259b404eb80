package testutil

import (
	"time"

	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/source"
)

// SampleAsOf is the reference date the sample data is laid out around.
var SampleAsOf = time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC)

// SampleRecords returns five records covering every stock view:
//
//	a1  101 Acme Textiles  Dhaka    audit released   findings GP, Major, Major  Jan 2024
//	a2  102 Bolt Metals    Chennai  audit completed  findings OFI, Minor        Feb 2024
//	a3  103 Cotton Co      Dhaka    audit released   findings MinorNC           Mar 2024
//	a4  104 Delta Dyes     Lahore   audit scheduled  findings Major             Mar 2024
//	a5  -   Echo Traders   Dhaka    audit scheduled  no findings                Dec 2023
func SampleRecords() []model.AssessmentRecord {
	return []model.AssessmentRecord{
		NewRecord("a1").
			WithVendor("101", "Acme Textiles", "Dhaka", "1").
			WithDate(model.FieldAuditStartDate, "2024-01-10").
			WithDate(model.FieldAuditEndDate, "2024-01-12").
			WithDate(model.FieldAssessmentStartDate, "2024-01-05").
			WithModifiedOn("2024-01-15T08:00:00Z").
			WithAuditScore(2, 70).
			WithSelfAssessmentScore(1, 60).
			WithFindings(Finding(1), NonCompliance(1), NonCompliance(1)).
			Build(),
		NewRecord("a2").
			WithVendor("102", "Bolt Metals", "Chennai", "2").
			WithDate(model.FieldAuditStartDate, "2024-02-05").
			WithDate(model.FieldAuditEndDate, "2024-02-07").
			WithDate(model.FieldAssessmentStartDate, "2024-02-01").
			WithModifiedOn("2024-02-10").
			WithAuditScore(1, 80).
			WithSelfAssessment(0).
			WithFindings(Finding(2), NonCompliance(2)).
			Build(),
		NewRecord("a3").
			WithVendor("103", "Cotton Co", "Dhaka", "1").
			WithDate(model.FieldAuditStartDate, "2024-03-01").
			WithDate(model.FieldAuditEndDate, "2024-03-03").
			WithDate(model.FieldAssessmentStartDate, "2024-02-20").
			WithModifiedOn("2024-03-05").
			WithAudit(2).
			WithSelfAssessmentScore(1, 50).
			WithFindings(NonCompliance(3)).
			Build(),
		NewRecord("a4").
			WithVendor("104", "Delta Dyes", "Lahore", "3").
			WithDate(model.FieldAuditStartDate, "2024-03-10").
			WithModifiedOn("2024-03-12").
			WithAudit(0).
			WithFindings(NonCompliance(1)).
			Build(),
		NewRecord("a5").
			WithVendor("", "Echo Traders", "Dhaka", "2").
			WithDate(model.FieldAuditStartDate, "2023-12-01").
			WithDate(model.FieldAssessmentStartDate, "2023-11-20").
			WithModifiedOn("2023-12-05").
			WithAudit(0).
			Build(),
	}
}

// SamplePerformance returns metrics for vendors 101 to 103; 104 has none.
func SamplePerformance() []model.PerformanceRecord {
	return []model.PerformanceRecord{
		{VendorCode: "101", ESG: model.ESG{
			MSIRating: model.RatingGold, Status: model.StatusCompleted,
			Environment: 10, Social: 5, Governance: 3,
			LegalCompliances: 2, HealthSafety: 1, SocialStewardshipFramework: 4,
			AmbassadorshipFramework: 6, GovernanceFramework: 7,
		}},
		{VendorCode: "102", ESG: model.ESG{
			MSIRating: model.RatingGold, Status: model.StatusPending,
			Environment: 4.5, Social: 2, Governance: 1,
		}},
		{VendorCode: "103", ESG: model.ESG{
			MSIRating: model.RatingSilver, Status: model.StatusCompleted,
			Environment: 1,
		}},
	}
}

// SampleCategories returns the category lookup for the sample records.
func SampleCategories() []model.CategoryOption {
	return []model.CategoryOption{
		{Value: "1", Name: "Textiles"},
		{Value: "2", Name: "Metals"},
		{Value: "3", Name: "Chemicals"},
	}
}

// SampleSnapshot bundles the sample inputs.
func SampleSnapshot() *source.Snapshot {
	return &source.Snapshot{
		Records:     SampleRecords(),
		Categories:  SampleCategories(),
		Performance: SamplePerformance(),
	}
}
