package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePerformance(t *testing.T) {
	data := []byte(`[
		{"vendor_code": "1042", "environment": 12.5, "social": "8.25", "governance": null,
		 "supplier_sustainability_ambassadorship_framework": 4, "msi_rating": "Gold", "status": "Completed"},
		{"vendor_code": 77, "environment": "n/a", "msi_rating": "Silver", "status": "Pending"}
	]`)

	rows, err := DecodePerformance(data)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "1042", rows[0].VendorCode)
	assert.InDelta(t, 12.5, rows[0].Environment, 0.0001)
	assert.InDelta(t, 8.25, rows[0].Social, 0.0001)
	assert.Zero(t, rows[0].Governance)
	assert.InDelta(t, 4, rows[0].AmbassadorshipFramework, 0.0001)
	assert.Equal(t, RatingGold, rows[0].MSIRating)
	assert.Equal(t, StatusCompleted, rows[0].Status)

	assert.Equal(t, "77", rows[1].VendorCode)
	assert.Zero(t, rows[1].Environment)
}

func TestDefaultESG(t *testing.T) {
	esg := DefaultESG()
	assert.Equal(t, RatingNeedsImprovement, esg.MSIRating)
	assert.Equal(t, StatusPending, esg.Status)
	for _, metric := range []string{MetricEnvironment, MetricSocial, MetricGovernance,
		MetricLegalCompliances, MetricHealthSafety, MetricSocialStewardshipFramework,
		MetricAmbassadorshipFramework} {
		v, ok := esg.Metric(metric)
		assert.True(t, ok, metric)
		assert.Zero(t, v, metric)
	}
}

func TestESG_MetricUnknown(t *testing.T) {
	_, ok := ESG{}.Metric("spend")
	assert.False(t, ok)
}

func TestBucketDefinition_Matches(t *testing.T) {
	sub := func(v int) *int { return &v }

	major := BucketWithSubtype("Major", 3, 1)
	anyNC := Bucket("NC", 3)

	assert.True(t, major.Matches(Action{CategoryOfFinding: 3, NonComplianceType: sub(1)}))
	assert.False(t, major.Matches(Action{CategoryOfFinding: 3, NonComplianceType: sub(2)}))
	assert.False(t, major.Matches(Action{CategoryOfFinding: 3}))
	assert.True(t, anyNC.Matches(Action{CategoryOfFinding: 3}))
	assert.False(t, anyNC.Matches(Action{CategoryOfFinding: 1}))
	assert.True(t, major.MatchesType(3))
}

func TestDateRange_ContainsIsInclusiveByDate(t *testing.T) {
	r := DateRange{Start: mustDate(t, "2024-01-01"), End: mustDate(t, "2024-01-31")}

	assert.True(t, r.Contains(mustDate(t, "2024-01-01")))
	assert.True(t, r.Contains(mustDate(t, "2024-01-31").Add(23*60*60*1e9)))
	assert.False(t, r.Contains(mustDate(t, "2024-02-01")))
	assert.False(t, r.Contains(mustDate(t, "2023-12-31")))
}

func TestDateRange_ContainsUsesWrittenDate(t *testing.T) {
	r := DateRange{Start: mustDate(t, "2024-01-01"), End: mustDate(t, "2024-01-31")}

	lateEvening, err := time.Parse(time.RFC3339, "2024-01-31T23:30:00-05:00")
	require.NoError(t, err)
	earlyMorning, err := time.Parse(time.RFC3339, "2024-01-01T00:30:00+09:00")
	require.NoError(t, err)
	nextDay, err := time.Parse(time.RFC3339, "2024-02-01T00:30:00+09:00")
	require.NoError(t, err)

	assert.True(t, r.Contains(lateEvening))
	assert.True(t, r.Contains(earlyMorning))
	assert.False(t, r.Contains(nextDay))

	eastern := time.FixedZone("EST", -5*60*60)
	endInZone := DateRange{Start: mustDate(t, "2024-01-01"), End: time.Date(2024, 1, 31, 22, 0, 0, 0, eastern)}
	assert.True(t, endInZone.Contains(lateEvening))
}

func TestCategoryNames(t *testing.T) {
	opts, err := DecodeCategories([]byte(`[{"value": 1, "name": "Apparel"}, {"value": "2", "name": "Footwear"}]`))
	require.NoError(t, err)

	names := NewCategoryNames(opts)
	assert.Equal(t, "Apparel", names.Name("1"))
	assert.Equal(t, "Footwear", names.Name("2"))
	assert.Equal(t, "02", names.Name("02"))
	assert.Equal(t, "9", names.Name("9"))
}
