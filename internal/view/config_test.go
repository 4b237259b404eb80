package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/taxonomy"
)

func TestDefaultConfigs_Valid(t *testing.T) {
	configs := DefaultConfigs()
	require.NoError(t, ValidateAll(configs))
	assert.Len(t, configs, 9)
}

func TestConfig_Validate(t *testing.T) {
	base := Config{
		Name:            "v",
		Kind:            KindBuckets,
		SubmissionField: model.FieldAuditorSubmission,
		Buckets:         []model.BucketDefinition{model.Bucket("A", 0)},
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing name", mutate: func(c *Config) { c.Name = "" }},
		{name: "unknown kind", mutate: func(c *Config) { c.Kind = "pie" }},
		{name: "unknown multiplicity", mutate: func(c *Config) { c.Multiplicity = "sometimes" }},
		{name: "no submission field", mutate: func(c *Config) { c.SubmissionField = "" }},
		{name: "no buckets", mutate: func(c *Config) { c.Buckets = nil }},
		{name: "empty bucket label", mutate: func(c *Config) { c.Buckets = []model.BucketDefinition{model.Bucket("", 1)} }},
		{name: "duplicate bucket label", mutate: func(c *Config) {
			c.Buckets = []model.BucketDefinition{model.Bucket("A", 0), model.Bucket("A", 1)}
		}},
		{name: "scores without metrics", mutate: func(c *Config) { c.Kind = KindScores }},
		{name: "unknown performance metric", mutate: func(c *Config) {
			c.Kind = KindESG
			c.Metrics = []Metric{{Label: "Carbon", Path: "carbon"}}
		}},
		{name: "duplicate metric label", mutate: func(c *Config) {
			c.Kind = KindESG
			c.Metrics = []Metric{{Label: "E", Path: model.MetricEnvironment}, {Label: "E", Path: model.MetricSocial}}
		}},
		{name: "trend without submission field", mutate: func(c *Config) {
			c.Kind = KindTrend
			c.SubmissionField = ""
		}},
	}

	require.NoError(t, base.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), common.ErrInvalidConfig)
		})
	}
}

func TestValidateAll_RejectsDuplicateNames(t *testing.T) {
	configs := DefaultConfigs()
	configs = append(configs, configs[0])
	assert.ErrorIs(t, ValidateAll(configs), common.ErrInvalidConfig)
}

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{Name: "msi", Kind: KindMSI}.withDefaults()
	assert.Equal(t, "msi", cfg.Title)
	assert.Equal(t, model.Ratings(), cfg.Ratings)
	assert.Equal(t, model.Statuses(), cfg.Statuses)
	assert.Equal(t, taxonomy.PerEntry, cfg.Multiplicity)

	tr := Config{Name: "t", Kind: KindTrend, SubmissionField: model.FieldSupplierActions}.withDefaults()
	assert.Equal(t, model.FieldModifiedOn, tr.DateField)
	assert.Equal(t, 3, tr.FindingCategory)
}

func TestConfig_Paths(t *testing.T) {
	cfg := Config{DateField: model.FieldAuditEndDate}
	paths := cfg.Paths()
	assert.Equal(t, model.FieldAuditEndDate, paths.Date)
	assert.Equal(t, "vendor.supplierLocation", paths.Location)
}
