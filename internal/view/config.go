// Package view composes the filter, bucketing, join and reduction stages
// into one configurable engine per dashboard view.
package view

import (
	"fmt"
	"strings"

	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/filter"
	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/taxonomy"
)

// Kind selects the reduction a view performs.
type Kind string

// View kinds.
const (
	// KindBuckets counts records per bucket definition.
	KindBuckets Kind = "buckets"
	// KindScores sums numeric submission fields.
	KindScores Kind = "scores"
	// KindESG sums joined environment, social and governance scores.
	KindESG Kind = "esg"
	// KindFramework sums joined framework scores for a radar chart.
	KindFramework Kind = "framework"
	// KindMSI cross-tabulates joined ratings against statuses.
	KindMSI Kind = "msi"
	// KindTrend counts records with a finding per month.
	KindTrend Kind = "trend"
)

// Kinds returns every supported kind.
func Kinds() []Kind {
	return []Kind{KindBuckets, KindScores, KindESG, KindFramework, KindMSI, KindTrend}
}

func (k Kind) valid() bool {
	for _, known := range Kinds() {
		if k == known {
			return true
		}
	}
	return false
}

func (k Kind) joins() bool {
	return k == KindESG || k == KindFramework || k == KindMSI
}

// Metric is one summed series point. For scores views Path is a record path
// such as "supplierAssignmentSubmission.supplierMSIScore"; for esg and
// framework views it is a performance metric key.
type Metric struct {
	Label string `json:"label" yaml:"label" mapstructure:"label"`
	Path  string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config declares one view. DateField, when set, overrides the date facet
// path; trend views also bucket by it.
type Config struct {
	Prefilter       filter.Prefilter         `json:"prefilter" yaml:"prefilter,omitempty" mapstructure:"prefilter"`
	FacetPaths      filter.FieldPaths        `json:"facet_paths" yaml:"facet_paths,omitempty" mapstructure:"facet_paths"`
	Name            string                   `json:"name" yaml:"name" mapstructure:"name"`
	Title           string                   `json:"title" yaml:"title" mapstructure:"title"`
	Kind            Kind                     `json:"kind" yaml:"kind" mapstructure:"kind"`
	DateField       string                   `json:"date_field,omitempty" yaml:"date_field,omitempty" mapstructure:"date_field"`
	SubmissionField string                   `json:"submission_field,omitempty" yaml:"submission_field,omitempty" mapstructure:"submission_field"`
	Multiplicity    taxonomy.Multiplicity    `json:"multiplicity,omitempty" yaml:"multiplicity,omitempty" mapstructure:"multiplicity"`
	Buckets         []model.BucketDefinition `json:"buckets,omitempty" yaml:"buckets,omitempty" mapstructure:"buckets"`
	Metrics         []Metric                 `json:"metrics,omitempty" yaml:"metrics,omitempty" mapstructure:"metrics"`
	Ratings         []model.MSIRating        `json:"ratings,omitempty" yaml:"ratings,omitempty" mapstructure:"ratings"`
	Statuses        []model.AssessmentStatus `json:"statuses,omitempty" yaml:"statuses,omitempty" mapstructure:"statuses"`
	FindingCategory int                      `json:"finding_category,omitempty" yaml:"finding_category,omitempty" mapstructure:"finding_category"`
}

// Paths returns the facet paths the view filters with.
func (c Config) Paths() filter.FieldPaths {
	paths := c.FacetPaths.WithDefaults()
	if c.DateField != "" {
		paths.Date = c.DateField
	}
	return paths
}

// withDefaults fills the optional parts of a config.
func (c Config) withDefaults() Config {
	if c.Title == "" {
		c.Title = c.Name
	}
	if c.Multiplicity == "" {
		c.Multiplicity = taxonomy.PerEntry
	}
	if c.Kind == KindMSI {
		if len(c.Ratings) == 0 {
			c.Ratings = model.Ratings()
		}
		if len(c.Statuses) == 0 {
			c.Statuses = model.Statuses()
		}
	}
	if c.Kind == KindTrend {
		if c.DateField == "" {
			c.DateField = model.FieldModifiedOn
		}
		if c.FindingCategory == 0 {
			c.FindingCategory = nonComplianceFinding
		}
	}
	return c
}

// Validate checks that the view can be computed.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: view name is required", common.ErrInvalidConfig)
	}
	if !c.Kind.valid() {
		return fmt.Errorf("%w: view %q has unknown kind %q", common.ErrInvalidConfig, c.Name, c.Kind)
	}
	if !c.Multiplicity.Valid() {
		return fmt.Errorf("%w: view %q has unknown multiplicity %q", common.ErrInvalidConfig, c.Name, c.Multiplicity)
	}

	switch c.Kind {
	case KindBuckets:
		if c.SubmissionField == "" {
			return fmt.Errorf("%w: view %q needs a submission field", common.ErrInvalidConfig, c.Name)
		}
		if len(c.Buckets) == 0 {
			return fmt.Errorf("%w: view %q has no buckets", common.ErrInvalidConfig, c.Name)
		}
		seen := make(map[string]bool, len(c.Buckets))
		for _, b := range c.Buckets {
			if err := b.Validate(); err != nil {
				return fmt.Errorf("%w: view %q: %v", common.ErrInvalidConfig, c.Name, err)
			}
			if seen[b.Label] {
				return fmt.Errorf("%w: view %q repeats bucket label %q", common.ErrInvalidConfig, c.Name, b.Label)
			}
			seen[b.Label] = true
		}
	case KindScores, KindESG, KindFramework:
		if len(c.Metrics) == 0 {
			return fmt.Errorf("%w: view %q has no metrics", common.ErrInvalidConfig, c.Name)
		}
		seen := make(map[string]bool, len(c.Metrics))
		for _, m := range c.Metrics {
			if m.Label == "" || m.Path == "" {
				return fmt.Errorf("%w: view %q has a metric without label or path", common.ErrInvalidConfig, c.Name)
			}
			if seen[m.Label] {
				return fmt.Errorf("%w: view %q repeats metric label %q", common.ErrInvalidConfig, c.Name, m.Label)
			}
			seen[m.Label] = true
			if c.Kind != KindScores {
				if _, ok := model.DefaultESG().Metric(m.Path); !ok {
					return fmt.Errorf("%w: view %q has unknown performance metric %q", common.ErrInvalidConfig, c.Name, m.Path)
				}
			}
		}
	case KindTrend:
		if c.SubmissionField == "" {
			return fmt.Errorf("%w: view %q needs a submission field", common.ErrInvalidConfig, c.Name)
		}
	}
	return nil
}

// ValidateAll validates every config and rejects repeated names.
func ValidateAll(configs []Config) error {
	seen := make(map[string]bool, len(configs))
	for _, c := range configs {
		if err := c.Validate(); err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("%w: view name %q is used twice", common.ErrInvalidConfig, c.Name)
		}
		seen[c.Name] = true
	}
	return nil
}
