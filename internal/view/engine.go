package view

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/supplier-drilldown/internal/aggregate"
	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/filter"
	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/performance"
	"github.com/Veraticus/supplier-drilldown/internal/taxonomy"
	"github.com/Veraticus/supplier-drilldown/internal/trend"
)

// Dataset is the read-only input every view computes over. It is loaded
// once and shared by all engines.
type Dataset struct {
	Performance *performance.Index
	Categories  model.CategoryNames
	Records     []model.AssessmentRecord
}

// NewDataset indexes the raw inputs.
func NewDataset(records []model.AssessmentRecord, categories []model.CategoryOption, rows []model.PerformanceRecord) *Dataset {
	return &Dataset{
		Records:     records,
		Categories:  model.NewCategoryNames(categories),
		Performance: performance.NewIndex(rows),
	}
}

// Engine computes one configured view.
type Engine struct {
	data  *Dataset
	cfg   Config
	paths filter.FieldPaths
}

// New validates cfg and binds it to data. Paths that resolve on none of the
// records are logged as warnings; the engine is still usable.
func New(cfg Config, data *Dataset) (*Engine, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: view %q has no dataset", common.ErrMissingConfig, cfg.Name)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	e := &Engine{cfg: cfg, data: data, paths: cfg.Paths()}
	e.diagnose()
	return e, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) diagnose() {
	for _, path := range filter.Diagnose(e.data.Records, e.paths) {
		slog.Warn("Facet path never resolves", "view", e.cfg.Name, "path", path)
	}
	if e.cfg.Kind.joins() && e.data.Performance.Len() == 0 {
		slog.Warn("No performance data loaded; every vendor gets the default rating", "view", e.cfg.Name)
	}
	if e.cfg.SubmissionField == "" || len(e.data.Records) == 0 {
		return
	}
	for _, r := range e.data.Records {
		if _, ok := r.Submission(e.cfg.SubmissionField); ok {
			return
		}
	}
	slog.Warn("Submission field never resolves", "view", e.cfg.Name, "field", e.cfg.SubmissionField)
}

// Compute runs the whole pipeline for criteria. asOf fixes the current
// month for trend views.
func (e *Engine) Compute(criteria model.FilterCriteria, asOf time.Time) (*Result, error) {
	if rng := criteria.DateRange; rng != nil && rng.End.Before(rng.Start) {
		return nil, fmt.Errorf("%w: date range ends before it starts", common.ErrInvalidConfig)
	}

	records := e.cfg.Prefilter.Keep(e.data.Records)
	filtered := filter.Apply(records, criteria, e.paths)

	res := &Result{
		Name:     e.cfg.Name,
		Title:    e.cfg.Title,
		Kind:     e.cfg.Kind,
		Filtered: filtered,
		cfg:      e.cfg,
	}

	switch e.cfg.Kind {
	case KindBuckets:
		res.Buckets = taxonomy.Classify(filtered, e.cfg.Buckets, e.cfg.SubmissionField,
			taxonomy.WithMultiplicity(e.cfg.Multiplicity))
		res.Series = aggregate.FromBuckets(res.Buckets)
	case KindScores:
		res.Series = make(aggregate.Series, 0, len(e.cfg.Metrics))
		for _, m := range e.cfg.Metrics {
			res.Series = append(res.Series, aggregate.Point{Label: m.Label, Value: aggregate.SumPath(filtered, m.Path)})
		}
	case KindESG, KindFramework:
		res.Joined = e.join(filtered)
		res.Series = make(aggregate.Series, 0, len(e.cfg.Metrics))
		for _, m := range e.cfg.Metrics {
			res.Series = append(res.Series, aggregate.Point{Label: m.Label, Value: aggregate.SumJoined(res.Joined, m.Path)})
		}
	case KindMSI:
		res.Joined = e.join(filtered)
		res.Table = aggregate.CrossTab(res.Joined, e.cfg.Ratings, e.cfg.Statuses)
		res.Series = res.Table.RowTotals()
	case KindTrend:
		res.findings = taxonomy.HasFinding(filtered, e.cfg.SubmissionField, e.cfg.FindingCategory)
		res.Monthly = taxonomy.GroupByMonth(res.findings, e.cfg.DateField, asOf.UTC().Year())
		res.Series = aggregate.FromMonths(res.Monthly)
		res.TrendPercent = trend.Percent(res.Monthly, asOf)
		res.Direction = trend.Of(res.TrendPercent)
		res.Headline = aggregate.Ratio(float64(len(res.findings)), float64(len(filtered)))
	}

	slog.Debug("Computed view",
		"view", e.cfg.Name,
		"records", len(e.data.Records),
		"filtered", len(filtered),
		"points", len(res.Series))
	return res, nil
}

func (e *Engine) join(records []model.AssessmentRecord) []model.JoinedRecord {
	joined := performance.Join(records, e.data.Performance)
	if matched, total := performance.Coverage(records, e.data.Performance); total > 0 && matched == 0 {
		slog.Warn("No record matched performance data", "view", e.cfg.Name, "records", total)
	}
	return joined
}
