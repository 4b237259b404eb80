package view

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Veraticus/supplier-drilldown/internal/aggregate"
	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/drilldown"
	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/taxonomy"
	"github.com/Veraticus/supplier-drilldown/internal/trend"
)

// CellSeparator joins rating and status in an MSI drilldown label.
const CellSeparator = "/"

// Result is one computed view. Which fields are set depends on the kind.
type Result struct {
	Buckets      *taxonomy.Buckets
	Table        *aggregate.Table
	Name         string
	Title        string
	Kind         Kind
	Direction    trend.Direction
	Filtered     []model.AssessmentRecord
	Joined       []model.JoinedRecord
	Series       aggregate.Series
	Monthly      taxonomy.MonthlyCounts
	findings     []model.AssessmentRecord
	cfg          Config
	TrendPercent float64
	Headline     float64
}

// Drilldown is the detail behind one clicked label. Joined is set for views
// that attach performance data, Records otherwise.
type Drilldown struct {
	View    string                   `json:"view"`
	Label   string                   `json:"label"`
	Count   int                      `json:"count"`
	Records []model.AssessmentRecord `json:"records,omitempty"`
	Joined  []model.JoinedRecord     `json:"joined,omitempty"`
}

// Len returns the number of detail rows.
func (d *Drilldown) Len() int {
	if d.Joined != nil {
		return len(d.Joined)
	}
	return len(d.Records)
}

// SelectDrilldown returns the records behind label. Bucket views take a
// bucket label, score and performance views a metric label, MSI views a
// "rating/status" cell and trend views a month key or month label.
func (r *Result) SelectDrilldown(label string) (*Drilldown, error) {
	d := &Drilldown{View: r.Name, Label: label}

	switch r.Kind {
	case KindBuckets:
		records, ok := drilldown.SelectBucket(r.Buckets, label, r.cfg.SubmissionField)
		if !ok {
			return nil, r.unknown(label)
		}
		d.Records = records
	case KindScores:
		m, ok := r.metric(label)
		if !ok {
			return nil, r.unknown(label)
		}
		d.Records = drilldown.SelectScored(r.Filtered, m.Path)
	case KindESG, KindFramework:
		if _, ok := r.metric(label); !ok {
			return nil, r.unknown(label)
		}
		d.Joined = drilldown.SelectWithVendor(r.Joined)
	case KindMSI:
		rating, status, ok := strings.Cut(label, CellSeparator)
		if !ok || !r.Table.Has(model.MSIRating(rating), model.AssessmentStatus(status)) {
			return nil, r.unknown(label)
		}
		d.Joined = drilldown.SelectCell(r.Joined, model.MSIRating(rating), model.AssessmentStatus(status))
	case KindTrend:
		key, ok := r.monthKey(label)
		if !ok {
			return nil, r.unknown(label)
		}
		d.Records = drilldown.SelectMonth(r.findings, r.cfg.DateField, key)
	default:
		return nil, r.unknown(label)
	}
	d.Count = d.Len()
	return d, nil
}

// Labels returns every label SelectDrilldown accepts, in series order.
func (r *Result) Labels() []string {
	if r.Kind != KindMSI || r.Table == nil {
		return r.Series.Labels()
	}
	var out []string
	for _, rating := range r.Table.Rows() {
		for _, status := range r.Table.Columns() {
			out = append(out, string(rating)+CellSeparator+string(status))
		}
	}
	return out
}

func (r *Result) unknown(label string) error {
	return fmt.Errorf("%w: %q in view %q", common.ErrUnknownLabel, label, r.Name)
}

func (r *Result) metric(label string) (Metric, bool) {
	for _, m := range r.cfg.Metrics {
		if m.Label == label {
			return m, true
		}
	}
	return Metric{}, false
}

func (r *Result) monthKey(label string) (string, bool) {
	for _, m := range r.Monthly {
		if m.Key == label || m.Label == label {
			return m.Key, true
		}
	}
	return "", false
}

type resultJSON struct {
	Name         string                   `json:"name"`
	Title        string                   `json:"title"`
	Kind         Kind                     `json:"kind"`
	Direction    trend.Direction          `json:"direction,omitempty"`
	Series       aggregate.Series         `json:"series"`
	Table        []aggregate.ColumnSeries `json:"table,omitempty"`
	Monthly      taxonomy.MonthlyCounts   `json:"monthly,omitempty"`
	Labels       []string                 `json:"labels"`
	Filtered     int                      `json:"filtered"`
	TrendPercent float64                  `json:"trend_percent,omitempty"`
	Headline     float64                  `json:"headline,omitempty"`
}

// MarshalJSON writes the chart-ready summary of the view.
func (r *Result) MarshalJSON() ([]byte, error) {
	out := resultJSON{
		Name:         r.Name,
		Title:        r.Title,
		Kind:         r.Kind,
		Direction:    r.Direction,
		Series:       r.Series,
		Monthly:      r.Monthly,
		Labels:       r.Labels(),
		Filtered:     len(r.Filtered),
		TrendPercent: r.TrendPercent,
		Headline:     r.Headline,
	}
	if out.Series == nil {
		out.Series = aggregate.Series{}
	}
	if r.Table != nil {
		out.Table = r.Table.Series()
	}
	return json.Marshal(out)
}
