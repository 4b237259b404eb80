package view

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/model"
)

// Dashboard holds one engine per configured view over a shared dataset.
type Dashboard struct {
	engines map[string]*Engine
	data    *Dataset
	order   []string
}

// NewDashboard validates configs and builds their engines.
func NewDashboard(configs []Config, data *Dataset) (*Dashboard, error) {
	if err := ValidateAll(configs); err != nil {
		return nil, err
	}
	d := &Dashboard{
		engines: make(map[string]*Engine, len(configs)),
		data:    data,
		order:   make([]string, 0, len(configs)),
	}
	for _, cfg := range configs {
		e, err := New(cfg, data)
		if err != nil {
			return nil, err
		}
		d.engines[cfg.Name] = e
		d.order = append(d.order, cfg.Name)
	}
	return d, nil
}

// Names returns the view names in configured order.
func (d *Dashboard) Names() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// Configs returns the effective view configurations in order.
func (d *Dashboard) Configs() []Config {
	out := make([]Config, 0, len(d.order))
	for _, name := range d.order {
		out = append(out, d.engines[name].Config())
	}
	return out
}

// Dataset returns the shared input.
func (d *Dashboard) Dataset() *Dataset {
	return d.data
}

// Engine returns the engine of a view.
func (d *Dashboard) Engine(name string) (*Engine, error) {
	e, ok := d.engines[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownView, name)
	}
	return e, nil
}

// Compute computes one view by name.
func (d *Dashboard) Compute(name string, criteria model.FilterCriteria, asOf time.Time) (*Result, error) {
	e, err := d.Engine(name)
	if err != nil {
		return nil, err
	}
	return e.Compute(criteria, asOf)
}

// ComputeAll computes every view concurrently. Results are returned in
// configured order; the first failure cancels the rest.
func (d *Dashboard) ComputeAll(ctx context.Context, criteria model.FilterCriteria, asOf time.Time) ([]*Result, error) {
	results := make([]*Result, len(d.order))
	g, ctx := errgroup.WithContext(ctx)

	for i, name := range d.order {
		e := d.engines[name]
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := e.Compute(criteria, asOf)
			if err != nil {
				return fmt.Errorf("view %q: %w", name, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
