// Package source loads the read-only inputs of the dashboard.
package source

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Veraticus/supplier-drilldown/internal/model"
)

// Source supplies the three inputs every view computes over. Implementations
// are read once per process and never written through.
type Source interface {
	Records(ctx context.Context) ([]model.AssessmentRecord, error)
	Categories(ctx context.Context) ([]model.CategoryOption, error)
	Performance(ctx context.Context) ([]model.PerformanceRecord, error)
}

// Snapshot is a fully loaded copy of a source.
type Snapshot struct {
	Records     []model.AssessmentRecord
	Categories  []model.CategoryOption
	Performance []model.PerformanceRecord
}

// Load reads every input from src.
func Load(ctx context.Context, src Source) (*Snapshot, error) {
	records, err := src.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records: %w", err)
	}
	categories, err := src.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}
	performance, err := src.Performance(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load performance data: %w", err)
	}

	slog.Info("Loaded data source",
		"records", len(records),
		"categories", len(categories),
		"performance", len(performance))

	return &Snapshot{
		Records:     records,
		Categories:  categories,
		Performance: performance,
	}, nil
}
