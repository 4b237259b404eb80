package source

import (
	"context"
	"fmt"
	"os"

	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/model"
)

// JSONSource reads the inputs from three JSON array files. An empty
// CategoriesPath or PerformancePath yields no rows for that input.
type JSONSource struct {
	RecordsPath     string
	CategoriesPath  string
	PerformancePath string
}

// Records decodes the assessment record file.
func (s JSONSource) Records(ctx context.Context) ([]model.AssessmentRecord, error) {
	if s.RecordsPath == "" {
		return nil, fmt.Errorf("%w: records file", common.ErrMissingConfig)
	}
	data, err := readFile(ctx, s.RecordsPath)
	if err != nil {
		return nil, err
	}
	return model.DecodeRecords(data)
}

// Categories decodes the category lookup file.
func (s JSONSource) Categories(ctx context.Context) ([]model.CategoryOption, error) {
	if s.CategoriesPath == "" {
		return []model.CategoryOption{}, nil
	}
	data, err := readFile(ctx, s.CategoriesPath)
	if err != nil {
		return nil, err
	}
	return model.DecodeCategories(data)
}

// Performance decodes the performance metrics file.
func (s JSONSource) Performance(ctx context.Context) ([]model.PerformanceRecord, error) {
	if s.PerformancePath == "" {
		return []model.PerformanceRecord{}, nil
	}
	data, err := readFile(ctx, s.PerformancePath)
	if err != nil {
		return nil, err
	}
	return model.DecodePerformance(data)
}

func readFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}
