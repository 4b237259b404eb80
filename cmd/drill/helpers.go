package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/supplier-drilldown/internal/config"
	"github.com/Veraticus/supplier-drilldown/internal/filter"
	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/source"
	"github.com/Veraticus/supplier-drilldown/internal/view"
)

// loadConfig decodes the merged file, environment and flag settings.
func loadConfig() (*config.Config, error) {
	return config.Load(viper.GetViper())
}

// loadDashboard reads the configured source and builds every view over it.
func loadDashboard(ctx context.Context, cfg *config.Config) (*view.Dashboard, error) {
	src, closer, err := cfg.OpenSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s source: %w", cfg.Source, err)
	}
	defer func() {
		if err := closer.Close(); err != nil {
			slog.Warn("Failed to close source", "error", err)
		}
	}()

	snap, err := source.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return view.NewDashboard(cfg.Views, view.NewDataset(snap.Records, snap.Categories, snap.Performance))
}

// addQueryFlags registers the facet, date and output flags shared by the
// view commands.
func addQueryFlags(cmd *cobra.Command) {
	cmd.Flags().StringSlice("category", nil, "filter by vendor category code (repeatable, comma-separated)")
	cmd.Flags().StringSlice("location", nil, "filter by supplier location (repeatable, comma-separated)")
	cmd.Flags().StringSlice("supplier", nil, "filter by supplier name (repeatable, comma-separated)")
	cmd.Flags().String("from", "", "start of the date range (YYYY-MM-DD)")
	cmd.Flags().String("to", "", "end of the date range (YYYY-MM-DD)")
	cmd.Flags().String("as-of", "", "reference date for trend views (YYYY-MM-DD, default today)")
	cmd.Flags().Bool("json", false, "print JSON instead of a table")
}

// queryFromFlags returns the criteria and trend date selected on cmd.
func queryFromFlags(cmd *cobra.Command, cfg *config.Config) (model.FilterCriteria, time.Time, error) {
	categories, _ := cmd.Flags().GetStringSlice("category")
	locations, _ := cmd.Flags().GetStringSlice("location")
	suppliers, _ := cmd.Flags().GetStringSlice("supplier")
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	criteria, err := filter.ParseCriteria(categories, locations, suppliers, from, to)
	if err != nil {
		return model.FilterCriteria{}, time.Time{}, err
	}

	asOf, err := cfg.AsOf(time.Now())
	if err != nil {
		return model.FilterCriteria{}, time.Time{}, err
	}
	if raw, _ := cmd.Flags().GetString("as-of"); raw != "" {
		t, ok := filter.ParseDate(raw)
		if !ok {
			return model.FilterCriteria{}, time.Time{}, fmt.Errorf("invalid --as-of date %q", raw)
		}
		asOf = t
	}
	return criteria, asOf, nil
}

func wantJSON(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
