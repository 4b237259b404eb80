package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/supplier-drilldown/internal/cli"
	"github.com/Veraticus/supplier-drilldown/internal/filter"
)

func viewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "views",
		Short: "List the configured dashboard views",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), cfg.Views)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderViews(cfg.Views))
			return err
		},
	}
	cmd.Flags().Bool("json", false, "print JSON instead of a table")
	return cmd
}

func showCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <view>",
		Short: "Compute one view",
		Long: `Compute one dashboard view under the given filters and print its series.

Examples:
  drill show audits --location Dhaka
  drill show open-non-compliance --as-of 2024-03-20
  drill show msi-rating --category 1,2 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			criteria, asOf, err := queryFromFlags(cmd, cfg)
			if err != nil {
				return err
			}
			dash, err := loadDashboard(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			res, err := dash.Compute(args[0], criteria, asOf)
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), res)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), cli.RenderResult(res))
			return err
		},
	}
	addQueryFlags(cmd)
	return cmd
}

func drilldownCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "drilldown <view> <label>",
		Short: "List the records behind one chart value",
		Long: `List the records behind one label of a view. Bucket views take a bucket
label, score and performance views a metric label, MSI views a
"rating/status" cell and trend views a month such as "2024-03" or "Mar 24".`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			criteria, asOf, err := queryFromFlags(cmd, cfg)
			if err != nil {
				return err
			}
			dash, err := loadDashboard(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			res, err := dash.Compute(args[0], criteria, asOf)
			if err != nil {
				return err
			}
			d, err := res.SelectDrilldown(args[1])
			if err != nil {
				return fmt.Errorf("%w (labels: %v)", err, res.Labels())
			}
			if wantJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), cli.RenderDrilldown(d, dash.Dataset().Categories))
			return err
		},
	}
	addQueryFlags(cmd)
	return cmd
}

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Compute every view",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			criteria, asOf, err := queryFromFlags(cmd, cfg)
			if err != nil {
				return err
			}
			dash, err := loadDashboard(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			results, err := dash.ComputeAll(cmd.Context(), criteria, asOf)
			if err != nil {
				return err
			}
			if wantJSON(cmd) {
				return writeJSON(cmd.OutOrStdout(), results)
			}
			for _, res := range results {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), cli.RenderResult(res)); err != nil {
					return err
				}
			}
			return nil
		},
	}
	addQueryFlags(cmd)
	return cmd
}

func facetsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "facets",
		Short: "Print the category, location and supplier values present in the data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dash, err := loadDashboard(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			data := dash.Dataset()
			opts := filter.FacetOptions(data.Records, filter.DefaultFieldPaths())
			for i, code := range opts.Categories {
				opts.Categories[i] = code + " (" + data.Categories.Name(code) + ")"
			}
			return writeJSON(cmd.OutOrStdout(), opts)
		},
	}
}
