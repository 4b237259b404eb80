package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/supplier-drilldown/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		Long: `Load the data once and serve the views as JSON:

  GET /healthz
  GET /facets
  GET /views
  GET /views/{name}?category=&location=&supplier=&from=&to=&as_of=
  GET /views/{name}/drilldown/{label}
  GET /dashboard`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			dash, err := loadDashboard(cmd.Context(), cfg)
			if err != nil {
				return err
			}

			var asOf time.Time
			if cfg.Trend.AsOf != "" {
				if asOf, err = cfg.AsOf(time.Time{}); err != nil {
					return err
				}
			}
			return server.New(dash, asOf).ListenAndServe(cmd.Context(), cfg.Server.Addr)
		},
	}

	cmd.Flags().String("addr", "", "listen address (default: server.addr)")
	_ = viper.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))

	return cmd
}
