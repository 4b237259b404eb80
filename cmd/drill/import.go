package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/supplier-drilldown/internal/cli"
	"github.com/Veraticus/supplier-drilldown/internal/config"
	"github.com/Veraticus/supplier-drilldown/internal/source"
	"github.com/Veraticus/supplier-drilldown/internal/storage"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import the JSON inputs into the SQLite snapshot",
		Long: `Read the records, category and performance JSON files and replace the
stored snapshot with them in one transaction. Later commands read the
snapshot when source is set to sqlite.`,
		RunE: runImport,
	}

	cmd.Flags().String("records", "", "records file (default: data.records)")
	cmd.Flags().String("categories", "", "categories file (default: data.categories)")
	cmd.Flags().String("performance", "", "performance file (default: data.performance)")
	cmd.Flags().String("db", "", "snapshot database (default: database.path)")

	return cmd
}

func runImport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src := cfg.JSONSource()
	if v, _ := cmd.Flags().GetString("records"); v != "" {
		src.RecordsPath = config.ExpandPath(v)
	}
	if v, _ := cmd.Flags().GetString("categories"); v != "" {
		src.CategoriesPath = config.ExpandPath(v)
	}
	if v, _ := cmd.Flags().GetString("performance"); v != "" {
		src.PerformancePath = config.ExpandPath(v)
	}
	dbPath := cfg.DatabasePath()
	if v, _ := cmd.Flags().GetString("db"); v != "" {
		dbPath = config.ExpandPath(v)
	}

	handler := cli.NewInterruptHandler(os.Stderr, "Import", "The previous snapshot is unchanged.")
	ctx := handler.HandleInterrupts(cmd.Context())
	defer handler.Stop()

	slog.Info(cli.FormatTitle("Importing supplier assessment data"))

	snap, err := source.Load(ctx, src)
	if err != nil {
		return err
	}

	store, err := storage.Open(ctx, dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	total := len(snap.Records) + len(snap.Categories) + len(snap.Performance)
	bar := cli.NewProgressBar(os.Stderr, total, "Writing snapshot...")

	summary, err := store.Import(ctx, snap, src.RecordsPath, cli.ImportProgress(bar))
	if err != nil {
		if handler.WasInterrupted() {
			return nil
		}
		return fmt.Errorf("import failed: %w", err)
	}

	slog.Info(cli.FormatSuccess(fmt.Sprintf("Imported %d records, %d categories and %d performance rows",
		summary.Records, summary.Categories, summary.Performance)),
		"database", store.Path(),
		"import", summary.ID)
	return nil
}
