package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/source"
)

var _ source.Source = (*SQLiteStore)(nil)

// ProgressFunc is told how many rows were written since its last call.
type ProgressFunc func(rows int)

// ImportSummary describes one stored import.
type ImportSummary struct {
	ImportedAt  time.Time `json:"imported_at"`
	Origin      string    `json:"origin"`
	ID          int64     `json:"id"`
	Records     int       `json:"records"`
	Categories  int       `json:"categories"`
	Performance int       `json:"performance"`
}

// Import replaces the stored snapshot with snap in one transaction. origin
// names where the data came from.
func (s *SQLiteStore) Import(ctx context.Context, snap *source.Snapshot, origin string, progress ProgressFunc) (*ImportSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	if err := validateSnapshot(snap); err != nil {
		return nil, err
	}
	if progress == nil {
		progress = func(int) {}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, table := range []string{"assessment_records", "performance", "categories"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil { //nolint:gosec // fixed table names
			return nil, fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := insertRecords(ctx, tx, snap.Records, progress); err != nil {
		return nil, err
	}
	if err := insertPerformance(ctx, tx, snap.Performance, progress); err != nil {
		return nil, err
	}
	if err := insertCategories(ctx, tx, snap.Categories, progress); err != nil {
		return nil, err
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO imports (origin, records, categories, performance)
		VALUES (?, ?, ?, ?)
	`, origin, len(snap.Records), len(snap.Categories), len(snap.Performance))
	if err != nil {
		return nil, fmt.Errorf("failed to record import: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to read import id: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit import: %w", err)
	}

	slog.Info("Imported snapshot",
		"origin", origin,
		"records", len(snap.Records),
		"categories", len(snap.Categories),
		"performance", len(snap.Performance))

	return s.importByID(ctx, id)
}

func insertRecords(ctx context.Context, tx *sql.Tx, records []model.AssessmentRecord, progress ProgressFunc) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO assessment_records (position, record_id, vendor_code, body)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, r := range records {
		body, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to encode record %d: %w", i, err)
		}
		code, _ := r.VendorKey()
		if _, err := stmt.ExecContext(ctx, i, nullString(r.ID), nullString(code), string(body)); err != nil {
			return fmt.Errorf("failed to insert record %d: %w", i, err)
		}
		progress(1)
	}
	return nil
}

func insertPerformance(ctx context.Context, tx *sql.Tx, rows []model.PerformanceRecord, progress ProgressFunc) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO performance (position, vendor_code, body)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, row := range rows {
		body, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("failed to encode performance row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, i, nullString(row.VendorCode), string(body)); err != nil {
			return fmt.Errorf("failed to insert performance row %d: %w", i, err)
		}
		progress(1)
	}
	return nil
}

func insertCategories(ctx context.Context, tx *sql.Tx, options []model.CategoryOption, progress ProgressFunc) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO categories (position, value, name)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, opt := range options {
		if _, err := stmt.ExecContext(ctx, i, opt.Value, opt.Name); err != nil {
			return fmt.Errorf("failed to insert category %d: %w", i, err)
		}
		progress(1)
	}
	return nil
}

// Records returns the imported records in their original order.
func (s *SQLiteStore) Records(ctx context.Context) ([]model.AssessmentRecord, error) {
	if err := s.ensureImported(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT body FROM assessment_records ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	records := make([]model.AssessmentRecord, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		var r model.AssessmentRecord
		if err := json.Unmarshal([]byte(body), &r); err != nil {
			return nil, fmt.Errorf("failed to decode stored record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Performance returns the imported performance rows in their original order.
func (s *SQLiteStore) Performance(ctx context.Context) ([]model.PerformanceRecord, error) {
	if err := s.ensureImported(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT body FROM performance ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query performance: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]model.PerformanceRecord, 0)
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("failed to scan performance row: %w", err)
		}
		var p model.PerformanceRecord
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			return nil, fmt.Errorf("failed to decode stored performance row: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Categories returns the imported category table in its original order.
func (s *SQLiteStore) Categories(ctx context.Context) ([]model.CategoryOption, error) {
	if err := s.ensureImported(ctx); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `SELECT value, name FROM categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]model.CategoryOption, 0)
	for rows.Next() {
		var opt model.CategoryOption
		if err := rows.Scan(&opt.Value, &opt.Name); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		out = append(out, opt)
	}
	return out, rows.Err()
}

// LastImport returns the most recent import.
func (s *SQLiteStore) LastImport(ctx context.Context) (*ImportSummary, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	var id int64
	err := s.db.QueryRowContext(ctx, `SELECT id FROM imports ORDER BY id DESC LIMIT 1`).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrEmptySnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}
	return s.importByID(ctx, id)
}

func (s *SQLiteStore) importByID(ctx context.Context, id int64) (*ImportSummary, error) {
	var sum ImportSummary
	err := s.db.QueryRowContext(ctx, `
		SELECT id, origin, records, categories, performance, imported_at
		FROM imports WHERE id = ?
	`, id).Scan(&sum.ID, &sum.Origin, &sum.Records, &sum.Categories, &sum.Performance, &sum.ImportedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("import %d: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read import %d: %w", id, err)
	}
	return &sum, nil
}

func (s *SQLiteStore) ensureImported(ctx context.Context) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM imports`).Scan(&n); err != nil {
		return fmt.Errorf("failed to count imports: %w", err)
	}
	if n == 0 {
		return common.ErrEmptySnapshot
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
