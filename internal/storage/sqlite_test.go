package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/supplier-drilldown/internal/common"
	"github.com/Veraticus/supplier-drilldown/internal/model"
	"github.com/Veraticus/supplier-drilldown/internal/source"
)

func createTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := Open(context.Background(), MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func sampleSnapshot(t *testing.T) *source.Snapshot {
	t.Helper()
	records, err := model.DecodeRecords([]byte(`[
		{"id": "r1", "vendorCode": 1042, "vendor": {"supplierName": "Acme", "supplierCategory": 3},
		 "modified_on": "2024-01-15",
		 "supplierActions": [{"categoryOfFinding": 3, "nonComplianceType": 2, "note": "exit"}]},
		{"id": "r2", "auditorAssignmentSubmission": {"type": 1, "auditorMSIScore": 55.5}}
	]`))
	require.NoError(t, err)
	perf, err := model.DecodePerformance([]byte(`[
		{"vendor_code": 1042, "environment": 4, "msi_rating": "Gold", "status": "Completed"}
	]`))
	require.NoError(t, err)
	cats, err := model.DecodeCategories([]byte(`[{"value": 3, "name": "Textiles"}]`))
	require.NoError(t, err)
	return &source.Snapshot{Records: records, Performance: perf, Categories: cats}
}

func TestSQLiteStore_Migrate(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	version, err := store.SchemaVersion(ctx)
	require.NoError(t, err)
	assert.Equal(t, ExpectedSchemaVersion, version)

	// Migrating twice is a no-op.
	require.NoError(t, store.Migrate(ctx))
}

func TestSQLiteStore_RequiresImport(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	_, err := store.Records(ctx)
	assert.ErrorIs(t, err, common.ErrEmptySnapshot)
	_, err = store.LastImport(ctx)
	assert.ErrorIs(t, err, common.ErrEmptySnapshot)
}

func TestSQLiteStore_ImportRoundTrip(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()
	snap := sampleSnapshot(t)

	var written int
	summary, err := store.Import(ctx, snap, "fixtures", func(n int) { written += n })
	require.NoError(t, err)
	assert.Equal(t, 4, written)
	assert.Equal(t, "fixtures", summary.Origin)
	assert.Equal(t, 2, summary.Records)
	assert.Equal(t, 1, summary.Categories)
	assert.Equal(t, 1, summary.Performance)

	loaded, err := source.Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, snap.Records, loaded.Records)
	assert.Equal(t, snap.Performance, loaded.Performance)
	assert.Equal(t, snap.Categories, loaded.Categories)
}

func TestSQLiteStore_ImportReplaces(t *testing.T) {
	store := createTestStore(t)
	ctx := context.Background()

	_, err := store.Import(ctx, sampleSnapshot(t), "first", nil)
	require.NoError(t, err)

	second := &source.Snapshot{Records: []model.AssessmentRecord{{ID: "only"}}}
	_, err = store.Import(ctx, second, "second", nil)
	require.NoError(t, err)

	records, err := store.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "only", records[0].ID)

	perf, err := store.Performance(ctx)
	require.NoError(t, err)
	assert.Empty(t, perf)

	last, err := store.LastImport(ctx)
	require.NoError(t, err)
	assert.Equal(t, "second", last.Origin)
}

func TestSQLiteStore_Validation(t *testing.T) {
	_, err := NewSQLiteStore(" ")
	assert.ErrorIs(t, err, ErrEmptyString)

	store := createTestStore(t)
	_, err = store.Import(context.Background(), nil, "x", nil)
	assert.ErrorIs(t, err, ErrNilParameter)
}

func TestSQLiteStore_FileDatabase(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "drill.db")
	ctx := context.Background()

	store, err := Open(ctx, dbPath)
	require.NoError(t, err)
	_, err = store.Import(ctx, sampleSnapshot(t), "file", nil)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	reopened, err := Open(ctx, dbPath)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	records, err := reopened.Records(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, dbPath, reopened.Path())
}
