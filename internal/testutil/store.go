package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/supplier-drilldown/internal/source"
	"github.com/Veraticus/supplier-drilldown/internal/storage"
)

// SetupTestStore creates a migrated in-memory store holding snap. A nil
// snap leaves the store without an import.
func SetupTestStore(t *testing.T, snap *source.Snapshot) *storage.SQLiteStore {
	t.Helper()

	ctx := context.Background()
	store, err := storage.Open(ctx, storage.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})

	if snap != nil {
		if _, err := store.Import(ctx, snap, "test", nil); err != nil {
			t.Fatalf("failed to seed test store: %v", err)
		}
	}
	return store
}
