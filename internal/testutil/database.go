package testutil

import (
	"context"
	"testing"

	"github.com/Veraticus/painel/internal/model"
	"github.com/Veraticus/painel/internal/storage"
)

// SetupJournal creates a migrated in-memory export journal, closed on test
// cleanup. Packages other than storage use it; storage's own tests cannot
// import testutil.
//
// Example:
//
//	journal := testutil.SetupJournal(t)
//	testutil.SeedExports(t, journal, "orcamento", "pagar")
func SetupJournal(t *testing.T) *storage.SQLiteStorage {
	t.Helper()

	journal, err := storage.NewSQLiteStorage(":memory:")
	if err != nil {
		t.Fatalf("failed to create test journal: %v", err)
	}
	t.Cleanup(func() {
		_ = journal.Close()
	})

	if err := journal.Migrate(context.Background()); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	return journal
}

// SeedExports records one export per page name.
func SeedExports(t *testing.T, journal *storage.SQLiteStorage, pages ...string) {
	t.Helper()
	for _, page := range pages {
		rec := &model.ExportRecord{
			Page:      page,
			FileName:  "resultado.xlsx",
			Path:      "/tmp/resultado.xlsx",
			Rows:      1,
			TotalRows: 1,
		}
		if err := journal.RecordExport(context.Background(), rec); err != nil {
			t.Fatalf("failed to seed export for %q: %v", page, err)
		}
	}
}
