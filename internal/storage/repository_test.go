package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestRepository(t *testing.T) (*SQLiteRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "cablebill.db")
	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo, path
}

func TestSQLiteRepositoryLoadSave(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if _, ok, err := repo.Load(ctx, "customers"); ok || err != nil {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	if err := repo.Save(ctx, "customers", []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Save(ctx, "customers", []byte(`[{"id":"CUST000001"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if err := repo.Save(ctx, "nextCustomerId", []byte(`2`)); err != nil {
		t.Fatalf("save counter: %v", err)
	}

	got, ok, err := repo.Load(ctx, "customers")
	if err != nil || !ok || string(got) != `[{"id":"CUST000001"}]` {
		t.Fatalf("Load = %q ok=%v err=%v", got, ok, err)
	}

	keys, err := repo.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys: %v", err)
	}
	if len(keys) != 2 || keys[0] != "customers" || keys[1] != "nextCustomerId" {
		t.Fatalf("Keys = %v", keys)
	}
}

func TestSQLiteRepositoryPersistsAcrossReopen(t *testing.T) {
	repo, path := newTestRepository(t)
	ctx := context.Background()
	if err := repo.Save(ctx, "invoices", []byte(`[{"id":"INV000001"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, ok, err := reopened.Load(ctx, "invoices")
	if err != nil || !ok || string(got) != `[{"id":"INV000001"}]` {
		t.Fatalf("Load after reopen = %q ok=%v err=%v", got, ok, err)
	}
}

func TestSchemaVersion(t *testing.T) {
	_, path := newTestRepository(t)
	v, err := SchemaVersion(path)
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != 2 {
		t.Errorf("SchemaVersion() = %d, want 2", v)
	}
}

func TestRecordImport(t *testing.T) {
	repo, _ := newTestRepository(t)
	repo.now = func() time.Time { return time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	if err := repo.RecordImport(ctx, "run-1", "old.json", ImportCounts{Customers: 3, Payments: 5}); err != nil {
		t.Fatalf("RecordImport: %v", err)
	}
	if err := repo.RecordImport(ctx, "run-2", "new.json", ImportCounts{Invoices: 1}); err != nil {
		t.Fatalf("RecordImport: %v", err)
	}

	entries, err := repo.RecentImports(ctx, 10)
	if err != nil {
		t.Fatalf("RecentImports: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("len(entries) = %d, want 2", len(entries))
	}
	if entries[0].RunID != "run-2" || entries[0].Invoices != 1 {
		t.Errorf("newest entry = %+v", entries[0])
	}
	if entries[1].Source != "old.json" || entries[1].Customers != 3 || entries[1].Payments != 5 {
		t.Errorf("oldest entry = %+v", entries[1])
	}
}

func TestSQLiteRepositoryDocumentCache(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	if err := repo.Save(ctx, "invoices", []byte(`[]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := repo.db.ExecContext(ctx, `UPDATE documents SET value = '[{}]' WHERE key = 'invoices'`); err != nil {
		t.Fatalf("direct update: %v", err)
	}

	got, _, _ := repo.Load(ctx, "invoices")
	if string(got) != `[]` {
		t.Errorf("Load() = %s, want cached []", got)
	}
	got[0] = 'x'
	if again, _, _ := repo.Load(ctx, "invoices"); string(again) != `[]` {
		t.Errorf("cached document mutated through a returned slice: %s", again)
	}

	repo.docs.Purge()
	if got, _, _ := repo.Load(ctx, "invoices"); string(got) != `[{}]` {
		t.Errorf("Load() after purge = %s, want [{}]", got)
	}
}
