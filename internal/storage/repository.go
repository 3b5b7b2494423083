package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"cablebill/internal/cache"
)

const (
	docCacheSize = 16
	docCacheTTL  = 30 * time.Second
)

// SQLiteRepository keeps each collection as one JSON document row.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	docs    *cache.LRUCache[[]byte]
	now     func() time.Time
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// One writer at a time; sqlite returns SQLITE_BUSY otherwise.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
		docs:    cache.NewLRUCache[[]byte](docCacheSize, docCacheTTL),
		now:     time.Now,
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements store.KV. Recently read or written documents are served
// from the document cache.
func (r *SQLiteRepository) Load(ctx context.Context, key string) ([]byte, bool, error) {
	if data, ok := r.docs.Get(key); ok {
		return append([]byte(nil), data...), true, nil
	}
	doc, err := r.queries.GetDocument(ctx, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get document %s: %w", key, err)
	}
	r.docs.Set(key, []byte(doc.Value))
	return []byte(doc.Value), true, nil
}

// Save implements store.KV
func (r *SQLiteRepository) Save(ctx context.Context, key string, data []byte) error {
	err := r.queries.UpsertDocument(ctx, UpsertDocumentParams{
		Key:       key,
		Value:     string(data),
		UpdatedAt: r.now().UTC(),
	})
	if err != nil {
		r.docs.Delete(key)
		return fmt.Errorf("upsert document %s: %w", key, err)
	}
	r.docs.Set(key, append([]byte(nil), data...))

	slog.DebugContext(ctx, "Document saved to SQLite", "key", key, "bytes", len(data))
	return nil
}

// Keys lists the stored document keys.
func (r *SQLiteRepository) Keys(ctx context.Context) ([]string, error) {
	keys, err := r.queries.ListDocumentKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("list document keys: %w", err)
	}
	return keys, nil
}

// ImportCounts is the number of records brought in by one import.
type ImportCounts struct {
	Customers, Payments, Expenses, Invoices int
}

// RecordImport appends an entry to the import log.
func (r *SQLiteRepository) RecordImport(ctx context.Context, runID, source string, n ImportCounts) error {
	entry, err := r.queries.CreateImportLog(ctx, CreateImportLogParams{
		RunID:      runID,
		Source:     source,
		Customers:  int64(n.Customers),
		Payments:   int64(n.Payments),
		Expenses:   int64(n.Expenses),
		Invoices:   int64(n.Invoices),
		ImportedAt: r.now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("create import log: %w", err)
	}

	slog.InfoContext(ctx, "Import recorded",
		"id", entry.ID,
		"run_id", entry.RunID,
		"source", entry.Source)
	return nil
}

// RecentImports returns the latest import log entries, newest first.
func (r *SQLiteRepository) RecentImports(ctx context.Context, limit int) ([]ImportLog, error) {
	entries, err := r.queries.ListImportLogs(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list import logs: %w", err)
	}
	return entries, nil
}
