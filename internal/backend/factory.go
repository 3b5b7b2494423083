package backend

import (
	"context"
	"fmt"
	"log/slog"

	"cablebill/internal/storage"
	"cablebill/internal/storage/memory"
)

// DefaultOpener opens the SQLite and memory backends.
type DefaultOpener struct {
	logger *slog.Logger
}

func NewOpener(logger *slog.Logger) *DefaultOpener {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultOpener{logger: logger}
}

var _ Opener = (*DefaultOpener)(nil)

func (o *DefaultOpener) Open(ctx context.Context, cfg Config) (*Opened, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case SQLiteBackend:
		return o.openSQLite(ctx, cfg)
	default:
		return o.openMemory(ctx, cfg)
	}
}

func (o *DefaultOpener) openSQLite(ctx context.Context, cfg Config) (*Opened, error) {
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite backend: %w", err)
	}
	version, err := storage.SchemaVersion(cfg.SQLiteDBPath)
	if err != nil {
		repo.Close()
		return nil, fmt.Errorf("read schema version: %w", err)
	}

	o.logger.InfoContext(ctx, "Opened SQLite backend",
		"db_path", cfg.SQLiteDBPath,
		"schema_version", version)
	return &Opened{Kind: SQLiteBackend, Backend: repo, Cleanup: repo.Close}, nil
}

func (o *DefaultOpener) openMemory(ctx context.Context, cfg Config) (*Opened, error) {
	s, err := memory.NewFromFile(cfg.SeedFile)
	if err != nil {
		return nil, fmt.Errorf("open memory backend: %w", err)
	}

	o.logger.WarnContext(ctx, "Using memory backend, changes are lost on exit",
		"seed_file", cfg.SeedFile,
		"documents", s.Len())
	return &Opened{Kind: MemoryBackend, Backend: s}, nil
}
