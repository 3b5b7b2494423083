package backend

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"cablebill/internal/config"
	"cablebill/internal/storage"
	"cablebill/internal/storage/memory"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"sqlite", SQLiteBackend, false},
		{" Memory ", MemoryBackend, false},
		{"postgres", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKind(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseKind(%q) error = %v", tt.in, err)
			}
			if err != nil && !errors.Is(err, ErrUnknownBackend) {
				t.Errorf("error %v does not wrap ErrUnknownBackend", err)
			}
			if got != tt.want {
				t.Errorf("ParseKind(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
	if !SQLiteBackend.Persistent() || MemoryBackend.Persistent() {
		t.Error("only sqlite should be persistent")
	}
}

func TestFromAppConfig(t *testing.T) {
	tests := []struct {
		name    string
		app     *config.Config
		want    Kind
		wantErr bool
	}{
		{"nil config", nil, "", true},
		{"sqlite", &config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db"}, SQLiteBackend, false},
		{"memory", &config.Config{DataBackend: "memory", SeedFile: "dump.json"}, MemoryBackend, false},
		{"unknown backend", &config.Config{DataBackend: "postgres"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromAppConfig(tt.app)
			if (err != nil) != tt.wantErr {
				t.Fatalf("FromAppConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got.Kind != tt.want {
				t.Errorf("FromAppConfig() Kind = %v, want %v", got.Kind, tt.want)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Kind: SQLiteBackend}).Validate(); err == nil {
		t.Error("Validate() should require a sqlite path")
	}
	if err := (Config{Kind: MemoryBackend}).Validate(); err != nil {
		t.Errorf("Validate() memory error = %v", err)
	}
	if err := (Config{Kind: "postgres"}).Validate(); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Validate() unknown kind error = %v", err)
	}
}

func TestKindNames(t *testing.T) {
	got := KindNames()
	if len(got) != 2 || got[0] != "sqlite" || got[1] != "memory" {
		t.Errorf("KindNames() = %v", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	o := NewOpener(discardLogger())

	t.Run("memory", func(t *testing.T) {
		res, err := o.Open(ctx, Config{Kind: MemoryBackend})
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		if _, ok := res.Backend.(*memory.Store); !ok || res.Kind != MemoryBackend {
			t.Errorf("Backend = %T (%s), want *memory.Store", res.Backend, res.Kind)
		}
		if err := res.Close(); err != nil {
			t.Errorf("Close() error = %v", err)
		}
	})

	t.Run("sqlite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "cablebill.db")
		res, err := o.Open(ctx, Config{Kind: SQLiteBackend, SQLiteDBPath: path})
		if err != nil {
			t.Fatalf("Open() error = %v", err)
		}
		defer res.Close()
		if _, ok := res.Backend.(*storage.SQLiteRepository); !ok {
			t.Errorf("Backend = %T, want *storage.SQLiteRepository", res.Backend)
		}
		if err := res.Backend.Save(ctx, "payments", []byte(`[]`)); err != nil {
			t.Errorf("Save() error = %v", err)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := o.Open(ctx, Config{Kind: "postgres"}); err == nil {
			t.Error("Open() should fail for unknown kind")
		}
	})
}

func TestNilOpenedClose(t *testing.T) {
	var o *Opened
	if err := o.Close(); err != nil {
		t.Errorf("Close() on nil = %v", err)
	}
}
