// Package cli provides the initialization steps shared by every cablebill
// command: env loading, config, logging, backend and service wiring.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"cablebill/internal/backend"
	"cablebill/internal/config"
	applog "cablebill/internal/log"
	"cablebill/internal/services"
	"cablebill/internal/storage"
	"cablebill/internal/storage/memory"
	"cablebill/internal/store"
)

// NewRunID returns a fresh correlation id for one command invocation.
func NewRunID() string {
	return uuid.NewString()
}

// SetupLogger builds the application logger from cfg, tags it with runID
// and makes it the slog default.
func SetupLogger(cfg *config.Config, out io.Writer, runID string) (*applog.Logger, error) {
	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := applog.New(applog.Config{
		Level:     level,
		Format:    cfg.LogFormat,
		Component: applog.ComponentCLI,
		Output:    out,
	}).With(applog.FieldRunID, runID)
	applog.SetDefault(logger)
	return logger, nil
}

// LoadEnvFile loads .env files for local development. Missing files are
// skipped; a malformed file is an error.
func LoadEnvFile(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load env file %s: %w", p, err)
		}
	}
	return nil
}

// LoadAndValidateConfig loads configuration from the environment and
// validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// OpenBackend creates the configured key-value backend.
func OpenBackend(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*backend.Opened, error) {
	bcfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		return nil, err
	}
	opener := backend.NewOpener(logger.WithComponent(applog.ComponentBackend).Logger)
	return opener.Open(ctx, bcfg)
}

// App is an opened backend with its loaded store and billing service.
type App struct {
	Backend *backend.Opened
	Service *services.BillingService
	Logger  *applog.Logger
}

// Close releases the backend.
func (a *App) Close() error {
	return a.Backend.Close()
}

// OpenApp opens the backend, loads every collection and builds the service.
func OpenApp(ctx context.Context, cfg *config.Config, logger *applog.Logger) (*App, error) {
	res, err := OpenBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	st, err := store.Load(ctx, res.Backend)
	if err != nil {
		res.Close()
		return nil, fmt.Errorf("load store: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		res.Close()
		return nil, err
	}

	logger.DebugContext(ctx, "Store loaded",
		"customers", len(st.Customers),
		"payments", len(st.Payments),
		"expenses", len(st.Expenses),
		"invoices", len(st.Invoices))

	return &App{
		Backend: res,
		Service: services.NewBillingService(st, services.WithLocation(loc), services.WithLogger(logger)),
		Logger:  logger,
	}, nil
}

// ImportRecorder is implemented by backends that keep an import log.
type ImportRecorder interface {
	RecordImport(ctx context.Context, runID, source string, n storage.ImportCounts) error
}

// ImportDump copies a browser localStorage dump into dst. Nothing is written
// when the dump is malformed.
func ImportDump(ctx context.Context, dst store.KV, path, runID string, logger *applog.Logger) (*store.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open dump: %w", err)
	}
	src, err := memory.NewFromFile(path)
	if err != nil {
		return nil, err
	}
	s, err := store.Import(ctx, dst, src)
	if err != nil {
		return nil, fmt.Errorf("import %s: %w", path, err)
	}

	counts := storage.ImportCounts{
		Customers: len(s.Customers),
		Payments:  len(s.Payments),
		Expenses:  len(s.Expenses),
		Invoices:  len(s.Invoices),
	}
	if rec, ok := dst.(ImportRecorder); ok {
		if err := rec.RecordImport(ctx, runID, path, counts); err != nil {
			logger.WarnContext(ctx, "Failed to record import", "error", err)
		}
	}

	logger.WithComponent(applog.ComponentImport).InfoContext(ctx, "Dump imported",
		"source", path,
		"customers", counts.Customers,
		"payments", counts.Payments,
		"expenses", counts.Expenses,
		"invoices", counts.Invoices)
	return s, nil
}

// SignalContext returns a context cancelled on SIGINT or SIGTERM.
func SignalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
