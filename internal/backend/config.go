package backend

import (
	"errors"

	"cablebill/internal/config"
)

// Config says which document store to open and where its data lives.
type Config struct {
	Kind Kind

	SQLiteDBPath string
	SeedFile     string // localStorage dump loaded into the memory backend
}

// FromAppConfig picks the backend fields out of the application config.
func FromAppConfig(app *config.Config) (Config, error) {
	if app == nil {
		return Config{}, errors.New("backend: nil app config")
	}
	kind, err := ParseKind(app.DataBackend)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Kind:         kind,
		SQLiteDBPath: app.SQLiteDBPath,
		SeedFile:     app.SeedFile,
	}, nil
}

func (c Config) Validate() error {
	if !c.Kind.IsValid() {
		return ErrUnknownBackend
	}
	if c.Kind == SQLiteBackend && c.SQLiteDBPath == "" {
		return errors.New("backend: sqlite needs a database path")
	}
	return nil
}

// KindNames returns the accepted DATA_BACKEND values.
func KindNames() []string {
	names := make([]string, len(Kinds))
	for i, k := range Kinds {
		names[i] = k.String()
	}
	return names
}
