package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/storage/postgres"
	"github.com/julianstephens/tasklit/internal/storage/sqlite"
)

var (
	// ErrWriteFailed is reported by test backends configured to reject writes.
	ErrWriteFailed = errors.New("storage write failed")

	// ErrAlreadyInitialized is returned by Init on file backends that refuse
	// to overwrite an existing store.
	ErrAlreadyInitialized = errors.New("storage already initialized")

	// ErrEmbeddedCredentials rejects PostgreSQL connection strings carrying a password.
	ErrEmbeddedCredentials = postgres.ErrEmbeddedCredentials
)

// Open picks a backend from the config value:
//
//	memory                    volatile MemoryStore
//	keyring                   OS keyring
//	postgres://... / DSN      PostgreSQL
//	*.db, *.sqlite            SQLite file
//	anything else             JSON file
func Open(config string) (Provider, error) {
	config = strings.TrimSpace(config)
	switch {
	case config == constants.MemoryBackend:
		return NewMemoryStore(), nil
	case config == constants.KeyringBackend:
		return NewKeyringStore(), nil
	case IsPostgres(config):
		if postgres.HasEmbeddedCredentials(config) {
			return nil, ErrEmbeddedCredentials
		}
		return postgres.New(config), nil
	}

	path, err := ExpandPath(config)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return sqlite.NewStore(path), nil
	default:
		return NewJSONStore(path), nil
	}
}

func IsPostgres(config string) bool {
	return strings.HasPrefix(config, constants.PostgresScheme) ||
		strings.HasPrefix(config, constants.PostgresSchemeV2) ||
		strings.Contains(config, "dbname=")
}

// ExpandPath resolves a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
	}
	return path, nil
}

// ConfigDir is where logs and the instance lock live for a given backend.
// Non-file backends use the default config directory.
func ConfigDir(p Provider) (string, error) {
	path := p.GetConfigPath()
	switch {
	case path == constants.MemoryBackend, path == constants.KeyringBackend, path == constants.PostgresBackend:
		def, err := ExpandPath(constants.DefaultConfigPath)
		if err != nil {
			return "", err
		}
		return filepath.Dir(def), nil
	default:
		return filepath.Dir(path), nil
	}
}
