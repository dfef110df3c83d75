package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/migration"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/migrations"
)

type Store struct {
	path string
	db   *sql.DB
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if s.db == nil {
		db, err := sql.Open("sqlite", s.path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		s.db = db
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Load opens an existing database. A missing file wraps os.ErrNotExist so
// callers can fall back to Init.
func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'tasklit init' first: %w", os.ErrNotExist)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return nil, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	return migration.NewRunner(s.db, subFS), nil
}

func (s *Store) runMigrations() error {
	r, err := s.runner()
	if err != nil {
		return err
	}
	_, err = r.Apply()
	return err
}

func (s *Store) validateSchemaVersion() error {
	r, err := s.runner()
	if err != nil {
		return err
	}
	return r.ValidateVersion()
}

func (s *Store) LoadCredentials() (models.Credentials, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", constants.StorageKey).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Credentials{}, nil
		}
		return nil, fmt.Errorf("failed to read credentials: %w", err)
	}
	return models.DecodeCredentials([]byte(value))
}

func (s *Store) SaveCredentials(creds models.Credentials) error {
	if s.db == nil {
		return fmt.Errorf("storage not loaded")
	}

	blob, err := creds.Encode()
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		constants.StorageKey, string(blob), now,
	)
	return err
}

func (s *Store) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Init/Load.
func (s *Store) GetDB() *sql.DB {
	return s.db
}

// Migrate applies pending schema migrations and returns how many ran.
func (s *Store) Migrate() (int, error) {
	if s.db == nil {
		return 0, fmt.Errorf("storage not loaded")
	}
	r, err := s.runner()
	if err != nil {
		return 0, err
	}
	return r.Apply()
}

// SchemaStatus reports the applied and newest available schema versions.
func (s *Store) SchemaStatus() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, fmt.Errorf("storage not loaded")
	}
	r, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	return r.Status()
}
