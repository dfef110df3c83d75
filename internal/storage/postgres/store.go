package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	pq "github.com/lib/pq"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/migration"
	"github.com/julianstephens/tasklit/internal/models"
	"github.com/julianstephens/tasklit/migrations"
)

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

type Store struct {
	connStr string
	db      *sql.DB
}

func New(connStr string) *Store {
	return &Store{
		connStr: withSearchPath(connStr),
	}
}

// withSearchPath pins the session to the tasklit schema unless the caller
// already chose one.
func withSearchPath(connStr string) string {
	if strings.HasPrefix(connStr, constants.PostgresScheme) || strings.HasPrefix(connStr, constants.PostgresSchemeV2) {
		u, err := url.Parse(connStr)
		if err != nil {
			logger.Warn("Failed to parse Postgres connection string", "error", err)
			return connStr
		}
		q := u.Query()
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
		}
		return u.String()
	}
	if _, ok := dsnValue(connStr, "search_path"); ok {
		return connStr
	}
	return strings.TrimSpace(connStr) + " search_path=" + constants.AppName
}

// dsnValue looks up a key in a space-separated key=value DSN, case-insensitively.
func dsnValue(connStr, key string) (string, bool) {
	for _, part := range strings.Fields(connStr) {
		k, v, ok := strings.Cut(part, "=")
		if ok && strings.EqualFold(strings.TrimSpace(k), key) {
			return v, true
		}
	}
	return "", false
}

// HasEmbeddedCredentials reports whether connStr carries a password, in URL
// or DSN form. Passwords belong in PGPASSWORD or .pgpass.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, constants.PostgresScheme) || strings.HasPrefix(connStr, constants.PostgresSchemeV2) {
		u, err := url.Parse(connStr)
		if err != nil || u.User == nil {
			return false
		}
		_, isSet := u.User.Password()
		return isSet
	}
	_, ok := dsnValue(connStr, "password")
	return ok
}

// ValidateConnString checks the connection string parses and has no password.
func ValidateConnString(connStr string) error {
	if strings.TrimSpace(connStr) == "" {
		return fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}
	if _, err := pq.NewConnector(connStr); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConnectionString, err)
	}
	if HasEmbeddedCredentials(connStr) {
		return ErrEmbeddedCredentials
	}
	return nil
}

func (s *Store) open() error {
	if err := ValidateConnString(s.connStr); err != nil {
		return err
	}
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.db = db
	return nil
}

func (s *Store) Init() error {
	if s.db == nil {
		if err := s.open(); err != nil {
			return err
		}
	}
	if _, err := s.db.Exec("CREATE SCHEMA IF NOT EXISTS " + pq.QuoteIdentifier(constants.AppName)); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	r, err := s.runner()
	if err != nil {
		return err
	}
	if _, err := r.Apply(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}
	r, err := s.runner()
	if err != nil {
		return err
	}
	return r.ValidateVersion()
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
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewPostgresRunner(s.db, subFS), nil
}

func (s *Store) LoadCredentials() (models.Credentials, error) {
	if s.db == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	var value string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = $1", constants.StorageKey).Scan(&value)
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
	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		constants.StorageKey, string(blob),
	)
	return err
}

// GetConfigPath returns a non-sensitive identifier instead of the connection string.
func (s *Store) GetConfigPath() string {
	return constants.PostgresBackend
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
