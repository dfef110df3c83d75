package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/tasklit/internal/models"
)

func newTestStore(t *testing.T) *Store {
	s := NewStore(filepath.Join(t.TempDir(), "nested", "tasklit.db"))
	if err := s.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestInitCreatesSchema(t *testing.T) {
	s := newTestStore(t)

	var count int
	row := s.GetDB().QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name = 'kv'")
	if err := row.Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Error("kv table was not created")
	}

	// Init is safe to repeat
	if err := s.Init(); err != nil {
		t.Errorf("second Init() failed: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.db"))
	err := s.Load()
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}

func TestCredentialsRoundTrip(t *testing.T) {
	s := newTestStore(t)

	creds, err := s.LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials() on fresh db failed: %v", err)
	}
	if len(creds) != 0 {
		t.Errorf("fresh db has %d credentials, want 0", len(creds))
	}

	if err := s.SaveCredentials(models.Credentials{"bob": "pw1"}); err != nil {
		t.Fatalf("SaveCredentials() failed: %v", err)
	}
	if err := s.SaveCredentials(models.Credentials{"bob": "pw2", "alice": "x"}); err != nil {
		t.Fatalf("second SaveCredentials() failed: %v", err)
	}

	path := s.GetConfigPath()
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	reopened := NewStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.LoadCredentials()
	if err != nil {
		t.Fatalf("LoadCredentials() failed: %v", err)
	}
	if len(got) != 2 || got["bob"] != "pw2" || got["alice"] != "x" {
		t.Errorf("LoadCredentials() = %v", got)
	}
}

func TestNotLoaded(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "x.db"))
	if _, err := s.LoadCredentials(); err == nil {
		t.Error("LoadCredentials() before Init should fail")
	}
	if err := s.SaveCredentials(models.Credentials{}); err == nil {
		t.Error("SaveCredentials() before Init should fail")
	}
}

func TestSchemaStatusAndMigrate(t *testing.T) {
	s := newTestStore(t)

	current, latest, err := s.SchemaStatus()
	if err != nil {
		t.Fatalf("SchemaStatus() failed: %v", err)
	}
	if current != latest || latest == 0 {
		t.Errorf("SchemaStatus() = (%d, %d), want up to date", current, latest)
	}

	applied, err := s.Migrate()
	if err != nil {
		t.Fatalf("Migrate() failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("Migrate() on a current database = %d, want 0", applied)
	}

	unloaded := NewStore(filepath.Join(t.TempDir(), "x.db"))
	if _, err := unloaded.Migrate(); err == nil {
		t.Error("Migrate() before Load should fail")
	}
}
