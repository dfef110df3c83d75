package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/models"
)

// JSONStore keeps a key-value document on disk, mirroring browser local
// storage: {"registeredUsers": {"alice": "..."}}.
type JSONStore struct {
	path string
	doc  map[string]json.RawMessage
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("%w at %s", ErrAlreadyInitialized, s.path)
	}

	s.doc = map[string]json.RawMessage{
		constants.StorageKey: json.RawMessage("{}"),
	}
	return s.save()
}

// Load reads the document. A missing file is an empty document, the same as
// an unset local storage key.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.doc = map[string]json.RawMessage{}
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := map[string]json.RawMessage{}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse storage: %w", err)
		}
	}
	if doc == nil {
		doc = map[string]json.RawMessage{}
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) LoadCredentials() (models.Credentials, error) {
	if s.doc == nil {
		return nil, fmt.Errorf("storage not loaded")
	}
	return models.DecodeCredentials(s.doc[constants.StorageKey])
}

func (s *JSONStore) SaveCredentials(creds models.Credentials) error {
	if s.doc == nil {
		return fmt.Errorf("storage not loaded")
	}
	blob, err := creds.Encode()
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}
	s.doc[constants.StorageKey] = blob
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
