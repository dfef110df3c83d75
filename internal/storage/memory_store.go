package storage

import (
	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/models"
)

// MemoryStore is a volatile Provider; everything is lost on exit.
type MemoryStore struct {
	blob []byte
	// FailWrites makes SaveCredentials return ErrWriteFailed, to exercise
	// callers that ignore persistence failures.
	FailWrites bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init() error  { return nil }
func (s *MemoryStore) Load() error  { return nil }
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) LoadCredentials() (models.Credentials, error) {
	return models.DecodeCredentials(s.blob)
}

func (s *MemoryStore) SaveCredentials(creds models.Credentials) error {
	if s.FailWrites {
		return ErrWriteFailed
	}
	blob, err := creds.Encode()
	if err != nil {
		return err
	}
	s.blob = blob
	return nil
}

func (s *MemoryStore) GetConfigPath() string {
	return constants.MemoryBackend
}
