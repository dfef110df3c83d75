package storage

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/keyring"
	"github.com/julianstephens/tasklit/internal/models"
)

// KeyringStore keeps the credential blob in the OS keyring.
type KeyringStore struct{}

func NewKeyringStore() *KeyringStore {
	return &KeyringStore{}
}

func (s *KeyringStore) Init() error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if _, err := keyring.GetBlob(); err == nil {
		return nil
	} else if !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return keyring.SetBlob("{}")
}

func (s *KeyringStore) Load() error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func (s *KeyringStore) Close() error { return nil }

func (s *KeyringStore) LoadCredentials() (models.Credentials, error) {
	blob, err := keyring.GetBlob()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return models.Credentials{}, nil
		}
		return nil, err
	}
	creds, err := models.DecodeCredentials([]byte(blob))
	if err != nil {
		return nil, fmt.Errorf("failed to parse keyring credentials: %w", err)
	}
	return creds, nil
}

func (s *KeyringStore) SaveCredentials(creds models.Credentials) error {
	blob, err := creds.Encode()
	if err != nil {
		return fmt.Errorf("failed to serialize credentials: %w", err)
	}
	return keyring.SetBlob(string(blob))
}

func (s *KeyringStore) GetConfigPath() string {
	return constants.KeyringBackend
}
