package storage

import "github.com/julianstephens/tasklit/internal/models"

// Provider persists the credential table as one blob under constants.StorageKey.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Credentials
	LoadCredentials() (models.Credentials, error)
	SaveCredentials(models.Credentials) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by the SQL backends.
type Migrator interface {
	Migrate() (int, error)
	SchemaStatus() (current, latest int, err error)
}
