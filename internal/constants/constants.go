package constants

import "time"

const (
	AppName           = "tasklit"
	Version           = "v0.1.0"
	DefaultConfigPath = "~/.config/tasklit/tasklit.json"
	DefaultTimezone   = "Local"

	// StorageKey is the well-known key the credential table is persisted under,
	// regardless of backend.
	StorageKey = "registeredUsers"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// TodayTaskLimit caps the "due today" dashboard list
	TodayTaskLimit = 5

	// FilterAll disables a category or priority filter
	FilterAll = "all"

	// Backend selectors for --config
	MemoryBackend    = "memory"
	KeyringBackend   = "keyring"
	PostgresBackend  = "postgresql"
	PostgresScheme   = "postgres://"
	PostgresSchemeV2 = "postgresql://"

	// TUI timing
	NotificationDuration = 3 * time.Second
	ClockRefreshInterval = time.Minute

	// Instance lock
	LockfileName = "tasklit.lock"

	// Log rotation
	LogFileName   = "tasklit.log"
	LogMaxSizeMB  = 10
	LogMaxBackups = 3
	LogMaxAgeDays = 28
)
