// Package backup keeps rotating JSON snapshots of the credential table next to
// the store's config directory, independent of which backend holds it.
package backup

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/models"
)

const (
	// MaxBackups is the maximum number of snapshots to keep
	MaxBackups = 14
	// DirName is the name of the backup directory
	DirName = "backups"
	// FilePrefix is the prefix for backup files
	FilePrefix = "tasklit-users-"
	// FileSuffix is the suffix for backup files
	FileSuffix = ".json"

	timestampFormat = "20060102-150405"
)

var ErrNotFound = errors.New("backup file does not exist")

// Backend is the part of storage.Provider a snapshot needs.
type Backend interface {
	LoadCredentials() (models.Credentials, error)
	SaveCredentials(models.Credentials) error
}

type Info struct {
	Path      string
	Timestamp time.Time
	Size      int64
}

type Manager struct {
	backend Backend
	dir     string
	now     func() time.Time
}

func NewManager(backend Backend, configDir string) *Manager {
	return &Manager{
		backend: backend,
		dir:     filepath.Join(configDir, DirName),
		now:     time.Now,
	}
}

func (m *Manager) Dir() string {
	return m.dir
}

// Create writes a snapshot of the current credential table and prunes the
// oldest ones beyond MaxBackups.
func (m *Manager) Create() (string, error) {
	return m.create(false)
}

// create skips rotation for the safety snapshot taken during a restore.
func (m *Manager) create(skipRotation bool) (string, error) {
	creds, err := m.backend.LoadCredentials()
	if err != nil {
		return "", fmt.Errorf("failed to read credentials: %w", err)
	}
	blob, err := creds.Encode()
	if err != nil {
		return "", fmt.Errorf("failed to serialize credentials: %w", err)
	}

	if err := os.MkdirAll(m.dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}
	path, err := m.nextPath()
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, blob, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	logger.Info("Credential backup created", "path", path, "users", len(creds))

	if !skipRotation {
		if err := m.rotate(); err != nil {
			logger.Warn("Failed to rotate old backups", "error", err)
		}
	}
	return path, nil
}

func (m *Manager) nextPath() (string, error) {
	stamp := m.now().Format(timestampFormat)
	path := filepath.Join(m.dir, FilePrefix+stamp+FileSuffix)
	for counter := 1; ; counter++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, nil
		}
		if counter > 100 {
			return "", fmt.Errorf("failed to generate unique backup filename")
		}
		path = filepath.Join(m.dir, fmt.Sprintf("%s%s-%d%s", FilePrefix, stamp, counter, FileSuffix))
	}
}

// List returns snapshots newest first. Files that do not follow the naming
// scheme are ignored.
func (m *Manager) List() ([]Info, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Info{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	var backups []Info
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasPrefix(name, FilePrefix) || !strings.HasSuffix(name, FileSuffix) {
			continue
		}
		stamp := strings.TrimSuffix(strings.TrimPrefix(name, FilePrefix), FileSuffix)
		// drop a collision counter
		if len(stamp) > len(timestampFormat) {
			stamp = stamp[:len(timestampFormat)]
		}
		ts, err := time.ParseInLocation(timestampFormat, stamp, time.Local)
		if err != nil {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, Info{
			Path:      filepath.Join(m.dir, name),
			Timestamp: ts,
			Size:      info.Size(),
		})
	}

	sort.SliceStable(backups, func(i, j int) bool {
		if backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Path > backups[j].Path
		}
		return backups[i].Timestamp.After(backups[j].Timestamp)
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.List()
	if err != nil {
		return err
	}
	for i := MaxBackups; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// Restore replaces the credential table with the snapshot at path, after
// taking a snapshot of the current table. It returns the number of users
// restored.
func (m *Manager) Restore(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return 0, fmt.Errorf("failed to read backup: %w", err)
	}
	creds, err := models.DecodeCredentials(data)
	if err != nil {
		return 0, fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	current, err := m.create(true)
	if err != nil {
		return 0, fmt.Errorf("failed to back up current credentials before restore: %w", err)
	}
	logger.Info("Backed up current credentials before restore", "path", current)

	if err := m.backend.SaveCredentials(creds); err != nil {
		return 0, fmt.Errorf("failed to restore credentials: %w", err)
	}
	return len(creds), nil
}
