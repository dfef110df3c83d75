package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/julianstephens/tasklit/internal/backup"
	"github.com/julianstephens/tasklit/internal/constants"
	"github.com/julianstephens/tasklit/internal/credentials"
	"github.com/julianstephens/tasklit/internal/lock"
	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/session"
	"github.com/julianstephens/tasklit/internal/storage"
	"github.com/julianstephens/tasklit/internal/tips"
)

type Context struct {
	Store      storage.Provider
	Location   *time.Location
	SampleData bool
	Tips       *tips.Picker
	// Now overrides the session clock. Nil means time.Now.
	Now func() time.Time

	Stdin  io.Reader
	Stdout io.Writer
}

func (c *Context) In() io.Reader {
	if c.Stdin == nil {
		return os.Stdin
	}
	return c.Stdin
}

func (c *Context) Out() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

// Credentials loads the credential table from the configured backend.
func (c *Context) Credentials() (*credentials.Store, error) {
	return credentials.New(c.Store)
}

// NewSession builds a logged-out session controller over the backend.
func (c *Context) NewSession() (*session.Controller, error) {
	creds, err := c.Credentials()
	if err != nil {
		return nil, err
	}
	opts := []session.Option{session.WithSampleData(c.SampleData)}
	if c.Location != nil {
		opts = append(opts, session.WithLocation(c.Location))
	}
	if c.Now != nil {
		opts = append(opts, session.WithClock(c.Now))
	}
	return session.New(creds, opts...), nil
}

// AcquireLock takes the single-instance lock for the backend's config dir.
func (c *Context) AcquireLock() (*lock.Lock, error) {
	dir, err := storage.ConfigDir(c.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return lock.Acquire(dir)
}

// Exclusive takes the instance lock before a command writes the credential
// table. Running sessions load the table once and save it whole, so a write
// made beside them is lost on their next save. The memory backend is private
// to this process and is not locked.
func (c *Context) Exclusive() (release func(), err error) {
	if c.Store.GetConfigPath() == constants.MemoryBackend {
		return func() {}, nil
	}
	l, err := c.AcquireLock()
	if err != nil {
		return nil, err
	}
	return func() {
		if err := l.Release(); err != nil {
			logger.Warn("Failed to release instance lock", "error", err)
		}
	}, nil
}

// TipPicker returns the configured picker, falling back to the global source.
func (c *Context) TipPicker() *tips.Picker {
	if c.Tips == nil {
		c.Tips = tips.New(nil)
	}
	return c.Tips
}

// BackupManager snapshots the credential table into the backend's config dir.
func (c *Context) BackupManager() (*backup.Manager, error) {
	dir, err := storage.ConfigDir(c.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config directory: %w", err)
	}
	return backup.NewManager(c.Store, dir), nil
}
