// Package credentials implements the registered-user table: a plain
// username→password mapping persisted in full after every change.
//
// Passwords are stored and compared in plain text. This is a local,
// single-user tracker with no security model.
package credentials

import (
	"errors"
	"fmt"

	"github.com/julianstephens/tasklit/internal/logger"
	"github.com/julianstephens/tasklit/internal/models"
)

var (
	ErrAlreadyExists      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrNoRegisteredUsers  = errors.New("no registered users")
	ErrNotFound           = errors.New("user not found")
)

// Backend is the durable key-value collaborator holding the table.
type Backend interface {
	LoadCredentials() (models.Credentials, error)
	SaveCredentials(models.Credentials) error
}

type Store struct {
	backend Backend
	users   models.Credentials
}

// New loads the table once from backend.
func New(backend Backend) (*Store, error) {
	users, err := backend.LoadCredentials()
	if err != nil {
		return nil, fmt.Errorf("failed to load credentials: %w", err)
	}
	return &Store{
		backend: backend,
		users:   users.Clone(),
	}, nil
}

// Register adds a new user. The table is left untouched on failure.
func (s *Store) Register(username, password string) error {
	if _, ok := s.users[username]; ok {
		return ErrAlreadyExists
	}
	s.users[username] = password
	s.persist("register", username)
	return nil
}

// Verify checks a login attempt. While nobody has registered, any non-empty
// pair is accepted.
func (s *Store) Verify(username, password string) error {
	if s.Bootstrap() {
		if username == "" || password == "" {
			return ErrInvalidCredentials
		}
		logger.Info("No registered users, accepting login", "user", username)
		return nil
	}
	stored, ok := s.users[username]
	if !ok || stored != password {
		return ErrInvalidCredentials
	}
	return nil
}

// ChangePassword overwrites the password of an existing user. The current
// password is not re-checked.
func (s *Store) ChangePassword(username, newPassword string) error {
	if _, ok := s.users[username]; !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, username)
	}
	s.users[username] = newPassword
	s.persist("change password", username)
	return nil
}

// persist writes the whole table. Write failures are logged and otherwise
// ignored: callers see the in-memory change as successful either way.
func (s *Store) persist(op, username string) {
	if err := s.backend.SaveCredentials(s.users.Clone()); err != nil {
		logger.Warn("Failed to persist credentials", "op", op, "user", username, "error", err)
	}
}

// Bootstrap reports whether the table is empty, which enables the
// accept-anything login fallback.
func (s *Store) Bootstrap() bool {
	return len(s.users) == 0
}

// RequireUsers returns ErrNoRegisteredUsers while the table is empty.
func (s *Store) RequireUsers() error {
	if s.Bootstrap() {
		return ErrNoRegisteredUsers
	}
	return nil
}

func (s *Store) Exists(username string) bool {
	_, ok := s.users[username]
	return ok
}

func (s *Store) Len() int {
	return len(s.users)
}

// Usernames returns registered names in sorted order.
func (s *Store) Usernames() []string {
	return s.users.Usernames()
}

// Snapshot returns a copy of the table.
func (s *Store) Snapshot() models.Credentials {
	return s.users.Clone()
}
