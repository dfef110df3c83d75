package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/tasklit/internal/constants"
)

var (
	// ErrNotFound is returned when no credential table is stored in the keyring
	ErrNotFound = errors.New("credential table not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

// GetBlob retrieves the serialized credential table from the OS keyring.
// Returns ErrNotFound if nothing is stored.
func GetBlob() (string, error) {
	blob, err := keyring.Get(constants.AppName, constants.StorageKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return blob, nil
}

// SetBlob stores the serialized credential table in the OS keyring.
func SetBlob(blob string) error {
	if blob == "" {
		return errors.New("credential blob cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.StorageKey, blob); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteBlob removes the credential table from the OS keyring.
func DeleteBlob() error {
	if err := keyring.Delete(constants.AppName, constants.StorageKey); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring answers a read. A missing entry
// still counts as available.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "availability-probe")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
