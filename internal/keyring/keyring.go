// Package keyring stores the PostgreSQL connection string in the OS
// keyring so it never has to live in a config file or shell history.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/verdant/internal/constants"
)

var (
	// ErrNotFound is returned when no credentials are found in the keyring
	ErrNotFound = errors.New("credentials not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring is not available
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func account(profile string) string {
	if profile == "" {
		return constants.DefaultKeyringUser
	}
	return profile
}

// GetConnectionString retrieves the connection string stored for profile.
// An empty profile selects the default entry.
func GetConnectionString(profile string) (string, error) {
	connStr, err := keyring.Get(constants.AppName, account(profile))
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return connStr, nil
}

// SetConnectionString stores the connection string for profile.
func SetConnectionString(profile, connStr string) error {
	if connStr == "" {
		return errors.New("connection string cannot be empty")
	}
	if err := keyring.Set(constants.AppName, account(profile), connStr); err != nil {
		return fmt.Errorf("failed to store credentials in keyring: %w", err)
	}
	return nil
}

// DeleteConnectionString removes the connection string for profile.
func DeleteConnectionString(profile string) error {
	if err := keyring.Delete(constants.AppName, account(profile)); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete credentials from keyring: %w", err)
	}
	return nil
}

// IsAvailable reports whether the OS keyring answers a read. It is a best
// effort check.
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}
