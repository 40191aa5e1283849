package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/julianstephens/verdant/internal/backup"
	"github.com/julianstephens/verdant/internal/calendar"
	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/keyring"
	"github.com/julianstephens/verdant/internal/lock"
	"github.com/julianstephens/verdant/internal/logger"
	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/storage/postgres"
	"github.com/julianstephens/verdant/internal/storage/sqlite"
	"github.com/julianstephens/verdant/internal/validation"
)

// KeyringConfig selects the connection string stored in the OS keyring.
const KeyringConfig = "keyring"

type Context struct {
	Store   storage.Provider
	User    string
	Profile string
	Out     io.Writer
	Now     func() time.Time

	lock *lock.Lock
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out(), format, args...)
}

func (c *Context) println(args ...interface{}) {
	fmt.Fprintln(c.out(), args...)
}

func (c *Context) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Context) today() string {
	return calendar.FormatDateKey(c.now())
}

func (c *Context) bg() context.Context {
	return context.Background()
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// OpenStore picks the provider for a config value: a *.json path is the
// JSON snapshot, a PostgreSQL URL or "keyring" is Postgres, anything else
// is a SQLite file.
func OpenStore(config, profile string) (storage.Provider, error) {
	switch {
	case config == KeyringConfig:
		connStr, err := keyring.GetConnectionString(profile)
		if err != nil {
			return nil, err
		}
		// the keyring is encrypted, so a stored password is accepted
		if _, err := postgres.ValidateConnString(connStr); err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
			return nil, err
		}
		return postgres.New(connStr), nil
	case postgres.IsConnString(config) || strings.Contains(config, "host="):
		if _, err := postgres.ValidateConnString(config); err != nil {
			return nil, err
		}
		return postgres.New(config), nil
	case strings.HasSuffix(strings.ToLower(config), ".json"):
		return storage.NewJSONStore(ExpandHome(config)), nil
	default:
		return sqlite.NewStore(ExpandHome(config)), nil
	}
}

// IsLocal reports whether the store keeps its data in a local file.
func IsLocal(p storage.Provider) bool {
	switch p.(type) {
	case *sqlite.Store, *storage.JSONStore:
		return true
	}
	return false
}

// AcquireLock takes the single-writer lock for local stores.
func (c *Context) AcquireLock() error {
	if !IsLocal(c.Store) {
		return nil
	}
	l, err := lock.Acquire(c.Store.GetConfigPath())
	if err != nil {
		return err
	}
	c.lock = l
	return nil
}

// Close releases the store and the lock.
func (c *Context) Close() {
	if err := c.Store.Close(); err != nil {
		logger.Warn("Failed to close store", "error", err)
	}
	if err := c.lock.Release(); err != nil {
		logger.Warn("Failed to release lock", "error", err)
	}
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if !IsLocal(c.Store) {
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// resolveDate returns value as a date key, defaulting to today.
func (c *Context) resolveDate(value string) (time.Time, error) {
	if value == "" {
		return calendar.StartOfDay(c.now()), nil
	}
	if err := validation.ValidateDateKey(value); err != nil {
		return time.Time{}, err
	}
	return calendar.ParseDateKey(value, c.now().Location())
}

// matchID reports whether ref names the item: its full id, an id prefix of
// at least shortIDLength characters, or its name ignoring case.
func matchID(ref, id, name string) bool {
	if ref == id || strings.EqualFold(ref, name) {
		return true
	}
	return len(ref) >= shortIDLength && strings.HasPrefix(id, ref)
}

const shortIDLength = 8

func shortID(id string) string {
	if len(id) <= shortIDLength {
		return id
	}
	return id[:shortIDLength]
}

func check(done bool) string {
	if done {
		return "[x]"
	}
	return "[ ]"
}

func lookback(ref time.Time) time.Time {
	return calendar.AddDays(calendar.StartOfDay(ref), -constants.StatsLookbackDays)
}

func weekHeader(days []time.Time) string {
	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = calendar.WeekdayLabel(d)
	}
	return strings.Join(labels, " ")
}

func weekMarks(e models.Entity, days []time.Time) string {
	marks := make([]string, len(days))
	for i, d := range days {
		if e.CompletedOn(calendar.FormatDateKey(d)) {
			marks[i] = " x "
		} else {
			marks[i] = " . "
		}
	}
	return strings.Join(marks, " ")
}
