// Package lock keeps a second verdant process from writing the same local
// data file. The lockfile holds "pid|executable" of the holder.
package lock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/julianstephens/verdant/internal/constants"
	"github.com/julianstephens/verdant/internal/logger"
)

var (
	ErrLocked = errors.New("data file is in use by another verdant process")

	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
	executableName  = func() string { return filepath.Base(os.Args[0]) }
)

// Lock is a held lockfile.
type Lock struct {
	path string
}

// Path returns the lockfile location for a data file.
func Path(dataPath string) string {
	return filepath.Join(filepath.Dir(dataPath), constants.LockfileName)
}

// Acquire takes the lock for dataPath. A lockfile left by a process that is
// no longer running, or by a process that is not verdant, is replaced.
func Acquire(dataPath string) (*Lock, error) {
	path := Path(dataPath)
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}

	if pid, ok := holder(path); ok {
		return nil, fmt.Errorf("%w (pid %d)", ErrLocked, pid)
	}
	_ = os.Remove(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if err != nil {
		if os.IsExist(err) {
			return nil, ErrLocked
		}
		return nil, fmt.Errorf("failed to create lockfile: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%d|%s", getpidFunc(), executableName()); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	logger.Debug("Acquired lock", "path", path)
	return &Lock{path: path}, nil
}

// holder reports the pid of a live verdant process holding path.
func holder(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}

	parts := strings.SplitN(strings.TrimSpace(string(content)), "|", 2)
	pid, err := strconv.Atoi(parts[0])
	if err != nil {
		logger.Warn("Ignoring malformed lockfile", "path", path)
		return 0, false
	}
	if pid == getpidFunc() {
		return 0, false
	}

	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return 0, false
	}
	if !strings.HasPrefix(process.Executable(), constants.AppName) {
		return 0, false
	}
	return pid, true
}

// Release removes the lockfile. It is safe to call on a nil Lock.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}
