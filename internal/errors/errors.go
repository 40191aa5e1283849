// Package errors formats command failures for the terminal.
package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/verdant/internal/keyring"
	"github.com/julianstephens/verdant/internal/lock"
	"github.com/julianstephens/verdant/internal/logger"
	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/validation"
)

var hints = []struct {
	target error
	hint   string
}{
	{storage.ErrNotLoaded, "run 'verdant init' to create the data store"},
	{storage.ErrNotFound, "run the matching list command to see valid IDs"},
	{validation.ErrNameTooShort, "names need at least two characters"},
	{validation.ErrInvalidDateKey, "dates use the YYYY-MM-DD format"},
	{validation.ErrNotMonday, "weekly tasks start on a Monday"},
	{validation.ErrOutOfRange, "weekly task completions must fall inside the task's week"},
	{keyring.ErrNotFound, "run 'verdant keyring set' to store a connection string"},
	{lock.ErrLocked, "close the other verdant process first"},
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint returns a suggestion for a known error, or "".
func Hint(err error) string {
	for _, h := range hints {
		if stderrors.Is(err, h.target) {
			return h.hint
		}
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		if hint := Hint(err); hint != "" {
			fmt.Fprintf(os.Stderr, "Hint: %s\n", hint)
		}
		os.Exit(1)
	}
}
