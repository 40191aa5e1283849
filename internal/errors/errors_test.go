package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/validation"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: "",
		},
		{
			name:     "simple error",
			err:      errors.New("something went wrong"),
			expected: "Error: something went wrong",
		},
		{
			name:     "wrapped error",
			err:      fmt.Errorf("failed to toggle habit: %w", storage.ErrNotFound),
			expected: "Error: failed to toggle habit: not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Format(tt.err)
			if result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestHint(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		empty bool
	}{
		{"not loaded", storage.ErrNotLoaded, false},
		{"wrapped not found", storage.NotFound("habit", "abc"), false},
		{"short name", fmt.Errorf("create: %w", validation.ErrNameTooShort), false},
		{"unknown", errors.New("disk full"), true},
		{"nil", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hint := Hint(tt.err)
			if (hint == "") != tt.empty {
				t.Errorf("Hint(%v) = %q", tt.err, hint)
			}
		})
	}
}

// TestFatal runs Fatal in a subprocess and checks the exit status
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(fmt.Errorf("failed to load: %w", storage.ErrNotLoaded))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		stderrStr := stderr.String()
		if !strings.Contains(stderrStr, "Error: failed to load: storage not loaded") {
			t.Errorf("Fatal() stderr = %q", stderrStr)
		}
		if !strings.Contains(stderrStr, "Hint: run 'verdant init'") {
			t.Errorf("Fatal() stderr missing hint: %q", stderrStr)
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

// TestFatal_NilError checks that Fatal returns when passed a nil error
func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")

	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
