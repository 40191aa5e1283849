package lock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-ps"
)

type mockProcess struct {
	pid        int
	executable string
}

func (m *mockProcess) Pid() int           { return m.pid }
func (m *mockProcess) PPid() int          { return 0 }
func (m *mockProcess) Executable() string { return m.executable }

func stubProcesses(t *testing.T, running map[int]string) {
	t.Helper()
	origFind, origPid := findProcessFunc, getpidFunc
	t.Cleanup(func() {
		findProcessFunc, getpidFunc = origFind, origPid
	})

	getpidFunc = func() int { return 100 }
	findProcessFunc = func(pid int) (ps.Process, error) {
		exe, ok := running[pid]
		if !ok {
			return nil, nil
		}
		return &mockProcess{pid: pid, executable: exe}, nil
	}
}

func TestAcquireAndRelease(t *testing.T) {
	stubProcesses(t, nil)
	dataPath := filepath.Join(t.TempDir(), "verdant.db")

	l, err := Acquire(dataPath)
	if err != nil {
		t.Fatalf("Acquire failed: %v", err)
	}
	if _, err := os.Stat(Path(dataPath)); err != nil {
		t.Fatalf("lockfile not created: %v", err)
	}

	if err := l.Release(); err != nil {
		t.Fatalf("Release failed: %v", err)
	}
	if _, err := os.Stat(Path(dataPath)); !os.IsNotExist(err) {
		t.Error("lockfile still present after release")
	}
}

func TestAcquireHeldByLiveProcess(t *testing.T) {
	stubProcesses(t, map[int]string{4242: "verdant"})
	dataPath := filepath.Join(t.TempDir(), "verdant.db")

	if err := os.WriteFile(Path(dataPath), []byte("4242|verdant"), 0600); err != nil {
		t.Fatal(err)
	}

	_, err := Acquire(dataPath)
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
}

func TestAcquireReplacesStaleLock(t *testing.T) {
	tests := []struct {
		name    string
		content string
		running map[int]string
	}{
		{"dead process", "4242|verdant", nil},
		{"pid reused by another program", "4242|verdant", map[int]string{4242: "firefox"}},
		{"malformed", "not-a-pid", nil},
		{"own pid", "100|verdant", map[int]string{100: "verdant"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubProcesses(t, tt.running)
			dataPath := filepath.Join(t.TempDir(), "verdant.db")
			if err := os.WriteFile(Path(dataPath), []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			l, err := Acquire(dataPath)
			if err != nil {
				t.Fatalf("Acquire failed: %v", err)
			}
			defer l.Release()

			content, _ := os.ReadFile(Path(dataPath))
			if string(content[:4]) != "100|" {
				t.Errorf("lockfile not rewritten: %q", content)
			}
		})
	}
}

func TestReleaseNil(t *testing.T) {
	var l *Lock
	if err := l.Release(); err != nil {
		t.Errorf("Release on nil lock: %v", err)
	}
}
