package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestInit(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")

	if err := Init(Config{DataDir: dataDir}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	defer Close()

	if _, err := os.Stat(filepath.Dir(Path(dataDir))); os.IsNotExist(err) {
		t.Errorf("Log directory was not created: %s", filepath.Dir(Path(dataDir)))
	}
	if Logger == nil {
		t.Fatal("Logger is nil after initialization")
	}
	if Logger.GetLevel() != log.WarnLevel {
		t.Errorf("expected warn level, got %v", Logger.GetLevel())
	}

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message", "habit", "read")
	Error("Test error message")
}

func TestInitDebugMode(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "data")

	if err := Init(Config{Debug: true, DataDir: dataDir}); err != nil {
		t.Fatalf("Failed to initialize logger in debug mode: %v", err)
	}
	defer Close()

	if Logger.GetLevel() != log.DebugLevel {
		t.Errorf("expected debug level, got %v", Logger.GetLevel())
	}
	Debug("Test debug message in debug mode")
}

func TestInitLevelOverride(t *testing.T) {
	dataDir := t.TempDir()

	if err := Init(Config{DataDir: dataDir, Level: "info"}); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	Info("habit created", "id", "abc")
	if err := Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(Path(dataDir))
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "habit created") {
		t.Errorf("log file missing message: %q", data)
	}

	if err := Init(Config{DataDir: dataDir, Level: "loud"}); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLogFunctionsWithoutInit(t *testing.T) {
	Logger = nil

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")
	if With("user", "anonymous") != nil {
		t.Error("With should return nil before Init")
	}
}

func TestPath(t *testing.T) {
	if got := Path("/data"); got != filepath.Join("/data", "logs", "verdant.log") {
		t.Errorf("unexpected log path: %s", got)
	}
}
