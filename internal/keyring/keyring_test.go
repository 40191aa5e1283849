package keyring

import (
	"errors"
	"testing"

	gokeyring "github.com/zalando/go-keyring"
)

func TestSetAndGetConnectionString(t *testing.T) {
	gokeyring.MockInit()

	connStr := "postgres://verdant@localhost:5432/verdant?sslmode=disable"

	if err := SetConnectionString("", connStr); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	retrieved, err := GetConnectionString("")
	if err != nil {
		t.Fatalf("GetConnectionString() failed: %v", err)
	}
	if retrieved != connStr {
		t.Errorf("GetConnectionString() = %q, want %q", retrieved, connStr)
	}
}

func TestProfilesAreSeparate(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("work", "postgres://work@db/verdant"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}

	if _, err := GetConnectionString(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("default profile should be empty, got %v", err)
	}
	got, err := GetConnectionString("work")
	if err != nil || got != "postgres://work@db/verdant" {
		t.Errorf("GetConnectionString(work) = %q, %v", got, err)
	}
}

func TestSetConnectionStringEmpty(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("", ""); err == nil {
		t.Error("SetConnectionString with empty value should return an error")
	}
}

func TestDeleteConnectionString(t *testing.T) {
	gokeyring.MockInit()

	if err := SetConnectionString("", "postgres://verdant@localhost/verdant"); err != nil {
		t.Fatalf("SetConnectionString() failed: %v", err)
	}
	if err := DeleteConnectionString(""); err != nil {
		t.Fatalf("DeleteConnectionString() failed: %v", err)
	}
	if _, err := GetConnectionString(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetConnectionString() after delete error = %v, want %v", err, ErrNotFound)
	}
	if err := DeleteConnectionString(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete error = %v, want %v", err, ErrNotFound)
	}
}

func TestIsAvailableWithMock(t *testing.T) {
	gokeyring.MockInit()

	if !IsAvailable() {
		t.Error("mock keyring should be available")
	}
}

func TestMockError(t *testing.T) {
	gokeyring.MockInitWithError(errors.New("dbus unavailable"))
	defer gokeyring.MockInit()

	if _, err := GetConnectionString(""); !errors.Is(err, ErrKeyringUnavailable) {
		t.Errorf("expected ErrKeyringUnavailable, got %v", err)
	}
	if IsAvailable() {
		t.Error("keyring with errors should not be available")
	}
}
