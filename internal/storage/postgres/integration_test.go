package postgres

import (
	"os"
	"testing"

	"github.com/julianstephens/verdant/internal/storage"
	"github.com/julianstephens/verdant/internal/storage/storagetest"
)

// TestStore_Integration runs the provider suite against a real database.
// Set VERDANT_TEST_POSTGRES to run it, for example
// VERDANT_TEST_POSTGRES="postgres://verdant@localhost:5432/verdant_test?sslmode=disable"
func TestStore_Integration(t *testing.T) {
	connStr := os.Getenv("VERDANT_TEST_POSTGRES")
	if connStr == "" {
		t.Skip("VERDANT_TEST_POSTGRES not set, skipping PostgreSQL integration test")
	}

	storagetest.Run(t, func(t *testing.T) storage.Provider {
		store := New(connStr)
		if err := store.Init(); err != nil {
			t.Fatalf("Failed to initialize store: %v", err)
		}
		t.Cleanup(func() { store.Close() })

		_, err := store.db.Exec(`TRUNCATE habit_completions, habits, daily_tasks,
			weekly_task_completions, weekly_tasks, focus_sessions`)
		if err != nil {
			t.Fatalf("Failed to reset tables: %v", err)
		}
		return store
	})
}
