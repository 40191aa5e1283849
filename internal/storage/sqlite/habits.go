package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
)

const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

func (s *Store) checkLoaded() error {
	if s.db == nil {
		return storage.ErrNotLoaded
	}
	return nil
}

func (s *Store) ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, created_at
		FROM habits WHERE user_id = ? ORDER BY rowid`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := make([]models.Habit, 0)
	index := make(map[string]int)
	for rows.Next() {
		var h models.Habit
		var createdAt string
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &createdAt); err != nil {
			return nil, err
		}
		h.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for habit %s: %w", h.ID, err)
		}
		h.Completions = models.Completions{}
		index[h.ID] = len(habits)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := s.db.QueryContext(ctx, `
		SELECT c.habit_id, c.day, c.done
		FROM habit_completions c JOIN habits h ON h.id = c.habit_id
		WHERE h.user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer crows.Close()

	for crows.Next() {
		var habitID, day string
		var done bool
		if err := crows.Scan(&habitID, &day, &done); err != nil {
			return nil, err
		}
		if i, ok := index[habitID]; ok {
			habits[i].Completions[day] = done
		}
	}
	return habits, crows.Err()
}

func (s *Store) CreateHabit(ctx context.Context, userID, name string) (string, error) {
	if err := s.checkLoaded(); err != nil {
		return "", err
	}
	h, err := storage.NewHabit(userID, name)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO habits (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
		h.ID, h.UserID, h.Name, formatTime(h.CreatedAt))
	if err != nil {
		return "", fmt.Errorf("failed to create habit: %w", err)
	}
	return h.ID, nil
}

// ownerCheck fails with ErrNotFound unless table holds id for userID.
func ownerCheck(ctx context.Context, tx *sql.Tx, table, kind, userID, id string) error {
	var n int
	err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM "+table+" WHERE id = ? AND user_id = ?", id, userID).Scan(&n)
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.NotFound(kind, id)
	}
	return nil
}

func upsertCompletions(ctx context.Context, tx *sql.Tx, table, fk, id string, c models.Completions) error {
	stmt := fmt.Sprintf(`
		INSERT INTO %s (%s, day, done) VALUES (?, ?, ?)
		ON CONFLICT(%s, day) DO UPDATE SET done = excluded.done`, table, fk, fk)
	for day, done := range c {
		if _, err := tx.ExecContext(ctx, stmt, id, day, done); err != nil {
			return fmt.Errorf("failed to save completion %s: %w", day, err)
		}
	}
	return nil
}

func (s *Store) UpdateHabit(ctx context.Context, userID, id string, patch models.HabitPatch) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}
	patch, err := storage.PrepareHabitPatch(patch)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := ownerCheck(ctx, tx, "habits", "habit", userID, id); err != nil {
		return err
	}
	if patch.Name != nil {
		if _, err := tx.ExecContext(ctx, "UPDATE habits SET name = ? WHERE id = ?", *patch.Name, id); err != nil {
			return fmt.Errorf("failed to rename habit: %w", err)
		}
	}
	if err := upsertCompletions(ctx, tx, "habit_completions", "habit_id", id, patch.Completions); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeleteHabit(ctx context.Context, userID, id string) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := ownerCheck(ctx, tx, "habits", "habit", userID, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM habit_completions WHERE habit_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete habit completions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM habits WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return tx.Commit()
}
