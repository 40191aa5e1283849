package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
)

func (s *Store) ListHabits(ctx context.Context, userID string) ([]models.Habit, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, created_at
		FROM habits WHERE user_id = $1 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	habits := make([]models.Habit, 0)
	index := make(map[string]int)
	for rows.Next() {
		var h models.Habit
		if err := rows.Scan(&h.ID, &h.UserID, &h.Name, &h.CreatedAt); err != nil {
			return nil, err
		}
		h.CreatedAt = h.CreatedAt.UTC()
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
		WHERE h.user_id = $1`, userID)
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
		INSERT INTO habits (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`,
		h.ID, h.UserID, h.Name, h.CreatedAt)
	if err != nil {
		return "", fmt.Errorf("failed to create habit: %w", err)
	}
	return h.ID, nil
}

// lockOwned locks the row of table holding id for userID, failing with
// ErrNotFound when there is none.
func lockOwned(ctx context.Context, tx *sql.Tx, table, kind, userID, id string) error {
	var found string
	err := tx.QueryRowContext(ctx, "SELECT id FROM "+table+" WHERE id = $1 AND user_id = $2 FOR UPDATE", id, userID).Scan(&found)
	if err == sql.ErrNoRows {
		return storage.NotFound(kind, id)
	}
	return err
}

func upsertCompletions(ctx context.Context, tx *sql.Tx, table, fk, id string, c models.Completions) error {
	stmt := fmt.Sprintf(`
		INSERT INTO %s (%s, day, done) VALUES ($1, $2, $3)
		ON CONFLICT (%s, day) DO UPDATE SET done = EXCLUDED.done`, table, fk, fk)
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

	if err := lockOwned(ctx, tx, "habits", "habit", userID, id); err != nil {
		return err
	}
	if patch.Name != nil {
		if _, err := tx.ExecContext(ctx, "UPDATE habits SET name = $1 WHERE id = $2", *patch.Name, id); err != nil {
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

	// completions go with the habit via ON DELETE CASCADE
	res, err := s.db.ExecContext(ctx, "DELETE FROM habits WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.NotFound("habit", id)
	}
	return nil
}
