package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
)

func (s *Store) ListDailyTasks(ctx context.Context, userID, from, to string) ([]models.DailyTask, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	if err := storage.CheckRange(from, to); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, date, is_completed, created_at
		FROM daily_tasks
		WHERE user_id = ? AND date >= ? AND date <= ?
		ORDER BY rowid`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.DailyTask, 0)
	for rows.Next() {
		var t models.DailyTask
		var createdAt string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.Date, &t.IsCompleted, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for task %s: %w", t.ID, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) CreateDailyTask(ctx context.Context, userID, name, date string) (string, error) {
	if err := s.checkLoaded(); err != nil {
		return "", err
	}
	t, err := storage.NewDailyTask(userID, name, date)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO daily_tasks (id, user_id, name, date, is_completed, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Name, t.Date, t.IsCompleted, formatTime(t.CreatedAt))
	if err != nil {
		return "", fmt.Errorf("failed to create task: %w", err)
	}
	return t.ID, nil
}

func (s *Store) UpdateDailyTask(ctx context.Context, userID, id string, patch models.DailyTaskPatch) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}
	patch, err := storage.PrepareDailyTaskPatch(patch)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := ownerCheck(ctx, tx, "daily_tasks", "task", userID, id); err != nil {
		return err
	}
	if patch.Name != nil {
		if _, err := tx.ExecContext(ctx, "UPDATE daily_tasks SET name = ? WHERE id = ?", *patch.Name, id); err != nil {
			return fmt.Errorf("failed to rename task: %w", err)
		}
	}
	if patch.IsCompleted != nil {
		if _, err := tx.ExecContext(ctx, "UPDATE daily_tasks SET is_completed = ? WHERE id = ?", *patch.IsCompleted, id); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
	}
	return tx.Commit()
}

func (s *Store) DeleteDailyTask(ctx context.Context, userID, id string) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	res, err := s.db.ExecContext(ctx, "DELETE FROM daily_tasks WHERE id = ? AND user_id = ?", id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return storage.NotFound("task", id)
	}
	return nil
}

func (s *Store) ListWeeklyTasks(ctx context.Context, userID, weekStart string) ([]models.WeeklyTask, error) {
	return s.ListWeeklyTasksInRange(ctx, userID, weekStart, weekStart)
}

func (s *Store) ListWeeklyTasksInRange(ctx context.Context, userID, from, to string) ([]models.WeeklyTask, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}
	if err := storage.CheckRange(from, to); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, name, week_start, created_at
		FROM weekly_tasks WHERE user_id = ? AND week_start BETWEEN ? AND ?
		ORDER BY rowid`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]models.WeeklyTask, 0)
	index := make(map[string]int)
	for rows.Next() {
		var t models.WeeklyTask
		var createdAt string
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.WeekStartDate, &createdAt); err != nil {
			return nil, err
		}
		t.CreatedAt, err = parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at for weekly task %s: %w", t.ID, err)
		}
		t.Completions = models.Completions{}
		index[t.ID] = len(tasks)
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crows, err := s.db.QueryContext(ctx, `
		SELECT c.task_id, c.day, c.done
		FROM weekly_task_completions c JOIN weekly_tasks w ON w.id = c.task_id
		WHERE w.user_id = ? AND w.week_start BETWEEN ? AND ?`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer crows.Close()

	for crows.Next() {
		var taskID, day string
		var done bool
		if err := crows.Scan(&taskID, &day, &done); err != nil {
			return nil, err
		}
		if i, ok := index[taskID]; ok {
			tasks[i].Completions[day] = done
		}
	}
	return tasks, crows.Err()
}

func (s *Store) CreateWeeklyTask(ctx context.Context, userID, name, weekStart string) (string, error) {
	if err := s.checkLoaded(); err != nil {
		return "", err
	}
	t, err := storage.NewWeeklyTask(userID, name, weekStart)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO weekly_tasks (id, user_id, name, week_start, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		t.ID, t.UserID, t.Name, t.WeekStartDate, formatTime(t.CreatedAt))
	if err != nil {
		return "", fmt.Errorf("failed to create weekly task: %w", err)
	}
	return t.ID, nil
}

func (s *Store) UpdateWeeklyTask(ctx context.Context, userID, id string, patch models.WeeklyTaskPatch) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var weekStart string
	err = tx.QueryRowContext(ctx, "SELECT week_start FROM weekly_tasks WHERE id = ? AND user_id = ?", id, userID).Scan(&weekStart)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.NotFound("weekly task", id)
	}
	if err != nil {
		return err
	}

	patch, err = storage.PrepareWeeklyTaskPatch(weekStart, patch)
	if err != nil {
		return err
	}
	if patch.Name != nil {
		if _, err := tx.ExecContext(ctx, "UPDATE weekly_tasks SET name = ? WHERE id = ?", *patch.Name, id); err != nil {
			return fmt.Errorf("failed to rename weekly task: %w", err)
		}
	}
	if err := upsertCompletions(ctx, tx, "weekly_task_completions", "task_id", id, patch.Completions); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) DeleteWeeklyTask(ctx context.Context, userID, id string) error {
	if err := s.checkLoaded(); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := ownerCheck(ctx, tx, "weekly_tasks", "weekly task", userID, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM weekly_task_completions WHERE task_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete weekly task completions: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM weekly_tasks WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete weekly task: %w", err)
	}
	return tx.Commit()
}
