package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/verdant/internal/models"
	"github.com/julianstephens/verdant/internal/storage"
)

func (s *Store) AddFocusSession(ctx context.Context, userID string, session models.FocusSession) (string, error) {
	if err := s.checkLoaded(); err != nil {
		return "", err
	}
	session, err := storage.PrepareFocusSession(userID, session)
	if err != nil {
		return "", err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO focus_sessions (id, user_id, completed_at, duration_min)
		VALUES (?, ?, ?, ?)`,
		session.ID, session.UserID, formatTime(session.CompletedAt), session.DurationMin)
	if err != nil {
		return "", fmt.Errorf("failed to save focus session: %w", err)
	}
	return session.ID, nil
}

func (s *Store) ListFocusSessions(ctx context.Context, userID string, from, to time.Time) ([]models.FocusSession, error) {
	if err := s.checkLoaded(); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_id, completed_at, duration_min
		FROM focus_sessions
		WHERE user_id = ? AND completed_at >= ? AND completed_at < ?
		ORDER BY completed_at`, userID, formatTime(from), formatTime(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.FocusSession, 0)
	for rows.Next() {
		var fs models.FocusSession
		var completedAt string
		if err := rows.Scan(&fs.ID, &fs.UserID, &completedAt, &fs.DurationMin); err != nil {
			return nil, err
		}
		fs.CompletedAt, err = parseTime(completedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse completed_at for session %s: %w", fs.ID, err)
		}
		sessions = append(sessions, fs)
	}
	return sessions, rows.Err()
}
