package postgres

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
		VALUES ($1, $2, $3, $4)`,
		session.ID, session.UserID, session.CompletedAt, session.DurationMin)
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
		WHERE user_id = $1 AND completed_at >= $2 AND completed_at < $3
		ORDER BY completed_at`, userID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.FocusSession, 0)
	for rows.Next() {
		var fs models.FocusSession
		if err := rows.Scan(&fs.ID, &fs.UserID, &fs.CompletedAt, &fs.DurationMin); err != nil {
			return nil, err
		}
		fs.CompletedAt = fs.CompletedAt.UTC()
		sessions = append(sessions, fs)
	}
	return sessions, rows.Err()
}
