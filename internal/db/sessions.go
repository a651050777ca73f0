package db

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/noamlvn/nikudquiz/internal/logger"
	"github.com/noamlvn/nikudquiz/internal/models"
)

func (db *DB) InsertSession(ctx context.Context, s models.QuizSession) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting session: id=%s, profile_id=%d", s.ID, s.ProfileID)

	_, err := db.ExecContext(ctx, `
INSERT INTO quiz_sessions (id, profile_id, correct_count, total_count)
VALUES (?, ?, ?, ?)
`, s.ID, s.ProfileID, s.CorrectCount, s.TotalCount)
	if err != nil {
		log.Error("failed to insert session: %v", err)
	}
	return err
}

func (db *DB) GetSession(ctx context.Context, id string) (*models.QuizSession, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching session: id=%s", id)

	var s models.QuizSession
	var endedAt sql.NullTime
	err := db.QueryRowContext(ctx, `
SELECT id, profile_id, correct_count, total_count, started_at, ended_at
FROM quiz_sessions
WHERE id = ?
`, id).Scan(&s.ID, &s.ProfileID, &s.CorrectCount, &s.TotalCount, &s.StartedAt, &endedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get session: %v", err)
		return nil, err
	}
	if endedAt.Valid {
		s.EndedAt = &endedAt.Time
	}
	return &s, nil
}

func (db *DB) UpdateSessionScore(ctx context.Context, id string, correct, total int) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("updating session score: id=%s, correct=%d, total=%d", id, correct, total)

	_, err := db.ExecContext(ctx, `
UPDATE quiz_sessions SET correct_count = ?, total_count = ? WHERE id = ?
`, correct, total, id)
	if err != nil {
		log.Error("failed to update session score: %v", err)
	}
	return err
}

func (db *DB) EndSession(ctx context.Context, id string, at time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("ending session: id=%s", id)

	_, err := db.ExecContext(ctx, `UPDATE quiz_sessions SET ended_at = ? WHERE id = ?`, at, id)
	if err != nil {
		log.Error("failed to end session: %v", err)
	}
	return err
}

func (db *DB) ListSessions(ctx context.Context, profileID int64, limit int) ([]models.QuizSession, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing sessions: profile_id=%d, limit=%d", profileID, limit)

	if limit <= 0 {
		limit = 25
	}
	rows, err := db.QueryContext(ctx, `
SELECT id, profile_id, correct_count, total_count, started_at, ended_at
FROM quiz_sessions
WHERE profile_id = ?
ORDER BY started_at DESC
LIMIT ?
`, profileID, limit)
	if err != nil {
		log.Error("failed to list sessions: %v", err)
		return nil, err
	}
	defer rows.Close()

	var sessions []models.QuizSession
	for rows.Next() {
		var s models.QuizSession
		var endedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.ProfileID, &s.CorrectCount, &s.TotalCount, &s.StartedAt, &endedAt); err != nil {
			log.Error("failed to scan session row: %v", err)
			return nil, err
		}
		if endedAt.Valid {
			s.EndedAt = &endedAt.Time
		}
		sessions = append(sessions, s)
	}
	log.Debug("found %d sessions", len(sessions))
	return sessions, rows.Err()
}
