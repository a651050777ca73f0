package db

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/noamlvn/nikudquiz/internal/logger"
	"github.com/noamlvn/nikudquiz/internal/models"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

func (db *DB) InsertAnswer(ctx context.Context, a models.Answer) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("inserting answer: session_id=%s, syllable=%s, correct=%t", a.SessionID, a.Syllable, a.Correct)

	res, err := db.ExecContext(ctx, `
INSERT INTO answers (session_id, syllable, chosen, correct)
VALUES (?, ?, ?, ?)
`, a.SessionID, a.Syllable, a.Chosen, a.Correct)
	if err != nil {
		log.Error("failed to insert answer: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get answer id: %v", err)
		return 0, err
	}
	log.Debug("answer inserted: id=%d", id)
	return id, nil
}

func answerQuery(filter models.AnswerFilter) squirrel.SelectBuilder {
	query := sqlBuilder.
		Select("a.id", "a.session_id", "a.syllable", "a.chosen", "a.correct", "a.answered_at").
		From("answers a").
		Join("quiz_sessions s ON s.id = a.session_id")

	if filter.ProfileID != 0 {
		query = query.Where(squirrel.Eq{"s.profile_id": filter.ProfileID})
	}
	if filter.SessionID != "" {
		query = query.Where(squirrel.Eq{"a.session_id": filter.SessionID})
	}
	if filter.Syllable != "" {
		query = query.Where(squirrel.Eq{"a.syllable": filter.Syllable})
	}
	if filter.Correct != nil {
		query = query.Where(squirrel.Eq{"a.correct": *filter.Correct})
	}
	return query
}

func (db *DB) ListAnswers(ctx context.Context, filter models.AnswerFilter) ([]models.Answer, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("listing answers: profile_id=%d, session_id=%s", filter.ProfileID, filter.SessionID)

	query := answerQuery(filter).OrderBy("a.answered_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		query = query.Offset(uint64(filter.Offset))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build answers query: %v", err)
		return nil, err
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to query answers: %v", err)
		return nil, err
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Syllable, &a.Chosen, &a.Correct, &a.AnsweredAt); err != nil {
			log.Error("failed to scan answer row: %v", err)
			return nil, err
		}
		answers = append(answers, a)
	}
	log.Debug("found %d answers", len(answers))
	return answers, rows.Err()
}

func (db *DB) CountAnswers(ctx context.Context, filter models.AnswerFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("db")

	query := sqlBuilder.Select("COUNT(*)").
		From("answers a").
		Join("quiz_sessions s ON s.id = a.session_id")
	if filter.ProfileID != 0 {
		query = query.Where(squirrel.Eq{"s.profile_id": filter.ProfileID})
	}
	if filter.SessionID != "" {
		query = query.Where(squirrel.Eq{"a.session_id": filter.SessionID})
	}
	if filter.Syllable != "" {
		query = query.Where(squirrel.Eq{"a.syllable": filter.Syllable})
	}
	if filter.Correct != nil {
		query = query.Where(squirrel.Eq{"a.correct": *filter.Correct})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build count query: %v", err)
		return 0, err
	}

	var count int
	if err := db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count answers: %v", err)
		return 0, err
	}
	return count, nil
}

// SyllableStats aggregates per-syllable accuracy over a profile's history,
// hardest syllables first.
func (db *DB) SyllableStats(ctx context.Context, profileID int64, limit int) ([]models.SyllableStat, error) {
	log := logger.FromContext(ctx).WithPrefix("db")
	log.Debug("fetching syllable stats: profile_id=%d", profileID)

	if limit <= 0 {
		limit = 20
	}

	rows, err := db.QueryContext(ctx, `
SELECT
    a.syllable,
    COUNT(*) AS attempts,
    SUM(a.correct) AS correct,
    ROUND(100.0 * SUM(a.correct) / COUNT(*), 1) AS accuracy
FROM answers a
JOIN quiz_sessions s ON s.id = a.session_id
WHERE s.profile_id = ?
GROUP BY a.syllable
ORDER BY accuracy ASC, attempts DESC
LIMIT ?
`, profileID, limit)
	if err != nil {
		log.Error("failed to query syllable stats: %v", err)
		return nil, err
	}
	defer rows.Close()

	var stats []models.SyllableStat
	for rows.Next() {
		var s models.SyllableStat
		if err := rows.Scan(&s.Syllable, &s.Attempts, &s.Correct, &s.Accuracy); err != nil {
			log.Error("failed to scan syllable stat: %v", err)
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
