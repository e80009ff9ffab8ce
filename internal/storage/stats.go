package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// UpdateStats folds a finished round into the player's totals and records
// the score. High score keeps the maximum; question counters accumulate.
func (s *Store) UpdateStats(ctx context.Context, r StatsReport) error {
	if r.Username == "" {
		r.Username = "anonymous"
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO players (username, high_score, total_questions, correct_answers)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT(username) DO UPDATE SET
			high_score = MAX(high_score, excluded.high_score),
			total_questions = total_questions + excluded.total_questions,
			correct_answers = correct_answers + excluded.correct_answers,
			updated_at = CURRENT_TIMESTAMP`,
		r.Username, r.Score, r.QuestionsAnswered, r.CorrectAnswers,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot update stats: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO scores (username, score) VALUES (?, ?)",
		r.Username, r.Score,
	); err != nil {
		return fmt.Errorf("storage: cannot save score: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot commit stats: %w", err)
	}
	return nil
}

// PlayerStats returns the totals for one username, or ErrNotFound.
func (s *Store) PlayerStats(ctx context.Context, username string) (PlayerStats, error) {
	var p PlayerStats
	var updatedAt any
	err := s.db.QueryRowContext(ctx,
		`SELECT username, high_score, total_questions, correct_answers, updated_at
		 FROM players WHERE username = ?`,
		username,
	).Scan(&p.Username, &p.HighScore, &p.TotalQuestions, &p.CorrectAnswers, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return PlayerStats{}, ErrNotFound
	}
	if err != nil {
		return PlayerStats{}, fmt.Errorf("storage: cannot query player: %w", err)
	}
	p.UpdatedAt = parseTime(updatedAt)
	return p, nil
}

// TopPlayers returns players ordered by high score, best first.
func (s *Store) TopPlayers(ctx context.Context, limit int) ([]PlayerStats, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT username, high_score, total_questions, correct_answers, updated_at
		 FROM players
		 ORDER BY high_score DESC, correct_answers DESC, username
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var out []PlayerStats
	for rows.Next() {
		var p PlayerStats
		var updatedAt any
		if err := rows.Scan(&p.Username, &p.HighScore, &p.TotalQuestions, &p.CorrectAnswers, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTime(updatedAt)
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// TopScores returns the best single rounds across all players.
func (s *Store) TopScores(ctx context.Context, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, username, score, created_at
		 FROM scores
		 ORDER BY score DESC, id
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Username, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// HighScore returns the best score of a player, 0 if none.
func (s *Store) HighScore(ctx context.Context, username string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE username = ?",
		username,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}
