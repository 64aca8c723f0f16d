package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/breaktime/internal/config"
)

// ScoreEntry is one finished session.
type ScoreEntry struct {
	ID         int64
	GameID     string
	Score      int
	Difficulty string
	CreatedAt  time.Time
}

// SaveScore records the final score of a session.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(ctx context.Context, gameID string, score int, difficulty string) (int64, error) {
	difficulty = difficultyKey(difficulty)
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (game_id, score, difficulty) VALUES (?, ?, ?)",
		gameID, score, difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return id, nil
}

// TopScores retrieves the top N scores for the given game, best first.
// Ties are ordered oldest first. A limit <= 0 means 10.
func (s *Store) TopScores(ctx context.Context, gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, game_id, score, difficulty, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Difficulty, &createdAt); err != nil {
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

// HighScore returns the highest score for the given game on any difficulty,
// or 0 if none.
func (s *Store) HighScore(ctx context.Context, gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// HighScoreFor returns the highest score for the given game played on one
// difficulty, or 0 if none. An empty difficulty means normal.
func (s *Store) HighScoreFor(ctx context.Context, gameID, difficulty string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		"SELECT MAX(score) FROM scores WHERE game_id = ? AND difficulty = ?",
		gameID, difficultyKey(difficulty),
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// difficultyKey is the form a difficulty is stored under.
func difficultyKey(difficulty string) string {
	if p, err := config.ParsePreset(difficulty); err == nil {
		return string(p)
	}
	return strings.ToLower(strings.TrimSpace(difficulty))
}

// ClearScores deletes all scores for the given game and reports how many
// rows were removed.
func (s *Store) ClearScores(ctx context.Context, gameID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count cleared rows: %w", err)
	}
	return n, nil
}
