// Package history persists per-conversation complexity scores. The routing
// engine itself is stateless: callers read the recent score window from this
// store and pass it into each routing request.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS turn_scores (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	conversation_id TEXT NOT NULL,
	turn            INTEGER NOT NULL,
	score           REAL NOT NULL,
	created_at      INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_turn_scores_conv
	ON turn_scores(conversation_id, created_at);
`

// MaxWindowScores is how many recent scores the engine consults.
const MaxWindowScores = 3

// Store records conversation turn scores in SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) a score store at the given path.
func Open(path string) (*Store, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dir := filepath.Join(home, ".autoroute")
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
		path = filepath.Join(dir, "history.db")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordScore stores the complexity score computed for a conversation turn.
func (s *Store) RecordScore(conversationID string, turn int, score float64) error {
	return s.recordScoreAt(conversationID, turn, score, s.now())
}

func (s *Store) recordScoreAt(conversationID string, turn int, score float64, at time.Time) error {
	if conversationID == "" {
		return fmt.Errorf("conversation ID is required")
	}
	_, err := s.db.Exec(
		`INSERT INTO turn_scores (conversation_id, turn, score, created_at) VALUES (?, ?, ?, ?)`,
		conversationID, turn, score, at.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}

// RecentScores returns up to limit scores for a conversation within the
// recency window, newest first.
func (s *Store) RecentScores(conversationID string, window time.Duration, limit int) ([]float64, error) {
	if limit <= 0 || limit > MaxWindowScores {
		limit = MaxWindowScores
	}
	cutoff := s.now().Add(-window).Unix()

	rows, err := s.db.Query(
		`SELECT score FROM turn_scores
		 WHERE conversation_id = ? AND created_at >= ?
		 ORDER BY created_at DESC, turn DESC
		 LIMIT ?`,
		conversationID, cutoff, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent scores: %w", err)
	}
	defer rows.Close()

	var scores []float64
	for rows.Next() {
		var score float64
		if err := rows.Scan(&score); err != nil {
			return nil, err
		}
		scores = append(scores, score)
	}
	return scores, rows.Err()
}

// NextTurn returns the next turn number for a conversation (1 when fresh).
func (s *Store) NextTurn(conversationID string) (int, error) {
	var maxTurn sql.NullInt64
	err := s.db.QueryRow(
		`SELECT MAX(turn) FROM turn_scores WHERE conversation_id = ?`,
		conversationID,
	).Scan(&maxTurn)
	if err != nil {
		return 0, fmt.Errorf("failed to query last turn: %w", err)
	}
	if !maxTurn.Valid {
		return 1, nil
	}
	return int(maxTurn.Int64) + 1, nil
}
