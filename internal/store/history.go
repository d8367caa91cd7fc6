// Package store keeps the history of quiz attempts in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bneradt/roman.brianneradt.com/internal/logging"
	"github.com/bneradt/roman.brianneradt.com/internal/quiz"
	"github.com/bneradt/roman.brianneradt.com/internal/roman"

	_ "github.com/mattn/go-sqlite3"
)

// DefaultFileName is the history database inside the data directory.
const DefaultFileName = "history.db"

// HistoryStore records quiz attempts.
type HistoryStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
}

var _ quiz.Recorder = (*HistoryStore)(nil)

// DifficultySummary is the score for one difficulty.
type DifficultySummary struct {
	Difficulty roman.Difficulty
	Score      quiz.Score
}

// Open initializes the SQLite database at path. ":memory:" is accepted.
func Open(path string) (*HistoryStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "store.Open")
	defer timer.Stop()

	logging.Store("Opening history store at %s", path)

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			logging.StoreError("Failed to create directory %s: %v", dir, err)
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		logging.StoreError("Failed to open database at %s: %v", path, err)
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA synchronous = NORMAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite synchronous=NORMAL: %v", err)
	}

	s := &HistoryStore{db: db, dbPath: path}
	if err := s.initSchema(); err != nil {
		logging.StoreError("Failed to initialize schema: %v", err)
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

func (s *HistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS attempts (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		number INTEGER NOT NULL,
		direction TEXT NOT NULL,
		difficulty TEXT NOT NULL,
		answer TEXT NOT NULL,
		correct INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_attempts_created ON attempts(created_at);
	CREATE INDEX IF NOT EXISTS idx_attempts_difficulty ON attempts(difficulty);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *HistoryStore) Path() string {
	return s.dbPath
}

// Close closes the database connection.
func (s *HistoryStore) Close() error {
	logging.Store("Closing history store")
	return s.db.Close()
}

// Record inserts one attempt. A zero At is stamped with the current time.
func (s *HistoryStore) Record(ctx context.Context, a quiz.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	at := a.At
	if at.IsZero() {
		at = time.Now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts (session_id, number, direction, difficulty, answer, correct, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		a.SessionID, a.Number, string(a.Direction), string(a.Difficulty), a.Answer, a.Correct, at.UTC())
	if err != nil {
		return fmt.Errorf("failed to record attempt: %w", err)
	}
	logging.StoreDebug("recorded attempt session=%s number=%d correct=%v", a.SessionID, a.Number, a.Correct)
	return nil
}

// Recent returns up to limit attempts, newest first.
func (s *HistoryStore) Recent(ctx context.Context, limit int) ([]quiz.Attempt, error) {
	if limit <= 0 {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, number, direction, difficulty, answer, correct, created_at
		FROM attempts
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query attempts: %w", err)
	}
	defer rows.Close()

	var out []quiz.Attempt
	for rows.Next() {
		var (
			a          quiz.Attempt
			direction  string
			difficulty string
		)
		if err := rows.Scan(&a.SessionID, &a.Number, &direction, &difficulty, &a.Answer, &a.Correct, &a.At); err != nil {
			return nil, fmt.Errorf("failed to scan attempt: %w", err)
		}
		a.Direction = quiz.Direction(direction)
		a.Difficulty = roman.Difficulty(difficulty)
		out = append(out, a)
	}
	return out, rows.Err()
}

// Summary returns the score per difficulty, easiest first. Difficulties
// without attempts are omitted.
func (s *HistoryStore) Summary(ctx context.Context) ([]DifficultySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT difficulty, SUM(correct), COUNT(*)
		FROM attempts
		GROUP BY difficulty`)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize attempts: %w", err)
	}
	defer rows.Close()

	byDifficulty := make(map[roman.Difficulty]quiz.Score)
	for rows.Next() {
		var (
			name  string
			score quiz.Score
		)
		if err := rows.Scan(&name, &score.Correct, &score.Total); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		byDifficulty[roman.Difficulty(name)] = score
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var out []DifficultySummary
	for _, d := range roman.Difficulties() {
		if score, ok := byDifficulty[d]; ok {
			out = append(out, DifficultySummary{Difficulty: d, Score: score})
		}
	}
	return out, nil
}

// Count returns the number of recorded attempts.
func (s *HistoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM attempts").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count attempts: %w", err)
	}
	return n, nil
}

// Clear deletes every attempt.
func (s *HistoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM attempts"); err != nil {
		return fmt.Errorf("failed to clear attempts: %w", err)
	}
	logging.Store("history cleared")
	return nil
}
