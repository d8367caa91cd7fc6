package stats

import (
	"time"

	"github.com/bneradt/roman.brianneradt.com/internal/quiz"
)

// ScoreData represents the root structure stored in persistence.
type ScoreData struct {
	Version   string          `json:"version"`
	Aggregate AggregatedStats `json:"aggregate"`
}

// AggregatedStats holds counters broken down by quiz dimension.
type AggregatedStats struct {
	Total        quiz.Score            `json:"total"`
	ByDifficulty map[string]quiz.Score `json:"by_difficulty"`
	ByDirection  map[string]quiz.Score `json:"by_direction"`
	BestStreak   int                   `json:"best_streak"`
	Streak       int                   `json:"streak"`
	LastAttempt  time.Time             `json:"last_attempt,omitempty"`
}

func newAggregate() AggregatedStats {
	return AggregatedStats{
		ByDifficulty: make(map[string]quiz.Score),
		ByDirection:  make(map[string]quiz.Score),
	}
}

func addToMap(m map[string]quiz.Score, key string, correct bool) {
	entry := m[key]
	entry.Add(correct)
	m[key] = entry
}

func copyScoreMap(src map[string]quiz.Score) map[string]quiz.Score {
	if src == nil {
		return nil
	}
	dst := make(map[string]quiz.Score, len(src))
	for key, s := range src {
		dst[key] = s
	}
	return dst
}
