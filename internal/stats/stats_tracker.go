// Package stats keeps lifetime quiz scores in a small JSON file.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bneradt/roman.brianneradt.com/internal/logging"
	"github.com/bneradt/roman.brianneradt.com/internal/quiz"
)

const (
	// DefaultFileName is the scores file inside the data directory.
	DefaultFileName = "scores.json"

	dataVersion      = "1.0"
	autoSaveDebounce = 5 * time.Second
)

type contextKey struct{}

// Tracker aggregates quiz attempts and persists them.
type Tracker struct {
	mu            sync.Mutex
	data          ScoreData
	filePath      string
	dirty         bool
	autoSaveTimer *time.Timer
	debounce      time.Duration
}

var _ quiz.Recorder = (*Tracker)(nil)

// NewTracker creates a tracker persisted at dataDir/fileName. An empty
// fileName uses DefaultFileName. A corrupt file is logged and replaced by
// empty stats on the next save.
func NewTracker(dataDir, fileName string) (*Tracker, error) {
	if fileName == "" {
		fileName = DefaultFileName
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}

	t := &Tracker{
		filePath: filepath.Join(dataDir, fileName),
		data:     ScoreData{Version: dataVersion, Aggregate: newAggregate()},
		debounce: autoSaveDebounce,
	}

	if err := t.Load(); err != nil {
		logging.StatsError("failed to load %s, starting empty: %v", t.filePath, err)
		t.data = ScoreData{Version: dataVersion, Aggregate: newAggregate()}
	}
	return t, nil
}

// Path returns the scores file path.
func (t *Tracker) Path() string { return t.filePath }

// Load reads the score data from disk.
func (t *Tracker) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	data, err := os.ReadFile(t.filePath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	var loaded ScoreData
	if err := json.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("parse %s: %w", t.filePath, err)
	}

	// Ensure maps are initialized if file was empty/partial
	if loaded.Aggregate.ByDifficulty == nil {
		loaded.Aggregate.ByDifficulty = make(map[string]quiz.Score)
	}
	if loaded.Aggregate.ByDirection == nil {
		loaded.Aggregate.ByDirection = make(map[string]quiz.Score)
	}
	t.data = loaded
	return nil
}

// Save writes the score data to disk.
func (t *Tracker) Save() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.saveLocked()
}

func (t *Tracker) saveLocked() error {
	data, err := json.MarshalIndent(t.data, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(t.filePath, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", t.filePath, err)
	}
	t.dirty = false
	return nil
}

// Record adds one attempt to the aggregates and schedules a save.
func (t *Tracker) Record(_ context.Context, a quiz.Attempt) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	agg := &t.data.Aggregate
	agg.Total.Add(a.Correct)
	addToMap(agg.ByDifficulty, string(a.Difficulty), a.Correct)
	addToMap(agg.ByDirection, string(a.Direction), a.Correct)
	if a.Correct {
		agg.Streak++
		if agg.Streak > agg.BestStreak {
			agg.BestStreak = agg.Streak
		}
	} else {
		agg.Streak = 0
	}
	if !a.At.IsZero() {
		agg.LastAttempt = a.At
	}

	// Debounced auto-save
	t.dirty = true
	if t.autoSaveTimer == nil {
		var timer *time.Timer
		timer = time.AfterFunc(t.debounce, func() { t.autoSave(timer) })
		t.autoSaveTimer = timer
	}
	return nil
}

// autoSave runs when timer fires. Clearing the timer first lets the next
// Record schedule a retry when the write fails.
func (t *Tracker) autoSave(timer *time.Timer) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.autoSaveTimer == timer {
		t.autoSaveTimer = nil
	}
	if !t.dirty {
		return
	}
	if err := t.saveLocked(); err != nil {
		logging.StatsError("autosave failed: %v", err)
	}
}

// Reset clears every counter and saves immediately.
func (t *Tracker) Reset() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTimerLocked()
	t.data = ScoreData{Version: dataVersion, Aggregate: newAggregate()}
	logging.Stats("scores reset")
	return t.saveLocked()
}

// Close cancels a pending autosave and flushes unsaved changes.
func (t *Tracker) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopTimerLocked()
	if !t.dirty {
		return nil
	}
	return t.saveLocked()
}

func (t *Tracker) stopTimerLocked() {
	if t.autoSaveTimer != nil {
		t.autoSaveTimer.Stop()
		t.autoSaveTimer = nil
	}
}

// Stats returns a copy of the aggregated stats.
func (t *Tracker) Stats() AggregatedStats {
	t.mu.Lock()
	defer t.mu.Unlock()
	stats := t.data.Aggregate
	stats.ByDifficulty = copyScoreMap(stats.ByDifficulty)
	stats.ByDirection = copyScoreMap(stats.ByDirection)
	return stats
}

// NewContext returns a new context carrying the tracker.
func NewContext(ctx context.Context, t *Tracker) context.Context {
	return context.WithValue(ctx, contextKey{}, t)
}

// FromContext retrieves the tracker from the context.
func FromContext(ctx context.Context) *Tracker {
	t, _ := ctx.Value(contextKey{}).(*Tracker)
	return t
}
