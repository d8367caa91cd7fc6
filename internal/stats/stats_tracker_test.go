package stats

import (
	"context"
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bneradt/roman.brianneradt.com/internal/quiz"
	"github.com/bneradt/roman.brianneradt.com/internal/roman"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func attempt(d roman.Difficulty, dir quiz.Direction, correct bool) quiz.Attempt {
	return quiz.Attempt{Difficulty: d, Direction: dir, Correct: correct}
}

func TestTracker_RecordAggregatesAndPersists(t *testing.T) {
	dir := t.TempDir()
	tracker, err := NewTracker(dir, "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = tracker.Close() })

	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, tracker.Record(ctx, attempt(roman.Easy, quiz.ArabicToRoman, true)))
	require.NoError(t, tracker.Record(ctx, attempt(roman.Easy, quiz.RomanToArabic, true)))
	require.NoError(t, tracker.Record(ctx, attempt(roman.Hard, quiz.ArabicToRoman, false)))
	last := attempt(roman.Hard, quiz.ArabicToRoman, true)
	last.At = at
	require.NoError(t, tracker.Record(ctx, last))

	want := AggregatedStats{
		Total: quiz.Score{Correct: 3, Total: 4},
		ByDifficulty: map[string]quiz.Score{
			"easy": {Correct: 2, Total: 2},
			"hard": {Correct: 1, Total: 2},
		},
		ByDirection: map[string]quiz.Score{
			"arabic-to-roman": {Correct: 2, Total: 3},
			"roman-to-arabic": {Correct: 1, Total: 1},
		},
		BestStreak:  2,
		Streak:      1,
		LastAttempt: at,
	}
	if diff := cmp.Diff(want, tracker.Stats()); diff != "" {
		t.Fatalf("Stats() mismatch (-want +got):\n%s", diff)
	}

	require.NoError(t, tracker.Save())

	data, err := os.ReadFile(filepath.Join(dir, DefaultFileName))
	require.NoError(t, err)
	var persisted ScoreData
	require.NoError(t, json.Unmarshal(data, &persisted))
	assert.Equal(t, "1.0", persisted.Version)
	assert.Equal(t, 4, persisted.Aggregate.Total.Total)

	reloaded, err := NewTracker(dir, "")
	require.NoError(t, err)
	if diff := cmp.Diff(want, reloaded.Stats()); diff != "" {
		t.Fatalf("reloaded Stats() mismatch (-want +got):\n%s", diff)
	}
}

func TestTracker_StatsIsACopy(t *testing.T) {
	tracker, err := NewTracker(t.TempDir(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = tracker.Close() })

	require.NoError(t, tracker.Record(context.Background(), attempt(roman.Easy, quiz.ArabicToRoman, true)))
	s := tracker.Stats()
	s.ByDifficulty["easy"] = quiz.Score{Total: 99}
	assert.Equal(t, 1, tracker.Stats().ByDifficulty["easy"].Total)
}

func TestTracker_AutoSave(t *testing.T) {
	dir := t.TempDir()
	tracker, err := NewTracker(dir, "auto.json")
	require.NoError(t, err)
	tracker.debounce = 10 * time.Millisecond

	require.NoError(t, tracker.Record(context.Background(), attempt(roman.Medium, quiz.ArabicToRoman, true)))

	assert.Eventually(t, func() bool {
		_, err := os.Stat(filepath.Join(dir, "auto.json"))
		return err == nil
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, tracker.Close())
}

func TestTracker_AutoSaveRetriesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	tracker, err := NewTracker(dir, "retry.json")
	require.NoError(t, err)
	tracker.debounce = 10 * time.Millisecond

	tracker.mu.Lock()
	tracker.filePath = filepath.Join(dir, "missing", "retry.json")
	tracker.mu.Unlock()

	require.NoError(t, tracker.Record(context.Background(), attempt(roman.Easy, quiz.ArabicToRoman, true)))
	assert.Eventually(t, func() bool {
		tracker.mu.Lock()
		defer tracker.mu.Unlock()
		return tracker.autoSaveTimer == nil
	}, 2*time.Second, 5*time.Millisecond, "failed autosave must clear the timer")

	tracker.mu.Lock()
	assert.True(t, tracker.dirty, "failed autosave must keep unsaved changes")
	tracker.filePath = filepath.Join(dir, "retry.json")
	tracker.mu.Unlock()

	require.NoError(t, tracker.Record(context.Background(), attempt(roman.Easy, quiz.ArabicToRoman, false)))
	assert.Eventually(t, func() bool {
		data, err := os.ReadFile(filepath.Join(dir, "retry.json"))
		if err != nil {
			return false
		}
		var persisted ScoreData
		return json.Unmarshal(data, &persisted) == nil && persisted.Aggregate.Total.Total == 2
	}, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, tracker.Close())
}

func TestTracker_CloseFlushes(t *testing.T) {
	dir := t.TempDir()
	tracker, err := NewTracker(dir, "")
	require.NoError(t, err)

	require.NoError(t, tracker.Record(context.Background(), attempt(roman.Master, quiz.RomanToArabic, false)))
	require.NoError(t, tracker.Close())

	reloaded, err := NewTracker(dir, "")
	require.NoError(t, err)
	assert.Equal(t, quiz.Score{Total: 1}, reloaded.Stats().Total)
}

func TestTracker_Reset(t *testing.T) {
	dir := t.TempDir()
	tracker, err := NewTracker(dir, "")
	require.NoError(t, err)

	require.NoError(t, tracker.Record(context.Background(), attempt(roman.Easy, quiz.ArabicToRoman, true)))
	require.NoError(t, tracker.Reset())
	assert.Equal(t, quiz.Score{}, tracker.Stats().Total)
	assert.Empty(t, tracker.Stats().ByDifficulty)
	require.NoError(t, tracker.Close())

	reloaded, err := NewTracker(dir, "")
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.Stats().Total.Total)
}

func TestTracker_CorruptFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultFileName), []byte("{not json"), 0644))

	tracker, err := NewTracker(dir, "")
	require.NoError(t, err)
	assert.Equal(t, quiz.Score{}, tracker.Stats().Total)
	assert.NotNil(t, tracker.Stats().ByDirection)
}

func TestTracker_AsQuizRecorder(t *testing.T) {
	tracker, err := NewTracker(t.TempDir(), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = tracker.Close() })

	s := quiz.New(quiz.Options{Difficulty: roman.Easy, Recorder: tracker, Random: roman.NewGenerator(rand.NewPCG(1, 1))})
	_, err = s.Check(context.Background(), s.CorrectAnswer())
	require.NoError(t, err)
	assert.Equal(t, quiz.Score{Correct: 1, Total: 1}, tracker.Stats().Total)
}

func TestTracker_ContextHelpers(t *testing.T) {
	tracker, err := NewTracker(t.TempDir(), "")
	require.NoError(t, err)

	ctx := NewContext(context.Background(), tracker)
	assert.Same(t, tracker, FromContext(ctx))
	assert.Nil(t, FromContext(context.Background()))
}
