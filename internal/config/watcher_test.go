package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, DefaultConfig().Save(path))

	changes := make(chan *Config, 4)
	w, err := Watch(context.Background(), path, func(c *Config) { changes <- c })
	require.NoError(t, err)
	defer w.Stop()

	cfg := DefaultConfig()
	cfg.Quiz.Difficulty = "expert"
	require.NoError(t, cfg.Save(path))

	select {
	case got := <-changes:
		assert.Equal(t, "expert", got.Quiz.Difficulty)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload observed")
	}
}

func TestWatcher_SkipsInvalidAndOtherFiles(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, DefaultConfig().Save(path))

	changes := make(chan *Config, 4)
	w, err := Watch(context.Background(), path, func(c *Config) { changes <- c })
	require.NoError(t, err)
	defer w.Stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("quiz: {difficulty: easy}"), 0644))
	require.NoError(t, os.WriteFile(path, []byte("quiz: {difficulty: impossible}"), 0644))

	select {
	case got := <-changes:
		t.Fatalf("unexpected reload: %+v", got)
	case <-time.After(600 * time.Millisecond):
	}
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	ctx, cancel := context.WithCancel(context.Background())

	w, err := Watch(ctx, path, nil)
	require.NoError(t, err)
	cancel()

	select {
	case <-w.doneCh:
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop after cancel")
	}
	w.Stop()
}

func TestWatcher_StopWithoutStart(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), FileName), nil)
	require.NoError(t, err)
	w.Stop()
	w.Stop()
}

func TestWatch_MissingDirectory(t *testing.T) {
	_, err := Watch(context.Background(), filepath.Join(t.TempDir(), "missing", FileName), nil)
	assert.Error(t, err)
}
