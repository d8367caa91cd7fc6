package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bneradt/roman.brianneradt.com/cmd/roman/ui"
	"github.com/bneradt/roman.brianneradt.com/internal/config"
	"github.com/bneradt/roman.brianneradt.com/internal/quiz"
	"github.com/bneradt/roman.brianneradt.com/internal/roman"
	"github.com/bneradt/roman.brianneradt.com/internal/stats"
	"github.com/bneradt/roman.brianneradt.com/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	quizDifficulty string
	quizDirection  string
)

// quizCmd opens the interactive interface on the quiz
var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Practice conversions in the interactive quiz",
	Long: `Starts the interactive interface on the quiz page. Answers are scored and
recorded in the data directory.

Difficulties: easy (1-10), medium (1-100), hard (1-1000),
expert (1-3999), master (1-3,999,999).`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().StringVarP(&quizDifficulty, "difficulty", "d", "", "Difficulty preset (default from config)")
	quizCmd.Flags().StringVar(&quizDirection, "direction", "", "arabic-to-roman or roman-to-arabic (default from config)")
}

// appOptions selects the starting state of the interface.
type appOptions struct {
	start      ui.Page
	difficulty roman.Difficulty
	direction  quiz.Direction
}

// pinned reports which settings came from flags so config reloads skip them.
func (o appOptions) pinned() ui.Pinned {
	return ui.Pinned{
		Difficulty: o.difficulty != "",
		Direction:  o.direction != "",
	}
}

func runQuiz(cmd *cobra.Command, args []string) error {
	opts := appOptions{start: ui.PageQuiz}
	if quizDifficulty != "" {
		d, err := roman.ParseDifficulty(quizDifficulty)
		if err != nil {
			return err
		}
		opts.difficulty = d
	}
	if quizDirection != "" {
		d, err := quiz.ParseDirection(quizDirection)
		if err != nil {
			return err
		}
		opts.direction = d
	}
	return runApp(opts)
}

// newSession builds a quiz session from the config, with flag overrides and
// whichever recorders are available.
func newSession(c *config.Config, opts appOptions, tracker *stats.Tracker, history *store.HistoryStore) *quiz.Session {
	var recorders quiz.MultiRecorder
	if tracker != nil {
		recorders = append(recorders, tracker)
	}
	if history != nil {
		recorders = append(recorders, history)
	}

	difficulty := c.Difficulty()
	if opts.difficulty != "" {
		difficulty = opts.difficulty
	}
	direction := c.Direction()
	if opts.direction != "" {
		direction = opts.direction
	}
	return quiz.New(quiz.Options{
		Difficulty: difficulty,
		Direction:  direction,
		Recorder:   recorders,
	})
}

// runApp launches the interactive interface. Storage failures degrade to an
// interface without stats.
func runApp(opts appOptions) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := currentConfig()

	tracker, err := openTracker()
	if err != nil {
		logger.Warn("scores unavailable", zap.Error(err))
	} else {
		defer tracker.Close()
		ctx = stats.NewContext(ctx, tracker)
	}

	history, err := openHistory()
	if err != nil {
		logger.Warn("history unavailable", zap.Error(err))
	} else {
		defer history.Close()
	}

	app := ui.NewApp(ctx, ui.Options{
		Config:  c,
		Session: newSession(c, opts, tracker, history),
		History: history,
		Start:   opts.start,
		Pinned:  opts.pinned(),
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx))

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			p.Quit()
		case <-ctx.Done():
		}
	}()

	watcher, err := config.Watch(ctx, resolvedConfigPath(), func(next *config.Config) {
		if dataDir != "" {
			next.Storage.DataDir = dataDir
		}
		p.Send(ui.ConfigChangedMsg{Config: next})
	})
	if err != nil {
		logger.Debug("config watch disabled", zap.Error(err))
	} else {
		defer watcher.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interface error: %w", err)
	}
	return nil
}
