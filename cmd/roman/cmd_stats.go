package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bneradt/roman.brianneradt.com/internal/stats"
	"github.com/bneradt/roman.brianneradt.com/internal/store"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	statsHistory int
	statsReset   bool
)

// statsCmd shows quiz results
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show quiz scores and recent attempts",
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsHistory, "history", 10, "Number of recent attempts to show")
	statsCmd.Flags().BoolVar(&statsReset, "reset", false, "Clear scores and attempt history")
}

// openTracker opens the score tracker at the configured path.
func openTracker() (*stats.Tracker, error) {
	p := currentConfig().ScoresPath()
	return stats.NewTracker(filepath.Dir(p), filepath.Base(p))
}

// openHistory opens the attempt history at the configured path.
func openHistory() (*store.HistoryStore, error) {
	return store.Open(currentConfig().HistoryPath())
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	tracker, err := openTracker()
	if err != nil {
		return fmt.Errorf("failed to open scores: %w", err)
	}
	defer tracker.Close()

	history, err := openHistory()
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer history.Close()

	if statsReset {
		if err := tracker.Reset(); err != nil {
			return err
		}
		if err := history.Clear(ctx); err != nil {
			return err
		}
		logger.Info("stats reset", zap.String("scores", tracker.Path()), zap.String("history", history.Path()))
		fmt.Println("Scores and history cleared.")
		return nil
	}

	agg := tracker.Stats()
	if agg.Total.Total == 0 {
		fmt.Println("No quiz answers recorded yet. Run 'roman quiz' to start.")
		return nil
	}

	fmt.Println("Quiz Statistics")
	fmt.Println(strings.Repeat("─", 40))
	fmt.Printf("Answered:  %d\n", agg.Total.Total)
	fmt.Printf("Correct:   %d (%d%%)\n", agg.Total.Correct, agg.Total.Percent())
	fmt.Printf("Streak:    %d (best %d)\n", agg.Streak, agg.BestStreak)
	if !agg.LastAttempt.IsZero() {
		fmt.Printf("Last:      %s\n", humanize.Time(agg.LastAttempt))
	}

	summary, err := history.Summary(ctx)
	if err != nil {
		return err
	}
	if len(summary) > 0 {
		fmt.Println()
		fmt.Println("By difficulty")
		for _, s := range summary {
			fmt.Printf("  %-24s %4d/%-4d %3d%%\n", s.Difficulty.Label(), s.Score.Correct, s.Score.Total, s.Score.Percent())
		}
	}

	if statsHistory > 0 {
		recent, err := history.Recent(ctx, statsHistory)
		if err != nil {
			return err
		}
		if len(recent) > 0 {
			fmt.Println()
			fmt.Println("Recent attempts")
			for _, a := range recent {
				mark := "✓"
				if !a.Correct {
					mark = "✗"
				}
				fmt.Printf("  %s  %-14s %-18s %-10d %s\n", mark, humanize.Time(a.At), a.Direction.Label(), a.Number, a.Answer)
			}
		}
	}

	return nil
}
