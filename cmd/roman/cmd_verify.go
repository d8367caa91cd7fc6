package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bneradt/roman.brianneradt.com/internal/selfcheck"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	verifyWorkers int
	verifyMax     int
	verifyJSON    bool
)

// verifyCmd runs the exhaustive round-trip check
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Verify every value round-trips through the encoder and decoder",
	Long: `Encodes and decodes every value in 1..3,999 (plain) and 1..3,999,999
(vinculum), checking that the decoder returns the original value and that the
validator accepts every encoding.`,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().IntVarP(&verifyWorkers, "workers", "j", 0, "Parallel workers (default: GOMAXPROCS)")
	verifyCmd.Flags().IntVar(&verifyMax, "max", 0, "Upper bound of the extended range (default: 3,999,999)")
	verifyCmd.Flags().BoolVar(&verifyJSON, "json", false, "Print the report as JSON")
}

func runVerify(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("Received shutdown signal")
			cancel()
		case <-ctx.Done():
		}
	}()

	report, err := selfcheck.Run(ctx, selfcheck.Options{Workers: verifyWorkers, Max: verifyMax})
	if err != nil {
		logger.Error("verification failed", zap.Error(err))
		return err
	}

	if verifyJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("PASS  plain %s values, extended %s values, %d workers, %s\n",
		humanize.Comma(int64(report.Plain)), humanize.Comma(int64(report.Extended)), report.Workers, report.Duration.Round(time.Millisecond))
	return nil
}
