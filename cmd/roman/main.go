package main

import (
	"fmt"
	"os"

	"github.com/bneradt/roman.brianneradt.com/internal/config"
	"github.com/bneradt/roman.brianneradt.com/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataDir    string

	// Logger
	logger *zap.Logger

	// Resolved configuration
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "roman",
	Short: "Roman numeral converter, trainer and reference",
	Long: `roman converts between Arabic numbers and Roman numerals, including the
vinculum (overline) notation for values up to 3,999,999.

Run without arguments to start the interactive interface.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize logger
		zc := zap.NewProductionConfig()
		zc.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return loadConfig()
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the interactive interface
		return runApp(appOptions{})
	},
}

// loadConfig resolves the config file, applies flag overrides and starts
// file logging.
func loadConfig() error {
	path := resolvedConfigPath()
	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if dataDir != "" {
		loaded.Storage.DataDir = dataDir
	}
	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", path, err)
	}
	cfg = loaded

	if err := logging.Initialize(cfg.DataDir(), cfg.Logging.Options()); err != nil {
		logger.Warn("file logging disabled", zap.Error(err))
	}
	logging.Boot("config loaded from %s", path)
	logger.Debug("config loaded", zap.String("path", path), zap.String("data_dir", cfg.DataDir()))
	return nil
}

func resolvedConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// currentConfig returns the loaded config, or the defaults when commands are
// invoked without the root pre-run.
func currentConfig() *config.Config {
	if cfg == nil {
		return config.DefaultConfig()
	}
	return cfg
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.roman/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Data directory for scores, history and logs")

	// Add commands to root
	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(encodeCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(randomCmd)
	rootCmd.AddCommand(referenceCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
