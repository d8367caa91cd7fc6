package main

import (
	"fmt"
	"os"

	"github.com/bneradt/roman.brianneradt.com/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var configInit bool

// configCmd shows or creates the config file
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Prints the configuration after defaults, the config file and
environment overrides (ROMAN_DATA_DIR, ROMAN_DIFFICULTY, ROMAN_DIRECTION,
ROMAN_MODE, ROMAN_DARK_MODE) are applied.

  --init  write a default config file if none exists`,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&configInit, "init", false, "Write a default config file")
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := resolvedConfigPath()

	if configInit {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
		if err := config.DefaultConfig().Save(path); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", path)
		return nil
	}

	data, err := yaml.Marshal(currentConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	fmt.Printf("# %s\n%s", path, data)
	return nil
}
