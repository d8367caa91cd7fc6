package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bneradt/roman.brianneradt.com/internal/convert"
	"github.com/bneradt/roman.brianneradt.com/internal/quiz"
	"github.com/bneradt/roman.brianneradt.com/internal/roman"

	"gopkg.in/yaml.v3"
)

const (
	// DirName is the per-user directory under $HOME.
	DirName = ".roman"
	// FileName is the config file inside DirName.
	FileName = "config.yaml"
)

// Config holds all roman configuration.
type Config struct {
	Quiz      QuizConfig      `yaml:"quiz"`
	Converter ConverterConfig `yaml:"converter"`
	Storage   StorageConfig   `yaml:"storage"`
	UI        UIConfig        `yaml:"ui"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// QuizConfig holds the quiz defaults.
type QuizConfig struct {
	Difficulty string `yaml:"difficulty"` // easy, medium, hard, expert, master
	Direction  string `yaml:"direction"`  // arabic-to-roman, roman-to-arabic
}

// ConverterConfig holds the converter defaults.
type ConverterConfig struct {
	Mode string `yaml:"mode"` // auto, arabic, roman
}

// StorageConfig locates persisted state.
type StorageConfig struct {
	DataDir    string `yaml:"data_dir"`
	HistoryDB  string `yaml:"history_db"`  // relative to data_dir unless absolute
	ScoresFile string `yaml:"scores_file"` // relative to data_dir unless absolute
}

// UIConfig holds TUI preferences.
type UIConfig struct {
	// DarkMode forces the theme; nil means detect from the terminal.
	DarkMode *bool `yaml:"dark_mode,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Quiz: QuizConfig{
			Difficulty: string(roman.Medium),
			Direction:  string(quiz.ArabicToRoman),
		},
		Converter: ConverterConfig{
			Mode: string(convert.ModeAuto),
		},
		Storage: StorageConfig{
			DataDir:    filepath.Join("~", DirName),
			HistoryDB:  "history.db",
			ScoresFile: "scores.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns ~/.roman/config.yaml, or a relative path when the home
// directory cannot be determined.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(DirName, FileName)
	}
	return filepath.Join(home, DirName, FileName)
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults. Environment overrides are applied in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	// Override with environment variables
	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if dir := os.Getenv("ROMAN_DATA_DIR"); dir != "" {
		c.Storage.DataDir = dir
	}
	if d := os.Getenv("ROMAN_DIFFICULTY"); d != "" {
		c.Quiz.Difficulty = d
	}
	if d := os.Getenv("ROMAN_DIRECTION"); d != "" {
		c.Quiz.Direction = d
	}
	if m := os.Getenv("ROMAN_MODE"); m != "" {
		c.Converter.Mode = m
	}
	if v := os.Getenv("ROMAN_DARK_MODE"); v != "" {
		if dark, err := strconv.ParseBool(v); err == nil {
			c.UI.DarkMode = &dark
		}
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := roman.ParseDifficulty(c.Quiz.Difficulty); err != nil {
		return fmt.Errorf("quiz.difficulty: %w", err)
	}
	if _, err := quiz.ParseDirection(c.Quiz.Direction); err != nil {
		return fmt.Errorf("quiz.direction: %w", err)
	}
	if _, err := convert.ParseMode(c.Converter.Mode); err != nil {
		return fmt.Errorf("converter.mode: %w", err)
	}
	if strings.TrimSpace(c.Storage.DataDir) == "" {
		return fmt.Errorf("storage.data_dir must not be empty")
	}
	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format: unknown format %q (valid: text, json)", c.Logging.Format)
	}
	return nil
}

// Difficulty returns the parsed quiz difficulty, falling back to Medium.
func (c *Config) Difficulty() roman.Difficulty {
	d, err := roman.ParseDifficulty(c.Quiz.Difficulty)
	if err != nil {
		return roman.Medium
	}
	return d
}

// Direction returns the parsed quiz direction, falling back to Arabic to Roman.
func (c *Config) Direction() quiz.Direction {
	d, err := quiz.ParseDirection(c.Quiz.Direction)
	if err != nil {
		return quiz.ArabicToRoman
	}
	return d
}

// Mode returns the parsed converter mode, falling back to auto.
func (c *Config) Mode() convert.Mode {
	m, err := convert.ParseMode(c.Converter.Mode)
	if err != nil {
		return convert.ModeAuto
	}
	return m
}

// DataDir returns the data directory with a leading ~ expanded.
func (c *Config) DataDir() string {
	return expandHome(c.Storage.DataDir)
}

// HistoryPath returns the attempt history database path.
func (c *Config) HistoryPath() string {
	return c.resolve(c.Storage.HistoryDB, "history.db")
}

// ScoresPath returns the score tracker file path.
func (c *Config) ScoresPath() string {
	return c.resolve(c.Storage.ScoresFile, "scores.json")
}

func (c *Config) resolve(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	name = expandHome(name)
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir(), name)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
