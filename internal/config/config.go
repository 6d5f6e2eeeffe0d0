// Package config provides configuration management for the analysis
// engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"options-engine/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Data     DataConfig     `mapstructure:"data"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AnalysisConfig holds analyzer-related configuration. The refresh
// interval is caller policy; the core itself is a pure function of its
// inputs.
type AnalysisConfig struct {
	RiskFreeRate    float64       `mapstructure:"risk_free_rate"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	MinHistory      int           `mapstructure:"min_history"`
}

// DataConfig holds data source configuration.
type DataConfig struct {
	DatabasePath string `mapstructure:"database_path"`
	CSVDir       string `mapstructure:"csv_dir"`
	CatalogPath  string `mapstructure:"catalog_path"` // empty = built-in catalog
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSize    int    `mapstructure:"max_size"` // megabytes
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"` // days
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-engine"
	}
	return filepath.Join(home, ".config", "options-engine")
}

// Default returns the built-in configuration.
func Default() *Config {
	dir := DefaultConfigDir()
	return &Config{
		Analysis: AnalysisConfig{
			RiskFreeRate:    0.05,
			RefreshInterval: 30 * time.Second,
			MinHistory:      60,
		},
		Data: DataConfig{
			DatabasePath: filepath.Join(dir, "engine.db"),
			CSVDir:       filepath.Join(dir, "history"),
		},
		UI: UIConfig{ColorEnabled: true},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    true,
			File:       true,
			FilePath:   filepath.Join(dir, "logs", "engine.log"),
			MaxSize:    100,
			MaxBackups: 7,
			MaxAge:     30,
		},
	}
}

// Load loads configuration from the specified directory. If configDir
// is empty, the default config directory is used. A missing config
// file is not an error; defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	defaults := Default()
	v.SetDefault("analysis.risk_free_rate", defaults.Analysis.RiskFreeRate)
	v.SetDefault("analysis.refresh_interval", defaults.Analysis.RefreshInterval)
	v.SetDefault("analysis.min_history", defaults.Analysis.MinHistory)
	v.SetDefault("data.database_path", defaults.Data.DatabasePath)
	v.SetDefault("data.csv_dir", defaults.Data.CSVDir)
	v.SetDefault("data.catalog_path", defaults.Data.CatalogPath)
	v.SetDefault("ui.color_enabled", defaults.UI.ColorEnabled)
	v.SetDefault("logging.level", defaults.Logging.Level)
	v.SetDefault("logging.console", defaults.Logging.Console)
	v.SetDefault("logging.file", defaults.Logging.File)
	v.SetDefault("logging.file_path", defaults.Logging.FilePath)
	v.SetDefault("logging.max_size", defaults.Logging.MaxSize)
	v.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)
	v.SetDefault("logging.max_age", defaults.Logging.MaxAge)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Analysis.RiskFreeRate < 0 || c.Analysis.RiskFreeRate > 1 {
		return errors.Wrapf(errors.ErrConfigInvalid, "risk_free_rate %v out of range", c.Analysis.RiskFreeRate)
	}
	if c.Analysis.RefreshInterval < time.Second {
		return errors.Wrapf(errors.ErrConfigInvalid, "refresh_interval %v too small", c.Analysis.RefreshInterval)
	}
	if c.Analysis.MinHistory < 2 {
		return errors.Wrapf(errors.ErrConfigInvalid, "min_history %d too small", c.Analysis.MinHistory)
	}
	return nil
}
