package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/randomizedcoder/handoff-queue/internal/logging"
	"github.com/randomizedcoder/handoff-queue/internal/tick"
	"github.com/randomizedcoder/handoff-queue/internal/workload"
)

// Config represents the complete queuebench configuration
type Config struct {
	Workload WorkloadConfig `mapstructure:"workload" yaml:"workload"`
	Report   ReportConfig   `mapstructure:"report" yaml:"report"`
	Logging  LoggingConfig  `mapstructure:"logging" yaml:"logging"`
}

// WorkloadConfig describes the producer/consumer load put on a queue
type WorkloadConfig struct {
	// Impl selects the queue implementation: "handoff" or "broadcast"
	Impl string `mapstructure:"impl" yaml:"impl"`

	Producers int `mapstructure:"producers" yaml:"producers"`
	Consumers int `mapstructure:"consumers" yaml:"consumers"`

	// Items is the total number of items put, split across producers
	Items int `mapstructure:"items" yaml:"items"`

	// Duration caps the run (0 = run until every item is taken)
	Duration time.Duration `mapstructure:"duration" yaml:"duration"`

	// TryRatio is the fraction of consumers polling with TryTake (0.0-1.0)
	TryRatio float64 `mapstructure:"try_ratio" yaml:"try_ratio"`
}

// ReportConfig controls periodic stats and the final report
type ReportConfig struct {
	// Interval between "stats" log records during a run
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`

	// Ticker selects how the interval is measured: "std", "atomic" or "batch"
	Ticker string `mapstructure:"ticker" yaml:"ticker"`

	// Output selects the final report format: "table", "yaml" or "json"
	Output string `mapstructure:"output" yaml:"output"`
}

// LoggingConfig controls structured log output
type LoggingConfig struct {
	// Level is the minimum level written: "debug", "info", "warn" or "error"
	Level string `mapstructure:"level" yaml:"level"`

	// Format is "json" or "text"
	Format string `mapstructure:"format" yaml:"format"`
}

// Report output formats
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
	OutputJSON  = "json"
)

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Workload: WorkloadConfig{
			Impl:      workload.ImplHandoff,
			Producers: 4,
			Consumers: 4,
			Items:     1_000_000,
			Duration:  0,
			TryRatio:  0,
		},
		Report: ReportConfig{
			Interval: tick.DefaultInterval,
			Ticker:   tick.KindAtomic,
			Output:   OutputTable,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: logging.FormatJSON,
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("workload.impl", defaults.Workload.Impl)
	viper.SetDefault("workload.producers", defaults.Workload.Producers)
	viper.SetDefault("workload.consumers", defaults.Workload.Consumers)
	viper.SetDefault("workload.items", defaults.Workload.Items)
	viper.SetDefault("workload.duration", defaults.Workload.Duration)
	viper.SetDefault("workload.try_ratio", defaults.Workload.TryRatio)

	viper.SetDefault("report.interval", defaults.Report.Interval)
	viper.SetDefault("report.ticker", defaults.Report.Ticker)
	viper.SetDefault("report.output", defaults.Report.Output)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.format", defaults.Logging.Format)
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}

	return &cfg, nil
}

// WorkloadRun converts the workload and report sections into a
// workload.Config
func (c *Config) WorkloadRun() workload.Config {
	return workload.Config{
		Impl:           c.Workload.Impl,
		Producers:      c.Workload.Producers,
		Consumers:      c.Workload.Consumers,
		Items:          c.Workload.Items,
		Duration:       c.Workload.Duration,
		TryRatio:       c.Workload.TryRatio,
		ReportInterval: c.Report.Interval,
		Ticker:         c.Report.Ticker,
	}
}

// Marshal renders the configuration as YAML
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes the configuration as YAML to path, creating parent
// directories as needed
func (c *Config) WriteFile(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "queuebench")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".queuebench"
	}
	return filepath.Join(home, ".config", "queuebench")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "queuebench.yaml")
}
