package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"

	"github.com/randomizedcoder/handoff-queue/internal/tick"
	"github.com/randomizedcoder/handoff-queue/internal/workload"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg == nil {
		t.Fatal("Default() returned nil")
	}

	if cfg.Workload.Impl != workload.ImplHandoff {
		t.Errorf("Workload.Impl = %q, want %q", cfg.Workload.Impl, workload.ImplHandoff)
	}
	if cfg.Workload.Producers != 4 {
		t.Errorf("Workload.Producers = %d, want 4", cfg.Workload.Producers)
	}
	if cfg.Workload.Consumers != 4 {
		t.Errorf("Workload.Consumers = %d, want 4", cfg.Workload.Consumers)
	}
	if cfg.Workload.Duration != 0 {
		t.Errorf("Workload.Duration = %v, want 0", cfg.Workload.Duration)
	}
	if cfg.Report.Interval != tick.DefaultInterval {
		t.Errorf("Report.Interval = %v, want %v", cfg.Report.Interval, tick.DefaultInterval)
	}
	if cfg.Report.Output != OutputTable {
		t.Errorf("Report.Output = %q, want %q", cfg.Report.Output, OutputTable)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "info")
	}

	if errs := cfg.Validate(); len(errs) != 0 {
		t.Errorf("Default() should be valid, got %v", ValidationErrors(errs))
	}
}

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	if *cfg != *want {
		t.Errorf("Load() = %+v, want %+v", *cfg, *want)
	}
}

func TestLoad_FromFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	path := filepath.Join(t.TempDir(), "queuebench.yaml")
	content := `workload:
  impl: broadcast
  consumers: 16
  duration: 250ms
  try_ratio: 0.25
report:
  ticker: batch
logging:
  format: text
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Workload.Impl != workload.ImplBroadcast {
		t.Errorf("Workload.Impl = %q, want broadcast", cfg.Workload.Impl)
	}
	if cfg.Workload.Consumers != 16 {
		t.Errorf("Workload.Consumers = %d, want 16", cfg.Workload.Consumers)
	}
	if cfg.Workload.Duration != 250*time.Millisecond {
		t.Errorf("Workload.Duration = %v, want 250ms", cfg.Workload.Duration)
	}
	if cfg.Workload.TryRatio != 0.25 {
		t.Errorf("Workload.TryRatio = %v, want 0.25", cfg.Workload.TryRatio)
	}
	if cfg.Report.Ticker != tick.KindBatch {
		t.Errorf("Report.Ticker = %q, want batch", cfg.Report.Ticker)
	}

	// Untouched keys keep their defaults
	if cfg.Workload.Producers != 4 {
		t.Errorf("Workload.Producers = %d, want default 4", cfg.Workload.Producers)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want default info", cfg.Logging.Level)
	}
}

func TestLoad_Invalid(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	viper.Set("workload.producers", 0)
	viper.Set("logging.format", "xml")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail for invalid values")
	}

	errs, ok := err.(ValidationErrors)
	if !ok {
		t.Fatalf("Load() error type = %T, want ValidationErrors", err)
	}
	if len(errs) != 2 {
		t.Fatalf("expected 2 validation errors, got %d: %v", len(errs), errs)
	}
	if errs[0].Field != "workload.producers" || errs[1].Field != "logging.format" {
		t.Errorf("unexpected fields: %q, %q", errs[0].Field, errs[1].Field)
	}
}

func TestWriteFile_ReadBack(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	SetDefaults()

	cfg := Default()
	cfg.Workload.Impl = workload.ImplBroadcast
	cfg.Workload.Duration = 3 * time.Second
	cfg.Report.Output = OutputYAML

	path := filepath.Join(t.TempDir(), "nested", "queuebench.yaml")
	if err := cfg.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig() error = %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("read back %+v, want %+v", *got, *cfg)
	}
}

func TestMarshal(t *testing.T) {
	data, err := Default().Marshal()
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	out := string(data)
	for _, want := range []string{"workload:", "impl: handoff", "try_ratio:", "report:", "interval: 1s", "logging:"} {
		if !strings.Contains(out, want) {
			t.Errorf("Marshal() output missing %q:\n%s", want, out)
		}
	}
}

func TestWorkloadRun(t *testing.T) {
	cfg := Default()
	cfg.Workload.TryRatio = 0.5
	cfg.Report.Ticker = tick.KindStd

	w := cfg.WorkloadRun()
	if w.Impl != cfg.Workload.Impl || w.Producers != cfg.Workload.Producers ||
		w.Consumers != cfg.Workload.Consumers || w.Items != cfg.Workload.Items {
		t.Errorf("WorkloadRun() = %+v, does not match %+v", w, cfg.Workload)
	}
	if w.TryRatio != 0.5 {
		t.Errorf("TryRatio = %v, want 0.5", w.TryRatio)
	}
	if w.ReportInterval != cfg.Report.Interval || w.Ticker != tick.KindStd {
		t.Errorf("report settings not carried over: %+v", w)
	}
	if err := w.Validate(); err != nil {
		t.Errorf("WorkloadRun().Validate() = %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		result := ConfigDir()
		expected := "/custom/config/queuebench"
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		result := ConfigDir()

		home, _ := os.UserHomeDir()
		expected := filepath.Join(home, ".config", "queuebench")
		if result != expected {
			t.Errorf("ConfigDir() = %q, want %q", result, expected)
		}
	})
}

func TestConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	result := ConfigFile()
	expected := "/custom/config/queuebench/queuebench.yaml"
	if result != expected {
		t.Errorf("ConfigFile() = %q, want %q", result, expected)
	}
}
