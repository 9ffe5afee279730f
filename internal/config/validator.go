package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/randomizedcoder/handoff-queue/internal/logging"
	"github.com/randomizedcoder/handoff-queue/internal/tick"
	"github.com/randomizedcoder/handoff-queue/internal/workload"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // The config field path (e.g., "workload.producers")
	Value   any    // The invalid value
	Message string // Human-readable error description
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%d validation errors:\n", len(e)))
	for i, err := range e {
		sb.WriteString(fmt.Sprintf("  %d. %s\n", i+1, err.Error()))
	}
	return sb.String()
}

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	return []string{"debug", "info", "warn", "error"}
}

// ValidOutputs returns the list of valid report output formats
func ValidOutputs() []string {
	return []string{OutputTable, OutputYAML, OutputJSON}
}

// maxWorkers bounds producers and consumers to keep runs from exhausting
// the machine
const maxWorkers = 10000

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	errors = append(errors, c.validateWorkload()...)
	errors = append(errors, c.validateReport()...)
	errors = append(errors, c.validateLogging()...)

	return errors
}

// validateWorkload validates the WorkloadConfig
func (c *Config) validateWorkload() []ValidationError {
	var errors []ValidationError
	w := c.Workload

	if !workload.IsValidImpl(w.Impl) {
		errors = append(errors, ValidationError{
			Field:   "workload.impl",
			Value:   w.Impl,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(workload.Impls(), ", ")),
		})
	}

	for _, f := range []struct {
		field string
		value int
	}{
		{"workload.producers", w.Producers},
		{"workload.consumers", w.Consumers},
	} {
		if f.value < 1 {
			errors = append(errors, ValidationError{
				Field:   f.field,
				Value:   f.value,
				Message: "must be at least 1",
			})
		} else if f.value > maxWorkers {
			errors = append(errors, ValidationError{
				Field:   f.field,
				Value:   f.value,
				Message: fmt.Sprintf("exceeds maximum of %d", maxWorkers),
			})
		}
	}

	if w.Items < 1 {
		errors = append(errors, ValidationError{
			Field:   "workload.items",
			Value:   w.Items,
			Message: "must be at least 1",
		})
	}

	if w.Duration < 0 {
		errors = append(errors, ValidationError{
			Field:   "workload.duration",
			Value:   w.Duration,
			Message: "must be non-negative (0 = no limit)",
		})
	}

	if w.TryRatio < 0 || w.TryRatio > 1 {
		errors = append(errors, ValidationError{
			Field:   "workload.try_ratio",
			Value:   w.TryRatio,
			Message: "must be between 0.0 and 1.0",
		})
	}

	return errors
}

// validateReport validates the ReportConfig
func (c *Config) validateReport() []ValidationError {
	var errors []ValidationError

	if c.Report.Interval < 0 {
		errors = append(errors, ValidationError{
			Field:   "report.interval",
			Value:   c.Report.Interval,
			Message: "must be non-negative (0 = default)",
		})
	}

	if c.Report.Ticker != "" && !slices.Contains(tick.Kinds(), strings.ToLower(c.Report.Ticker)) {
		errors = append(errors, ValidationError{
			Field:   "report.ticker",
			Value:   c.Report.Ticker,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(tick.Kinds(), ", ")),
		})
	}

	if c.Report.Output != "" && !slices.Contains(ValidOutputs(), strings.ToLower(c.Report.Output)) {
		errors = append(errors, ValidationError{
			Field:   "report.output",
			Value:   c.Report.Output,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidOutputs(), ", ")),
		})
	}

	return errors
}

// validateLogging validates the LoggingConfig
func (c *Config) validateLogging() []ValidationError {
	var errors []ValidationError

	if c.Logging.Level != "" && !slices.Contains(ValidLogLevels(), strings.ToLower(c.Logging.Level)) {
		errors = append(errors, ValidationError{
			Field:   "logging.level",
			Value:   c.Logging.Level,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	if c.Logging.Format != "" && !slices.Contains(logging.ValidFormats(), strings.ToLower(c.Logging.Format)) {
		errors = append(errors, ValidationError{
			Field:   "logging.format",
			Value:   c.Logging.Format,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(logging.ValidFormats(), ", ")),
		})
	}

	return errors
}
