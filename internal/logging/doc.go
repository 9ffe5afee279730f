// Package logging provides structured logging for queuebench runs.
//
// It wraps log/slog and adds level parsing, a choice of JSON or text
// output, and child loggers that carry persistent attributes such as the
// component name or the queue implementation under test.
//
// # Basic Usage
//
//	logger := logging.New(os.Stderr, "INFO", logging.FormatJSON)
//	runLogger := logger.WithComponent("workload").With("impl", "handoff")
//	runLogger.Info("stats", "depth", 12, "waiting", 3, "processed", 9000)
//
// # Testing
//
// Use [NopLogger] to discard all output:
//
//	q := queue.New[int](queue.WithLogger(logging.NopLogger()))
//
// All types in this package are safe for concurrent use.
package logging
