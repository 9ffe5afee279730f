package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randomizedcoder/handoff-queue/internal/config"
	"github.com/randomizedcoder/handoff-queue/internal/tick"
	"github.com/randomizedcoder/handoff-queue/internal/workload"
)

func newRunCmd() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run one workload against a queue implementation",
		Long: `Run one workload against a queue implementation and print the report.

Flags override the config file and QUEUEBENCH_* environment variables.
Exits with an error if any item was delivered twice or went missing.`,
		Args: cobra.NoArgs,
		RunE: runRun,
	}

	keys := addWorkloadFlags(runCmd)
	runCmd.Flags().String("impl", "", fmt.Sprintf("queue implementation (%s)", strings.Join(workload.Impls(), ", ")))
	keys["impl"] = "workload.impl"

	runCmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		return bindFlags(cmd.Flags(), keys)
	}

	return runCmd
}

// addWorkloadFlags registers the flags shared by run and compare and
// returns their viper keys.
func addWorkloadFlags(cmd *cobra.Command) map[string]string {
	flags := cmd.Flags()
	flags.IntP("producers", "p", 0, "number of producer goroutines")
	flags.IntP("consumers", "n", 0, "number of consumer goroutines")
	flags.Int("items", 0, "total items put across all producers")
	flags.Duration("duration", 0, "cap on run time (0 = until every item is taken)")
	flags.Float64("try-ratio", 0, "fraction of consumers polling with TryTake (0.0-1.0)")
	flags.Duration("interval", 0, "stats log interval")
	flags.String("ticker", "", fmt.Sprintf("interval ticker (%s)", strings.Join(tick.Kinds(), ", ")))
	flags.StringP("output", "o", "", fmt.Sprintf("report format (%s)", strings.Join(config.ValidOutputs(), ", ")))

	return map[string]string{
		"producers": "workload.producers",
		"consumers": "workload.consumers",
		"items":     "workload.items",
		"duration":  "workload.duration",
		"try-ratio": "workload.try_ratio",
		"interval":  "report.interval",
		"ticker":    "report.ticker",
		"output":    "report.output",
	}
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	r, runErr := workload.Run(cmd.Context(), cfg.WorkloadRun(), logger)
	if err := writeReport(cmd.OutOrStdout(), cfg.Report.Output, r); err != nil {
		return err
	}
	if runErr != nil {
		return fmt.Errorf("run interrupted: %w", runErr)
	}
	if err := r.Verify(); err != nil {
		return fmt.Errorf("integrity check failed: %w", err)
	}
	return nil
}
